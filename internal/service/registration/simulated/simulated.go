// Package simulated 외부 서비스 없이 등록 흐름을 재현하는 등록 서비스 구현체입니다.
//
// 등록을 시작하면 설정된 지연 시간이 지난 뒤에 기기 식별자가 발급되므로,
// 실제 SDK처럼 "초기화 직후에는 식별자가 없다"는 상황을 그대로 확인할 수 있습니다.
package simulated

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/push-probe/internal/config"
	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/darkkaiser/push-probe/internal/service/registration"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/google/uuid"
)

const component = "registration.simulated"

// Options simulated Provider 동작 옵션입니다.
type Options struct {
	// Latency 등록 시작부터 식별자 발급까지 걸리는 시간
	Latency time.Duration

	// DeviceID 고정 식별자 (비어 있으면 무작위 UUID 형식 생성)
	DeviceID string

	// ConfirmLogin false이면 Login이 항상 미확인(false)을 반환합니다.
	ConfirmLogin bool

	// FailCreate 비어 있지 않으면 Create가 이 메시지로 실패합니다.
	FailCreate string
}

// Provider simulated 등록 서비스입니다.
type Provider struct {
	opts Options
}

var _ registration.Provider = (*Provider)(nil)

func New(opts Options) *Provider {
	return &Provider{opts: opts}
}

// NewFromConfig 설정 파일의 simulated_latency를 사용하는 Provider를 생성합니다.
func NewFromConfig(cfg config.RegistrationConfig) *Provider {
	return New(Options{Latency: cfg.SimulatedLatency, ConfirmLogin: true})
}

func (p *Provider) Name() string {
	return config.ProviderSimulated
}

func (p *Provider) Create(_ context.Context, settings registration.Settings, hooks registration.Hooks) (registration.Control, error) {
	if strings.TrimSpace(settings.AppID) == "" {
		return nil, registration.ErrEmptyAppID
	}
	if p.opts.FailCreate != "" {
		return nil, apperrors.New(apperrors.ExecutionFailed, p.opts.FailCreate)
	}

	return &Control{provider: p, hooks: hooks}, nil
}

func (p *Provider) Register(_ context.Context, c registration.Control) error {
	ctl, ok := c.(*Control)
	if !ok || ctl.provider != p {
		return registration.ErrForeignControl
	}

	return ctl.start(p.opts.Latency, p.opts.DeviceID)
}

// Control simulated 등록 상태입니다.
type Control struct {
	provider *Provider
	hooks    registration.Hooks

	mu         sync.Mutex
	started    bool
	timer      *time.Timer
	deviceID   string
	externalID string
}

var (
	_ registration.Control     = (*Control)(nil)
	_ registration.EventSource = (*Control)(nil)
	_ io.Closer                = (*Control)(nil)
)

func (c *Control) start(latency time.Duration, fixedID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return registration.ErrAlreadyRegistered
	}
	c.started = true

	id := fixedID
	if id == "" {
		id = newDeviceID()
	}

	c.timer = time.AfterFunc(latency, func() {
		c.mu.Lock()
		c.deviceID = id
		c.mu.Unlock()

		applog.WithComponentAndFields(component, applog.Fields{
			"device_id": id,
			"latency":   latency.String(),
		}).Info("시뮬레이션 기기 등록 완료")
	})

	return nil
}

func (c *Control) DeviceID(_ context.Context) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.deviceID, c.deviceID != "", nil
}

// Login 등록이 끝나기 전에는 외부 ID만 기록하고 미확인(false)을 반환합니다.
func (c *Control) Login(_ context.Context, externalUserID string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.externalID = externalUserID

	return c.provider.opts.ConfirmLogin && c.deviceID != "", nil
}

func (c *Control) ExternalUserID(_ context.Context) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.externalID, c.externalID != "", nil
}

func (c *Control) Dispatch(event registration.Event) bool {
	return c.hooks.Dispatch(event)
}

// Close 아직 발급되지 않은 식별자 타이머를 중단합니다.
func (c *Control) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}

	return nil
}

// newDeviceID OneSignal 구독 ID와 같은 UUID v4 형식의 무작위 식별자를 생성합니다.
func newDeviceID() string {
	return uuid.NewString()
}
