// Package onesignal OneSignal REST API(v1 User Model)로 등록 서비스를 구현합니다.
//
//   - 등록: POST   /apps/{app_id}/users                                  (백그라운드 실행)
//   - 로그인: PATCH  /apps/{app_id}/users/by/onesignal_id/{id}/identity
//   - 조회: GET    /apps/{app_id}/users/by/onesignal_id/{id}
package onesignal

import (
	"context"
	"strings"

	"github.com/darkkaiser/push-probe/internal/config"
	"github.com/darkkaiser/push-probe/internal/service/registration"
	"github.com/darkkaiser/push-probe/internal/service/registration/fetcher"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/darkkaiser/push-probe/pkg/strutil"
)

const component = "registration.onesignal"

// Provider OneSignal 등록 서비스 구현체입니다.
type Provider struct {
	fetcher fetcher.Fetcher

	endpoint          string
	apiKey            string
	subscriptionType  string
	subscriptionToken string
}

var _ registration.Provider = (*Provider)(nil)

// New 설정과 HTTP Fetcher로 Provider를 생성합니다.
func New(cfg config.RegistrationConfig, f fetcher.Fetcher) *Provider {
	return &Provider{
		fetcher: f,

		endpoint:          strings.TrimRight(cfg.APIEndpoint, "/"),
		apiKey:            cfg.APIKey,
		subscriptionType:  cfg.SubscriptionType,
		subscriptionToken: cfg.SubscriptionToken,
	}
}

func (p *Provider) Name() string {
	return config.ProviderOneSignal
}

func (p *Provider) Create(_ context.Context, settings registration.Settings, hooks registration.Hooks) (registration.Control, error) {
	appID := strings.TrimSpace(settings.AppID)
	if appID == "" {
		return nil, registration.ErrEmptyAppID
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"app_id":   strutil.MaskPrefix(appID, 8),
		"endpoint": p.endpoint,
	}).Debug("OneSignal 컨트롤 생성")

	return newControl(p, appID, hooks), nil
}

// Register 사용자 생성 요청을 백그라운드로 보냅니다. 요청 ctx가 끝나도 등록은 계속되며,
// 컨트롤의 Close()로만 중단됩니다.
func (p *Provider) Register(_ context.Context, c registration.Control) error {
	ctl, ok := c.(*Control)
	if !ok || ctl.provider != p {
		return registration.ErrForeignControl
	}

	return ctl.startRegistration()
}
