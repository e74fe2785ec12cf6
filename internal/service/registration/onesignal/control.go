package onesignal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/darkkaiser/push-probe/internal/service/registration"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/darkkaiser/push-probe/pkg/strutil"
	"github.com/tidwall/gjson"
)

// Control OneSignal 사용자 하나에 대한 등록 상태를 보관합니다.
type Control struct {
	provider *Provider
	appID    string
	hooks    registration.Hooks

	mu              sync.Mutex
	started         bool
	onesignalID     string
	subscriptionID  string
	registerErr     error
	pendingExternal string

	cancel context.CancelFunc
	done   chan struct{}
}

var (
	_ registration.Control     = (*Control)(nil)
	_ registration.EventSource = (*Control)(nil)
	_ io.Closer                = (*Control)(nil)
)

func newControl(p *Provider, appID string, hooks registration.Hooks) *Control {
	return &Control{
		provider: p,
		appID:    appID,
		hooks:    hooks,
		done:     make(chan struct{}),
	}
}

func (c *Control) startRegistration() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return registration.ErrAlreadyRegistered
	}
	c.started = true

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel

	go func() {
		defer close(c.done)
		c.register(ctx)
	}()

	return nil
}

func (c *Control) register(ctx context.Context) {
	sub := map[string]any{
		"type":    c.provider.subscriptionType,
		"enabled": true,
	}
	if c.provider.subscriptionToken != "" {
		sub["token"] = c.provider.subscriptionToken
	}

	body, err := c.call(ctx, http.MethodPost, c.usersURL(), map[string]any{
		"subscriptions": []any{sub},
	})
	if err == nil && !gjson.GetBytes(body, "identity.onesignal_id").Exists() {
		err = apperrors.New(apperrors.ParsingFailed, "사용자 생성 응답에 onesignal_id가 없습니다")
	}

	c.mu.Lock()
	if err != nil {
		c.registerErr = err
		c.mu.Unlock()

		applog.WithComponentAndFields(component, applog.Fields{
			"app_id": strutil.MaskPrefix(c.appID, 8),
			"error":  err,
		}).Warn("OneSignal 기기 등록 실패")
		return
	}

	c.onesignalID = gjson.GetBytes(body, "identity.onesignal_id").String()
	c.subscriptionID = gjson.GetBytes(body, "subscriptions.0.id").String()
	pending := c.pendingExternal
	c.mu.Unlock()

	applog.WithComponentAndFields(component, applog.Fields{
		"onesignal_id":    c.onesignalID,
		"subscription_id": c.subscriptionID,
	}).Info("OneSignal 기기 등록 완료")

	// 등록 전에 요청된 로그인은 등록 직후 반영한다.
	if pending != "" {
		if _, err := c.setExternalID(ctx, pending); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"external_id": pending,
				"error":       err,
			}).Warn("보류된 외부 사용자 ID 연결 실패")
		}
	}
}

// DeviceID 푸시 구독 ID를 반환합니다. 등록이 끝나지 않았으면 ok=false이고,
// 등록이 실패했으면 그 원인을 ExecutionFailed 에러로 돌려줍니다.
func (c *Control) DeviceID(_ context.Context) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.registerErr != nil {
		return "", false, apperrors.Wrap(c.registerErr, apperrors.ExecutionFailed, "OneSignal 기기 등록에 실패했습니다")
	}

	return c.subscriptionID, c.subscriptionID != "", nil
}

// Login 외부 사용자 ID를 연결합니다. 등록 전이면 요청을 보류하고 false를 반환합니다.
func (c *Control) Login(ctx context.Context, externalUserID string) (bool, error) {
	c.mu.Lock()
	if c.onesignalID == "" {
		c.pendingExternal = externalUserID
		c.mu.Unlock()
		return false, nil
	}
	c.mu.Unlock()

	return c.setExternalID(ctx, externalUserID)
}

func (c *Control) setExternalID(ctx context.Context, externalUserID string) (bool, error) {
	body, err := c.call(ctx, http.MethodPatch, c.userURL()+"/identity", map[string]any{
		"identity": map[string]string{"external_id": externalUserID},
	})
	if err != nil {
		return false, err
	}

	c.mu.Lock()
	c.pendingExternal = ""
	c.mu.Unlock()

	return gjson.GetBytes(body, "identity.external_id").String() == externalUserID, nil
}

// ExternalUserID 서버에 기록된 external_id를 조회합니다.
func (c *Control) ExternalUserID(ctx context.Context) (string, bool, error) {
	c.mu.Lock()
	registered := c.onesignalID != ""
	c.mu.Unlock()

	if !registered {
		return "", false, nil
	}

	body, err := c.call(ctx, http.MethodGet, c.userURL(), nil)
	if err != nil {
		return "", false, err
	}

	id := gjson.GetBytes(body, "identity.external_id").String()

	return id, id != "", nil
}

func (c *Control) Dispatch(event registration.Event) bool {
	return c.hooks.Dispatch(event)
}

// Close 진행 중인 백그라운드 등록을 중단하고 종료를 기다립니다.
func (c *Control) Close() error {
	c.mu.Lock()
	started := c.started
	cancel := c.cancel
	c.mu.Unlock()

	if !started {
		return nil
	}

	cancel()
	<-c.done

	return nil
}

func (c *Control) usersURL() string {
	return fmt.Sprintf("%s/apps/%s/users", c.provider.endpoint, url.PathEscape(c.appID))
}

func (c *Control) userURL() string {
	c.mu.Lock()
	id := c.onesignalID
	c.mu.Unlock()

	return fmt.Sprintf("%s/by/onesignal_id/%s", c.usersURL(), url.PathEscape(id))
}

func (c *Control) call(ctx context.Context, method, rawURL string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.Internal, "요청 본문 직렬화에 실패했습니다")
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "요청 생성에 실패했습니다")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.provider.apiKey != "" {
		req.Header.Set("Authorization", "Key "+c.provider.apiKey)
	}

	resp, err := c.provider.fetcher.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.Unavailable, "OneSignal API 호출 실패 (%s %s)", method, req.URL.Path)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "OneSignal 응답 본문을 읽지 못했습니다")
	}
	if len(body) > 0 && !gjson.ValidBytes(body) {
		return nil, apperrors.New(apperrors.ParsingFailed, "OneSignal 응답이 올바른 JSON이 아닙니다")
	}

	return body, nil
}
