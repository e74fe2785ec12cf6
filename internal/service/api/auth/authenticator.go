// Package auth Probe API의 App Key 인증을 제공합니다.
package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	"github.com/darkkaiser/push-probe/internal/service/api/httputil"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/darkkaiser/push-probe/pkg/strutil"
)

// Authenticator 설정된 App Key와 요청의 키를 비교합니다.
//
// 설정된 키가 없으면 인증이 비활성화되며 모든 요청을 통과시킵니다.
// 초기화 후에는 읽기 전용이므로 여러 고루틴에서 동시에 사용해도 안전합니다.
type Authenticator struct {
	appKey []byte
}

// NewAuthenticator 설정의 app_key로 Authenticator를 생성합니다.
func NewAuthenticator(appKey string) *Authenticator {
	appKey = strings.TrimSpace(appKey)
	if appKey == "" {
		return &Authenticator{}
	}

	return &Authenticator{appKey: []byte(appKey)}
}

// Enabled 인증이 활성화되어 있는지 반환합니다.
func (a *Authenticator) Enabled() bool {
	return len(a.appKey) > 0
}

// Authenticate 요청의 App Key를 검증합니다. 실패 시 401 에러를 반환합니다.
func (a *Authenticator) Authenticate(appKey string) error {
	if !a.Enabled() {
		return nil
	}

	if appKey == "" {
		return httputil.NewUnauthorizedError(constants.ErrMsgAuthAppKeyRequired)
	}

	if subtle.ConstantTimeCompare(a.appKey, []byte(appKey)) != 1 {
		applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
			"received_app_key": strutil.MaskSensitiveData(appKey),
		}).Warn("APP_KEY 불일치")

		return httputil.NewUnauthorizedError(constants.ErrMsgUnauthorizedInvalidAppKey)
	}

	return nil
}
