package middleware

import (
	"github.com/darkkaiser/push-probe/internal/service/api/auth"
	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/labstack/echo/v4"
)

// RequireAuthentication App Key 인증 미들웨어를 반환합니다.
//
// App Key는 X-App-Key 헤더를 우선 확인하고, 없으면 app_key 쿼리 파라미터를 사용합니다.
// Authenticator가 비활성화(설정된 키 없음)되어 있으면 모든 요청을 통과시킵니다.
//
// authenticator가 nil이면 panic이 발생합니다.
func RequireAuthentication(authenticator *auth.Authenticator) echo.MiddlewareFunc {
	if authenticator == nil {
		panic("Authenticator는 필수입니다")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !authenticator.Enabled() {
				return next(c)
			}

			if err := authenticator.Authenticate(extractAppKey(c)); err != nil {
				return err
			}

			return next(c)
		}
	}
}

func extractAppKey(c echo.Context) string {
	if appKey := c.Request().Header.Get(constants.HeaderAppKey); appKey != "" {
		return appKey
	}

	appKey := c.QueryParam(constants.QueryParamAppKey)
	if appKey != "" {
		applog.WithComponentAndFields(constants.ComponentMiddlewareAuthentication, applog.Fields{
			"method":    c.Request().Method,
			"path":      c.Path(),
			"remote_ip": c.RealIP(),
		}).Debug("쿼리 파라미터로 App Key 전달됨 (X-App-Key 헤더 사용 권장)")
	}

	return appKey
}
