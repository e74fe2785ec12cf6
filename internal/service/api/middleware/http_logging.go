package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/darkkaiser/push-probe/pkg/strutil"
	"github.com/labstack/echo/v4"
)

// quietPaths 정상 응답을 Debug 레벨로 기록하는 경로입니다.
var quietPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// HTTPLogger 요청마다 접근 로그를 한 줄씩 남기는 미들웨어를 반환합니다.
//
// 핸들러가 반환한 에러는 Echo 에러 핸들러로 먼저 넘겨 응답 상태 코드를 확정한 뒤 기록합니다.
// 5xx는 Error, 4xx는 Warn, 나머지는 Info 레벨이며 app_key 같은 쿼리 값은 마스킹됩니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			applog.WithComponentAndFields(constants.ComponentMiddlewareHTTPLogging, accessFields(c, time.Since(start))).
				Log(accessLevel(c.Request().URL.Path, status), "HTTP 요청")

			return nil
		}
	}
}

func accessFields(c echo.Context, latency time.Duration) applog.Fields {
	req := c.Request()
	res := c.Response()

	bytesIn := req.ContentLength
	if bytesIn < 0 {
		bytesIn = 0
	}

	return applog.Fields{
		"method":     req.Method,
		"route":      c.Path(),
		"uri":        maskSensitiveQueryParams(req.RequestURI),
		"remote_ip":  c.RealIP(),
		"user_agent": req.UserAgent(),
		"status":     res.Status,
		"bytes_in":   bytesIn,
		"bytes_out":  res.Size,
		"latency_ms": latency.Milliseconds(),
		"request_id": res.Header().Get(echo.HeaderXRequestID),
	}
}

func accessLevel(path string, status int) applog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return applog.ErrorLevel
	case status >= http.StatusBadRequest:
		return applog.WarnLevel
	}

	if _, ok := quietPaths[path]; ok {
		return applog.DebugLevel
	}
	return applog.InfoLevel
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터 값을 마스킹합니다. 파싱에 실패하면 원본을 반환합니다.
//
//	입력: "/api/v1/probe/session?app_key=secret123&x=1"
//	출력: "/api/v1/probe/session?app_key=secr%2A%2A%2A&x=1"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return uri
	}

	q := u.Query()
	masked := false

	for _, param := range constants.SensitiveQueryParams {
		if q.Has(param) {
			q.Set(param, strutil.MaskSensitiveData(q.Get(param)))
			masked = true
		}
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}
