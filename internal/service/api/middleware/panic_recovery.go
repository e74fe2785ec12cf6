package middleware

import (
	"net/http"
	"runtime"

	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/labstack/echo/v4"
)

// stackBufferSize panic 발생 시 스택 트레이스를 저장할 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러에서 발생한 panic을 복구하고 스택 트레이스와 함께 기록한 뒤 500 응답으로 변환합니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				// 연결 중단 신호는 net/http 서버가 처리하도록 다시 던진다.
				if r == http.ErrAbortHandler {
					panic(r)
				}

				stack := make([]byte, stackBufferSize)
				length := runtime.Stack(stack, false)

				recovered := newErrPanicRecovered(r)

				fields := applog.Fields{
					"error":  recovered,
					"stack":  string(stack[:length]),
					"method": c.Request().Method,
					"path":   c.Request().URL.Path,
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddleware, fields).Error("PANIC RECOVERED")

				err = recovered
			}()

			return next(c)
		}
	}
}
