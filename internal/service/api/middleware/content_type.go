package middleware

import (
	"mime"
	"strings"

	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/labstack/echo/v4"
)

// ValidateContentType 요청 본문의 Content-Type이 expected인지 검증합니다.
// 본문이 없는 요청은 검증하지 않습니다. 일치하지 않으면 415를 반환합니다.
func ValidateContentType(expected string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.ContentLength == 0 {
				return next(c)
			}

			contentType := req.Header.Get(echo.HeaderContentType)
			mediaType, _, err := mime.ParseMediaType(contentType)
			if err != nil || !strings.EqualFold(mediaType, expected) {
				applog.WithComponentAndFields(constants.ComponentMiddlewareContentType, applog.Fields{
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
					"method":     req.Method,
					"path":       req.URL.Path,
					"expected":   expected,
					"actual":     contentType,
				}).Warn(constants.LogMsgUnsupportedContentType)

				return ErrUnsupportedMediaType
			}

			return next(c)
		}
	}
}
