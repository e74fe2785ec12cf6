// Package v1 Probe API의 /api/v1 라우트를 등록합니다.
//
//   - POST /api/v1/probe/initialize   - 등록 서비스 초기화
//   - POST /api/v1/probe/identifier   - 기기 식별자 조회
//   - POST /api/v1/probe/login        - 테스트 외부 사용자 로그인
//   - POST /api/v1/probe/external-id  - 외부 사용자 ID 확인
//   - GET  /api/v1/probe/session      - 현재 세션 상태와 로그
//   - POST /api/v1/events             - 알림 수신/열람 이벤트 전달
//
// app_key가 설정되어 있으면 모든 엔드포인트에 인증이 적용됩니다.
package v1

import (
	"github.com/darkkaiser/push-probe/internal/service/api/auth"
	"github.com/darkkaiser/push-probe/internal/service/api/middleware"
	"github.com/darkkaiser/push-probe/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 등록합니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler, authenticator *auth.Authenticator) {
	v1Group := e.Group("/api/v1", middleware.RequireAuthentication(authenticator))

	probeGroup := v1Group.Group("/probe")
	probeGroup.POST("/initialize", h.InitializeHandler)
	probeGroup.POST("/identifier", h.FetchIdentifierHandler)
	probeGroup.POST("/login", h.LoginHandler)
	probeGroup.POST("/external-id", h.CheckExternalUserIDHandler)
	probeGroup.GET("/session", h.SessionHandler)

	v1Group.POST("/events", h.PublishEventHandler,
		middleware.ValidateContentType(echo.MIMEApplicationJSON),
	)
}
