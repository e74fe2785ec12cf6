package api

import (
	"github.com/darkkaiser/push-probe/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes 인증이 필요 없는 전역 라우트를 등록합니다.
//
//   - GET /health    - 서버 및 점검 세션 상태
//   - GET /version   - 빌드 정보
//   - GET /swagger/* - Swagger UI와 API 문서
//   - GET /metrics   - Prometheus 메트릭 (gatherer가 nil이면 등록하지 않음)
func RegisterRoutes(e *echo.Echo, h *system.Handler, gatherer prometheus.Gatherer) {
	registerSystemRoutes(e, h)
	registerSwaggerRoutes(e)

	if gatherer != nil {
		registerMetricsRoutes(e, gatherer)
	}
}

func registerSystemRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)
}

func registerSwaggerRoutes(e *echo.Echo) {
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(
		echoSwagger.URL("/swagger/doc.json"),
		echoSwagger.DeepLinking(true),
		// 태그 목록만 펼친 상태로 표시 ("list", "full", "none")
		echoSwagger.DocExpansion("list"),
	))
}

func registerMetricsRoutes(e *echo.Echo, gatherer prometheus.Gatherer) {
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}
