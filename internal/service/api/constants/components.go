// Package constants Probe API 서버 전반에서 공유하는 상수를 정의합니다.
package constants

// 로그 발생 위치(컴포넌트) 식별을 위한 상수입니다.
const (
	// ComponentService 서비스 컴포넌트 이름
	ComponentService = "api.service"

	// ComponentHandler 핸들러 컴포넌트 이름
	ComponentHandler = "api.handler"

	// ComponentMiddleware 미들웨어 공통 컴포넌트 이름
	ComponentMiddleware = "api.middleware"

	// ComponentMiddlewareAuthentication 인증 미들웨어 컴포넌트 이름
	ComponentMiddlewareAuthentication = "api.middleware.auth"

	// ComponentMiddlewareHTTPLogging 요청 로깅 미들웨어 컴포넌트 이름
	ComponentMiddlewareHTTPLogging = "api.middleware.http_logging"

	// ComponentMiddlewareRateLimiting 요청 속도 제한 미들웨어 컴포넌트 이름
	ComponentMiddlewareRateLimiting = "api.middleware.rate_limiting"

	// ComponentMiddlewareContentType Content-Type 검증 미들웨어 컴포넌트 이름
	ComponentMiddlewareContentType = "api.middleware.content_type"

	// ComponentErrorHandler 에러 핸들러 컴포넌트 이름
	ComponentErrorHandler = "api.error_handler"
)
