package constants

// 인증 키 전달 위치입니다.
const (
	// QueryParamAppKey 애플리케이션 인증용 쿼리 파라미터 키
	QueryParamAppKey = "app_key"

	// HeaderAppKey 애플리케이션 인증용 HTTP 헤더 키 (권장 방식)
	HeaderAppKey = "X-App-Key"
)

// SensitiveQueryParams 로그 기록 시 마스킹 처리해야 할 쿼리 파라미터 목록입니다.
var SensitiveQueryParams = []string{
	QueryParamAppKey,
	"api_key",
	"password",
	"token",
	"secret",
}
