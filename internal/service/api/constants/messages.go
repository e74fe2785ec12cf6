package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	// 400 Bad Request
	ErrMsgBadRequest            = "잘못된 요청입니다"
	ErrMsgBadRequestInvalidBody = "요청 본문을 파싱할 수 없습니다. JSON 형식을 확인해주세요"

	// 401 Unauthorized
	ErrMsgUnauthorizedInvalidAppKey = "app_key가 유효하지 않습니다"
	ErrMsgAuthAppKeyRequired        = "app_key는 필수입니다 (X-App-Key 헤더 또는 app_key 쿼리 파라미터)"

	// 404 Not Found
	ErrMsgNotFound = "요청한 리소스를 찾을 수 없습니다"

	// 409 Conflict
	ErrMsgNotInitialized = "등록 서비스가 초기화되지 않았습니다. 먼저 초기화를 실행해주세요"

	// 415 Unsupported Media Type
	ErrMsgUnsupportedMediaType = "지원하지 않는 미디어 타입입니다"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"

	// 500 Internal Server Error
	ErrMsgInternalServer = "내부 서버 오류가 발생했습니다"

	// 503 Service Unavailable
	ErrMsgServiceStopped = "점검 시퀀서가 종료되었습니다"
)

// 로그 메시지 상수입니다.
const (
	LogMsgServiceStarting                = "서비스 시작 진입: Probe API 서비스 초기화 프로세스를 시작합니다"
	LogMsgServiceStarted                 = "서비스 시작 완료: Probe API 서비스가 정상적으로 초기화되었습니다"
	LogMsgServiceAlreadyStarted          = "Probe API 서비스가 이미 실행 중입니다"
	LogMsgServiceStopping                = "종료 절차 진입: Probe API 서비스 중지 시그널을 수신했습니다"
	LogMsgServiceStopped                 = "종료 절차 완료: Probe API 서비스가 정상적으로 종료되었습니다"
	LogMsgServiceUnexpectedExit          = "HTTP 서버가 예기치 않게 종료되었습니다"
	LogMsgServiceHTTPServerStarting      = "HTTP 서버 시작"
	LogMsgServiceHTTPServerStopped       = "HTTP 서버 종료 완료"
	LogMsgServiceHTTPServerFatalError    = "HTTP 서버 실행 중 치명적인 오류가 발생했습니다"
	LogMsgServiceHTTPServerShutdownError = "HTTP 서버 Graceful Shutdown 중 오류가 발생했습니다"

	LogMsgHTTP4xxClientError = "HTTP 4xx: 클라이언트 요청 오류"
	LogMsgHTTP5xxServerError = "HTTP 5xx: 서버 내부 오류"

	LogMsgUnsupportedContentType = "지원하지 않는 Content-Type 요청"
)
