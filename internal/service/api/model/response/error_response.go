// Package response API 공통 응답 본문을 정의합니다.
package response

// ErrorResponse API 오류 응답
type ErrorResponse struct {
	// ResultCode HTTP 상태 코드 (예: 400, 401, 500)
	ResultCode int `json:"result_code" example:"409"`

	// Message 에러 메시지
	Message string `json:"message" example:"등록 서비스가 초기화되지 않았습니다. 먼저 초기화를 실행해주세요"`
}
