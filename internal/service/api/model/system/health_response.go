// Package system 시스템 엔드포인트의 응답 본문을 정의합니다.
package system

// HealthResponse 서버 헬스체크 응답
type HealthResponse struct {
	// 전체 헬스체크 상태: healthy, degraded, unhealthy
	Status string `json:"status" example:"healthy"`
	// 서버 가동 시간(초)
	Uptime int64 `json:"uptime" example:"3600"`
	// 현재 점검 세션 상태 키 (예: registered)
	ProbeStatus string `json:"probe_status" example:"registered"`
	// 의존성별 헬스체크 결과 (키: 의존성 이름)
	Dependencies map[string]DependencyStatus `json:"dependencies,omitempty"`
}
