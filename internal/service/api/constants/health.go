package constants

// 헬스체크 및 시스템 상태 관련 상수입니다.
const (
	// HealthStatusHealthy 헬스체크 상태: 정상
	HealthStatusHealthy = "healthy"

	// HealthStatusUnhealthy 헬스체크 상태: 비정상
	HealthStatusUnhealthy = "unhealthy"

	// HealthStatusDegraded 헬스체크 상태: 동작은 하지만 점검이 필요함
	HealthStatusDegraded = "degraded"

	// DependencyProbeSequencer 외부 의존성 ID: 점검 시퀀서
	DependencyProbeSequencer = "probe_sequencer"

	// DependencyRegistrationControl 외부 의존성 ID: 등록 컨트롤
	DependencyRegistrationControl = "registration_control"

	MsgDepStatusHealthy        = "정상 작동 중"
	MsgDepStatusNotInitialized = "등록 서비스가 아직 초기화되지 않음"
	MsgDepStatusError          = "마지막 버튼 처리에서 오류가 발생함"
)
