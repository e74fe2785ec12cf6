// Package registration 푸시 알림 등록 서비스(Notification Registration Service)와의 계약을 정의합니다.
//
// 등록 서비스는 기기를 푸시 백엔드에 등록하고, 기기 식별자를 발급하며, 외부 사용자 ID를
// 연결하는 외부 협력자입니다. 점검 시퀀서는 이 패키지의 인터페이스만 사용하며, 실제 구현은
// onesignal(REST API)과 simulated(프로세스 내 모의 구현) 패키지가 제공합니다.
package registration

import (
	"context"
)

// Settings 컨트롤 생성에 필요한 설정입니다.
type Settings struct {
	AppID string
}

// Provider 등록 컨트롤을 생성하고 비동기 등록을 시작합니다.
type Provider interface {
	// Name 로그에 표시할 구현체 이름입니다.
	Name() string

	// Create 애플리케이션 ID와 알림 훅으로 새 컨트롤을 생성합니다.
	Create(ctx context.Context, settings Settings, hooks Hooks) (Control, error)

	// Register 컨트롤의 백엔드 등록을 시작합니다. 등록 완료를 기다리지 않고 반환하며,
	// 기기 식별자는 등록이 끝난 뒤에야 조회됩니다.
	Register(ctx context.Context, control Control) error
}

// Control 초기화된 등록 서비스에 대한 핸들입니다.
//
// 조회 결과의 ok=false는 오류가 아니라 "아직 값이 없음"을 뜻합니다.
type Control interface {
	DeviceID(ctx context.Context) (id string, ok bool, err error)

	// Login 외부 사용자 ID를 연결합니다. false는 확인되지 않았다는 약한 신호이며 실패를 뜻하지 않습니다.
	Login(ctx context.Context, externalUserID string) (bool, error)

	ExternalUserID(ctx context.Context) (id string, ok bool, err error)
}

// EventSource 외부에서 수신한 알림 이벤트를 컨트롤의 훅으로 전달할 수 있는 컨트롤이 구현합니다.
type EventSource interface {
	// Dispatch 이벤트를 훅으로 전달합니다. 처리할 훅이 없으면 false를 반환합니다.
	Dispatch(event Event) bool
}
