package probe

import (
	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
)

var (
	// ErrNotInitialized 등록 컨트롤이 없는 상태에서 컨트롤이 필요한 요청을 받은 경우입니다.
	ErrNotInitialized = apperrors.New(apperrors.Precondition, "등록 서비스가 초기화되지 않았습니다")

	// ErrEventsUnsupported 현재 컨트롤이 외부 알림 이벤트 전달을 지원하지 않는 경우입니다.
	ErrEventsUnsupported = apperrors.New(apperrors.Unavailable, "현재 등록 컨트롤은 알림 이벤트 전달을 지원하지 않습니다")

	// ErrNoEventHook 이벤트 종류에 해당하는 훅이 없는 경우입니다.
	ErrNoEventHook = apperrors.New(apperrors.NotFound, "이벤트를 처리할 훅이 없습니다")

	// ErrClosed 이미 종료된 시퀀서에 요청한 경우입니다.
	ErrClosed = apperrors.New(apperrors.Unavailable, "점검 시퀀서가 이미 종료되었습니다")
)
