package registration

import (
	"time"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
)

// EventType 알림 이벤트 종류입니다.
type EventType string

const (
	EventReceived EventType = "received"
	EventOpened   EventType = "opened"
)

// Event 기기에서 발생한 알림 수신/열람 이벤트입니다.
type Event struct {
	Type           EventType `json:"type"`
	NotificationID string    `json:"notification_id,omitempty"`
	Title          string    `json:"title,omitempty"`
	Body           string    `json:"body,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Validate 이벤트 종류가 지원되는 값인지 검사합니다.
func (e Event) Validate() error {
	switch e.Type {
	case EventReceived, EventOpened:
		return nil
	case "":
		return apperrors.New(apperrors.InvalidInput, "이벤트 종류(type)가 지정되지 않았습니다")
	default:
		return apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 이벤트 종류입니다: '%s' (허용: received, opened)", e.Type)
	}
}

// Hooks 알림 이벤트 발생 시 호출되는 콜백입니다. nil 훅은 무시됩니다.
type Hooks struct {
	OnReceived func(Event)
	OnOpened   func(Event)
}

// Dispatch 이벤트 종류에 맞는 훅을 호출합니다. 호출된 훅이 없으면 false를 반환합니다.
func (h Hooks) Dispatch(e Event) bool {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}

	switch e.Type {
	case EventReceived:
		if h.OnReceived != nil {
			h.OnReceived(e)
			return true
		}
	case EventOpened:
		if h.OnOpened != nil {
			h.OnOpened(e)
			return true
		}
	}

	return false
}
