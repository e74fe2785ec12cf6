// Package request v1 API 요청 본문을 정의합니다.
package request

import (
	"time"

	"github.com/darkkaiser/push-probe/internal/service/registration"
)

// EventRequest 기기에서 발생한 알림 이벤트 전달 요청
type EventRequest struct {
	// 이벤트 종류: received(수신), opened(열람)
	Type string `json:"type" validate:"required,oneof=received opened" korean:"이벤트 종류" example:"received"`
	// 알림 식별자
	NotificationID string `json:"notification_id" validate:"max=128" korean:"알림 ID" example:"b6b3d0b4-7f54-4b1e-9d1e-3f7a1d6f2c10"`
	// 알림 제목
	Title string `json:"title" validate:"max=256" korean:"제목" example:"테스트 알림"`
	// 알림 본문
	Body string `json:"body" validate:"max=4096" korean:"본문" example:"푸시 알림 수신 테스트입니다"`
	// 이벤트 발생 시각 (생략 시 서버 수신 시각)
	OccurredAt *time.Time `json:"occurred_at,omitempty" korean:"발생 시각"`
}

// ToEvent 등록 서비스로 전달할 이벤트로 변환합니다.
func (r *EventRequest) ToEvent() registration.Event {
	e := registration.Event{
		Type:           registration.EventType(r.Type),
		NotificationID: r.NotificationID,
		Title:          r.Title,
		Body:           r.Body,
	}
	if r.OccurredAt != nil {
		e.OccurredAt = *r.OccurredAt
	}
	return e
}
