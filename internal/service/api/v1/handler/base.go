// Package handler v1 API의 HTTP 요청 핸들러를 제공합니다.
//
// 점검 버튼 네 개(초기화, 기기 식별자 조회, 외부 사용자 로그인, 외부 사용자 ID 확인)와
// 세션 조회, 알림 이벤트 전달을 HTTP로 노출합니다.
package handler

import (
	"context"

	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	"github.com/darkkaiser/push-probe/internal/service/probe"
	"github.com/darkkaiser/push-probe/internal/service/registration"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/labstack/echo/v4"
)

// Prober 점검 시퀀서의 버튼 처리와 세션 조회 기능입니다. *probe.Sequencer가 구현합니다.
type Prober interface {
	Initialize(ctx context.Context) error
	FetchIdentifier(ctx context.Context) error
	LoginExternalUser(ctx context.Context) error
	CheckExternalUserID(ctx context.Context) error

	DispatchEvent(event registration.Event) error
	Snapshot() probe.Snapshot
}

// Handler v1 API 요청을 점검 시퀀서로 연결합니다.
type Handler struct {
	prober Prober
}

// New Handler 인스턴스를 생성합니다.
func New(prober Prober) *Handler {
	if prober == nil {
		panic("Prober는 필수입니다")
	}

	return &Handler{prober: prober}
}

func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
