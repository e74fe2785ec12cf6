package handler

import (
	"context"
	"net/http"

	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/labstack/echo/v4"
)

// InitializeHandler godoc
// @Summary 등록 서비스 초기화
// @Description 등록 컨트롤을 생성하고 백엔드 등록을 시작합니다.
// @Description
// @Description 버튼 처리 결과는 에러가 아니라 세션 상태로 기록되므로, 등록 서비스 호출이 실패해도
// @Description 200과 함께 Error 상태의 세션을 반환합니다.
// @Tags Probe
// @Produce json
// @Param X-App-Key header string false "Application Key (인증용, 권장)"
// @Param app_key query string false "Application Key (인증용, 레거시)"
// @Success 200 {object} probe.Snapshot "처리 후 세션 상태"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 503 {object} response.ErrorResponse "시퀀서 종료됨"
// @Security ApiKeyAuth
// @Router /api/v1/probe/initialize [post]
func (h *Handler) InitializeHandler(c echo.Context) error {
	return h.runButton(c, "initialize", h.prober.Initialize)
}

// FetchIdentifierHandler godoc
// @Summary 기기 식별자 조회
// @Description 등록이 끝난 기기의 식별자를 조회합니다.
// @Description 아직 등록되지 않았으면 not_registered 상태와 안내 로그가 기록됩니다.
// @Tags Probe
// @Produce json
// @Param X-App-Key header string false "Application Key (인증용, 권장)"
// @Param app_key query string false "Application Key (인증용, 레거시)"
// @Success 200 {object} probe.Snapshot "처리 후 세션 상태"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 503 {object} response.ErrorResponse "시퀀서 종료됨"
// @Security ApiKeyAuth
// @Router /api/v1/probe/identifier [post]
func (h *Handler) FetchIdentifierHandler(c echo.Context) error {
	return h.runButton(c, "fetch_identifier", h.prober.FetchIdentifier)
}

// LoginHandler godoc
// @Summary 테스트 외부 사용자 로그인
// @Description 설정된 테스트 외부 사용자 ID로 로그인하고, 지연 후 기기 식별자 재조회를 한 번 예약합니다.
// @Tags Probe
// @Produce json
// @Param X-App-Key header string false "Application Key (인증용, 권장)"
// @Param app_key query string false "Application Key (인증용, 레거시)"
// @Success 200 {object} probe.Snapshot "처리 후 세션 상태"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 503 {object} response.ErrorResponse "시퀀서 종료됨"
// @Security ApiKeyAuth
// @Router /api/v1/probe/login [post]
func (h *Handler) LoginHandler(c echo.Context) error {
	return h.runButton(c, "login", h.prober.LoginExternalUser)
}

// CheckExternalUserIDHandler godoc
// @Summary 외부 사용자 ID 확인
// @Description 등록 컨트롤에 연결된 외부 사용자 ID를 조회합니다. 값이 없는 것은 오류가 아닙니다.
// @Tags Probe
// @Produce json
// @Param X-App-Key header string false "Application Key (인증용, 권장)"
// @Param app_key query string false "Application Key (인증용, 레거시)"
// @Success 200 {object} probe.Snapshot "처리 후 세션 상태"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 503 {object} response.ErrorResponse "시퀀서 종료됨"
// @Security ApiKeyAuth
// @Router /api/v1/probe/external-id [post]
func (h *Handler) CheckExternalUserIDHandler(c echo.Context) error {
	return h.runButton(c, "check_external_id", h.prober.CheckExternalUserID)
}

// SessionHandler godoc
// @Summary 세션 상태 조회
// @Description 현재 세션 상태, 등록 정보, 로그를 반환합니다.
// @Tags Probe
// @Produce json
// @Param X-App-Key header string false "Application Key (인증용, 권장)"
// @Param app_key query string false "Application Key (인증용, 레거시)"
// @Success 200 {object} probe.Snapshot "세션 상태"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Security ApiKeyAuth
// @Router /api/v1/probe/session [get]
func (h *Handler) SessionHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, h.prober.Snapshot())
}

func (h *Handler) runButton(c echo.Context, operation string, button func(ctx context.Context) error) error {
	if err := button(c.Request().Context()); err != nil {
		h.log(c).WithField("operation", operation).WithError(err).Warn("버튼 처리 거부")
		return toHTTPError(err)
	}

	snap := h.prober.Snapshot()

	h.log(c).WithFields(applog.Fields{
		"operation": operation,
		"status":    snap.Status.Status.Key(),
	}).Info("버튼 처리 완료")

	return c.JSON(http.StatusOK, snap)
}
