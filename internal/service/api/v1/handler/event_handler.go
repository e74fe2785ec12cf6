package handler

import (
	"github.com/darkkaiser/push-probe/internal/pkg/validator"
	"github.com/darkkaiser/push-probe/internal/service/api/httputil"
	"github.com/darkkaiser/push-probe/internal/service/api/v1/model/request"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/labstack/echo/v4"
)

// PublishEventHandler godoc
// @Summary 알림 이벤트 전달
// @Description 기기에서 발생한 알림 수신/열람 이벤트를 현재 등록 컨트롤의 훅으로 전달합니다.
// @Description
// @Description ## 사용 예시 (로컬 환경)
// @Description ```bash
// @Description curl -X POST "http://localhost:2480/api/v1/events" \
// @Description   -H "Content-Type: application/json" \
// @Description   -H "X-App-Key: your-app-key" \
// @Description   -d '{"type":"received","title":"테스트 알림","body":"본문"}'
// @Description ```
// @Tags Event
// @Accept json
// @Produce json
// @Param X-App-Key header string false "Application Key (인증용, 권장)"
// @Param app_key query string false "Application Key (인증용, 레거시)"
// @Param event body request.EventRequest true "알림 이벤트"
// @Success 200 {object} response.SuccessResponse "성공"
// @Failure 400 {object} response.ErrorResponse "본문 형식 오류 또는 지원하지 않는 이벤트 종류"
// @Failure 401 {object} response.ErrorResponse "인증 실패"
// @Failure 404 {object} response.ErrorResponse "이벤트 종류에 해당하는 훅 없음"
// @Failure 409 {object} response.ErrorResponse "등록 서비스가 초기화되지 않음"
// @Failure 415 {object} response.ErrorResponse "지원하지 않는 Content-Type"
// @Failure 503 {object} response.ErrorResponse "이벤트 전달 미지원 또는 시퀀서 종료됨"
// @Security ApiKeyAuth
// @Router /api/v1/events [post]
func (h *Handler) PublishEventHandler(c echo.Context) error {
	req := new(request.EventRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}

	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	if err := h.prober.DispatchEvent(req.ToEvent()); err != nil {
		h.log(c).WithFields(applog.Fields{
			"type":  req.Type,
			"error": err,
		}).Warn("알림 이벤트 전달 실패")

		return toHTTPError(err)
	}

	h.log(c).WithFields(applog.Fields{
		"type":            req.Type,
		"notification_id": req.NotificationID,
	}).Info("알림 이벤트 전달 완료")

	return httputil.Success(c)
}
