package handler

import (
	"errors"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	"github.com/darkkaiser/push-probe/internal/service/api/httputil"
	"github.com/darkkaiser/push-probe/internal/service/probe"
)

// NewErrInvalidBody 요청 본문을 파싱할 수 없을 때의 400 에러를 생성합니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
}

// NewErrValidationFailed 요청 데이터 검증에 실패했을 때의 400 에러를 생성합니다.
func NewErrValidationFailed(msg string) error {
	return httputil.NewBadRequestError(msg)
}

// toHTTPError 시퀀서가 반환한 에러를 HTTP 에러로 변환합니다.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, probe.ErrClosed):
		return httputil.NewServiceUnavailableError(constants.ErrMsgServiceStopped)
	case errors.Is(err, probe.ErrNotInitialized):
		return httputil.NewConflictError(constants.ErrMsgNotInitialized)
	case errors.Is(err, probe.ErrEventsUnsupported):
		return httputil.NewServiceUnavailableError(messageOf(err))
	case errors.Is(err, probe.ErrNoEventHook):
		return httputil.NewNotFoundError(messageOf(err))
	case apperrors.Is(err, apperrors.InvalidInput):
		return httputil.NewBadRequestError(messageOf(err))
	}

	return httputil.NewInternalServerError(constants.ErrMsgInternalServer)
}

func messageOf(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message()
	}
	return err.Error()
}
