package registration

import (
	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
)

var (
	// ErrEmptyAppID 애플리케이션 ID 없이 컨트롤 생성을 시도한 경우입니다.
	ErrEmptyAppID = apperrors.New(apperrors.InvalidInput, "애플리케이션 ID(app_id)가 비어 있습니다")

	// ErrForeignControl 다른 Provider가 생성한 컨트롤을 등록하려는 경우입니다.
	ErrForeignControl = apperrors.New(apperrors.InvalidInput, "이 Provider가 생성하지 않은 컨트롤입니다")

	// ErrAlreadyRegistered 이미 등록이 시작된 컨트롤을 다시 등록하려는 경우입니다.
	ErrAlreadyRegistered = apperrors.New(apperrors.Precondition, "이미 등록이 시작된 컨트롤입니다")
)
