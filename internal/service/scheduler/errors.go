package scheduler

import (
	"fmt"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
)

// ErrClosed 종료된 스케줄러에 작업 등록을 시도한 경우입니다.
var ErrClosed = apperrors.New(apperrors.Precondition, "스케줄러가 이미 종료되었습니다")

// NewErrInvalidCronSpec Cron 표현식 파싱 실패 에러를 생성합니다.
func NewErrInvalidCronSpec(name, timeSpec string, cause error) error {
	return apperrors.Wrap(cause, apperrors.InvalidInput, fmt.Sprintf("스케줄 등록 실패: 잘못된 Cron 표현식입니다 (Name=%s, TimeSpec='%s')", name, timeSpec))
}
