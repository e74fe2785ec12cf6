// Package errors 애플리케이션 전용 에러 타입을 제공합니다.
//
// 모든 에러는 ErrorType으로 분류되며 Wrap으로 컨텍스트를 누적할 수 있습니다.
// 등록 SDK 호출 실패는 ExecutionFailed, 초기화 전 호출은 Precondition,
// 설정 파일 오류는 InvalidInput으로 분류합니다.
//
//	if err != nil {
//	    return errors.Wrap(err, errors.ExecutionFailed, "Device ID 조회 실패")
//	}
//
//	if errors.Is(err, errors.Precondition) {
//	    // ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// AppError 분류(ErrorType)와 생성 위치를 함께 가지는 에러입니다.
type AppError struct {
	errType ErrorType
	message string
	cause   error
	caller  string
}

func (e *AppError) Type() ErrorType {
	return e.errType
}

// Message 원인을 제외한 이 에러 자체의 메시지입니다. API 응답 본문에 그대로 사용됩니다.
func (e *AppError) Message() string {
	return e.message
}

// Caller 에러가 생성된 위치("파일명:줄번호")입니다.
func (e *AppError) Caller() string {
	return e.caller
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.errType, e.message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.errType, e.message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// New 새로운 에러를 생성합니다.
func New(errType ErrorType, message string) error {
	return &AppError{errType: errType, message: message, caller: callerOf(callerSkip)}
}

// Newf 포맷 문자열로 메시지를 만들어 새로운 에러를 생성합니다.
func Newf(errType ErrorType, format string, args ...any) error {
	return &AppError{errType: errType, message: fmt.Sprintf(format, args...), caller: callerOf(callerSkip)}
}

// Wrap 기존 에러를 감쌉니다. err가 nil이면 nil을 반환합니다.
func Wrap(err error, errType ErrorType, message string) error {
	if err == nil {
		return nil
	}
	return &AppError{errType: errType, message: message, cause: err, caller: callerOf(callerSkip)}
}

// Wrapf 포맷 문자열로 메시지를 만들어 기존 에러를 감쌉니다.
func Wrapf(err error, errType ErrorType, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &AppError{errType: errType, message: fmt.Sprintf(format, args...), cause: err, caller: callerOf(callerSkip)}
}

// Is 에러 체인에 특정 ErrorType이 포함되어 있는지 확인합니다.
func Is(err error, errType ErrorType) bool {
	for err != nil {
		if appErr, ok := err.(*AppError); ok && appErr.errType == errType {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// TypeOf 체인에서 가장 바깥쪽 AppError의 ErrorType을 반환합니다. 없으면 Unknown입니다.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.errType
	}
	return Unknown
}
