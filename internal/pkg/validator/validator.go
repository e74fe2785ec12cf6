// Package validator API 요청 본문 검증을 위한 go-playground/validator 싱글톤과 한국어 에러 메시지 변환을 제공합니다.
//
// 필드 이름은 `korean` 태그가 있으면 그 값을, 없으면 Go 필드명을 사용합니다.
//
//	type EventRequest struct {
//	    Type string `validate:"required,oneof=received opened" korean:"이벤트 종류"`
//	}
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Get 전역 Validate 인스턴스를 반환합니다.
func Get() *validator.Validate {
	once.Do(func() {
		instance = validator.New(validator.WithRequiredStructEnabled())
		instance.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" {
				return name
			}
			return fld.Name
		})
	})

	return instance
}

// Struct 구조체를 검증합니다.
func Struct(s any) error {
	return Get().Struct(s)
}

// FormatValidationError 첫 번째 검증 오류를 사용자에게 보여줄 한국어 메시지로 변환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	fe := validationErrors[0]
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", field)
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", field, fe.Param())
		}
		return fmt.Sprintf("%s는 최소 %s 이상이어야 합니다", field, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", field, fe.Param())
		}
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s는 허용된 값 중 하나여야 합니다 [%s]", field, fe.Param())
	case "uuid", "uuid4":
		return fmt.Sprintf("%s는 올바른 UUID 형식이어야 합니다", field)
	case "url":
		return fmt.Sprintf("%s는 올바른 URL 형식이어야 합니다", field)
	}

	return fmt.Sprintf("%s 값 검증 실패 (%s)", field, fe.Tag())
}
