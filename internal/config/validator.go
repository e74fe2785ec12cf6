package config

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// 예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

type validatorSet struct {
	v *validator.Validate
}

func newValidatorSet() *validatorSet {
	v := validator.New()

	// 에러 메시지에 Go 필드명 대신 설정 파일의 키 이름을 노출한다.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("cors_origin", validateCORSOrigin); err != nil {
		panic(fmt.Sprintf("'cors_origin' 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}
	if err := v.RegisterValidation("telegram_bot_token", func(fl validator.FieldLevel) bool {
		return telegramBotTokenRegex.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("'telegram_bot_token' 유효성 검사 함수 등록에 실패했습니다: %v", err))
	}

	return &validatorSet{v: v}
}

// validateCORSOrigin Scheme://Host[:Port] 형식만 허용합니다. (경로, 쿼리, 후행 슬래시 불가)
func validateCORSOrigin(fl validator.FieldLevel) bool {
	origin := strings.TrimSpace(fl.Field().String())
	if origin == "*" {
		return true
	}
	if origin == "" || strings.HasSuffix(origin, "/") {
		return false
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") &&
		u.Hostname() != "" && u.Path == "" && u.RawQuery == "" && u.Fragment == "" && u.User == nil
}

// check 구조체를 검증하고 첫 번째 오류를 사용자 친화적인 메시지로 변환합니다.
func (s *validatorSet) check(target any, section string) error {
	err := s.v.Struct(target)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !apperrors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 유효성 검증에 실패했습니다", section))
	}

	fe := validationErrors[0]
	key := section + "." + fe.Field()

	switch fe.Tag() {
	case "required", "required_if":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 값은 필수입니다", key))
	case "oneof":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 값이 올바르지 않습니다: '%v' (허용: %s)", key, fe.Value(), fe.Param()))
	case "min", "max", "gt":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 값이 허용 범위를 벗어났습니다: '%v' (조건: %s=%s)", key, fe.Value(), fe.Tag(), fe.Param()))
	case "file":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s에 지정된 파일을 찾을 수 없습니다: '%v'", key, fe.Value()))
	case "url":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 값이 올바른 URL이 아닙니다: '%v'", key, fe.Value()))
	case "cors_origin":
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("CORS Origin 형식이 올바르지 않습니다: '%v' (형식: Scheme://Host[:Port])", fe.Value()))
	case "telegram_bot_token":
		return apperrors.New(apperrors.InvalidInput, "텔레그램 bot_token 형식이 올바르지 않습니다 (형식: 123456:ABC-DEF...)")
	}

	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("%s 설정이 올바르지 않습니다 (조건: %s)", key, fe.Tag()))
}
