// Package config push-probe 실행 설정을 로드하고 검증합니다.
//
// 설정 값은 다음 우선순위로 병합됩니다. (뒤에 오는 값이 앞의 값을 덮어씀)
//
//  1. 코드에 정의된 기본값 (Default)
//  2. 설정 파일 (push-probe.json 또는 .yaml/.yml)
//  3. 환경 변수 PROBE_<SECTION>__<KEY> (예: PROBE_REGISTRATION__APP_ID)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 식별자입니다. 로그 파일명과 Server 헤더에 사용됩니다.
	AppName = "push-probe"

	// DefaultFilename 명시적인 경로가 없을 때 찾는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	envPrefix = "PROBE_"
)

// AppConfig 최상위 설정 구조체입니다.
type AppConfig struct {
	Debug        bool               `json:"debug"`
	Registration RegistrationConfig `json:"registration"`
	HTTPRetry    HTTPRetryConfig    `json:"http_retry"`
	Probe        ProbeConfig        `json:"probe"`
	Notifier     NotifierConfig     `json:"notifier"`
	ProbeAPI     ProbeAPIConfig     `json:"probe_api"`
}

func (c *AppConfig) validate(v *validatorSet) error {
	if err := v.check(&c.Registration, "registration"); err != nil {
		return err
	}
	if err := v.check(&c.HTTPRetry, "http_retry"); err != nil {
		return err
	}
	if err := c.Probe.validate(v); err != nil {
		return err
	}
	if err := v.check(&c.Notifier.Telegram, "notifier.telegram"); err != nil {
		return err
	}
	if err := c.ProbeAPI.validate(v); err != nil {
		return err
	}

	return nil
}

// VerifyRecommendations 실행은 가능하지만 권장되지 않는 설정에 대한 경고 목록을 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.ProbeAPI.WS.ListenPort < 1024 {
		warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 관리자 권한이 필요할 수 있습니다", c.ProbeAPI.WS.ListenPort))
	}
	if strings.TrimSpace(c.ProbeAPI.AppKey) == "" {
		warnings = append(warnings, "probe_api.app_key가 설정되지 않아 API가 인증 없이 노출됩니다")
	}
	if c.Registration.Provider == ProviderOneSignal && c.Registration.SubscriptionToken == "" {
		warnings = append(warnings, "registration.subscription_token이 비어 있어 푸시 구독이 토큰 없이 생성됩니다")
	}

	return warnings
}

// Load 기본 설정 파일을 읽습니다. 기본 파일이 없으면 기본값과 환경 변수만으로 구성합니다.
func Load() (*AppConfig, error) {
	return load(DefaultFilename, false)
}

// LoadWithFile 지정된 설정 파일을 읽습니다. 파일이 없으면 에러를 반환합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	return load(filename, true)
}

func load(filename string, fileRequired bool) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(Default(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "기본 설정 로드에 실패했습니다")
	}

	// 2. 설정 파일
	if filename != "" {
		if err := k.Load(file.Provider(filename), parserFor(filename)); err != nil {
			switch {
			case errors.Is(err, fs.ErrNotExist) && !fileRequired:
				// 기본 파일이 없으면 기본값으로 진행한다.
			case errors.Is(err, fs.ErrNotExist):
				return nil, apperrors.Wrap(err, apperrors.NotFound, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
			default:
				return nil, apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
			}
		}
	}

	// 3. 환경 변수 (PROBE_PROBE_API__WS__LISTEN_PORT -> probe_api.ws.listen_port)
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	// 4. 구조체 변환 (정의되지 않은 키가 있으면 실패)
	var appConfig AppConfig
	if err := k.UnmarshalWithConf("", &appConfig, koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true,
			WeaklyTypedInput: true,
			Result:           &appConfig,
			TagName:          "json",
		},
	}); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "설정 데이터를 구조체로 변환하는데 실패했습니다")
	}

	// 5. 정합성 검증
	if err := appConfig.validate(newValidatorSet()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정('%s')의 유효성 검증에 실패했습니다", filename))
	}

	return &appConfig, nil
}

func parserFor(filename string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return json.Parser()
	}
}
