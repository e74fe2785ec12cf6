package config

import (
	"time"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/darkkaiser/push-probe/pkg/cronx"
)

// 알림 등록 서비스 구현체 이름
const (
	ProviderOneSignal = "onesignal"
	ProviderSimulated = "simulated"
)

const (
	DefaultAppID              = "6bb7df1b-6014-498a-ac2e-67abb63e4751"
	DefaultAPIEndpoint        = "https://api.onesignal.com"
	DefaultSubscriptionType   = "AndroidPush"
	DefaultTestExternalUserID = "test_user_12345"

	DefaultAutoStartDelay   = 2 * time.Second
	DefaultRefetchDelay     = 5 * time.Second
	DefaultSimulatedLatency = 3 * time.Second
	DefaultRequestTimeout   = 10 * time.Second

	DefaultMaxRetries = 3
	DefaultRetryDelay = 2 * time.Second

	DefaultListenPort = 2480
)

// Default 모든 항목이 기본값으로 채워진 설정을 반환합니다.
func Default() AppConfig {
	return AppConfig{
		Registration: RegistrationConfig{
			Provider:         ProviderOneSignal,
			AppID:            DefaultAppID,
			APIEndpoint:      DefaultAPIEndpoint,
			SubscriptionType: DefaultSubscriptionType,
			SimulatedLatency: DefaultSimulatedLatency,
			RequestTimeout:   DefaultRequestTimeout,
		},
		HTTPRetry: HTTPRetryConfig{
			MaxRetries: DefaultMaxRetries,
			RetryDelay: DefaultRetryDelay,
		},
		Probe: ProbeConfig{
			AutoStart:          true,
			AutoStartDelay:     DefaultAutoStartDelay,
			RefetchDelay:       DefaultRefetchDelay,
			TestExternalUserID: DefaultTestExternalUserID,
		},
		ProbeAPI: ProbeAPIConfig{
			WS: WSConfig{
				ListenPort: DefaultListenPort,
			},
			CORS: CORSConfig{
				AllowOrigins: []string{"*"},
			},
		},
	}
}

// RegistrationConfig 알림 등록 서비스(OneSignal 등) 연결 설정입니다.
type RegistrationConfig struct {
	Provider string `json:"provider" validate:"oneof=onesignal simulated"`
	AppID    string `json:"app_id" validate:"required"`

	// OneSignal REST API 키 (비어 있으면 Authorization 헤더 없이 호출)
	APIKey      string `json:"api_key"`
	APIEndpoint string `json:"api_endpoint" validate:"required_if=Provider onesignal,omitempty,url"`

	SubscriptionType  string `json:"subscription_type" validate:"required_if=Provider onesignal"`
	SubscriptionToken string `json:"subscription_token"`

	// simulated 구현체가 기기 식별자를 발급하기까지 걸리는 시간
	SimulatedLatency time.Duration `json:"simulated_latency" validate:"min=0"`
	RequestTimeout   time.Duration `json:"request_timeout" validate:"gt=0"`
}

// HTTPRetryConfig 외부 API 호출 실패 시 재시도 정책입니다.
type HTTPRetryConfig struct {
	MaxRetries int           `json:"max_retries" validate:"min=0,max=10"`
	RetryDelay time.Duration `json:"retry_delay" validate:"gt=0"`
}

// ProbeConfig 등록 점검 시퀀스의 동작 설정입니다.
type ProbeConfig struct {
	AutoStart          bool          `json:"auto_start"`
	AutoStartDelay     time.Duration `json:"auto_start_delay" validate:"min=0"`
	RefetchDelay       time.Duration `json:"refetch_delay" validate:"min=0"`
	TestExternalUserID string        `json:"test_external_user_id" validate:"required"`

	// 설정 시 해당 주기마다 기기 식별자를 다시 조회합니다. (예: "@every 1m")
	WatchTimeSpec string `json:"watch_time_spec"`
}

func (c *ProbeConfig) validate(v *validatorSet) error {
	if err := v.check(c, "probe"); err != nil {
		return err
	}

	if c.WatchTimeSpec != "" {
		if err := cronx.Validate(c.WatchTimeSpec); err != nil {
			return apperrors.Wrap(err, apperrors.InvalidInput, "probe.watch_time_spec 설정이 유효하지 않습니다")
		}
	}

	return nil
}

// NotifierConfig 점검 결과를 외부로 전달하는 채널 설정입니다.
type NotifierConfig struct {
	Telegram TelegramConfig `json:"telegram"`
}

// TelegramConfig 상태 변화와 알림 이벤트를 텔레그램 채팅방으로 전달합니다.
type TelegramConfig struct {
	Enabled  bool   `json:"enabled"`
	BotToken string `json:"bot_token" validate:"required_if=Enabled true,omitempty,telegram_bot_token"`
	ChatID   int64  `json:"chat_id" validate:"required_if=Enabled true"`
}

// ProbeAPIConfig 점검 버튼을 HTTP로 노출하는 API 서버 설정입니다.
type ProbeAPIConfig struct {
	WS   WSConfig   `json:"ws"`
	CORS CORSConfig `json:"cors"`

	// 비어 있지 않으면 /api/v1 요청은 app_key 쿼리 파라미터가 일치해야 합니다.
	AppKey string `json:"app_key"`
}

func (c *ProbeAPIConfig) validate(v *validatorSet) error {
	if err := v.check(&c.WS, "probe_api.ws"); err != nil {
		return err
	}

	return c.CORS.validate(v)
}

// WSConfig 웹 서버 포트 및 TLS 설정입니다.
type WSConfig struct {
	ListenPort  int    `json:"listen_port" validate:"min=1,max=65535"`
	TLSServer   bool   `json:"tls_server"`
	TLSCertFile string `json:"tls_cert_file" validate:"required_if=TLSServer true,omitempty,file"`
	TLSKeyFile  string `json:"tls_key_file" validate:"required_if=TLSServer true,omitempty,file"`
}

// CORSConfig 브라우저 교차 출처 허용 목록입니다.
type CORSConfig struct {
	AllowOrigins []string `json:"allow_origins" validate:"min=1,dive,cors_origin"`
}

func (c *CORSConfig) validate(v *validatorSet) error {
	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다")
		}
	}

	return v.check(c, "probe_api.cors")
}
