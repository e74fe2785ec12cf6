package main

import (
	"io"

	"github.com/darkkaiser/push-probe/internal/config"
	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/darkkaiser/push-probe/internal/pkg/version"
	"github.com/darkkaiser/push-probe/internal/service/probe"
	"github.com/darkkaiser/push-probe/internal/service/registration"
	"github.com/darkkaiser/push-probe/internal/service/registration/fetcher"
	"github.com/darkkaiser/push-probe/internal/service/registration/onesignal"
	"github.com/darkkaiser/push-probe/internal/service/registration/simulated"
	"github.com/darkkaiser/push-probe/internal/service/scheduler"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/prometheus/client_golang/prometheus"
)

const component = "main"

// loadConfig 경로가 주어지면 해당 파일을, 아니면 기본 설정 파일(없으면 기본값)을 읽습니다.
func loadConfig(path string) (*config.AppConfig, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadWithFile(path)
}

// setupLogging 로그 시스템을 초기화하고 설정 권장 사항 위반을 경고로 남깁니다.
// console이 false이면 표준 출력에는 로그를 쓰지 않습니다.
func setupLogging(appConfig *config.AppConfig, console bool) (io.Closer, error) {
	var logOpts applog.Options
	if appConfig.Debug && console {
		logOpts = applog.NewDevelopmentOptions(config.AppName)
	} else {
		logOpts = applog.NewProductionOptions(config.AppName)
	}

	closer, err := applog.Setup(logOpts)
	if err != nil {
		return nil, err
	}

	applog.SetDebugMode(appConfig.Debug)

	for _, w := range appConfig.VerifyRecommendations() {
		applog.WithComponent(component).Warn(w)
	}

	return closer, nil
}

// newProvider 설정에 지정된 등록 서비스 구현체를 생성합니다.
func newProvider(appConfig *config.AppConfig) (registration.Provider, error) {
	switch appConfig.Registration.Provider {
	case config.ProviderOneSignal:
		f := fetcher.New(appConfig.Registration, appConfig.HTTPRetry)
		return onesignal.New(appConfig.Registration, f), nil

	case config.ProviderSimulated:
		return simulated.NewFromConfig(appConfig.Registration), nil

	default:
		return nil, apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 등록 서비스입니다: %s", appConfig.Registration.Provider)
	}
}

// components 하나의 점검 세션을 구성하는 객체들입니다.
type components struct {
	scheduler *scheduler.Scheduler
	sequencer *probe.Sequencer
	registry  *prometheus.Registry
}

// buildComponents 등록 서비스, 스케줄러, 메트릭, 시퀀서를 연결합니다.
func buildComponents(appConfig *config.AppConfig, sinks ...probe.Sink) (*components, error) {
	provider, err := newProvider(appConfig)
	if err != nil {
		return nil, err
	}

	sched := scheduler.New()
	registry := prometheus.NewRegistry()

	seq := probe.New(probe.Options{
		Provider:  provider,
		Scheduler: sched,

		AppID:              appConfig.Registration.AppID,
		TestExternalUserID: appConfig.Probe.TestExternalUserID,
		AutoStartDelay:     appConfig.Probe.AutoStartDelay,
		RefetchDelay:       appConfig.Probe.RefetchDelay,

		Sinks:   append([]probe.Sink{probe.NewConsoleSink()}, sinks...),
		Metrics: probe.NewMetrics(registry),
	})

	return &components{
		scheduler: sched,
		sequencer: seq,
		registry:  registry,
	}, nil
}

func logBuildInfo(appConfig *config.AppConfig) version.Info {
	buildInfo := version.Get()

	applog.WithComponentAndFields(component, applog.Fields{
		"version":  buildInfo.Version,
		"commit":   buildInfo.Commit,
		"provider": appConfig.Registration.Provider,
		"env":      map[bool]string{true: "development", false: "production"}[appConfig.Debug],
	}).Info("점검 도구 초기화 시작")

	return buildInfo
}
