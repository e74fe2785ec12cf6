package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/push-probe/internal/config"
	"github.com/darkkaiser/push-probe/internal/service"
	"github.com/darkkaiser/push-probe/internal/service/api"
	"github.com/darkkaiser/push-probe/internal/service/notification/telegram"
	"github.com/darkkaiser/push-probe/internal/service/probe"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/spf13/cobra"
)

const watchTaskName = "probe-watch"

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "점검 API 서버를 실행합니다",
		Long: `Probe API 서버와 스케줄러를 실행하고 점검 시퀀스를 한 번 자동으로 시작합니다.
SIGINT 또는 SIGTERM을 받을 때까지 실행됩니다.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(opts)
		},
	}
}

func serve(opts *rootOptions) error {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := loadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("환경설정 로드 실패: %w", err)
	}

	// 2. 로그 시스템 초기화
	appLogCloser, err := setupLogging(appConfig, true)
	if err != nil {
		return fmt.Errorf("로그 시스템 초기화 실패: %w", err)
	}
	defer appLogCloser.Close()

	buildInfo := logBuildInfo(appConfig)
	fmt.Printf(banner, buildInfo.Version)

	// 3. 서비스 생성
	var (
		sinks    []probe.Sink
		services []service.Service
	)

	if appConfig.Notifier.Telegram.Enabled {
		notifier, err := telegram.New(appConfig.Notifier.Telegram, appConfig.Debug)
		if err != nil {
			return err
		}
		sinks = append(sinks, notifier)
		services = append(services, notifier)
	}

	c, err := buildComponents(appConfig, sinks...)
	if err != nil {
		return err
	}

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := addWatch(serviceStopCtx, c, appConfig.Probe); err != nil {
		return err
	}

	apiService := api.NewService(appConfig, c.sequencer, c.registry, buildInfo)

	services = append([]service.Service{c.scheduler}, services...)
	services = append(services, c.sequencer, apiService)

	// 4. 서비스 시작
	serviceStopWG := &sync.WaitGroup{}

	for _, s := range services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel()
			serviceStopWG.Wait()

			return err
		}
	}

	if appConfig.Probe.AutoStart {
		if err := c.sequencer.AutoStart(serviceStopCtx); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"error": err,
			}).Warn("자동 시작 예약 실패")
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(termC)

	applog.WithComponentAndFields(component, applog.Fields{
		"port": appConfig.ProbeAPI.WS.ListenPort,
	}).Info("서버 가동 완료")

	sig := <-termC

	applog.WithComponentAndFields(component, applog.Fields{
		"signal": sig.String(),
	}).Info("종료 신호 수신")

	cancel()
	serviceStopWG.Wait()

	applog.WithComponent(component).Info("서버 종료 완료")

	return nil
}

// addWatch watch_time_spec이 설정된 경우 주기적인 기기 식별자 재조회를 등록합니다.
func addWatch(ctx context.Context, c *components, probeConfig config.ProbeConfig) error {
	if probeConfig.WatchTimeSpec == "" {
		return nil
	}

	return c.scheduler.AddWatch(watchTaskName, probeConfig.WatchTimeSpec, func() {
		c.sequencer.Watch(ctx)
	})
}
