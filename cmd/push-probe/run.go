package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	apperrors "github.com/darkkaiser/push-probe/internal/pkg/errors"
	"github.com/darkkaiser/push-probe/internal/service"
	"github.com/darkkaiser/push-probe/internal/service/probe"
	applog "github.com/darkkaiser/push-probe/pkg/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// 결과 출력 형식
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

const defaultRunWait = 5 * time.Second

type runOptions struct {
	*rootOptions

	wait   time.Duration
	output string
}

func newRunCmd(rootOpts *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "점검 시퀀스를 한 번 실행하고 결과를 출력합니다",
		Long: `초기화, 기기 식별자 조회, 외부 사용자 로그인, 외부 사용자 ID 확인을 차례로 실행한 뒤
최종 세션 상태를 출력합니다. 점검 결과와 관계없이 시퀀스가 끝까지 실행되면 종료 코드는 0입니다.`,
		Example: `  push-probe run
  push-probe run --wait 10s --output json`,
		Args: cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return run(ctx, opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVarP(&opts.wait, "wait", "w", defaultRunWait, "초기화 후 기기 식별자를 조회하기까지 대기할 시간")
	cmd.Flags().StringVarP(&opts.output, "output", "o", outputText, "출력 형식 (text, json, yaml)")

	return cmd
}

func (o *runOptions) validate() error {
	o.output = strings.ToLower(strings.TrimSpace(o.output))

	switch o.output {
	case outputText, outputJSON, outputYAML:
	default:
		return apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 출력 형식입니다: %s (text, json, yaml 중 하나)", o.output)
	}

	if o.wait < 0 {
		return apperrors.New(apperrors.InvalidInput, "--wait 값은 0 이상이어야 합니다")
	}

	return nil
}

func run(ctx context.Context, opts *runOptions, out io.Writer) error {
	appConfig, err := loadConfig(opts.configFile)
	if err != nil {
		return fmt.Errorf("환경설정 로드 실패: %w", err)
	}

	// 결과를 표준 출력으로 내보내므로 로그는 파일에만 기록한다.
	appLogCloser, err := setupLogging(appConfig, false)
	if err != nil {
		return fmt.Errorf("로그 시스템 초기화 실패: %w", err)
	}
	defer appLogCloser.Close()

	logBuildInfo(appConfig)

	c, err := buildComponents(appConfig)
	if err != nil {
		return err
	}

	snap := runSequence(ctx, c, opts.wait, appConfig.Probe.RefetchDelay)

	return writeSnapshot(out, snap, opts.output)
}

// runSequence 스케줄러와 시퀀서를 시작하고 네 단계를 순서대로 실행한 뒤, 종료 후의 세션 상태를 반환합니다.
func runSequence(ctx context.Context, c *components, wait, refetchDelay time.Duration) probe.Snapshot {
	serviceStopCtx, cancel := context.WithCancel(ctx)
	serviceStopWG := &sync.WaitGroup{}

	for _, s := range []service.Service{c.scheduler, c.sequencer} {
		serviceStopWG.Add(1)
		_ = s.Start(serviceStopCtx, serviceStopWG)
	}

	defer func() {
		cancel()
		serviceStopWG.Wait()
	}()

	steps := []struct {
		name  string
		fn    func(context.Context) error
		after time.Duration
	}{
		{"initialize", c.sequencer.Initialize, wait},
		{"fetch_identifier", c.sequencer.FetchIdentifier, 0},
		{"login", c.sequencer.LoginExternalUser, 0},
		{"check_external_user_id", c.sequencer.CheckExternalUserID, refetchDelay},
	}

	for _, step := range steps {
		if err := step.fn(serviceStopCtx); err != nil {
			applog.WithComponentAndFields(component, applog.Fields{
				"step":  step.name,
				"error": err,
			}).Warn("점검 단계 실행 중단")
			break
		}

		if !sleepContext(serviceStopCtx, step.after) {
			applog.WithComponentAndFields(component, applog.Fields{
				"step": step.name,
			}).Info("종료 신호 수신: 점검을 중단합니다")
			break
		}
	}

	return c.sequencer.Snapshot()
}

func sleepContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func writeSnapshot(w io.Writer, snap probe.Snapshot, format string) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)

	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(snap); err != nil {
			return err
		}
		return enc.Close()

	default:
		return writeSnapshotText(w, snap)
	}
}

func writeSnapshotText(w io.Writer, snap probe.Snapshot) error {
	var sb strings.Builder

	for _, l := range snap.Logs {
		sb.WriteString(l.String())
		sb.WriteByte('\n')
	}

	sb.WriteString(strings.Repeat("-", 60))
	sb.WriteByte('\n')
	fmt.Fprintf(&sb, "상태: %s (%s)\n", snap.Status.Text, snap.Status.Status)
	fmt.Fprintf(&sb, "기기 식별자: %s\n", snap.Record.DeviceID.Display())
	fmt.Fprintf(&sb, "외부 사용자 ID: %s\n", snap.Record.ExternalUserID.Display())

	_, err := io.WriteString(w, sb.String())
	return err
}

