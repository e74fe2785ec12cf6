package main

import (
	"github.com/darkkaiser/push-probe/internal/config"
	"github.com/spf13/cobra"
)

const banner = `
  ____            _       ____            _
 |  _ \ _   _ ___| |__   |  _ \ _ __ ___ | |__   ___
 | |_) | | | / __| '_ \  | |_) | '__/ _ \| '_ \ / _ \
 |  __/| |_| \__ \ | | | |  __/| | | (_) | |_) |  __/
 |_|    \__,_|___/_| |_| |_|   |_|  \___/|_.__/ \___|
                                                      %s
--------------------------------------------------------------------------------
`

// rootOptions 모든 하위 명령이 공유하는 플래그입니다.
type rootOptions struct {
	configFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "푸시 알림 등록 점검 도구",
		Long: `푸시 알림 등록 서비스(OneSignal 등)에 기기를 등록하고,
기기 식별자 조회와 외부 사용자 ID 연결이 정상 동작하는지 단계별로 점검합니다.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "설정 파일 경로 (기본값: "+config.DefaultFilename+")")

	cmd.AddCommand(
		newServeCmd(opts),
		newRunCmd(opts),
		newVersionCmd(),
	)

	return cmd
}
