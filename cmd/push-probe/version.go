package main

import (
	"fmt"
	"io"

	"github.com/darkkaiser/push-probe/internal/config"
	"github.com/darkkaiser/push-probe/internal/pkg/version"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "빌드 정보를 출력합니다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printVersion(cmd.OutOrStdout(), version.Get())
		},
	}
}

func printVersion(w io.Writer, bi version.Info) error {
	dirty := ""
	if bi.DirtyBuild {
		dirty = " (dirty)"
	}

	_, err := fmt.Fprintf(w, "%s %s%s\ncommit: %s\nbuilt: %s\ngo: %s\nplatform: %s/%s\n",
		config.AppName, bi.Version, dirty, bi.Commit, bi.BuildDate, bi.GoVersion, bi.OS, bi.Arch)
	return err
}
