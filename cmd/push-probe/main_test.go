package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/darkkaiser/push-probe/internal/config"
	"github.com/darkkaiser/push-probe/internal/pkg/version"
	"github.com/darkkaiser/push-probe/internal/service/probe"
	"github.com/darkkaiser/push-probe/internal/service/registration/onesignal"
	"github.com/darkkaiser/push-probe/internal/service/registration/simulated"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()

	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"serve", "run", "version"})
	assert.NotNil(t, cmd.PersistentFlags().Lookup("config"))
}

func TestVersionCmd(t *testing.T) {
	cmd := newRootCmd()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(out.String(), config.AppName+" "))
	assert.Contains(t, out.String(), "platform: ")
}

func TestPrintVersion_Dirty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printVersion(&out, version.Info{Version: "v1.2.3", Commit: "abc", DirtyBuild: true}))

	assert.Contains(t, out.String(), "push-probe v1.2.3 (dirty)")
	assert.Contains(t, out.String(), "commit: abc")
}

func TestRunOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		output  string
		wait    time.Duration
		wantErr bool
	}{
		{"text", "text", time.Second, false},
		{"대소문자 무시", " JSON ", 0, false},
		{"yaml", "yaml", 0, false},
		{"지원하지 않는 형식", "xml", 0, true},
		{"음수 대기 시간", "text", -time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &runOptions{rootOptions: &rootOptions{}, output: tt.output, wait: tt.wait}

			err := o.validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRunCmd_InvalidOutput(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"run", "--output", "xml"})

	assert.Error(t, cmd.Execute())
}

func TestNewProvider(t *testing.T) {
	cfg := config.Default()

	p, err := newProvider(&cfg)
	require.NoError(t, err)
	assert.IsType(t, &onesignal.Provider{}, p)

	cfg.Registration.Provider = config.ProviderSimulated
	p, err = newProvider(&cfg)
	require.NoError(t, err)
	assert.IsType(t, &simulated.Provider{}, p)

	cfg.Registration.Provider = "firebase"
	_, err = newProvider(&cfg)
	assert.Error(t, err)
}

func TestRunSequence_Simulated(t *testing.T) {
	cfg := config.Default()
	cfg.Registration.Provider = config.ProviderSimulated
	cfg.Registration.SimulatedLatency = 10 * time.Millisecond

	c, err := buildComponents(&cfg)
	require.NoError(t, err)

	snap := runSequence(context.Background(), c, 100*time.Millisecond, 0)

	assert.True(t, snap.Initialized)
	assert.True(t, snap.Record.DeviceID.IsPresent())
	assert.Equal(t, probe.Identifier{State: probe.IdentifierPresent, Value: cfg.Probe.TestExternalUserID}, snap.Record.ExternalUserID)
	assert.NotEmpty(t, snap.Logs)
}

func TestRunSequence_Canceled(t *testing.T) {
	cfg := config.Default()
	cfg.Registration.Provider = config.ProviderSimulated
	cfg.Registration.SimulatedLatency = time.Hour

	c, err := buildComponents(&cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	snap := runSequence(ctx, c, time.Hour, 0)

	assert.Less(t, time.Since(start), 10*time.Second)
	assert.True(t, snap.Initialized)
	assert.False(t, snap.Record.DeviceID.IsPresent())
}

func TestWriteSnapshot(t *testing.T) {
	snap := probe.Snapshot{
		Initialized: true,
		Status:      probe.StatusView{Status: probe.StatusRegistered, Text: "✅ 기기 등록 완료", Color: probe.ColorGreen},
		Record: probe.RegistrationRecord{
			DeviceID:       probe.Identifier{State: probe.IdentifierPresent, Value: "device-1"},
			ExternalUserID: probe.Identifier{State: probe.IdentifierNotSet},
		},
		Logs: []probe.LogEntry{{Time: time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC), Message: "시작"}},
	}

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeSnapshot(&out, snap, outputText))

		assert.Contains(t, out.String(), "[09:30:00] 시작")
		assert.Contains(t, out.String(), "기기 식별자: device-1")
		assert.Contains(t, out.String(), "외부 사용자 ID: 설정되지 않음")
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeSnapshot(&out, snap, outputJSON))

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, "registered", got["status"].(map[string]any)["status"])
	})

	t.Run("yaml", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, writeSnapshot(&out, snap, outputYAML))

		var got map[string]any
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, true, got["initialized"])
		assert.Equal(t, "registered", got["status"].(map[string]any)["status"])
	})
}

func TestLoadConfig_ExampleFile(t *testing.T) {
	cfg, err := loadConfig("../../push-probe.example.json")
	require.NoError(t, err)

	assert.Equal(t, config.ProviderOneSignal, cfg.Registration.Provider)
	assert.Equal(t, 5*time.Second, cfg.Probe.RefetchDelay)
	assert.Equal(t, config.DefaultListenPort, cfg.ProbeAPI.WS.ListenPort)
}
