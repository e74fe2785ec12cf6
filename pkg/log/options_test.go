package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"Production", NewProductionOptions("push-probe"), false},
		{"Development", NewDevelopmentOptions("push-probe"), false},
		{"Missing Name", Options{}, true},
		{"Dir Is File", Options{Name: "p", Dir: file}, true},
		{"Negative MaxAge", Options{Name: "p", MaxAge: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithComponentAndFields(t *testing.T) {
	fields := Fields{"op": "login"}

	e := WithComponentAndFields("probe.sequencer", fields)

	assert.Equal(t, "probe.sequencer", e.Data["component"])
	assert.Equal(t, "login", e.Data["op"])
	assert.NotContains(t, fields, "component")
}

func TestNewTextFormatter_TrimsCallerPrefix(t *testing.T) {
	f := newTextFormatter("github.com/darkkaiser")
	require.NotNil(t, f.CallerPrettyfier)
}
