package system

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/push-probe/internal/pkg/version"
	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	"github.com/darkkaiser/push-probe/internal/service/api/model/system"
	"github.com/darkkaiser/push-probe/internal/service/probe"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	snap probe.Snapshot
}

func (s stubSession) Snapshot() probe.Snapshot { return s.snap }

func TestNewHandler_NilSession(t *testing.T) {
	assert.Panics(t, func() { NewHandler(nil, version.Info{}) })
}

func TestHealthCheckHandler(t *testing.T) {
	tests := []struct {
		name        string
		snap        probe.Snapshot
		wantStatus  string
		wantProbe   string
		wantControl string
	}{
		{
			name:        "초기화 전",
			snap:        probe.Snapshot{Status: probe.StatusView{Status: probe.StatusIdle}},
			wantStatus:  constants.HealthStatusDegraded,
			wantProbe:   "idle",
			wantControl: constants.HealthStatusDegraded,
		},
		{
			name:        "등록 완료",
			snap:        probe.Snapshot{Initialized: true, Status: probe.StatusView{Status: probe.StatusRegistered}},
			wantStatus:  constants.HealthStatusHealthy,
			wantProbe:   "registered",
			wantControl: constants.HealthStatusHealthy,
		},
		{
			name:        "오류 상태",
			snap:        probe.Snapshot{Initialized: true, Status: probe.StatusView{Status: probe.StatusError}},
			wantStatus:  constants.HealthStatusDegraded,
			wantProbe:   "error",
			wantControl: constants.HealthStatusHealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(stubSession{snap: tt.snap}, version.Info{})

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec)

			require.NoError(t, h.HealthCheckHandler(c))
			require.Equal(t, http.StatusOK, rec.Code)

			var resp system.HealthResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Equal(t, tt.wantProbe, resp.ProbeStatus)
			assert.Equal(t, tt.wantControl, resp.Dependencies[constants.DependencyRegistrationControl].Status)
			assert.GreaterOrEqual(t, resp.Uptime, int64(0))
		})
	}
}

func TestVersionHandler(t *testing.T) {
	info := version.Info{Version: "v0.3.0", Commit: "abc1234", BuildDate: "2025-12-01T14:00:00Z", GoVersion: "go1.24.0", OS: "linux", Arch: "amd64"}
	h := NewHandler(stubSession{}, info)

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/version", nil), rec)

	require.NoError(t, h.VersionHandler(c))

	var resp system.VersionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "v0.3.0", resp.Version)
	assert.Equal(t, "abc1234", resp.Commit)
	assert.Equal(t, "linux", resp.OS)
	assert.False(t, resp.DirtyBuild)
}
