package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darkkaiser/push-probe/internal/pkg/version"
	"github.com/darkkaiser/push-probe/internal/service/api/handler/system"
	"github.com/darkkaiser/push-probe/internal/service/probe"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotStub struct{}

func (snapshotStub) Snapshot() probe.Snapshot { return probe.Snapshot{} }

func TestRegisterRoutes(t *testing.T) {
	reg := prometheus.NewRegistry()
	probe.New(probe.Options{Metrics: probe.NewMetrics(reg)})

	e := echo.New()
	RegisterRoutes(e, system.NewHandler(snapshotStub{}, version.Get()), reg)

	for _, path := range []string{"/health", "/version"} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "probe_status")
}

func TestRegisterRoutes_WithoutMetrics(t *testing.T) {
	e := echo.New()
	RegisterRoutes(e, system.NewHandler(snapshotStub{}, version.Get()), nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterSwaggerRoutes(t *testing.T) {
	e := echo.New()
	registerSwaggerRoutes(e)

	t.Run("Swagger UI", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/html")
	})

	t.Run("API 문서", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
		require.Equal(t, http.StatusOK, rec.Code)

		var doc struct {
			Swagger string                    `json:"swagger"`
			Paths   map[string]map[string]any `json:"paths"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
		assert.Equal(t, "2.0", doc.Swagger)

		expected := map[string]string{
			"/health":                   "get",
			"/version":                  "get",
			"/api/v1/probe/initialize":  "post",
			"/api/v1/probe/identifier":  "post",
			"/api/v1/probe/login":       "post",
			"/api/v1/probe/external-id": "post",
			"/api/v1/probe/session":     "get",
			"/api/v1/events":            "post",
		}
		for path, method := range expected {
			require.Contains(t, doc.Paths, path)
			assert.Contains(t, doc.Paths[path], method, path)
		}
	})
}

// 문서에 기재된 경로는 실제로 등록된 라우트와 일치해야 합니다.
func TestSwaggerPaths_MatchRegisteredRoutes(t *testing.T) {
	e := setupServerForRoutes(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	registered := make(map[string]bool)
	for _, r := range e.Routes() {
		registered[strings.ToLower(r.Method)+" "+r.Path] = true
	}

	for path, methods := range doc.Paths {
		for method := range methods {
			assert.True(t, registered[method+" "+path], "문서의 %s %s 라우트가 등록되어 있지 않습니다", method, path)
		}
	}
}

func setupServerForRoutes(t *testing.T) *echo.Echo {
	t.Helper()

	s := NewService(testConfig(1), idleProber{}, nil, version.Get())
	return s.setupServer()
}
