package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPServer_Configuration(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{Debug: true, AllowOrigins: []string{"*"}})

	assert.True(t, e.Debug)
	assert.True(t, e.HideBanner)
	assert.Equal(t, constants.DefaultReadHeaderTimeout, e.Server.ReadHeaderTimeout)
	assert.Equal(t, constants.DefaultWriteTimeout, e.Server.WriteTimeout)
}

func TestNewHTTPServer_Middlewares(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{AllowOrigins: []string{"https://probe.example.com"}, EnableHSTS: false})
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	e.GET("/panic", func(c echo.Context) error { panic("boom") })

	t.Run("공통 응답 헤더", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(echo.HeaderOrigin, "https://probe.example.com")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
		assert.Empty(t, rec.Header().Get(echo.HeaderServer))
		assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
		assert.Equal(t, "DENY", rec.Header().Get(echo.HeaderXFrameOptions))
		assert.Equal(t, "https://probe.example.com", rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("허용되지 않은 Origin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set(echo.HeaderOrigin, "https://evil.example.com")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
	})

	t.Run("panic은 500", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), constants.ErrMsgInternalServer)
	})

	t.Run("없는 경로는 404 JSON", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), constants.ErrMsgNotFound)
	})
}
