package v1

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/darkkaiser/push-probe/internal/service/api/auth"
	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	"github.com/darkkaiser/push-probe/internal/service/api/httputil"
	"github.com/darkkaiser/push-probe/internal/service/api/v1/handler"
	"github.com/darkkaiser/push-probe/internal/service/probe"
	"github.com/darkkaiser/push-probe/internal/service/registration"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type nopProber struct{}

func (nopProber) Initialize(context.Context) error          { return nil }
func (nopProber) FetchIdentifier(context.Context) error     { return nil }
func (nopProber) LoginExternalUser(context.Context) error   { return nil }
func (nopProber) CheckExternalUserID(context.Context) error { return nil }
func (nopProber) DispatchEvent(registration.Event) error    { return nil }
func (nopProber) Snapshot() probe.Snapshot                  { return probe.Snapshot{} }

func newTestServer(appKey string) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	RegisterRoutes(e, handler.New(nopProber{}), auth.NewAuthenticator(appKey))
	return e
}

func TestRegisterRoutes(t *testing.T) {
	e := newTestServer("")

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodPost, "/api/v1/probe/initialize", "", http.StatusOK},
		{http.MethodPost, "/api/v1/probe/identifier", "", http.StatusOK},
		{http.MethodPost, "/api/v1/probe/login", "", http.StatusOK},
		{http.MethodPost, "/api/v1/probe/external-id", "", http.StatusOK},
		{http.MethodGet, "/api/v1/probe/session", "", http.StatusOK},
		{http.MethodPost, "/api/v1/events", `{"type":"received"}`, http.StatusOK},
		{http.MethodGet, "/api/v1/unknown", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestRegisterRoutes_EventsRequireJSON(t *testing.T) {
	e := newTestServer("")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/events", strings.NewReader(`type=received`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRegisterRoutes_Authentication(t *testing.T) {
	e := newTestServer("secret-key")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/probe/session", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/probe/session", nil)
	req.Header.Set(constants.HeaderAppKey, "secret-key")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/probe/initialize?app_key=secret-key", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
