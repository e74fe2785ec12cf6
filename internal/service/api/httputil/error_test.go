package httputil

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/push-probe/internal/service/api/constants"
	"github.com/darkkaiser/push-probe/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		err         error
		wantCode    int
		wantMessage string
	}{
		{"400 ErrorResponse 메시지", http.MethodPost, NewBadRequestError("잘못된 이벤트"), http.StatusBadRequest, "잘못된 이벤트"},
		{"409 Conflict", http.MethodPost, NewConflictError(constants.ErrMsgNotInitialized), http.StatusConflict, constants.ErrMsgNotInitialized},
		{"문자열 메시지", http.MethodGet, echo.NewHTTPError(http.StatusUnsupportedMediaType, "지원하지 않음"), http.StatusUnsupportedMediaType, "지원하지 않음"},
		{"라우팅 404는 한국어 메시지", http.MethodGet, echo.ErrNotFound, http.StatusNotFound, constants.ErrMsgNotFound},
		{"명시적인 404 메시지는 유지", http.MethodPost, NewNotFoundError("훅 없음"), http.StatusNotFound, "훅 없음"},
		{"일반 에러는 500", http.MethodGet, errors.New("boom"), http.StatusInternalServerError, constants.ErrMsgInternalServer},
		{"503", http.MethodPost, NewServiceUnavailableError(constants.ErrMsgServiceStopped), http.StatusServiceUnavailable, constants.ErrMsgServiceStopped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(tt.method, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			ErrorHandler(tt.err, c)

			require.Equal(t, tt.wantCode, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.ResultCode)
			assert.Equal(t, tt.wantMessage, body.Message)
		})
	}
}

func TestErrorHandler_HeadAndCommitted(t *testing.T) {
	t.Run("HEAD 요청은 본문 없음", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)

		ErrorHandler(NewBadRequestError("x"), c)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("이미 응답이 전송된 경우 무시", func(t *testing.T) {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
		require.NoError(t, c.String(http.StatusOK, "done"))

		ErrorHandler(NewInternalServerError("late"), c)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "done", rec.Body.String())
	})
}

func TestSuccess(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, Success(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"result_code":0,"message":"성공"}`, rec.Body.String())
}
