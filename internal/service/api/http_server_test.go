package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPServer_Configuration(t *testing.T) {
	tests := []struct {
		name             string
		config           HTTPServerConfig
		wantDebug        bool
		wantWriteTimeout time.Duration
	}{
		{
			name:             "기본 설정",
			config:           HTTPServerConfig{},
			wantWriteTimeout: constants.DefaultWriteTimeout,
		},
		{
			name:             "Debug 모드",
			config:           HTTPServerConfig{Debug: true, AllowOrigins: []string{"http://localhost:3000"}},
			wantDebug:        true,
			wantWriteTimeout: constants.DefaultWriteTimeout,
		},
		{
			name:             "긴 요청 타임아웃은 쓰기 타임아웃도 늘림",
			config:           HTTPServerConfig{RequestTimeout: 10 * time.Minute},
			wantWriteTimeout: 10*time.Minute + 10*time.Second,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewHTTPServer(tt.config)

			require.NotNil(t, e)
			assert.Equal(t, tt.wantDebug, e.Debug)
			assert.True(t, e.HideBanner)
			assert.Equal(t, constants.DefaultReadTimeout, e.Server.ReadTimeout)
			assert.Equal(t, constants.DefaultReadHeaderTimeout, e.Server.ReadHeaderTimeout)
			assert.Equal(t, tt.wantWriteTimeout, e.Server.WriteTimeout)
			assert.NotNil(t, e.Logger)
		})
	}
}

func TestNewHTTPServer_CORS(t *testing.T) {
	tests := []struct {
		name            string
		allowOrigins    []string
		origin          string
		method          string
		wantStatus      int
		wantAllowOrigin string
	}{
		{
			name:            "허용 목록이 비어 있으면 모든 Origin 허용 (Preflight)",
			origin:          "http://example.com",
			method:          http.MethodOptions,
			wantStatus:      http.StatusNoContent,
			wantAllowOrigin: "*",
		},
		{
			name:            "허용된 Origin",
			allowOrigins:    []string{"http://dashboard.local"},
			origin:          "http://dashboard.local",
			method:          http.MethodGet,
			wantStatus:      http.StatusOK,
			wantAllowOrigin: "http://dashboard.local",
		},
		{
			name:         "허용되지 않은 Origin은 헤더 생략",
			allowOrigins: []string{"http://dashboard.local"},
			origin:       "http://evil.example",
			method:       http.MethodGet,
			wantStatus:   http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewHTTPServer(HTTPServerConfig{AllowOrigins: tt.allowOrigins})
			e.GET("/test", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

			req := httptest.NewRequest(tt.method, "/test", nil)
			req.Header.Set(echo.HeaderOrigin, tt.origin)
			if tt.method == http.MethodOptions {
				req.Header.Set(echo.HeaderAccessControlRequestMethod, http.MethodGet)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantAllowOrigin, rec.Header().Get(echo.HeaderAccessControlAllowOrigin))
		})
	}
}

func TestNewHTTPServer_StandardHeaders(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{})
	e.GET("/test", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Empty(t, rec.Header().Get(echo.HeaderServer))
	assert.Equal(t, "1; mode=block", rec.Header().Get(echo.HeaderXXSSProtection))
	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
}

func TestNewHTTPServer_ErrorResponses(t *testing.T) {
	e := NewHTTPServer(HTTPServerConfig{})
	e.POST("/upload", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	t.Run("등록되지 않은 경로", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"result_code":404,"message":"`+constants.ErrMsgNotFound+`"}`, rec.Body.String())
	})

	t.Run("본문 크기 초과", func(t *testing.T) {
		body := strings.Repeat("a", 5*1024*1024)
		req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(body))
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.JSONEq(t, `{"result_code":413,"message":"`+constants.ErrMsgRequestEntityTooLarge+`"}`, rec.Body.String())
	})
}

func TestNewHTTPServer_PanicRecovery(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	e := NewHTTPServer(HTTPServerConfig{})
	e.GET("/panic", func(c echo.Context) error {
		panic("intentional panic")
	})

	rec := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var recovered *logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == constants.LogMsgPanicRecovered {
			recovered = entry
		}
	}
	require.NotNil(t, recovered)
	assert.Equal(t, logrus.ErrorLevel, recovered.Level)
	assert.Contains(t, recovered.Data["error"], "intentional panic")
}

func TestNewHTTPServer_HTTPLogger(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	e := NewHTTPServer(HTTPServerConfig{})
	e.GET("/log-test", func(c echo.Context) error { return c.String(http.StatusOK, "success") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/log-test?token=abcdefgh", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var logged *logrus.Entry
	for _, entry := range hook.AllEntries() {
		if entry.Message == constants.LogMsgHTTPRequest {
			logged = entry
		}
	}
	require.NotNil(t, logged)
	assert.Equal(t, http.MethodGet, logged.Data["method"])
	assert.Equal(t, http.StatusOK, logged.Data["status"])
	assert.Equal(t, "/log-test?token=abcd%2A%2A%2A", logged.Data["uri"])
}
