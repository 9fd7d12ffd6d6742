package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestValidateContentType(t *testing.T) {
	setupLogHook(t)

	tests := []struct {
		name        string
		body        string
		contentType string
		wantErr     bool
	}{
		{name: "JSON", body: `{}`, contentType: "application/json"},
		{name: "charset 파라미터 허용", body: `{}`, contentType: "application/json; charset=UTF-8"},
		{name: "대소문자 무시", body: `{}`, contentType: "Application/JSON"},
		{name: "본문 없음은 통과", body: "", contentType: ""},
		{name: "헤더 없음", body: `{}`, contentType: "", wantErr: true},
		{name: "폼 요청", body: "url=x", contentType: "application/x-www-form-urlencoded", wantErr: true},
		{name: "접두어만 같은 타입", body: `{}`, contentType: "application/json-patch+json", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			c := echo.New().NewContext(req, httptest.NewRecorder())

			called := false
			err := ValidateContentType(echo.MIMEApplicationJSON)(func(echo.Context) error {
				called = true
				return nil
			})(c)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedMediaType)
				assert.False(t, called)
				return
			}
			assert.NoError(t, err)
			assert.True(t, called)
		})
	}
}
