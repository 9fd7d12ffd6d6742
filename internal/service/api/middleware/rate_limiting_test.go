package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/darkkaiser/price-scraper/internal/service/api/httputil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiting_InvalidArguments(t *testing.T) {
	t.Parallel()

	assert.PanicsWithValue(t, "RateLimiting: requestsPerSecond는 양수여야 합니다 (현재값: 0)", func() { RateLimiting(0, 1) })
	assert.PanicsWithValue(t, "RateLimiting: burst는 양수여야 합니다 (현재값: -1)", func() { RateLimiting(1, -1) })
}

func TestRateLimiting(t *testing.T) {
	setupLogHook(t)

	e := echo.New()
	e.HTTPErrorHandler = httputil.ErrorHandler
	e.Use(RateLimiting(1, 2))
	e.GET("/health", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	do := func(ip string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(echo.HeaderXRealIP, ip)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)
	assert.Equal(t, http.StatusOK, do("10.0.0.1").Code)

	rec := do("10.0.0.1")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"result_code":429,"message":"요청이 너무 많습니다. 잠시 후 다시 시도해주세요"}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, do("10.0.0.2").Code, "다른 IP는 독립적으로 제한되어야 합니다")
}

func TestIPRateLimiter_Eviction(t *testing.T) {
	t.Parallel()

	l := newIPRateLimiter(1, 1, 3)
	for i := 0; i < 10; i++ {
		require.True(t, l.allow(fmt.Sprintf("10.0.0.%d", i)))
	}
	assert.Equal(t, 3, l.len())
}
