package middleware

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

// maskVisibleChars 마스킹 후에도 남겨 두는 앞쪽 글자 수
const maskVisibleChars = 4

// HTTPLogger HTTP 요청/응답을 구조화된 로그로 기록하는 미들웨어를 반환합니다.
//
// 핸들러 에러는 여기서 c.Error로 응답까지 처리하므로 기록되는 상태 코드는 실제 응답 코드입니다.
func HTTPLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			res := c.Response()
			start := time.Now()

			defer func() {
				latency := time.Since(start)

				path := req.URL.Path
				if path == "" {
					path = "/"
				}

				bytesIn := req.Header.Get(echo.HeaderContentLength)
				if bytesIn == "" {
					bytesIn = "0"
				}

				applog.WithComponentAndFields(constants.ComponentMiddleware, applog.Fields{
					"method":        req.Method,
					"path":          path,
					"uri":           maskSensitiveQueryParams(req.RequestURI),
					"host":          req.Host,
					"protocol":      req.Proto,
					"remote_ip":     c.RealIP(),
					"user_agent":    req.UserAgent(),
					"status":        res.Status,
					"bytes_in":      bytesIn,
					"bytes_out":     strconv.FormatInt(res.Size, 10),
					"latency":       strconv.FormatInt(latency.Microseconds(), 10),
					"latency_human": latency.String(),
					"request_id":    res.Header().Get(echo.HeaderXRequestID),
				}).Info(constants.LogMsgHTTPRequest)
			}()

			if err := next(c); err != nil {
				c.Error(err)
			}

			return nil
		}
	}
}

// maskSensitiveQueryParams URI의 민감한 쿼리 파라미터 값을 가립니다. 파싱에 실패하면 원본을 반환합니다.
//
//	"/api/v1/extract?token=secret123&id=100" → "/api/v1/extract?id=100&token=secr%2A%2A%2A"
func maskSensitiveQueryParams(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.RawQuery == "" {
		return uri
	}

	q := u.Query()
	masked := false
	for key, values := range q {
		if !isSensitiveQueryParam(key) {
			continue
		}
		for i, v := range values {
			values[i] = mask(v)
		}
		masked = true
	}

	if !masked {
		return uri
	}

	u.RawQuery = q.Encode()
	return u.String()
}

func isSensitiveQueryParam(key string) bool {
	for _, param := range constants.SensitiveQueryParams {
		if strings.EqualFold(key, param) {
			return true
		}
	}
	return false
}

// mask 앞 4글자만 남기고 나머지를 ***로 바꿉니다. 4글자 이하는 전부 가립니다.
func mask(s string) string {
	runes := []rune(s)
	if len(runes) <= maskVisibleChars {
		return "***"
	}
	return string(runes[:maskVisibleChars]) + "***"
}
