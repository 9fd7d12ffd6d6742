package middleware

import (
	"fmt"
	"sync"

	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

const (
	// maxIPRateLimiters 메모리에 유지하는 IP별 Limiter의 최대 개수
	// 한도에 도달하면 임의의 항목 하나를 제거합니다 (맵 순회 순서는 무작위).
	maxIPRateLimiters = 10000

	headerRetryAfter = "Retry-After"

	// retryAfterSeconds 429 응답의 Retry-After 헤더 값
	retryAfterSeconds = "1"
)

// ipRateLimiter IP 주소별로 토큰 버킷(rate.Limiter)을 관리합니다.
type ipRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	capacity int
}

func newIPRateLimiter(requestsPerSecond, burst, capacity int) *ipRateLimiter {
	return &ipRateLimiter{
		limiters: make(map[string]*rate.Limiter),
		rate:     rate.Limit(requestsPerSecond),
		burst:    burst,
		capacity: capacity,
	}
}

// allow ip의 토큰을 하나 소비합니다. 처음 보는 IP는 새 Limiter를 만듭니다.
func (l *ipRateLimiter) allow(ip string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters[ip]
	if !ok {
		if len(l.limiters) >= l.capacity {
			for evict := range l.limiters {
				delete(l.limiters, evict)
				break
			}
		}
		limiter = rate.NewLimiter(l.rate, l.burst)
		l.limiters[ip] = limiter
	}
	l.mu.Unlock()

	return limiter.Allow()
}

func (l *ipRateLimiter) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.limiters)
}

// RateLimiting IP 기반 토큰 버킷 속도 제한 미들웨어를 반환합니다.
//
// 제한을 넘은 요청은 Retry-After 헤더와 함께 429로 응답합니다.
// 메모리 기반이므로 서버를 재시작하면 초기화됩니다.
//
// requestsPerSecond 또는 burst가 0 이하이면 패닉이 발생합니다.
func RateLimiting(requestsPerSecond, burst int) echo.MiddlewareFunc {
	if requestsPerSecond <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitRequestsPerSecondInvalid, requestsPerSecond))
	}
	if burst <= 0 {
		panic(fmt.Sprintf(constants.PanicMsgRateLimitBurstInvalid, burst))
	}

	limiter := newIPRateLimiter(requestsPerSecond, burst, maxIPRateLimiters)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			if !limiter.allow(ip) {
				applog.WithComponentAndFields(constants.ComponentMiddlewareRateLimit, applog.Fields{
					"remote_ip":  ip,
					"path":       c.Request().URL.Path,
					"method":     c.Request().Method,
					"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				}).Warn(constants.LogMsgRateLimitExceeded)

				c.Response().Header().Set(headerRetryAfter, retryAfterSeconds)

				return ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
