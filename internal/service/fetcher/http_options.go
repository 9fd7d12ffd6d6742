package fetcher

import (
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Option HTTPFetcher의 설정을 변경하기 위한 함수 타입입니다.
type Option func(*HTTPFetcher)

// WithTimeout 요청 전체(연결부터 본문 읽기까지)의 타임아웃을 설정합니다. 0이면 제한하지 않습니다.
func WithTimeout(timeout time.Duration) Option {
	return func(f *HTTPFetcher) {
		if timeout >= 0 {
			f.client.Timeout = timeout
		}
	}
}

// WithUserAgent 고정 User-Agent를 설정합니다. 빈 문자열이면 내장 목록에서 무작위로 선택합니다.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithRateLimit 초당 요청 수와 버스트 크기로 프로세스 단위 속도 제한을 설정합니다.
// perSecond가 0 이하이면 제한하지 않습니다.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(f *HTTPFetcher) {
		if perSecond <= 0 {
			f.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithMaxBodyBytes 응답 본문의 최대 크기를 설정합니다.
//
//   - NoLimit(-1): 제한 없음
//   - 0 또는 그 밖의 음수: 기본값(10MB)
func WithMaxBodyBytes(limit int64) Option {
	return func(f *HTTPFetcher) {
		switch {
		case limit == NoLimit:
			f.maxBytes = NoLimit
		case limit <= 0:
			f.maxBytes = defaultMaxBytes
		default:
			f.maxBytes = limit
		}
	}
}

// WithTransport HTTP 클라이언트의 Transport를 직접 설정합니다. 테스트나 프록시 구성에 사용합니다.
func WithTransport(transport http.RoundTripper) Option {
	return func(f *HTTPFetcher) {
		f.client.Transport = transport
	}
}
