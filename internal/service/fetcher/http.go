package fetcher

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"time"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// defaultUserAgents User-Agent를 지정하지 않았을 때 요청마다 무작위로 선택하는 브라우저 User-Agent 목록
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
}

// HTTPFetcher net/http 기반 수집기입니다.
//
// 요청마다 User-Agent와 태국어 우선 Accept-Language를 설정하고, 프로세스 단위 속도 제한,
// 응답 본문 크기 제한, charset 변환을 적용합니다.
type HTTPFetcher struct {
	client *http.Client

	userAgent string
	limiter   *rate.Limiter
	maxBytes  int64
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher 기본 타임아웃(30초), 본문 제한(10MB)이 설정된 HTTPFetcher를 생성합니다.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:   &http.Client{Timeout: defaultTimeout},
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch rawURL을 GET 요청으로 가져옵니다.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, apperrors.Wrap(err, apperrors.Timeout, "요청 속도 제한 대기 중 작업이 취소되었습니다")
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.Internal, "HTTP 요청 생성에 실패했습니다")
	}
	req.Header.Set("User-Agent", f.pickUserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "th-TH,th;q=0.9,en-US;q=0.8,en;q=0.7")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, apperrors.Wrap(err, apperrors.Timeout, "HTTP 요청 시간이 초과되었습니다")
		}
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "HTTP 요청 중 네트워크 또는 클라이언트 에러가 발생했습니다")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		drainAndCloseBody(resp.Body)
		return nil, NewErrHTTPStatus(rawURL, resp.StatusCode)
	}
	defer resp.Body.Close()

	// Content-Length 헤더로 먼저 차단하고, 헤더가 없거나 조작된 경우는 readBody가 막습니다.
	if f.maxBytes != NoLimit && resp.ContentLength > f.maxBytes {
		return nil, NewErrBodyTooLarge(rawURL, f.maxBytes)
	}

	html, err := readBody(resp.Body, resp.Header.Get("Content-Type"), rawURL, f.maxBytes)
	if err != nil {
		return nil, err
	}

	return &Page{URL: rawURL, HTML: html, StatusCode: resp.StatusCode}, nil
}

func (f *HTTPFetcher) pickUserAgent() string {
	if f.userAgent != "" {
		return f.userAgent
	}
	return defaultUserAgents[rand.IntN(len(defaultUserAgents))]
}

// Close 유휴 연결을 정리합니다.
func (f *HTTPFetcher) Close() error {
	f.client.CloseIdleConnections()

	applog.WithComponent(componentHTTP).Debug("HTTP Fetcher 유휴 연결 정리 완료")

	return nil
}
