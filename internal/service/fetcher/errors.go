package fetcher

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
)

var (
	// ErrClosed Close 이후 Fetch를 호출했을 때 반환됩니다.
	ErrClosed = apperrors.New(apperrors.Internal, "이미 종료된 Fetcher입니다")
)

// NewErrInvalidURL 수집할 수 없는 URL(빈 값, http/https가 아닌 스킴, 호스트 없음)에 대한 에러를 생성합니다.
func NewErrInvalidURL(rawURL string, reason string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("수집할 수 없는 URL입니다 (%s): %s", rawURL, reason))
}

// NewErrHTTPStatus 2xx가 아닌 HTTP 응답을 도메인 에러로 변환합니다.
//
//   - 404, 410: NotFound
//   - 5xx, 429: Unavailable (일시적 장애)
//   - 그 외: ExecutionFailed
func NewErrHTTPStatus(rawURL string, statusCode int) error {
	errType := apperrors.ExecutionFailed
	switch {
	case statusCode == http.StatusNotFound || statusCode == http.StatusGone:
		errType = apperrors.NotFound
	case statusCode >= 500 || statusCode == http.StatusTooManyRequests:
		errType = apperrors.Unavailable
	}

	status := fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode))
	return apperrors.New(errType, fmt.Sprintf("HTTP 요청이 실패했습니다. 상태 코드: %s (%s)", strings.TrimSpace(status), rawURL))
}

// NewErrBodyTooLarge 응답 본문이 허용 크기를 초과했을 때의 에러를 생성합니다.
func NewErrBodyTooLarge(rawURL string, limit int64) error {
	return apperrors.New(apperrors.ExecutionFailed, fmt.Sprintf("응답 본문이 허용 크기(%d bytes)를 초과했습니다 (%s)", limit, rawURL))
}

// NewErrBrowserUnavailable 브라우저를 실행하거나 연결하지 못했을 때의 에러를 생성합니다.
func NewErrBrowserUnavailable(err error) error {
	return apperrors.Wrap(err, apperrors.System, "헤드리스 브라우저를 실행할 수 없습니다")
}

// validateURL rawURL이 수집 가능한 절대 http(s) URL인지 확인합니다.
func validateURL(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, NewErrInvalidURL(rawURL, "빈 URL")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, NewErrInvalidURL(rawURL, err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, NewErrInvalidURL(rawURL, "http 또는 https 스킴이 필요합니다")
	}
	if u.Host == "" {
		return nil, NewErrInvalidURL(rawURL, "호스트가 없습니다")
	}
	return u, nil
}
