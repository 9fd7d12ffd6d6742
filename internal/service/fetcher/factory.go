package fetcher

import (
	"fmt"
	"time"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
)

// Mode 수집 방식입니다.
type Mode string

const (
	// ModeHTTP net/http로만 수집합니다.
	ModeHTTP Mode = "http"

	// ModeBrowser 헤드리스 브라우저로만 수집합니다.
	ModeBrowser Mode = "browser"

	// ModeAuto 브라우저로 수집하고, 브라우저를 실행할 수 없거나 실패하면 HTTP로 다시 시도합니다.
	ModeAuto Mode = "auto"
)

// Config Fetcher 체인을 구성하기 위한 설정입니다.
type Config struct {
	Mode Mode

	// Timeout 요청 하나의 제한 시간. 0 이하이면 기본값(30초)
	Timeout time.Duration

	// UserAgent 고정 User-Agent. 비어 있으면 내장 목록에서 무작위로 선택
	UserAgent string

	// MaxBodyBytes 응답 본문 최대 크기. 0이면 기본값(10MB), NoLimit이면 제한 없음
	MaxBodyBytes int64

	// RatePerSecond 초당 최대 요청 수. 0 이하이면 제한 없음
	RatePerSecond float64
	Burst         int

	// BrowserBin Chromium 실행 파일 경로
	BrowserBin string
}

// New cfg.Mode에 맞는 Fetcher 체인을 생성합니다. 모든 체인의 가장 바깥은 LoggingFetcher입니다.
func New(cfg Config) (Fetcher, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	newHTTP := func() Fetcher {
		return NewHTTPFetcher(
			WithTimeout(timeout),
			WithUserAgent(cfg.UserAgent),
			WithRateLimit(cfg.RatePerSecond, cfg.Burst),
			WithMaxBodyBytes(cfg.MaxBodyBytes),
		)
	}
	newBrowser := func() Fetcher {
		return NewBrowserFetcher(WithBrowserBin(cfg.BrowserBin), WithBrowserTimeout(timeout))
	}

	var f Fetcher
	switch cfg.Mode {
	case ModeHTTP, "":
		f = newHTTP()
	case ModeBrowser:
		f = newBrowser()
	case ModeAuto:
		f = NewFallbackFetcher(newBrowser(), newHTTP())
	default:
		return nil, apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 수집 방식입니다: '%s' (http, browser, auto 중 하나)", cfg.Mode))
	}

	mode := cfg.Mode
	if mode == "" {
		mode = ModeHTTP
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"mode":            mode,
		"timeout":         timeout.String(),
		"rate_per_second": cfg.RatePerSecond,
		"max_body_bytes":  cfg.MaxBodyBytes,
	}).Info("Fetcher 생성 완료")

	return NewLoggingFetcher(f, string(mode)), nil
}
