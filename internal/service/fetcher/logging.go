package fetcher

import (
	"context"
	"time"

	applog "github.com/darkkaiser/price-scraper/pkg/log"
)

// LoggingFetcher 수집 요청의 URL, 소요 시간, 결과를 로그로 남기는 데코레이터입니다.
// URL의 민감한 쿼리 파라미터 값은 가려서 기록합니다.
type LoggingFetcher struct {
	delegate Fetcher
	name     string
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*LoggingFetcher)(nil)

// NewLoggingFetcher name은 로그의 fetcher 필드에 기록되는 수집 방식 이름(http, browser, auto)입니다.
func NewLoggingFetcher(delegate Fetcher, name string) *LoggingFetcher {
	return &LoggingFetcher{delegate: delegate, name: name}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	start := time.Now()

	page, err := f.delegate.Fetch(ctx, rawURL)

	fields := applog.Fields{
		"fetcher":  f.name,
		"url":      redactURL(rawURL),
		"duration": time.Since(start).String(),
	}

	if err != nil {
		fields["error"] = err.Error()
		applog.WithComponentAndFields(component, fields).Warn("페이지 수집 실패")
		return nil, err
	}

	fields["status_code"] = page.StatusCode
	fields["bytes"] = len(page.HTML)
	applog.WithComponentAndFields(component, fields).Debug("페이지 수집 완료")

	return page, nil
}

func (f *LoggingFetcher) Close() error {
	return f.delegate.Close()
}
