package fetcher

import (
	"context"
	"errors"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
)

// FallbackFetcher primary로 수집에 실패하면 secondary로 다시 시도합니다.
//
// 잘못된 URL이거나 ctx가 끝난 경우에는 secondary를 시도하지 않습니다.
type FallbackFetcher struct {
	primary   Fetcher
	secondary Fetcher
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*FallbackFetcher)(nil)

func NewFallbackFetcher(primary, secondary Fetcher) *FallbackFetcher {
	return &FallbackFetcher{primary: primary, secondary: secondary}
}

func (f *FallbackFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	page, err := f.primary.Fetch(ctx, rawURL)
	if err == nil {
		return page, nil
	}
	if ctx.Err() != nil || apperrors.Is(err, apperrors.InvalidInput) {
		return nil, err
	}

	applog.WithComponentAndFields(componentFallback, applog.Fields{
		"url":   redactURL(rawURL),
		"error": err.Error(),
	}).Warn("기본 수집기 실패: 대체 수집기로 재시도합니다")

	return f.secondary.Fetch(ctx, rawURL)
}

// Close 두 수집기를 모두 닫고 발생한 에러를 합쳐서 반환합니다.
func (f *FallbackFetcher) Close() error {
	return errors.Join(f.primary.Close(), f.secondary.Close())
}
