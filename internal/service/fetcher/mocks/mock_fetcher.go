// Package mocks fetcher 패키지를 사용하는 테스트를 위한 Mock 구현체들을 제공합니다.
//
//   - MockFetcher: testify/mock 기반. 호출 인자와 횟수를 검증할 때 사용합니다.
//   - StaticFetcher: URL별 HTML/에러를 미리 등록해 두는 수동 구현. 동시 호출에 안전합니다.
package mocks

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/darkkaiser/price-scraper/internal/service/fetcher"
	"github.com/stretchr/testify/mock"
)

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ fetcher.Fetcher = (*MockFetcher)(nil)
var _ fetcher.Fetcher = (*StaticFetcher)(nil)

// ----------------------------------------------------------------------------
// MockFetcher
// ----------------------------------------------------------------------------

type MockFetcher struct {
	mock.Mock
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (*fetcher.Page, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fetcher.Page), args.Error(1)
}

func (m *MockFetcher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// ----------------------------------------------------------------------------
// StaticFetcher
// ----------------------------------------------------------------------------

// StaticFetcher 등록된 URL의 HTML 또는 에러를 반환합니다. 등록되지 않은 URL은 NotFound 에러입니다.
type StaticFetcher struct {
	mu     sync.Mutex
	pages  map[string]string
	errs   map[string]error
	calls  map[string]int
	closed atomic.Bool
}

func NewStaticFetcher() *StaticFetcher {
	return &StaticFetcher{
		pages: make(map[string]string),
		errs:  make(map[string]error),
		calls: make(map[string]int),
	}
}

// SetPage url 요청에 html을 반환하도록 등록합니다.
func (f *StaticFetcher) SetPage(url, html string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.pages[url] = html
}

// SetError url 요청에 err를 반환하도록 등록합니다.
func (f *StaticFetcher) SetError(url string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.errs[url] = err
}

func (f *StaticFetcher) Fetch(ctx context.Context, url string) (*fetcher.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls[url]++

	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	html, ok := f.pages[url]
	if !ok {
		return nil, apperrors.New(apperrors.NotFound, "등록되지 않은 URL입니다: "+url)
	}
	return &fetcher.Page{URL: url, HTML: html, StatusCode: http.StatusOK}, nil
}

// Calls url에 대한 Fetch 호출 횟수를 반환합니다.
func (f *StaticFetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[url]
}

func (f *StaticFetcher) Close() error {
	f.closed.Store(true)
	return nil
}

// Closed Close가 호출되었는지 확인합니다.
func (f *StaticFetcher) Closed() bool {
	return f.closed.Load()
}
