package fetcher

import (
	"context"
	"net/http"
	"sync"
	"time"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// BrowserFetcher 헤드리스 Chromium(rod)으로 자바스크립트 렌더링이 끝난 HTML을 가져옵니다.
//
// 브라우저는 첫 Fetch에서 실행되며 이후 요청은 같은 브라우저의 새 탭을 사용합니다.
// 브라우저 연결이 끊기면 다음 Fetch에서 다시 실행합니다.
type BrowserFetcher struct {
	bin     string
	timeout time.Duration

	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	closed   bool
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Fetcher = (*BrowserFetcher)(nil)

// BrowserOption BrowserFetcher의 설정을 변경하기 위한 함수 타입입니다.
type BrowserOption func(*BrowserFetcher)

// WithBrowserBin 사용할 Chromium 실행 파일 경로를 지정합니다. 비어 있으면 rod가 찾거나 내려받습니다.
func WithBrowserBin(bin string) BrowserOption {
	return func(f *BrowserFetcher) {
		f.bin = bin
	}
}

// WithBrowserTimeout 페이지 하나의 로딩 제한 시간을 설정합니다. 0이면 ctx의 기한만 따릅니다.
func WithBrowserTimeout(timeout time.Duration) BrowserOption {
	return func(f *BrowserFetcher) {
		f.timeout = timeout
	}
}

func NewBrowserFetcher(opts ...BrowserOption) *BrowserFetcher {
	f := &BrowserFetcher{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *BrowserFetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	u, err := validateURL(rawURL)
	if err != nil {
		return nil, err
	}

	browser, err := f.ensureBrowser()
	if err != nil {
		return nil, err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	tab, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		f.reset()
		return nil, apperrors.Wrap(err, apperrors.Unavailable, "브라우저 탭을 열 수 없습니다")
	}
	defer func() {
		_ = tab.Close()
	}()

	page := tab.Context(ctx)
	if err := page.Navigate(u.String()); err != nil {
		return nil, wrapBrowserError(ctx, err, "페이지 이동에 실패했습니다")
	}
	if err := page.WaitLoad(); err != nil {
		return nil, wrapBrowserError(ctx, err, "페이지 로딩을 기다리는 중 에러가 발생했습니다")
	}

	html, err := page.HTML()
	if err != nil {
		return nil, wrapBrowserError(ctx, err, "렌더링된 HTML을 읽을 수 없습니다")
	}

	return &Page{URL: rawURL, HTML: html, StatusCode: http.StatusOK}, nil
}

func wrapBrowserError(ctx context.Context, err error, message string) error {
	if ctx.Err() != nil {
		return apperrors.Wrap(err, apperrors.Timeout, message)
	}
	return apperrors.Wrap(err, apperrors.Unavailable, message)
}

// ensureBrowser 실행 중인 브라우저를 반환하며, 없으면 실행하고 연결합니다.
func (f *BrowserFetcher) ensureBrowser() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrClosed
	}
	if f.browser != nil {
		return f.browser, nil
	}

	l := launcher.New().Headless(true).NoSandbox(true).Leakless(false)
	if f.bin != "" {
		l = l.Bin(f.bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, NewErrBrowserUnavailable(err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, NewErrBrowserUnavailable(err)
	}

	f.launcher, f.browser = l, browser

	applog.WithComponentAndFields(componentBrowser, applog.Fields{
		"bin": f.bin,
	}).Info("헤드리스 브라우저 실행 완료")

	return browser, nil
}

// reset 연결이 끊긴 브라우저를 정리하여 다음 Fetch에서 다시 실행하도록 합니다.
func (f *BrowserFetcher) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	_ = f.shutdown()
}

// shutdown 호출자가 f.mu를 잡은 상태여야 합니다.
func (f *BrowserFetcher) shutdown() error {
	var err error
	if f.browser != nil {
		err = f.browser.Close()
	}
	if f.launcher != nil {
		f.launcher.Kill()
	}
	f.browser, f.launcher = nil, nil
	return err
}

// Close 브라우저 프로세스를 종료합니다. 이후의 Fetch는 ErrClosed를 반환합니다.
func (f *BrowserFetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	if err := f.shutdown(); err != nil {
		return apperrors.Wrap(err, apperrors.System, "헤드리스 브라우저 종료 중 에러가 발생했습니다")
	}

	applog.WithComponent(componentBrowser).Info("헤드리스 브라우저 종료 완료")

	return nil
}
