// Package fetcher 상품 페이지의 HTML을 가져오는 수집기 구현체들을 제공합니다.
//
// HTTP 클라이언트, 헤드리스 브라우저(rod) 구현체와 로깅, 대체 수집(fallback) 데코레이터를
// Fetcher 인터페이스 하나로 조합합니다.
package fetcher

import (
	"context"
)

// component 로깅용 컴포넌트 이름
const (
	component         = "fetcher"
	componentHTTP     = "fetcher.http"
	componentBrowser  = "fetcher.browser"
	componentFallback = "fetcher.fallback"
)

// Page 수집된 페이지입니다.
type Page struct {
	// URL 요청한 URL. 리다이렉트가 있었더라도 요청 URL을 유지합니다.
	URL string

	// HTML UTF-8로 변환된 응답 본문
	HTML string

	// StatusCode HTTP 상태 코드. 브라우저 수집은 항상 200입니다.
	StatusCode int
}

// Fetcher 상품 페이지를 가져오는 인터페이스입니다.
//
// 구현체는 여러 고루틴에서 동시에 호출될 수 있어야 하며, ctx가 취소되면 즉시 중단해야 합니다.
// 2xx가 아닌 응답은 에러로 반환합니다.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)

	// Close 구현체가 보유한 리소스(브라우저 프로세스, 유휴 연결)를 해제합니다.
	Close() error
}
