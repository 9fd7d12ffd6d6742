// Package handler v1 API의 상품 추출, 일괄 수집 요청 핸들러를 제공합니다.
package handler

import (
	"context"

	"github.com/darkkaiser/price-scraper/internal/extractor"
	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	"github.com/darkkaiser/price-scraper/internal/service/crawler"
	"github.com/darkkaiser/price-scraper/internal/service/storage"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

// Scraper 핸들러가 사용하는 수집 기능입니다. *crawler.Crawler가 구현합니다.
type Scraper interface {
	Extract(ctx context.Context, t crawler.Target, html string) (*extractor.ProductData, error)
	Save(ctx context.Context, p *extractor.ProductData) (*storage.UpsertResult, error)
	Run(ctx context.Context, urls []string) *crawler.Report
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ Scraper = (*crawler.Crawler)(nil)

// Handler v1 API 요청을 바인딩, 검증하고 Scraper에 위임합니다.
type Handler struct {
	scraper Scraper
}

// NewHandler Handler 인스턴스를 생성합니다.
func NewHandler(scraper Scraper) *Handler {
	if scraper == nil {
		panic(constants.PanicMsgCrawlerRequired)
	}

	return &Handler{scraper: scraper}
}

// log 공통 로깅 필드가 설정된 로거 엔트리를 반환합니다.
func (h *Handler) log(c echo.Context) *applog.Entry {
	return applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":   c.Path(),
		"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
	})
}
