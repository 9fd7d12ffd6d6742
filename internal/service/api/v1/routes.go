// Package v1 가격 수집 API의 v1 버전 라우트를 정의합니다.
//
// 주요 엔드포인트:
//   - POST /api/v1/extract - 상품 페이지 하나를 추출 (선택적으로 저장)
//   - POST /api/v1/crawl   - 여러 URL을 수집하고 보고서를 반환
package v1

import (
	"github.com/darkkaiser/price-scraper/internal/service/api/middleware"
	"github.com/darkkaiser/price-scraper/internal/service/api/v1/handler"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes Echo 인스턴스에 v1 API 라우트를 설정합니다.
// 모든 엔드포인트는 JSON 본문만 받습니다.
func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	v1Group := e.Group("/api/v1")

	jsonOnly := middleware.ValidateContentType(echo.MIMEApplicationJSON)

	v1Group.POST("/extract", h.ExtractHandler, jsonOnly)
	v1Group.POST("/crawl", h.CrawlHandler, jsonOnly)
}
