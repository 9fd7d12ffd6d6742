// Package response v1 API 응답 본문을 정의합니다.
package response

import (
	"github.com/darkkaiser/price-scraper/internal/extractor"
	"github.com/darkkaiser/price-scraper/internal/service/crawler"
	"github.com/darkkaiser/price-scraper/internal/service/storage"
)

// ExtractResponse 상품 추출 결과
type ExtractResponse struct {
	ResultCode int `json:"result_code"`

	// Retailer 추출에 사용한 판매처 코드. 범용 추출기는 빈 문자열입니다.
	Retailer string `json:"retailer,omitempty"`

	Product *extractor.ProductData `json:"product"`

	// Fields 값이 채워진 필드 이름 목록
	Fields []string `json:"fields"`

	Stored *storage.UpsertResult `json:"stored,omitempty"`

	// StoreSkipped 저장을 요청했지만 저장하지 않은 이유
	StoreSkipped string `json:"store_skipped,omitempty"`
}

// CrawlResponse 일괄 수집 결과
type CrawlResponse struct {
	ResultCode int `json:"result_code"`

	Report *crawler.Report `json:"report"`
}
