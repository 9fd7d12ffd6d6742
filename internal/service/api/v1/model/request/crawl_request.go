package request

// CrawlRequest 여러 상품 페이지의 일괄 수집 요청
type CrawlRequest struct {
	// 수집할 상품 페이지 URL 목록 (최대 50개)
	URLs []string `json:"urls" validate:"required,min=1,max=50,dive,required,http_url,max=2048" korean:"urls"`
}
