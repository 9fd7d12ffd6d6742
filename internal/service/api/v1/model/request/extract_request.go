// Package request v1 API 요청 본문을 정의합니다.
package request

// ExtractRequest 상품 페이지 하나의 추출 요청
type ExtractRequest struct {
	// 상품 페이지 URL
	URL string `json:"url" validate:"required,http_url,max=2048" korean:"url"`

	// 이미 가지고 있는 페이지 HTML. 비어 있으면 서버가 URL에서 직접 가져옵니다.
	HTML string `json:"html,omitempty" korean:"html"`

	// 판매처 코드 (twd, hp, btv, mgh, dh, gbh). 비어 있으면 URL 도메인으로 추출기를 고릅니다.
	Retailer string `json:"retailer,omitempty" validate:"omitempty,max=16" korean:"retailer"`

	// 추출한 상품을 저장소에 기록할지 여부
	Store bool `json:"store,omitempty" korean:"store"`
}
