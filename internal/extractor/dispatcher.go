package extractor

import (
	"strings"
)

// extractors 도메인 부분 문자열로 선택되는 판매처별 추출기. 순서대로 검사합니다.
var extractors = []*Extractor{
	thaiWatsaduExtractor,
	homeProExtractor,
	boonthavornExtractor,
	megaHomeExtractor,
	doHomeExtractor,
	globalHouseExtractor,
}

// Select rawURL에 맞는 추출기를 반환합니다.
//
// 스킴을 제외한 URL을 소문자로 바꾼 뒤 판매처 도메인을 포함하는지 검사하며,
// 일치하는 판매처가 없으면 범용 추출기를 반환합니다. 항상 nil이 아닌 추출기를 반환합니다.
func Select(rawURL string) *Extractor {
	target := strings.ToLower(strings.TrimSpace(rawURL))
	if i := strings.Index(target, "://"); i >= 0 {
		target = target[i+3:]
	}

	for _, e := range extractors {
		if strings.Contains(target, e.kind.Domain()) {
			return e
		}
	}
	return genericExtractor
}

// ForKind kind에 해당하는 추출기를 반환합니다. 알 수 없는 kind는 범용 추출기입니다.
func ForKind(kind Kind) *Extractor {
	for _, e := range extractors {
		if e.kind == kind {
			return e
		}
	}
	return genericExtractor
}

// Extract rawURL에 맞는 추출기로 html을 추출합니다. Select(rawURL).Extract(html, rawURL)과 같습니다.
func Extract(html, rawURL string) *ProductData {
	return Select(rawURL).Extract(html, rawURL)
}
