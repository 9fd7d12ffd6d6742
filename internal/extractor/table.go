package extractor

import (
	"regexp"

	"github.com/darkkaiser/price-scraper/internal/extractor/price"
)

// FieldRules 필드 하나에 대해 순서대로 시도할 규칙 목록입니다. 첫 번째로 정제를 통과한 후보가 채택됩니다.
type FieldRules struct {
	Field Field
	Rules []Rule
}

// PriceMode 가격 단계가 후보를 결정하는 방식입니다.
type PriceMode int

const (
	// Collect 모든 후보를 모은 뒤 price.Disambiguate로 현재가와 정상가를 결정합니다.
	Collect PriceMode = iota

	// FirstMatch 타당성 검사를 통과한 첫 번째 값을 현재가로, 현재가보다 큰 첫 번째 값을 정상가로 채택합니다.
	FirstMatch
)

// PriceStage 가격 규칙 단계입니다. 단계는 현재가가 결정될 때까지 순서대로 실행됩니다.
type PriceStage struct {
	Mode     PriceMode
	Current  []Rule
	Original []Rule
}

// ImageRules 이미지 URL 규칙입니다. Must가 지정되면 모든 부분 문자열을 포함하는 URL만 남깁니다.
type ImageRules struct {
	Rules []Rule
	Must  []string
}

// Table 판매처 하나의 추출 규칙 테이블입니다.
//
// 패키지 초기화 시점에 한 번 만들어지며 이후에는 읽기만 합니다.
type Table struct {
	Fields []FieldRules
	Prices []PriceStage

	// NoFallback 자체 규칙이 실패해도 범용 테이블로 넘어가지 않는 필드입니다.
	NoFallback map[Field]bool

	Plausibility price.Plausibility

	// FallbackPlausibility 범용 테이블의 가격 규칙에 대신 적용할 정책입니다. nil이면 범용 테이블의 정책을 따릅니다.
	FallbackPlausibility *price.Plausibility

	Images ImageRules

	// Skip 후보가 목록의 값과 같으면(대소문자 무시) 거부합니다.
	Skip map[Field][]string

	// Deny 후보가 목록의 값을 포함하면(대소문자 무시) 거부합니다.
	Deny map[Field][]string

	MinLen map[Field]int
	MaxLen map[Field]int

	// Cleanup 추출이 끝난 뒤 이름, 설명, 브랜드, 카테고리에서 제거할 판매처 자체 문구입니다.
	Cleanup []string

	// Hydration FromHydration 규칙이 읽을 페이로드의 패턴입니다. nil이면 __NEXT_DATA__를 읽습니다.
	Hydration *regexp.Regexp
}

// Rules f에 대한 규칙 목록을 반환합니다.
func (t Table) Rules(f Field) []Rule {
	for _, fr := range t.Fields {
		if fr.Field == f {
			return fr.Rules
		}
	}
	return nil
}

// HasField f에 대한 규칙이 정의되어 있는지 확인합니다.
func (t Table) HasField(f Field) bool {
	return len(t.Rules(f)) > 0
}
