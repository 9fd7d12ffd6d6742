package extractor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/darkkaiser/price-scraper/internal/extractor/price"
	"github.com/darkkaiser/price-scraper/internal/extractor/sanitize"
	"github.com/darkkaiser/price-scraper/pkg/strutil"
)

// cleanupFields 판매처 자체 문구를 제거하는 대상 필드
var cleanupFields = []Field{FieldName, FieldDescription, FieldBrand, FieldCategory}

// Extractor 판매처 변형 하나의 추출기입니다. 규칙 테이블을 공용 엔진으로 실행합니다.
//
// 상태를 갖지 않으므로 여러 고루틴에서 동시에 사용해도 안전합니다.
type Extractor struct {
	kind     Kind
	table    *Table
	fallback *Table
}

func newExtractor(kind Kind, table *Table, fallback *Table) *Extractor {
	return &Extractor{kind: kind, table: table, fallback: fallback}
}

// Kind 추출기의 판매처 변형입니다.
func (e *Extractor) Kind() Kind {
	return e.kind
}

// Table 추출기의 규칙 테이블을 반환합니다. 반환된 테이블은 읽기 전용으로 다뤄야 합니다.
func (e *Extractor) Table() Table {
	return *e.table
}

// Extract html에서 상품 정보를 추출합니다. html이 비어 있으면 nil을 반환합니다.
//
// 추출은 에러를 반환하지 않습니다. 찾지 못한 필드는 비어 있는 상태로 남으며,
// 아무것도 찾지 못한 페이지는 URL과 판매처 이름만 채워진 결과가 됩니다.
func (e *Extractor) Extract(html, url string) *ProductData {
	if strings.TrimSpace(html) == "" {
		return nil
	}

	p := newPage(html, url)

	e.extractFields(p)
	e.extractPrices(p)
	e.extractImages(p)
	e.cleanup(p)

	if e.kind == KindGeneric {
		p.product.Retailer = InferRetailer(url)
	} else {
		p.product.Retailer = e.kind.DisplayName()
	}
	p.product.Kind = e.kind

	return p.product
}

func (e *Extractor) extractFields(p *page) {
	for _, f := range e.fieldOrder() {
		if v, ok := e.resolve(p, f, e.table); ok {
			p.product.set(f, v)
			continue
		}
		if e.fallback != nil && !e.table.NoFallback[f] {
			if v, ok := e.resolve(p, f, e.fallback); ok {
				p.product.set(f, v)
			}
		}
	}
}

// fieldOrder 자체 테이블의 필드 순서 뒤에 범용 테이블에만 있는 필드를 이어붙인 순서입니다.
func (e *Extractor) fieldOrder() []Field {
	seen := make(map[Field]bool)

	var order []Field
	for _, t := range []*Table{e.table, e.fallback} {
		if t == nil {
			continue
		}
		for _, fr := range t.Fields {
			if !seen[fr.Field] {
				seen[fr.Field] = true
				order = append(order, fr.Field)
			}
		}
	}
	return order
}

func (e *Extractor) resolve(p *page, f Field, owner *Table) (string, bool) {
	for _, r := range owner.Rules(f) {
		for _, c := range r.candidates(p, owner.Hydration) {
			if v, ok := e.accept(f, c, owner); ok {
				return v, true
			}
		}
	}
	return "", false
}

// accept 후보를 정제하고 owner 테이블과 추출기 자체 테이블의 필터를 모두 적용합니다.
func (e *Extractor) accept(f Field, raw string, owner *Table) (string, bool) {
	v, ok := sanitize.Clean(raw, f.Kind(), e.maxLen(f, owner))
	if !ok {
		return "", false
	}

	for _, t := range e.filterTables(owner) {
		if n := t.MinLen[f]; n > 0 && utf8.RuneCountInString(v) < n {
			return "", false
		}
		if strutil.EqualsAnyFold(v, t.Skip[f]) || strutil.ContainsAnyFold(v, t.Deny[f]) {
			return "", false
		}
	}
	return v, true
}

func (e *Extractor) filterTables(owner *Table) []*Table {
	if owner == e.table {
		return []*Table{e.table}
	}
	return []*Table{owner, e.table}
}

func (e *Extractor) maxLen(f Field, owner *Table) int {
	if n := e.table.MaxLen[f]; n > 0 {
		return n
	}
	return owner.MaxLen[f]
}

// =============================================================================
// 가격
// =============================================================================

func (e *Extractor) extractPrices(p *page) {
	cur, orig := runPrices(p, e.table, e.table.Plausibility)
	if cur == nil && e.fallback != nil {
		policy := e.fallback.Plausibility
		if e.table.FallbackPlausibility != nil {
			policy = *e.table.FallbackPlausibility
		}
		cur, orig = runPrices(p, e.fallback, policy)
	}

	p.product.CurrentPrice, p.product.OriginalPrice = cur, orig
}

func runPrices(p *page, t *Table, policy price.Plausibility) (*float64, *float64) {
	name := p.product.Name

	for _, stage := range t.Prices {
		switch stage.Mode {
		case FirstMatch:
			cur := firstPrice(p, t.Hydration, stage.Current, policy, name, 0)
			if cur == nil {
				continue
			}
			orig := firstPrice(p, t.Hydration, stage.Original, policy, name, *cur)
			return price.Finalize(cur, orig)

		default:
			current := policy.Filter(price.ParseAll(priceTexts(p, t.Hydration, stage.Current)), name)
			original := policy.Filter(price.ParseAll(priceTexts(p, t.Hydration, stage.Original)), name)
			if cur, orig := price.Disambiguate(current, original); cur != nil {
				return cur, orig
			}
		}
	}
	return nil, nil
}

// firstPrice 정책을 통과하고 floor보다 큰 첫 번째 가격입니다.
func firstPrice(p *page, hydration *regexp.Regexp, rules []Rule, policy price.Plausibility, name string, floor float64) *float64 {
	for _, r := range rules {
		for _, c := range r.candidates(p, hydration) {
			v, ok := price.Parse(c)
			if !ok || v <= floor || !policy.Accept(v, name) {
				continue
			}
			return &v
		}
	}
	return nil
}

func priceTexts(p *page, hydration *regexp.Regexp, rules []Rule) []string {
	var texts []string
	for _, r := range rules {
		texts = append(texts, r.candidates(p, hydration)...)
	}
	return texts
}

// =============================================================================
// 이미지, 정리
// =============================================================================

func (e *Extractor) extractImages(p *page) {
	must := e.table.Images.Must

	images := collectImages(p, e.table, must)
	if len(images) == 0 && e.fallback != nil {
		images = collectImages(p, e.fallback, must)
	}
	p.product.Images = images
}

func (e *Extractor) cleanup(p *page) {
	if len(e.table.Cleanup) == 0 {
		return
	}

	for _, f := range cleanupFields {
		v := p.product.get(f)
		if v == "" {
			continue
		}

		v = strutil.RemoveAllFold(v, e.table.Cleanup)
		v = strings.Trim(v, " -|,;:")

		cleaned, ok := sanitize.Clean(v, f.Kind(), e.maxLen(f, e.table))
		if !ok {
			cleaned = ""
		}
		p.product.set(f, cleaned)
	}
}
