// Package jsonld 상품 페이지에 포함된 구조화 데이터(JSON-LD, 프레임워크 hydration 페이로드)를 읽습니다.
//
// 디코딩에 실패한 블록은 조용히 건너뜁니다. 이 패키지의 함수는 에러를 반환하지 않습니다.
package jsonld

import (
	"regexp"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"
)

const scriptSelector = `script[type="application/ld+json"]`

var productTypes = []string{"Product", "ProductModel"}

// Blocks 문서의 모든 JSON-LD 블록 중 올바른 JSON만 문서 순서대로 반환합니다.
func Blocks(doc *goquery.Document) []gjson.Result {
	if doc == nil {
		return nil
	}

	var blocks []gjson.Result
	doc.Find(scriptSelector).Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text == "" || !gjson.Valid(text) {
			return
		}
		blocks = append(blocks, gjson.Parse(text))
	})
	return blocks
}

// candidates 블록 최상위 객체, 최상위 배열의 원소, @graph 원소를 순서대로 나열합니다.
func candidates(blocks []gjson.Result) []gjson.Result {
	var items []gjson.Result
	for _, b := range blocks {
		if b.IsArray() {
			items = append(items, b.Array()...)
			continue
		}
		if b.IsObject() {
			items = append(items, b)
			if graph := b.Get("@graph"); graph.IsArray() {
				items = append(items, graph.Array()...)
			}
		}
	}
	return items
}

// HasType r의 @type이 types 중 하나인지 확인합니다. @type이 배열이어도 됩니다.
func HasType(r gjson.Result, types ...string) bool {
	if !r.IsObject() {
		return false
	}

	for _, t := range Strings(r.Get("@type")) {
		for _, want := range types {
			if t == want {
				return true
			}
		}
	}
	return false
}

// FindProduct 첫 번째 Product(또는 ProductModel) 객체를 찾습니다.
func FindProduct(blocks []gjson.Result) (gjson.Result, bool) {
	for _, c := range candidates(blocks) {
		if HasType(c, productTypes...) {
			return c, true
		}
	}
	return gjson.Result{}, false
}

// Breadcrumbs 첫 번째 BreadcrumbList의 항목 이름을 position 순서로 반환합니다.
func Breadcrumbs(blocks []gjson.Result) []string {
	for _, c := range candidates(blocks) {
		if !HasType(c, "BreadcrumbList") {
			continue
		}

		type crumb struct {
			pos  int64
			name string
		}

		var crumbs []crumb
		for i, el := range c.Get("itemListElement").Array() {
			name := firstNonEmpty(el.Get("name").String(), el.Get("item.name").String())
			if name == "" {
				continue
			}

			pos := int64(i + 1)
			if p := el.Get("position"); p.Exists() {
				pos = p.Int()
			}
			crumbs = append(crumbs, crumb{pos: pos, name: strings.TrimSpace(name)})
		}

		sort.SliceStable(crumbs, func(i, j int) bool { return crumbs[i].pos < crumbs[j].pos })

		names := make([]string, 0, len(crumbs))
		for _, cr := range crumbs {
			names = append(names, cr.name)
		}
		return names
	}
	return nil
}

// Strings r을 문자열 목록으로 펼칩니다.
//   - 문자열, 숫자: 그 값 하나
//   - 배열: 각 원소를 펼친 결과를 이어붙임
//   - 객체: name 필드를 펼친 결과 (예: "brand": {"@type": "Brand", "name": "PHILIPS"})
//   - null, 불리언, 존재하지 않음: 없음
func Strings(r gjson.Result) []string {
	switch {
	case !r.Exists():
		return nil
	case r.IsArray():
		var values []string
		for _, el := range r.Array() {
			values = append(values, Strings(el)...)
		}
		return values
	case r.IsObject():
		return Strings(r.Get("name"))
	case r.Type == gjson.String || r.Type == gjson.Number:
		if s := strings.TrimSpace(r.String()); s != "" {
			return []string{s}
		}
	}
	return nil
}

// Lookup paths를 순서대로 시도하여 값이 있는 첫 번째 경로의 문자열 목록을 반환합니다.
func Lookup(r gjson.Result, paths ...string) []string {
	if !r.Exists() {
		return nil
	}

	for _, path := range paths {
		if values := Strings(r.Get(path)); len(values) > 0 {
			return values
		}
	}
	return nil
}

// NextDataPattern Next.js 페이지의 __NEXT_DATA__ 스크립트 내용을 캡처합니다.
var NextDataPattern = regexp.MustCompile(`(?s)__NEXT_DATA__[^>]*type="application/json">(.+?)</script>`)

// Hydration html에서 pattern의 첫 번째 캡처 그룹을 JSON으로 해석합니다.
// pattern이 nil이면 NextDataPattern을 사용합니다.
func Hydration(html string, pattern *regexp.Regexp) (gjson.Result, bool) {
	if pattern == nil {
		pattern = NextDataPattern
	}

	m := pattern.FindStringSubmatch(html)
	if len(m) < 2 {
		return gjson.Result{}, false
	}

	payload := strings.TrimSpace(m[1])
	if !gjson.Valid(payload) {
		return gjson.Result{}, false
	}
	return gjson.Parse(payload), true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
