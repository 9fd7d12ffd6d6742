package extractor

import (
	"regexp"
	"slices"
	"strings"

	"github.com/darkkaiser/price-scraper/internal/extractor/jsonld"
)

// Source 규칙이 후보 텍스트를 읽어오는 곳입니다.
type Source int

const (
	// FromDocument Selector와 일치하는 DOM 요소의 텍스트 또는 Attr 속성값
	FromDocument Source = iota

	// FromHTML 원본 HTML 전체
	FromHTML

	// FromMarkup script, style 요소를 제거한 HTML
	FromMarkup

	// FromURL 페이지 URL
	FromURL

	// FromName 지금까지 결정된 상품명
	FromName

	// FromDescription 지금까지 결정된 상품 설명
	FromDescription

	// FromTitle <title>과 <h1> 텍스트
	FromTitle

	// FromHeadline <title>, <h1>, meta description 텍스트
	FromHeadline

	// FromJSONLD JSON-LD Product 객체의 Paths
	FromJSONLD

	// FromHydration hydration 페이로드의 Paths (gjson 경로 문법)
	FromHydration

	// FromCrumbs JSON-LD BreadcrumbList 항목 이름
	FromCrumbs
)

// Scan 후보 텍스트를 검사하는 순서입니다.
type Scan int

const (
	// Forward 문서 순서
	Forward Scan = iota

	// Reverse 역순. 브레드크럼에서 가장 구체적인 항목부터 검사할 때 사용합니다.
	Reverse

	// ReverseSkipLast 마지막 항목(보통 상품 자신)을 제외한 역순. 항목이 하나뿐이면 제외하지 않습니다.
	ReverseSkipLast
)

// Rule 필드 하나의 후보 텍스트를 만드는 선언적 규칙입니다.
//
// Pattern이 지정되면 원천 텍스트마다 모든 일치를 후보로 만들며, Template이 있으면
// 일치 결과를 Template으로 전개하고, 없으면 Group번째(기본 1, 캡처 그룹이 없으면 0) 그룹을 사용합니다.
type Rule struct {
	From     Source
	Selector string
	Attr     string
	Paths    []string

	Pattern  *regexp.Regexp
	Group    int
	Template string

	Scan Scan

	// Known 이 목록 중 원천 텍스트에 포함된 첫 번째 값을 후보로 만듭니다. 대소문자를 구분하지 않습니다.
	Known []string

	// Post 정제 전에 후보에 적용할 변환입니다.
	Post func(string) string

	// Prefix 정제 전에 후보 앞에 붙일 문자열입니다.
	Prefix string

	// Compose 지정되면 나머지 필드를 무시하고 여러 부분 규칙의 결과를 하나로 합칩니다.
	Compose *Compose
}

// Compose 부분 규칙 각각의 첫 번째 후보를 Sep으로 이어 하나의 후보를 만듭니다. 예: "60 x 45 x 80 cm"
type Compose struct {
	Parts    []Rule
	Sep      string
	Suffix   string
	MinParts int
}

func (r Rule) candidates(p *page, hydration *regexp.Regexp) []string {
	if r.Compose != nil {
		return r.Compose.candidates(p, hydration)
	}

	values := r.source(p, hydration)
	if r.Pattern != nil {
		var matched []string
		for _, v := range values {
			matched = append(matched, r.match(v)...)
		}
		values = matched
	}
	if len(r.Known) > 0 {
		values = knownValues(values, r.Known)
	}
	values = scanOrder(values, r.Scan)

	out := make([]string, 0, len(values))
	for _, v := range values {
		if r.Post != nil {
			v = r.Post(v)
		}
		if v = strings.TrimSpace(v); v == "" {
			continue
		}
		out = append(out, r.Prefix+v)
	}
	return out
}

func (r Rule) source(p *page, hydration *regexp.Regexp) []string {
	switch r.From {
	case FromDocument:
		return p.selectTexts(r.Selector, r.Attr)
	case FromHTML:
		return []string{p.html}
	case FromMarkup:
		return []string{p.markupText()}
	case FromURL:
		return nonEmpty(p.url)
	case FromName:
		return nonEmpty(p.product.Name)
	case FromDescription:
		return nonEmpty(p.product.Description)
	case FromTitle:
		return p.headline(false)
	case FromHeadline:
		return p.headline(true)
	case FromJSONLD:
		return jsonld.Lookup(p.jsonLDProduct(), r.Paths...)
	case FromHydration:
		return jsonld.Lookup(p.hydrationData(hydration), r.Paths...)
	case FromCrumbs:
		return p.breadcrumbs()
	}
	return nil
}

func (r Rule) match(s string) []string {
	group := r.Group
	if group == 0 && r.Pattern.NumSubexp() > 0 {
		group = 1
	}

	var out []string
	for _, loc := range r.Pattern.FindAllStringSubmatchIndex(s, -1) {
		var v string
		if r.Template != "" {
			v = string(r.Pattern.ExpandString(nil, r.Template, s, loc))
		} else if 2*group+1 < len(loc) && loc[2*group] >= 0 {
			v = s[loc[2*group]:loc[2*group+1]]
		}

		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (c *Compose) candidates(p *page, hydration *regexp.Regexp) []string {
	sep := c.Sep
	if sep == "" {
		sep = " x "
	}
	minParts := c.MinParts
	if minParts <= 0 {
		minParts = len(c.Parts)
	}

	var parts []string
	for _, part := range c.Parts {
		if values := part.candidates(p, hydration); len(values) > 0 {
			parts = append(parts, values[0])
		}
	}
	if len(parts) == 0 || len(parts) < minParts {
		return nil
	}
	return []string{strings.Join(parts, sep) + c.Suffix}
}

func knownValues(values, known []string) []string {
	var out []string
	for _, v := range values {
		upper := strings.ToUpper(v)
		for _, k := range known {
			if strings.Contains(upper, strings.ToUpper(k)) {
				out = append(out, k)
				break
			}
		}
	}
	return out
}

func scanOrder(values []string, s Scan) []string {
	switch s {
	case Reverse:
		values = slices.Clone(values)
		slices.Reverse(values)
	case ReverseSkipLast:
		if len(values) > 1 {
			values = values[:len(values)-1]
		}
		values = slices.Clone(values)
		slices.Reverse(values)
	}
	return values
}

func nonEmpty(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return []string{s}
}

// =============================================================================
// 규칙 테이블 작성 도우미
// =============================================================================

func sel(selector string) Rule {
	return Rule{From: FromDocument, Selector: selector}
}

func attr(selector, name string) Rule {
	return Rule{From: FromDocument, Selector: selector, Attr: name}
}

// meta property 또는 name 속성이 key인 meta 요소의 content입니다.
func meta(key string) Rule {
	return attr(`meta[property="`+key+`"], meta[name="`+key+`"]`, "content")
}

func ld(paths ...string) Rule {
	return Rule{From: FromJSONLD, Paths: paths}
}

func hydrated(paths ...string) Rule {
	return Rule{From: FromHydration, Paths: paths}
}

func re(from Source, pattern string) Rule {
	return Rule{From: from, Pattern: regexp.MustCompile(pattern)}
}

// label 마크업에서 "라벨: 값" 형태를 찾습니다. labels는 정규식 대안(|)으로 구분합니다.
func label(labels string) Rule {
	return re(FromMarkup, `(?i)(?:`+labels+`)[:\s]*([^\n<]+)`)
}

func (r Rule) scan(s Scan) Rule {
	r.Scan = s
	return r
}

func (r Rule) template(t string) Rule {
	r.Template = t
	return r
}

func (r Rule) prefix(p string) Rule {
	r.Prefix = p
	return r
}

func (r Rule) post(fn func(string) string) Rule {
	r.Post = fn
	return r
}

func (r Rule) known(values []string) Rule {
	r.Known = values
	return r
}

func composed(suffix string, minParts int, parts ...Rule) Rule {
	return Rule{Compose: &Compose{Parts: parts, Suffix: suffix, MinParts: minParts}}
}
