package extractor

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/darkkaiser/price-scraper/internal/extractor/jsonld"
	"github.com/tidwall/gjson"
)

var scriptStyleRegexp = regexp.MustCompile(`(?is)<script\b.*?</script>|<style\b.*?</style>`)

// page 추출 호출 한 번 동안 공유되는 페이지 상태입니다.
// DOM, JSON-LD 블록, hydration 페이로드는 처음 필요할 때 한 번만 만듭니다.
type page struct {
	html string
	url  string
	base *url.URL

	product *ProductData

	doc       *goquery.Document
	docParsed bool

	markup       string
	markupParsed bool

	blocks       []gjson.Result
	ldProduct    gjson.Result
	crumbs       []string
	blocksParsed bool

	hydration map[*regexp.Regexp]gjson.Result
}

func newPage(html, rawURL string) *page {
	base, _ := url.Parse(strings.TrimSpace(rawURL))

	return &page{
		html:      html,
		url:       rawURL,
		base:      base,
		product:   &ProductData{URL: rawURL},
		hydration: make(map[*regexp.Regexp]gjson.Result),
	}
}

// document 파싱된 DOM을 반환합니다. 파싱에 실패하면 nil입니다.
func (p *page) document() *goquery.Document {
	if !p.docParsed {
		p.docParsed = true
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(p.html)); err == nil {
			p.doc = doc
		}
	}
	return p.doc
}

// markupText script, style 요소를 제거한 HTML입니다. 라벨 패턴은 이 텍스트를 대상으로 합니다.
func (p *page) markupText() string {
	if !p.markupParsed {
		p.markupParsed = true
		p.markup = scriptStyleRegexp.ReplaceAllString(p.html, " ")
	}
	return p.markup
}

func (p *page) structured() {
	if p.blocksParsed {
		return
	}
	p.blocksParsed = true

	p.blocks = jsonld.Blocks(p.document())
	if product, ok := jsonld.FindProduct(p.blocks); ok {
		p.ldProduct = product
	}
	p.crumbs = jsonld.Breadcrumbs(p.blocks)
}

// jsonLDProduct 첫 번째 JSON-LD Product 객체입니다. 없으면 존재하지 않는 Result입니다.
func (p *page) jsonLDProduct() gjson.Result {
	p.structured()
	return p.ldProduct
}

// breadcrumbs JSON-LD BreadcrumbList의 항목 이름입니다.
func (p *page) breadcrumbs() []string {
	p.structured()
	return p.crumbs
}

// hydrationData pattern으로 찾은 hydration 페이로드입니다. pattern이 nil이면 __NEXT_DATA__를 찾습니다.
func (p *page) hydrationData(pattern *regexp.Regexp) gjson.Result {
	if pattern == nil {
		pattern = jsonld.NextDataPattern
	}
	if data, ok := p.hydration[pattern]; ok {
		return data
	}

	data, _ := jsonld.Hydration(p.html, pattern)
	p.hydration[pattern] = data
	return data
}

// selectTexts selector와 일치하는 요소들의 텍스트(attr이 지정되면 속성값)를 문서 순서대로 반환합니다.
func (p *page) selectTexts(selector, attr string) []string {
	doc := p.document()
	if doc == nil || selector == "" {
		return nil
	}

	var texts []string
	doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		var v string
		if attr != "" {
			v, _ = s.Attr(attr)
		} else {
			v = s.Text()
		}
		if v = strings.TrimSpace(v); v != "" {
			texts = append(texts, v)
		}
	})
	return texts
}

// headline <title>과 <h1> 텍스트입니다.
func (p *page) headline(withDescription bool) []string {
	texts := append(p.selectTexts("title", ""), p.selectTexts("h1", "")...)
	if withDescription {
		texts = append(texts, p.selectTexts(`meta[name="description"]`, "content")...)
	}
	return texts
}
