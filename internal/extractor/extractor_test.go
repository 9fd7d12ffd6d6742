package extractor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/darkkaiser/price-scraper/internal/extractor/sanitize"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ldScript(body string) string {
	return `<script type="application/ld+json">` + body + `</script>`
}

func htmlPage(head, body string) string {
	return "<html><head>" + head + "</head><body>" + body + "</body></html>"
}

// textFields 정제 대상 텍스트 필드를 이름과 함께 나열합니다.
func textFields(p *ProductData) map[string]string {
	return map[string]string{
		"name":        p.Name,
		"description": p.Description,
		"brand":       p.Brand,
		"model":       p.Model,
		"sku":         p.SKU,
		"category":    p.Category,
		"dimensions":  p.Dimensions,
		"material":    p.Material,
		"color":       p.Color,
		"volume":      p.Volume,
	}
}

// =============================================================================
// 범용 추출기
// =============================================================================

func TestGeneric_EmptyHTML(t *testing.T) {
	t.Parallel()

	assert.Nil(t, Generic().Extract("", "https://example.com/p/1"))
	assert.Nil(t, Generic().Extract("  \n ", "https://example.com/p/1"))
}

func TestGeneric_JSONLDLamp(t *testing.T) {
	t.Parallel()

	html := htmlPage(ldScript(`{"@type":"Product","name":"Lamp","offers":{"price":"199.00"}}`), "")

	p := Generic().Extract(html, "https://shop.example.com/lamp")
	require.NotNil(t, p)

	assert.Equal(t, "Lamp", p.Name)
	require.NotNil(t, p.CurrentPrice)
	assert.Equal(t, 199.0, *p.CurrentPrice)
	assert.Nil(t, p.OriginalPrice)
	assert.Equal(t, "Example", p.Retailer)
	assert.Equal(t, KindGeneric, p.Kind)
}

func TestGeneric_TwoPriceHeuristic(t *testing.T) {
	t.Parallel()

	html := htmlPage("", `<h1>Paint Bucket</h1><span class="price">350</span><span class="price">500</span>`)

	p := Generic().Extract(html, "https://example.com/x")
	require.NotNil(t, p)
	require.NotNil(t, p.CurrentPrice)
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, 350.0, *p.CurrentPrice)
	assert.Equal(t, 500.0, *p.OriginalPrice)
}

func TestGeneric_JSONLDHighPrice(t *testing.T) {
	t.Parallel()

	html := htmlPage(ldScript(`{"@graph":[{"@type":"Product","name":"Garden Hose","offers":[{"price":450,"highPrice":590}]}]}`), "")

	p := Generic().Extract(html, "https://example.com/hose")
	require.NotNil(t, p)
	require.NotNil(t, p.CurrentPrice)
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, 450.0, *p.CurrentPrice)
	assert.Equal(t, 590.0, *p.OriginalPrice)
}

func TestGeneric_Brand(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "brand 클래스 요소",
			body: `<h1>Philips LED Bulb 9W</h1><span class="brand">PHILIPS</span>`,
			want: "PHILIPS",
		},
		{
			name: "JSON 조각이 섞인 값",
			body: `<h1>Philips LED Bulb 9W</h1><span class="brand">{"@type":"Brand","name":"x"} PHILIPS</span>`,
			want: "PHILIPS",
		},
		{
			name: "마크업 라벨",
			body: `<h1>หลอดไฟ LED</h1><p>ยี่ห้อ: PHILIPS</p>`,
			want: "PHILIPS",
		},
		{
			name: "제목의 첫 두 단어",
			body: `<h1>Stanley Hammer 16oz</h1>`,
			want: "Stanley Hammer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Generic().Extract(htmlPage("", tt.body), "https://example.com/x")
			require.NotNil(t, p)
			assert.Equal(t, tt.want, p.Brand)
		})
	}
}

func TestGeneric_NameFilters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		head string
		body string
		want string
	}{
		{"판매처 이름 접두사 제거", "", `<h1>HomePro Cordless Drill</h1>`, "Cordless Drill"},
		{"판매처 이름만 있으면 다음 규칙", "<title>Electric Kettle</title>", `<h1>Lazada</h1>`, "Electric Kettle"},
		{"너무 짧은 이름", "", `<h1>Box</h1>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Generic().Extract(htmlPage(tt.head, tt.body), "https://example.com/x")
			require.NotNil(t, p)
			assert.Equal(t, tt.want, p.Name)
		})
	}
}

func TestGeneric_SanitizedOutput(t *testing.T) {
	t.Parallel()

	html := htmlPage(
		`<title>{"name":"x"} Drill</title>`+
			`<meta name="description" content='Great drill with "quotes" and class="x" style="color:red" more text here'>`,
		`<h1 class="product-title">Cordless <b>Drill</b> [promo] 18V</h1>`+
			`<span class="brand">{"@type":"Brand"} BOSCH</span>`+
			`<span class="sku">https://example.com/product/123</span>`+
			`<span class="model">&lt;div&gt;</span>`+
			`<p>สี: <span style="color:#fff">ดำ</span></p>`+
			`<p>วัสดุ: {"a":1} เหล็ก</p>`,
	)

	p := Generic().Extract(html, "https://example.com/item/ABC-123")
	require.NotNil(t, p)

	assert.Equal(t, "Cordless Drill 18V", p.Name)
	assert.Equal(t, "ABC-123", p.SKU)
	for field, v := range textFields(p) {
		assert.False(t, sanitize.ContainsForbidden(v), "%s: %q", field, v)
		assert.NotContains(t, strings.ToLower(v), "http", field)
	}
}

func TestGeneric_UnparseablePage(t *testing.T) {
	t.Parallel()

	p := Generic().Extract("<html><body><p>nothing</p></body></html>", "https://www.example.co.th/about")
	require.NotNil(t, p)

	assert.Equal(t, []string{"url", "retailer"}, p.PopulatedFields())
	assert.Equal(t, "Co", p.Retailer)
}

func TestGeneric_Idempotent(t *testing.T) {
	t.Parallel()

	html := htmlPage(
		ldScript(`{"@type":"Product","name":"Water Pump","brand":{"name":"MITSUBISHI"},"sku":"WP-205","image":["/img/a.jpg","/img/b.jpg"],"offers":{"price":"4,590"}}`),
		`<nav class="breadcrumb"><a>Home</a><a>Pumps</a><a>Water Pump</a></nav><p>ขนาด 35 x 67 x 50 cm</p>`,
	)

	first := Generic().Extract(html, "https://example.com/pump")
	second := Generic().Extract(html, "https://example.com/pump")
	assert.Equal(t, first, second)

	assert.Equal(t, "MITSUBISHI", first.Brand)
	assert.Equal(t, "WP-205", first.SKU)
	assert.Equal(t, "Pumps", first.Category)
	assert.Equal(t, "35 x 67 x 50 cm", first.Dimensions)
	assert.Equal(t, []string{"https://example.com/img/a.jpg", "https://example.com/img/b.jpg"}, first.Images)
}

// =============================================================================
// 이미지
// =============================================================================

func TestGeneric_Images(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(`<img class="product" src="data:image/png;base64,AAAA">`)
	b.WriteString(`<img class="product" src="javascript:void(0)">`)
	b.WriteString(`<img class="product" src="mailto:shop@example.com">`)
	for i := 1; i <= 15; i++ {
		fmt.Fprintf(&b, `<img class="product-img" src="/img/%d.jpg">`, i)
	}
	b.WriteString(`<img class="product-img" src="/img/1.jpg">`)

	p := Generic().Extract(htmlPage("", b.String()), "https://example.com/items/1")
	require.NotNil(t, p)

	require.Len(t, p.Images, MaxImages)
	assert.Equal(t, "https://example.com/img/1.jpg", p.Images[0])
	for _, u := range p.Images {
		assert.True(t, strings.HasPrefix(u, "https://example.com/img/"), u)
	}
}

func TestResolveImageURL(t *testing.T) {
	t.Parallel()

	base := newPage("<html></html>", "https://example.com/a/b").base

	tests := []struct {
		raw  string
		want string
	}{
		{"https://cdn.example.com/x.jpg", "https://cdn.example.com/x.jpg"},
		{"/x.jpg", "https://example.com/x.jpg"},
		{"c.jpg", "https://example.com/a/c.jpg"},
		{"//cdn.example.com/y.png", "https://cdn.example.com/y.png"},
		{"data:image/gif;base64,R0lG", ""},
		{"tel:021234567", ""},
		{"JavaScript:alert(1)", ""},
		{"ftp://example.com/z.jpg", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveImageURL(base, tt.raw))
		})
	}

	assert.Empty(t, resolveImageURL(nil, "/x.jpg"))
}

// =============================================================================
// 보조 함수
// =============================================================================

func TestInferRetailer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"", "Unknown Retailer"},
		{"not a url", "Unknown Retailer"},
		{"https://www.homepro.co.th/p/1", "HomePro"},
		{"https://www.banana-it.com/x", "Banana IT"},
		{"https://powerbuy.co.th/th/product", "Power Buy"},
		{"https://www.example.com/x", "Example"},
		{"https://localhost:8080/x", "Localhost"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, InferRetailer(tt.url))
		})
	}
}

func TestStripRetailerPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Cordless Drill", stripRetailerPrefix("HomePro Cordless Drill"))
	assert.Equal(t, "พัดลม", stripRetailerPrefix("Global House พัดลม"))
	assert.Equal(t, "Homeprotector", stripRetailerPrefix("Homeprotector"))
}

func TestLastSegment(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "สว่าน", lastSegment("หน้าแรก > เครื่องมือช่าง > สว่าน"))
	assert.Equal(t, "สว่าน", lastSegment("หน้าแรก > สว่าน >"))
	assert.Equal(t, "Tools", lastSegment("Tools"))
}

func TestProductData_PopulatedFields(t *testing.T) {
	t.Parallel()

	v := 10.0
	p := &ProductData{URL: "u", Name: "n", SKU: "s", CurrentPrice: &v, Images: []string{"i"}}
	assert.Equal(t, []string{"url", "name", "sku", "current_price", "images"}, p.PopulatedFields())
	assert.Empty(t, (&ProductData{}).PopulatedFields())
}

func TestScanOrder(t *testing.T) {
	t.Parallel()

	values := []string{"a", "b", "c"}
	assert.Equal(t, []string{"a", "b", "c"}, scanOrder(values, Forward))
	assert.Equal(t, []string{"c", "b", "a"}, scanOrder(values, Reverse))
	assert.Equal(t, []string{"b", "a"}, scanOrder(values, ReverseSkipLast))
	assert.Equal(t, []string{"a"}, scanOrder([]string{"a"}, ReverseSkipLast))
	assert.Equal(t, []string{"a", "b", "c"}, values)
}

func TestCompose(t *testing.T) {
	t.Parallel()

	p := newPage(`<td>W</td><td>60</td><td>H</td><td>80</td>`, "")

	width := re(FromHTML, `<td>W</td><td>(\d+)</td>`)
	depth := re(FromHTML, `<td>D</td><td>(\d+)</td>`)
	height := re(FromHTML, `<td>H</td><td>(\d+)</td>`)

	assert.Equal(t, []string{"60 x 80 cm"}, composed(" cm", 2, width, depth, height).candidates(p, nil))
	assert.Nil(t, composed(" cm", 3, width, depth, height).candidates(p, nil))
}
