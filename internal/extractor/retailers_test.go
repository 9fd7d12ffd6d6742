package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Thai Watsadu
// =============================================================================

func TestThaiWatsadu_Extract(t *testing.T) {
	t.Parallel()

	html := htmlPage(
		ldScript(`{"@type":"Product","name":"สว่านไฟฟ้า BOSCH รุ่น GSB-550 สีน้ำเงิน - ไทวัสดุ","sku":"SHOULD-NOT-USE","offers":{"price":1290}}`)+
			ldScript(`{"@type":"BreadcrumbList","itemListElement":[`+
				`{"position":1,"name":"หน้าแรก"},{"position":2,"name":"เครื่องมือช่าง"},`+
				`{"position":3,"name":"สว่าน"},{"position":4,"name":"สว่านไฟฟ้า BOSCH"}]}`),
		`<div class="flex"><div class="w-1/2"><div>ขนาด (กxลxส)(ซม.)</div></div>`+
			`<div class="w-1/2"><div>18 x 2 x 13</div></div></div>`,
	)

	p := ThaiWatsadu().Extract(html, "https://www.thaiwatsadu.com/th/product/drill-60272160")
	require.NotNil(t, p)

	assert.Equal(t, "สว่านไฟฟ้า BOSCH รุ่น GSB-550 สีน้ำเงิน", p.Name)
	assert.Equal(t, "60272160", p.SKU)
	assert.Equal(t, "BOSCH", p.Brand)
	assert.Equal(t, "GSB-550", p.Model)
	assert.Equal(t, "น้ำเงิน", p.Color)
	assert.Equal(t, "สว่าน", p.Category)
	assert.Equal(t, "18 x 2 x 13", p.Dimensions)
	require.NotNil(t, p.CurrentPrice)
	assert.Equal(t, 1290.0, *p.CurrentPrice)
	assert.Equal(t, "Thai Watsadu", p.Retailer)
	assert.Equal(t, KindThaiWatsadu, p.Kind)
}

func TestThaiWatsadu_DeliverySize(t *testing.T) {
	t.Parallel()

	html := htmlPage("",
		`<h1>กล่องพลาสติก 50 ลิตร</h1>`+
			`<p>(<!-- -->ก<!-- -->)<!-- -->35<!-- --> x (<!-- -->ย<!-- -->)<!-- -->67<!-- --> x (<!-- -->ส<!-- -->)<!-- -->50</p>`,
	)

	p := ThaiWatsadu().Extract(html, "https://www.thaiwatsadu.com/th/sku/60001234")
	require.NotNil(t, p)

	assert.Equal(t, "35 x 67 x 50", p.Dimensions)
	assert.Equal(t, "60001234", p.SKU)
}

func TestThaiWatsadu_SKUOnlyFromURL(t *testing.T) {
	t.Parallel()

	html := htmlPage(
		ldScript(`{"@type":"Product","name":"ถังน้ำพลาสติก 20 ลิตร","sku":"CONTAM01","offers":{"price":159}}`),
		"",
	)

	p := ThaiWatsadu().Extract(html, "https://www.thaiwatsadu.com/th/product/abc")
	require.NotNil(t, p)

	assert.Empty(t, p.SKU, "URL에 SKU가 없으면 JSON-LD의 sku로 대체하지 않아야 합니다")
	assert.Equal(t, "ถังน้ำพลาสติก 20 ลิตร", p.Name)
	assert.True(t, ThaiWatsadu().Table().NoFallback[FieldSKU])
	assert.False(t, ThaiWatsadu().Table().NoFallback[FieldName])
}

// =============================================================================
// HomePro
// =============================================================================

func TestHomePro_Extract(t *testing.T) {
	t.Parallel()

	html := htmlPage(
		ldScript(`{"@type":"Product","name":"สว่านไร้สาย MAKITA 18V",`+
			`"image":["https://cdn.homepro.co.th/ART_IMAGE/12/345/1.jpg","https://other.example.com/x.jpg"],`+
			`"offers":{"price":"2590"}}`),
		`<table>`+
			`<tr><td>ความกว้าง (ซม.)</td><td>60</td></tr>`+
			`<tr><td>ความลึก (ซม.)</td><td>45</td></tr>`+
			`<tr><td>ความสูง (ซม.)</td><td>80</td></tr>`+
			`<tr><td>รุ่น</td><td>อื่นๆ</td></tr>`+
			`</table>`,
	)

	p := HomePro().Extract(html, "https://www.homepro.co.th/p/1234567")
	require.NotNil(t, p)

	assert.Equal(t, "1234567", p.SKU)
	assert.Equal(t, "สว่านไร้สาย MAKITA 18V", p.Name)
	assert.Equal(t, "MAKITA", p.Brand)
	assert.Equal(t, "60 x 45 x 80 cm", p.Dimensions)
	assert.Empty(t, p.Model, "placeholder model value must be skipped")
	assert.Equal(t, []string{"https://cdn.homepro.co.th/ART_IMAGE/12/345/1.jpg"}, p.Images)
	require.NotNil(t, p.CurrentPrice)
	assert.Equal(t, 2590.0, *p.CurrentPrice)
	assert.Nil(t, p.OriginalPrice)
	assert.Equal(t, "HomePro", p.Retailer)
}

func TestHomePro_FallbackPricePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want *float64
	}{
		{
			name: "용량과 같은 값은 가격이 아님",
			body: `<h1>ถังน้ำ 500 ลิตร</h1><span class="price">500</span>`,
			want: nil,
		},
		{
			name: "일반 가격은 허용",
			body: `<h1>ถังน้ำพลาสติก</h1><span class="price">359</span>`,
			want: ptr(359.0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := HomePro().Extract(htmlPage("", tt.body), "https://www.homepro.co.th/p/1000001")
			require.NotNil(t, p)
			assert.Equal(t, tt.want, p.CurrentPrice)
		})
	}
}

// =============================================================================
// Boonthavorn
// =============================================================================

func TestBoonthavorn_Extract(t *testing.T) {
	t.Parallel()

	html := htmlPage(
		ldScript(`{"@type":"Product","name":"ก๊อกน้ำ รุ่น KF-200 สแตนเลส","brand":{"@type":"Brand","name":"KARAT"},"sku":"BTV-889","offers":{"price":"890"}}`),
		`<a class="breadcrumbs-link-mHX" href="/">หน้าแรก</a>`+
			`<a class="breadcrumbs-link-mHX" href="/c/faucet">ก๊อกน้ำ</a>`+
			`<label class="quickInfo-infoLabel-WkG">สี</label><label class="quickInfo-infoValue-NpP">โครเมียม</label>`+
			`<div class="productPrice-oldPrice-abc"><span class="price-currency-x">บาท</span>`+
			`<span>1</span><span>,</span><span>290</span></div>`,
	)

	p := Boonthavorn().Extract(html, "https://www.boonthavorn.com/karat-faucet")
	require.NotNil(t, p)

	assert.Equal(t, "ก๊อกน้ำ รุ่น KF-200 สแตนเลส", p.Name)
	assert.Equal(t, "KARAT", p.Brand)
	assert.Equal(t, "BTV-889", p.SKU)
	assert.Equal(t, "KF-200", p.Model)
	assert.Equal(t, "โครเมียม", p.Color)
	assert.Equal(t, "ก๊อกน้ำ", p.Category)
	require.NotNil(t, p.CurrentPrice)
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, 890.0, *p.CurrentPrice)
	assert.Equal(t, 1290.0, *p.OriginalPrice)
	assert.Equal(t, "Boonthavorn", p.Retailer)
}

func TestJoinSpanDigits(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "1290", joinSpanDigits("<span>1</span><span>,</span><span>290</span>"))
	assert.Equal(t, "99.50", joinSpanDigits(" 99.50 "))
}

// =============================================================================
// Mega Home
// =============================================================================

func TestMegaHome_Extract(t *testing.T) {
	t.Parallel()

	html := `<html><body><div class="prd-name"><h1>Widget NO.2000 สีดำ</h1></div></body></html>`

	p := MegaHome().Extract(html, "https://www.megahome.co.th/p/123456")
	require.NotNil(t, p)

	assert.Equal(t, "Widget NO.2000 สีดำ", p.Name)
	assert.Equal(t, "123456", p.SKU)
	assert.Equal(t, "2000", p.Model)
	assert.Contains(t, p.Color, "ดำ")
	assert.Equal(t, "Mega Home", p.Retailer)
	assert.Equal(t, KindMegaHome, p.Kind)
	assert.Nil(t, p.CurrentPrice)
}

func TestMegaHome_SpecRowsAndPrices(t *testing.T) {
	t.Parallel()

	html := htmlPage("",
		`<div class="prd-name"><h1>ตู้เก็บของ 3 ชั้น</h1></div>`+
			`<div class="prd-brand"><a href="/brand/b">STACKO</a></div>`+
			`<table>`+
			`<tr class="pdp-HT_WIDTH"><td>กว้าง</td><td>40</td></tr>`+
			`<tr class="pdp-HT_HEIGHT"><td>สูง</td><td>90</td></tr>`+
			`<tr class="pdp-HT_COLOR"><td>สี</td><td>ขาว</td></tr>`+
			`</table>`+
			`<div class="discount-price"><span class="amount">1,590</span></div>`+
			`<div class="original-price"><span class="amount">1,990</span></div>`+
			`<img id="image-index-0" src="https://img.megahome.co.th/a.jpg">`,
	)

	p := MegaHome().Extract(html, "https://www.megahome.co.th/p/777")
	require.NotNil(t, p)

	assert.Equal(t, "STACKO", p.Brand)
	assert.Equal(t, "ขาว", p.Color)
	assert.Equal(t, "40 x 90 cm", p.Dimensions)
	require.NotNil(t, p.CurrentPrice)
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, 1590.0, *p.CurrentPrice)
	assert.Equal(t, 1990.0, *p.OriginalPrice)
	assert.Equal(t, []string{"https://img.megahome.co.th/a.jpg"}, p.Images)
}

// =============================================================================
// DoHome
// =============================================================================

func TestDoHome_Extract(t *testing.T) {
	t.Parallel()

	html := htmlPage("",
		`<h1>สีรองพื้นปูน NIPPON</h1>`+
			`<a href="/brand/nippon">NIPPON</a>`+
			`<a href="/category/paint">สีทาบ้าน</a>`+
			`<span class="text-3xl font-semibold">฿1,090.00</span>`+
			`<span class="old-price">฿1,290.00</span>`+
			`<script>self.__next_f.push([1,"{\"dimension\":{\"width\":29.6,\"long\":20,\"high\":35,\"weight\":2.5},\"productModel\":\"NP-100\"}"])</script>`,
	)

	p := DoHome().Extract(html, "https://www.dohome.co.th/th/product/nippon-primer-10026550")
	require.NotNil(t, p)

	assert.Equal(t, "สีรองพื้นปูน NIPPON", p.Name)
	assert.Equal(t, "NIPPON", p.Brand)
	assert.Equal(t, "สีทาบ้าน", p.Category)
	assert.Equal(t, "10026550", p.SKU)
	assert.Equal(t, "29.6 x 20 x 35 cm", p.Dimensions)
	assert.Equal(t, "2.5 kg", p.Volume)
	assert.Equal(t, "NP-100", p.Model)
	require.NotNil(t, p.CurrentPrice)
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, 1090.0, *p.CurrentPrice)
	assert.Equal(t, 1290.0, *p.OriginalPrice)
	assert.Equal(t, "DoHome", p.Retailer)
}

// =============================================================================
// Global House
// =============================================================================

func TestGlobalHouse_Extract(t *testing.T) {
	t.Parallel()

	nextData := `{"props":{"pageProps":{"ast":{"data":{` +
		`"attributes":[{"title":"รุ่น","detail":"MZ-1"},{"title":"ความกว้าง (ซม.)","detail":"40 ซม."},` +
		`{"title":"ความยาว (ซม.)","detail":"50"},{"title":"ความสูง (ซม.)","detail":"60"}],` +
		`"htmlContent":[{"title":"คุณสมบัติเด่น","detail":"<ul><li>ทนทาน ใช้งานได้ยาวนาน</li></ul>"}]` +
		`}}}}}`

	html := htmlPage(
		`<script id="__NEXT_DATA__" type="application/json">`+nextData+`</script>`,
		`<a data-slot="breadcrumb-link" href="/" title="หน้าแรก">หน้าแรก</a>`+
			`<a data-slot="breadcrumb-link" href="/c/1" title="เครื่องทำน้ำอุ่น">เครื่องทำน้ำอุ่น</a>`+
			`<h1 class="product-title">เครื่องทำน้ำอุ่น MAZUMA สีขาว</h1>`+
			`<span class="text-3xl text-red-600">฿3,990</span>`+
			`<span class="line-through">฿4,590</span>`,
	)

	p := GlobalHouse().Extract(html, "https://globalhouse.co.th/product/MAZUMA-water-heater-i.8852163012022")
	require.NotNil(t, p)

	assert.Equal(t, "MZ-1", p.Model)
	assert.Equal(t, "40 x 50 x 60 cm", p.Dimensions)
	assert.Equal(t, "ทนทาน ใช้งานได้ยาวนาน", p.Description)
	assert.Equal(t, "เครื่องทำน้ำอุ่น MAZUMA สีขาว", p.Name)
	assert.Equal(t, "MAZUMA", p.Brand)
	assert.Equal(t, "8852163012022", p.SKU)
	assert.Equal(t, "เครื่องทำน้ำอุ่น", p.Category)
	assert.Equal(t, "สีขาว", p.Color)
	require.NotNil(t, p.CurrentPrice)
	require.NotNil(t, p.OriginalPrice)
	assert.Equal(t, 3990.0, *p.CurrentPrice)
	assert.Equal(t, 4590.0, *p.OriginalPrice)
	assert.Equal(t, "Global House", p.Retailer)
}

func TestLeadingNumber(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "40", leadingNumber("40 ซม."))
	assert.Equal(t, "12.5", leadingNumber("ประมาณ 12.5"))
	assert.Empty(t, leadingNumber("ไม่มี"))
}

func ptr(v float64) *float64 {
	return &v
}
