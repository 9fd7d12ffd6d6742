package extractor

import (
	"github.com/darkkaiser/price-scraper/internal/extractor/price"
)

// homeProSpecRow 상품 사양 표의 <td>라벨</td><td>값</td> 행에서 숫자 값을 읽습니다.
func homeProSpecRow(label string) Rule {
	return re(FromHTML, `(?is)<td[^>]*>`+label+`[^<]*</td>\s*<td[^>]*>([\d.]+)</td>`)
}

// homeProSpecText 상품 사양 표에서 라벨이 정확히 일치하는 행의 텍스트 값을 읽습니다.
func homeProSpecText(label string) Rule {
	return re(FromHTML, `(?is)<td[^>]*>`+label+`</td>\s*<td[^>]*>([^<]+)</td>`)
}

var homeProKnownBrands = []string{
	"HG", "KARCHER", "BOSCH", "MAKITA", "DEWALT", "MILWAUKEE", "STANLEY",
	"BLACK+DECKER", "PHILIPS", "PANASONIC", "TOSHIBA", "LG", "SAMSUNG",
	"ELECTROLUX", "MITSUBISHI", "DAIKIN", "HITACHI", "SHARP", "HAIER",
	"TOA", "BEGER", "NIPPON", "JOTUN", "DULUX",
	"COTTO", "AMERICAN STANDARD", "KOHLER", "GROHE", "TOTO",
	"YALE", "HAFELE", "SCHLAGE", "SCG", "3M", "SCOTCH-BRITE",
}

var homeProFallbackPlausibility = price.Plausibility{
	Range:               price.Range{Min: 10, Max: 50000},
	RejectCommonVolumes: true,
	RejectNameVolumes:   true,
}

var homeProTable = &Table{
	Fields: []FieldRules{
		{Field: FieldSKU, Rules: []Rule{
			re(FromURL, `/p/(\d+)`),
			ld("sku"),
		}},
		{Field: FieldName, Rules: []Rule{
			ld("name"),
			sel(`h1[class*="product"][class*="name"]`),
			sel(`h1[class*="pdp"]`),
			sel("h1"),
		}},
		{Field: FieldDescription, Rules: []Rule{
			ld("description"),
		}},
		{Field: FieldCategory, Rules: []Rule{
			sel(`nav[class*="breadcrumb"] a, div[class*="breadcrumb"] a, ol[class*="breadcrumb"] a`).scan(ReverseSkipLast),
			sel(`nav[class*="breadcrumb"] span, div[class*="breadcrumb"] span, ol[class*="breadcrumb"] span`).scan(ReverseSkipLast),
		}},
		{Field: FieldDimensions, Rules: []Rule{
			composed(" cm", 2,
				homeProSpecRow("ความกว้าง"),
				homeProSpecRow("ความลึก"),
				homeProSpecRow("ความสูง"),
			),
		}},
		{Field: FieldVolume, Rules: []Rule{
			re(FromHTML, `(?is)<td[^>]*>ขนาดสินค้า</td>\s*<td[^>]*>([^<]*\d+\s*(?:ml|l|ลิตร|มล)[^<]*)</td>`),
			homeProSpecRow("น้ำหนัก").template("$1 kg"),
		}},
		{Field: FieldColor, Rules: []Rule{
			homeProSpecText("สี"),
		}},
		{Field: FieldBrand, Rules: []Rule{
			ld("brand.name", "brand"),
			homeProSpecText("ยี่ห้อ"),
			Rule{From: FromName}.known(homeProKnownBrands),
			re(FromName, `\b([A-Z][A-Z0-9+\-]{1,15})\b`),
		}},
		{Field: FieldModel, Rules: []Rule{
			homeProSpecText("รุ่น"),
		}},
	},

	Prices: []PriceStage{
		{
			Mode: FirstMatch,
			Current: []Rule{
				ld("offers.price"),
				re(FromHTML, `(?is)<input[^>]*id=["']gtmPrice-\d+["'][^>]*value=["']([\d.]+)["']`),
				re(FromHTML, `(?is)<span[^>]*class=["']amount["'][^>]*>([\d,]+)</span>`),
				re(FromHTML, `(?is)<div[^>]*class=["'](?:price|offer-price)["'][^>]*>\s*฿\s*([\d,]+)`),
				re(FromHTML, `(?is)฿\s*([\d,]+(?:\.\d{2})?)\s*</span>`),
				re(FromHTML, `(?is)฿\s*([\d,]+(?:\.\d{2})?)\s*</div>`),
				meta("product:price:amount"),
			},
			Original: []Rule{
				re(FromHTML, `(?is)<div[^>]*class=["']original-price["'][^>]*>.*?<span[^>]*class=["']amount["'][^>]*>([\d,]+)</span>`),
				re(FromHTML, `(?is)<div[^>]*class=["']original-price["'][^>]*>\s*([\d,]+)`),
				re(FromHTML, `(?is)<span[^>]*class="[^"]*line-through[^"]*"[^>]*>.*?฿?\s*([\d,]+)`),
				re(FromHTML, `(?is)<del[^>]*>.*?฿?\s*([\d,]+)`),
				re(FromHTML, `ราคาปกติ[:\s]*฿?\s*([\d,]+)`),
			},
		},
	},
	Plausibility:         price.Plausibility{Range: price.Range{Min: 1, Max: 100000}},
	FallbackPlausibility: &homeProFallbackPlausibility,

	Images: ImageRules{
		Rules: []Rule{
			ld("image.#.url", "image.url", "image"),
			re(FromHTML, `<img[^>]*src="(https://cdn\.homepro\.co\.th/ART_IMAGE[^"]+)"`),
			re(FromHTML, `"(https://cdn\.homepro\.co\.th/ART_IMAGE[^"]+)"`),
		},
		Must: []string{"cdn.homepro.co.th", "ART_IMAGE"},
	},

	Skip: map[Field][]string{
		FieldCategory: {"หน้าแรก", "home", "homepro", "โฮมโปร", "สินค้า", "products"},
		FieldModel:    {"อื่น", "อื่นๆ", "other", "others", "-", "n/a", "na", "none"},
		FieldBrand:    {"ML", "CM", "MM", "KG", "G", "L", "M", "W", "V", "HP"},
	},
	Deny: map[Field][]string{
		FieldColor: {
			"margin", "padding", "px", "rem", "em", "font", "color:", "background", "border",
			"display", "position", "width", "height", "ศูนย์การตั้งค่า", "ความเป็นส่วนตัว",
		},
	},
	MinLen: map[Field]int{
		FieldName: 4,
	},

	Cleanup: []string{"กรุณากดยืนยันเพื่อออกจากระบบ", "ศูนย์การตั้งค่าความเป็นส่วนตัว", "homepro", "home pro", "โฮมโปร"},
}

// HomePro 홈프로(homepro.co.th) 추출기를 반환합니다.
func HomePro() *Extractor {
	return homeProExtractor
}

var homeProExtractor = newExtractor(KindHomePro, homeProTable, genericTable)
