package extractor

import (
	"regexp"
)

// thaiWatsaduSpecRow "ข้อมูลเฉพาะสินค้า" 영역의 w-1/2 라벨/값 행에서 값을 읽습니다.
func thaiWatsaduSpecRow(label string) Rule {
	return re(FromHTML, `(?is)<div>`+regexp.QuoteMeta(label)+`</div>\s*</div>\s*<div[^>]*class="[^"]*w-1/2[^"]*"[^>]*>\s*<div>([^<]+)</div>`)
}

// thaiWatsaduDeliverySize 배송 정보의 "(ก)35 x (ย)67 x (ส)50" 표기입니다. 숫자와 라벨 사이에 React 주석이 끼어 있을 수 있습니다.
var thaiWatsaduDeliverySize = func() Rule {
	const c = `(?:<!--[^>]*-->)*`
	part := func(label string) string {
		return `\(` + c + label + c + `\)` + c + `([\d.]+)` + c
	}
	return re(FromHTML, `(?i)`+part("ก")+`\s*x\s*`+part("ย")+`\s*x\s*`+part("ส")).template("$1 x $2 x $3")
}()

var thaiWatsaduKnownBrands = []string{
	"MAKITA", "BOSCH", "DEWALT", "MILWAUKEE", "HITACHI", "TOSHIBA",
	"PHILIPS", "PANASONIC", "SAMSUNG", "LG", "SONY", "TCL", "HAIER",
	"ELECTROLUX", "MITSUBISHI", "DAIKIN", "CARRIER", "SHARP",
	"TOA", "BEGER", "NIPPON", "JOTUN", "DULUX",
	"AMERICAN STANDARD", "COTTO", "KOHLER", "GROHE", "TOTO",
	"YALE", "HAFELE", "SCHLAGE",
	"THE TREE", "ZD", "GTS", "SCG",
}

var thaiWatsaduTable = &Table{
	// JSON-LD의 sku는 오염된 경우가 많아 범용 규칙으로도 읽지 않습니다.
	NoFallback: map[Field]bool{FieldSKU: true},

	Fields: []FieldRules{
		// SKU는 URL에서만 읽습니다.
		{Field: FieldSKU, Rules: []Rule{
			re(FromURL, `-(\d{8})(?:\?|$)`),
			re(FromURL, `/sku/(\d+)`),
		}},
		{Field: FieldName, Rules: []Rule{
			ld("name"),
			sel(`h1[class*="product"][class*="name"]`),
			sel("h1"),
		}},
		{Field: FieldDescription, Rules: []Rule{
			ld("description"),
		}},
		{Field: FieldCategory, Rules: []Rule{
			sel(`a[class*="categoryBar_journeyNavText"]`),
			{From: FromCrumbs, Scan: ReverseSkipLast},
			sel(`nav[class*="breadcrumb"] a, ol[class*="breadcrumb"] a, ul[class*="breadcrumb"] a, div[class*="breadcrumb"] a`).scan(Reverse),
			ld("category").scan(Reverse),
		}},
		{Field: FieldDimensions, Rules: []Rule{
			thaiWatsaduSpecRow("ขนาด (กxลxส)(ซม.)"),
			thaiWatsaduSpecRow("ขนาด(กxลxส)(ซม.)"),
			thaiWatsaduSpecRow("ขนาดสินค้า (ซม.)"),
			re(FromHTML, `(?i)<div>(\d+\s*x\s*\d+\s*x\s*\d+)</div>`),
			thaiWatsaduDeliverySize,
			thaiWatsaduSpecRow("ขนาด"),
			thaiWatsaduSpecRow("น้ำหนัก (กก.)").template("$1 กก."),
			thaiWatsaduSpecRow("น้ำหนัก").template("$1 กก."),
		}},
		{Field: FieldMaterial, Rules: []Rule{
			thaiWatsaduSpecRow("วัสดุหลัก"),
			re(FromHTML, `(?i)>วัสดุหลัก</div></div><div[^>]*><div>([^<]+)</div>`),
			thaiWatsaduSpecRow("วัสดุ"),
		}},
		{Field: FieldBrand, Rules: []Rule{
			ld("brand.name", "brand"),
			thaiWatsaduSpecRow("แบรนด์"),
			thaiWatsaduSpecRow("ยี่ห้อ"),
			re(FromName, `([A-Z][A-Z0-9]+)\s+รุ่น`),
			Rule{From: FromName}.known(thaiWatsaduKnownBrands),
		}},
		{Field: FieldModel, Rules: []Rule{
			re(FromName, `รุ่น\s+([A-Za-z0-9\-_.]+)`),
			thaiWatsaduSpecRow("รุ่น"),
		}},
		{Field: FieldColor, Rules: []Rule{
			thaiWatsaduSpecRow("สี"),
			re(FromName, `สี([ก-๙a-zA-Z]+)`),
		}},
	},

	Prices: []PriceStage{
		{Mode: FirstMatch, Current: []Rule{ld("offers.price")}},
	},
	Plausibility: defaultPlausibility,

	Images: ImageRules{
		Rules: []Rule{ld("image.#.url", "image.url", "image")},
	},

	Skip: map[Field][]string{
		FieldCategory: {"หน้าแรก", "home", "สินค้า", "products", "ทั้งหมด", "all", "thaiwatsadu", "ไทวัสดุ"},
	},
	Deny: map[Field][]string{
		FieldMaterial: {
			"ครบเรื่องบ้าน", "ถูกและดี", "ไทวัสดุ", "thaiwatsadu",
			"บริษัท", "จำกัด", "มหาชน", "corporation", "company",
			"เซ็นทรัล", "central", "retail", "รีเทล",
			"ตกแต่ง", "อุปกรณ์", "ประตู", "หน้าต่าง", "บันได", "รั้ว", "สินค้า", "หมวดหมู่",
		},
	},
	MinLen: map[Field]int{
		FieldName: 4,
	},

	Cleanup: []string{"ครบเรื่องบ้าน ถูกและดี", "ครบเรื่องบ้าน", "ถูกและดี", "ไทวัสดุ", "thaiwatsadu"},
}

// ThaiWatsadu 타이와싸두(thaiwatsadu.com) 추출기를 반환합니다.
func ThaiWatsadu() *Extractor {
	return thaiWatsaduExtractor
}

var thaiWatsaduExtractor = newExtractor(KindThaiWatsadu, thaiWatsaduTable, genericTable)
