package extractor

import (
	"regexp"

	"github.com/darkkaiser/price-scraper/pkg/strutil"
)

const globalHouseASTData = "props.pageProps.ast.data"

// globalHouseAttribute __NEXT_DATA__ 상품 속성 목록에서 제목이 query와 일치하는 항목의 값을 읽습니다.
// query는 gjson 조건식입니다. 예: title=="รุ่น", title%"*กว้าง*"
func globalHouseAttribute(query string) Rule {
	return hydrated(globalHouseASTData + ".attributes.#(" + query + ").detail")
}

var leadingNumberRegexp = regexp.MustCompile(`[\d.]+`)

func leadingNumber(s string) string {
	return leadingNumberRegexp.FindString(s)
}

// globalHouseHighlights "คุณสมบัติเด่น" HTML 블록을 텍스트로 바꾸고 500자로 자릅니다.
func globalHouseHighlights(s string) string {
	return strutil.TruncateRunes(strutil.StripHTMLTags(s), 500)
}

var globalHouseTable = &Table{
	Fields: []FieldRules{
		{Field: FieldModel, Rules: []Rule{
			globalHouseAttribute(`title=="รุ่น"`),
		}},
		{Field: FieldDimensions, Rules: []Rule{
			composed(" cm", 1,
				globalHouseAttribute(`title%"*กว้าง*"`).post(leadingNumber),
				globalHouseAttribute(`title%"*ยาว*"`).post(leadingNumber),
				globalHouseAttribute(`title%"*สูง*"`).post(leadingNumber),
			),
		}},
		{Field: FieldDescription, Rules: []Rule{
			hydrated(globalHouseASTData + `.htmlContent.#(title=="คุณสมบัติเด่น").detail`).post(globalHouseHighlights),
			ld("description"),
		}},
		{Field: FieldName, Rules: []Rule{
			ld("name"),
			sel(`h1[class*="product"][class*="title"]`),
			sel(`h1[class*="pdp-title"]`),
			sel(`div[class*="product-title"]`),
			sel("h1"),
		}},
		{Field: FieldBrand, Rules: []Rule{
			ld("brand.name", "brand"),
			sel(`span[class*="brand"], a[class*="brand"]`),
			label(`ยี่ห้อ|แบรนด์`),
			re(FromURL, `/product/([A-Za-z0-9]+)-`),
		}},
		{Field: FieldSKU, Rules: []Rule{
			ld("sku"),
			re(FromURL, `-i\.(\d+)(?:\?|$)`),
		}},
		{Field: FieldCategory, Rules: []Rule{
			re(FromHTML, `<a[^>]*data-slot="breadcrumb-link"[^>]*title="([^"]+)"`).scan(Reverse),
		}},
		{Field: FieldColor, Rules: []Rule{
			re(FromName, `สี(\S+)`).prefix("สี"),
		}},
	},

	Prices: []PriceStage{
		{
			Mode: FirstMatch,
			Current: []Rule{
				ld("offers.price", "offers.0.price"),
				re(FromHTML, `(?is)<span[^>]*class="[^"]*text-3xl[^"]*text-red[^"]*"[^>]*>฿?([\d,]+)</span>`),
				re(FromHTML, `(?is)<span[^>]*class="[^"]*text-red[^"]*text-3xl[^"]*"[^>]*>฿?([\d,]+)</span>`),
				re(FromHTML, `(?is)<span[^>]*class="[^"]*font-bold[^"]*text-3xl[^"]*"[^>]*>฿?([\d,]+)</span>`),
				re(FromHTML, `(?is)<span[^>]*class="[^"]*text-(?:2|3)xl[^"]*"[^>]*>฿?([\d,]+)</span>`),
				sel(`span[class*="price"][class*="final"]`),
				sel(`span[class*="selling-price"]`),
				sel(`div[class*="product-price"]`),
				re(FromMarkup, `ราคา[:\s]*(฿?[\d,]+\.?\d*)`),
			},
			Original: []Rule{
				re(FromHTML, `(?is)<span[^>]*class="[^"]*line-through[^"]*"[^>]*>฿?([\d,]+)</span>`),
				re(FromMarkup, `(?s)ราคาเดิม.*?฿?([\d,]+)`),
				sel(`span[class*="price"][class*="original"]`),
				sel(`span[class*="was-price"]`),
				sel("del"),
				re(FromMarkup, `ราคาปกติ[:\s]*(฿?[\d,]+\.?\d*)`),
			},
		},
	},
	Plausibility: defaultPlausibility,

	Images: ImageRules{
		Rules: []Rule{
			ld("image.#.url", "image.url", "image"),
			re(FromHTML, `https://www\.image-gbh\.com/uploads/[^"&\s]+\.(?:jpg|jpeg|png)`),
		},
	},

	Skip: map[Field][]string{
		FieldCategory: {"หน้าแรก", "หมวดหมู่", "สินค้า"},
	},
	Deny: map[Field][]string{
		FieldName: {"global house"},
	},
	MinLen: map[Field]int{
		FieldName:        4,
		FieldDescription: 11,
		FieldCategory:    3,
		FieldVolume:      3,
		FieldDimensions:  5,
	},
}

// GlobalHouse 글로벌하우스(globalhouse.co.th) 추출기를 반환합니다.
func GlobalHouse() *Extractor {
	return globalHouseExtractor
}

var globalHouseExtractor = newExtractor(KindGlobalHouse, globalHouseTable, genericTable)
