package extractor

import (
	"regexp"
)

// boonthavornQuickInfo 상품 요약 영역의 quickInfo 라벨/값 쌍에서 값을 읽습니다.
func boonthavornQuickInfo(label string) Rule {
	return re(FromHTML, `class="quickInfo-infoLabel-[^"]+">`+regexp.QuoteMeta(label)+`</label><label class="quickInfo-infoValue-[^"]+">([^<]+)</label>`)
}

var spanDigitsRegexp = regexp.MustCompile(`<[^>]+>|,|\s`)

// joinSpanDigits "<span>1</span><span>,</span><span>290</span>" 처럼 글자 단위로 쪼개진 가격을 "1290"으로 합칩니다.
func joinSpanDigits(s string) string {
	return spanDigitsRegexp.ReplaceAllString(s, "")
}

var boonthavornTable = &Table{
	Fields: []FieldRules{
		{Field: FieldName, Rules: []Rule{
			ld("name"),
		}},
		{Field: FieldDescription, Rules: []Rule{
			ld("description"),
		}},
		{Field: FieldBrand, Rules: []Rule{
			ld("brand.name", "brand"),
			boonthavornQuickInfo("ยี่ห้อ"),
		}},
		{Field: FieldSKU, Rules: []Rule{
			ld("sku"),
			boonthavornQuickInfo("รหัสสินค้า"),
			re(FromURL, `-(\d+)$`),
			re(FromURL, `/product/([^/]+)`),
			re(FromURL, `/item/([^/]+)`),
		}},
		{Field: FieldColor, Rules: []Rule{
			boonthavornQuickInfo("สี"),
		}},
		{Field: FieldDimensions, Rules: []Rule{
			boonthavornQuickInfo("ขนาดสินค้า"),
		}},
		{Field: FieldVolume, Rules: []Rule{
			boonthavornQuickInfo("น้ำหนัก"),
			re(FromHTML, `(?is)productAttributes-name[^>]*>น้ำหนัก</span>.*?richContent-root[^>]*>([^<]+)</div>`),
			re(FromHTML, `(?is)น้ำหนัก[:\s]*([0-9.]+\s*(?:KG|กก\.|กิโลกรัม))`),
			re(FromHTML, `(?is)>น้ำหนัก<[^>]*>[^<]*<[^>]*>([^<]+(?:KG|กก))`),
			re(FromHTML, `(?is)weight[:\s]*([0-9.]+\s*kg)`),
		}},
		{Field: FieldCategory, Rules: []Rule{
			re(FromHTML, `<a[^>]*class="breadcrumbs-link-[^"]*"[^>]*>([^<]+)</a>`).scan(Reverse),
		}},
		{Field: FieldModel, Rules: []Rule{
			re(FromName, `รุ่น\s+([A-Za-z0-9\-_\s]+)`),
			re(FromDescription, `รุ่น\s+([A-Za-z0-9\-_\s]+)`),
		}},
	},

	Prices: []PriceStage{
		{
			Mode:    FirstMatch,
			Current: []Rule{ld("offers.price", "offers.0.price")},
			Original: []Rule{
				re(FromHTML, `(?s)productPrice-oldPrice.*?price-currency-[^>]+>บาท</span>((?:<span>[^<]+</span>)+)`).post(joinSpanDigits),
			},
		},
	},
	Plausibility: defaultPlausibility,

	Images: ImageRules{
		Rules: []Rule{ld("image.#.url", "image.url", "image")},
	},

	MaxLen: map[Field]int{
		FieldModel: 200,
	},
}

// Boonthavorn 분타원(boonthavorn.com) 추출기를 반환합니다.
func Boonthavorn() *Extractor {
	return boonthavornExtractor
}

var boonthavornExtractor = newExtractor(KindBoonthavorn, boonthavornTable, genericTable)
