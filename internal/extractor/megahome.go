package extractor

// megaHomeSpecRow 사양 표에서 pdp-<카테고리>_<attribute> 클래스 행의 값을 읽습니다.
// 카테고리 접두사(HT, LT 등)는 상품군마다 다릅니다.
func megaHomeSpecRow(attribute string) Rule {
	return re(FromHTML, `(?s)class="pdp-[A-Z]+_`+attribute+`"[^>]*>.*?<td[^>]*>[^<]*</td>\s*<td[^>]*>([^<]+)</td>`)
}

var megaHomeTable = &Table{
	Fields: []FieldRules{
		{Field: FieldName, Rules: []Rule{
			re(FromHTML, `<div class="prd-name">\s*<h1>([^<]+)</h1>`),
		}},
		{Field: FieldBrand, Rules: []Rule{
			re(FromHTML, `<div class="prd-brand">\s*<a[^>]*>([^<]+)</a>`),
		}},
		{Field: FieldSKU, Rules: []Rule{
			re(FromURL, `/p/(\d+)`),
		}},
		{Field: FieldMaterial, Rules: []Rule{
			megaHomeSpecRow("MATERIAL"),
		}},
		{Field: FieldColor, Rules: []Rule{
			megaHomeSpecRow("COLOR"),
			re(FromName, `สี(\S+)`).prefix("สี"),
		}},
		{Field: FieldDimensions, Rules: []Rule{
			composed(" cm", 1,
				megaHomeSpecRow("WIDTH"),
				megaHomeSpecRow("DEPTH"),
				megaHomeSpecRow("HEIGHT"),
			),
		}},
		{Field: FieldVolume, Rules: []Rule{
			megaHomeSpecRow("WEIGHT").template("$1 kg"),
		}},
		{Field: FieldCategory, Rules: []Rule{
			re(FromHTML, `<a class="section"[^>]*>([^<]+)</a>`).scan(Reverse),
		}},
		{Field: FieldModel, Rules: []Rule{
			re(FromName, `(?:NO\.|รุ่น\s*)([A-Za-z0-9\-_.]+)`),
		}},
	},

	Prices: []PriceStage{
		{
			Mode: FirstMatch,
			Current: []Rule{
				re(FromHTML, `(?s)<div class="discount-price">.*?<span class="amount">([0-9,.]+)</span>`),
				re(FromHTML, `<input[^>]*id="gtmPrice-\d+"[^>]*value="([0-9.]+)"`),
			},
			Original: []Rule{
				re(FromHTML, `(?s)<div class="original-price">.*?<span class="amount">([0-9,.]+)</span>`),
			},
		},
	},
	Plausibility: defaultPlausibility,

	Images: ImageRules{
		Rules: []Rule{
			re(FromHTML, `<img[^>]*id="image-index-\d+"[^>]*src="([^"]+)"`),
		},
	},
}

// MegaHome 메가홈(megahome.co.th) 추출기를 반환합니다.
func MegaHome() *Extractor {
	return megaHomeExtractor
}

var megaHomeExtractor = newExtractor(KindMegaHome, megaHomeTable, genericTable)
