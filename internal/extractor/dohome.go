package extractor

// doHomeDimension Next.js 스크립트에 이스케이프된 따옴표로 포함된 dimension 객체입니다.
// 예: \"dimension\":{\"width\":29.6,\"long\":20,\"high\":35,\"weight\":2.5}
const doHomeDimension = `\\?"dimension\\?"\s*:\s*\{[^}]*\\?"width\\?"\s*:\s*([\d.]+)[^}]*\\?"long\\?"\s*:\s*([\d.]+)[^}]*\\?"high\\?"\s*:\s*([\d.]+)[^}]*\\?"weight\\?"\s*:\s*([\d.]+)`

var doHomeTable = &Table{
	Fields: []FieldRules{
		{Field: FieldName, Rules: []Rule{
			ld("name"),
			sel(`h1[class*="product"][class*="name"]`),
			sel(`h1[class*="pdp"]`),
			sel("h1"),
			sel(`div[class*="product-name"]`),
		}},
		{Field: FieldDescription, Rules: []Rule{
			ld("description"),
		}},
		{Field: FieldBrand, Rules: []Rule{
			ld("brand.name", "brand"),
			re(FromHTML, `(?i)<a[^>]*href="/brand/[^"]*"[^>]*>([^<]+)</a>`),
			re(FromHTML, `(?i)<span[^>]*class="[^"]*brand[^"]*"[^>]*>([^<]+)</span>`),
		}},
		{Field: FieldSKU, Rules: []Rule{
			ld("sku"),
			re(FromURL, `-(\d{6,})(?:\?|$)`),
		}},
		{Field: FieldCategory, Rules: []Rule{
			re(FromHTML, `(?i)<a[^>]*href="/category/[^"]*"[^>]*>([^<]+)</a>`),
			re(FromHTML, `(?i)"categoryName"\s*:\s*"([^"]+)"`),
		}},
		{Field: FieldDimensions, Rules: []Rule{
			re(FromHTML, doHomeDimension).template("$1 x $2 x $3 cm"),
		}},
		{Field: FieldVolume, Rules: []Rule{
			re(FromHTML, doHomeDimension).template("$4 kg"),
		}},
		{Field: FieldModel, Rules: []Rule{
			re(FromHTML, `\\?"productModel\\?"\s*:\s*\\?"([^"\\]+)\\?"`),
		}},
	},

	Prices: []PriceStage{
		{
			Mode: FirstMatch,
			Current: []Rule{
				ld("offers.price", "offers.0.price"),
				re(FromHTML, `(?is)<span[^>]*class="[^"]*text-3xl[^"]*font-semibold[^"]*"[^>]*>฿?([\d,]+(?:\.\d{2})?)</span>`),
				re(FromHTML, `(?i)"marketPrice"\s*:\s*"฿?([\d,]+(?:\.\d{2})?)"`),
				re(FromHTML, `(?i)"salePrice"\s*:\s*"฿?([\d,]+(?:\.\d{2})?)"`),
				re(FromHTML, `>฿([\d,]+(?:\.\d{2})?)<`),
			},
			Original: []Rule{
				sel(`span[class*="old-price"]`),
				sel(`span[class*="regular-price"]`),
				re(FromMarkup, `ราคาปกติ[:\s]*(฿?[\d,]+\.?\d*)`),
			},
		},
	},
	Plausibility: defaultPlausibility,

	Images: ImageRules{
		Rules: []Rule{ld("image.#.url", "image.url", "image")},
	},

	Skip: map[Field][]string{
		FieldCategory: {"หน้าแรก", "home", "สินค้า", "products", "dohome"},
	},
	Deny: map[Field][]string{
		FieldName:  {"dohome"},
		FieldBrand: {"attribute", "product", "sku", "stock", "link"},
	},
	MinLen: map[Field]int{
		FieldName:     4,
		FieldCategory: 3,
	},
	MaxLen: map[Field]int{
		FieldBrand: 49,
	},
}

// DoHome 두홈(dohome.co.th) 추출기를 반환합니다.
func DoHome() *Extractor {
	return doHomeExtractor
}

var doHomeExtractor = newExtractor(KindDoHome, doHomeTable, genericTable)
