package extractor

import (
	"strings"

	"github.com/darkkaiser/price-scraper/internal/extractor/price"
)

// retailerNames 상품명으로 볼 수 없는 판매처/사이트 이름
var retailerNames = []string{
	"megahome", "mega home", "homepro", "home pro", "boonthavorn", "dohome", "do home",
	"global house", "thai watsadu", "watsadu", "power buy", "powerbuy",
	"lazada", "shopee", "central", "jaymart", "vivin", "banner",
}

// stripRetailerPrefix "HomePro สว่านไร้สาย" 처럼 판매처 이름으로 시작하는 상품명에서 판매처 이름을 제거합니다.
func stripRetailerPrefix(name string) string {
	trimmed := strings.TrimSpace(name)
	lower := strings.ToLower(trimmed)
	for _, r := range retailerNames {
		if strings.HasPrefix(lower, r+" ") {
			return strings.TrimSpace(trimmed[len(r):])
		}
	}
	return trimmed
}

// lastSegment "หน้าแรก > เครื่องมือช่าง > สว่าน" 에서 마지막 구간을 반환합니다.
func lastSegment(s string) string {
	if !strings.Contains(s, ">") {
		return s
	}

	parts := strings.Split(s, ">")
	for i := len(parts) - 1; i >= 0; i-- {
		if p := strings.TrimSpace(parts[i]); p != "" {
			return p
		}
	}
	return ""
}

// defaultPlausibility 0보다 큰 모든 가격을 허용합니다.
var defaultPlausibility = price.Plausibility{Range: price.Range{Min: 0.01}}

var breadcrumbStopWords = []string{"หน้าแรก", "home", "สินค้า", "products"}

var genericTable = &Table{
	Fields: []FieldRules{
		{Field: FieldName, Rules: []Rule{
			sel(`h1[class*="product"]`).post(stripRetailerPrefix),
			sel("h1").post(stripRetailerPrefix),
			sel("title").post(stripRetailerPrefix),
			meta("og:title").post(stripRetailerPrefix),
			sel(`div[class*="product-title"]`).post(stripRetailerPrefix),
			sel(`span[class*="product-name"]`).post(stripRetailerPrefix),
			ld("name"),
		}},
		{Field: FieldDescription, Rules: []Rule{
			attr(`meta[name="description"]`, "content"),
			meta("og:description"),
			sel(`div[class*="description"]`),
			sel(`p[class*="description"]`),
			ld("description"),
		}},
		{Field: FieldBrand, Rules: []Rule{
			ld("brand.name", "brand"),
			meta("og:brand"),
			attr(`meta[name="brand"]`, "content"),
			sel(`span[class*="brand"]`),
			sel(`div[class*="brand"]`),
			sel(`a[class*="brand"]`),
			label(`ยี่ห้อ|แบรนด์|Brand|Manufacturer|ผู้ผลิต|เครื่องหมาย`),
			re(FromTitle, `^\s*([A-Z]\S*\s+\S+)`),
		}},
		{Field: FieldModel, Rules: []Rule{
			ld("model", "mpn"),
			sel(`span[class*="model"], div[class*="model"]`),
			meta("product:model"),
			attr(`meta[name="model"]`, "content"),
			label(`รุ่น|โมเดล|Model Number|Model No|Model`),
			re(FromHeadline, `รุ่น\s+([A-Za-z0-9\-_]+)`),
			re(FromHeadline, `โมเดล\s+([A-Za-z0-9\-_]+)`),
			re(FromHeadline, `Model[:\s]+([A-Za-z0-9\-_]+)`),
			re(FromHeadline, `([A-Z]{2,4}-?\d{3,6})`),
			re(FromHeadline, `([A-Z][a-z]*-\d+[A-Za-z]*)`),
		}},
		{Field: FieldSKU, Rules: []Rule{
			ld("sku", "productID"),
			sel(`span[class*="sku"]`),
			meta("product:retailer_item_id"),
			label(`รหัสสินค้า|SKU|Article No`),
			re(FromURL, `/product/([^/?#]+?)(?:/|$|\?)`),
			re(FromURL, `/item/([^/?#]+?)(?:/|$|\?)`),
			re(FromURL, `/p/([^/?#]+?)(?:/|$|\?)`),
			re(FromURL, `sku[=/]([^/&]+)`),
			re(FromURL, `/(\d{6,})`),
			re(FromURL, `-([A-Z0-9]{4,})`),
		}},
		{Field: FieldCategory, Rules: []Rule{
			ld("category"),
			sel(`nav[class*="breadcrumb"] a, ol[class*="breadcrumb"] a, ul[class*="breadcrumb"] a`).scan(ReverseSkipLast),
			sel(`nav[class*="breadcrumb"], div[class*="breadcrumb"]`).post(lastSegment),
			label(`หมวดหมู่|Category`),
		}},
		{Field: FieldVolume, Rules: []Rule{
			re(FromMarkup, `(\d+(?:\.\d+)?\s*(?:ลิตร|L\b|l\b))`),
			re(FromMarkup, `(\d+(?:\.\d+)?\s*(?:มล|ml|ML))`),
			re(FromMarkup, `(\d+(?:\.\d+)?\s*(?:แกลลอน|gallon))`),
			label(`ความจุ|Volume|Capacity`),
		}},
		{Field: FieldDimensions, Rules: []Rule{
			re(FromMarkup, `(\d+(?:\.\d+)?\s*[x×]\s*\d+(?:\.\d+)?\s*[x×]\s*\d+(?:\.\d+)?\s*(?:ซม|cm|mm|m))`),
			label(`ขนาด|Dimension|Size`),
		}},
		{Field: FieldMaterial, Rules: []Rule{
			label(`เนื้อวัสดุ|วัสดุ|Material|ผลิตจาก`),
		}},
		{Field: FieldColor, Rules: []Rule{
			ld("color"),
			label(`สีแบบ|สี|Color`),
		}},
	},

	Prices: []PriceStage{
		{
			Mode:     FirstMatch,
			Current:  []Rule{ld("offers.price", "offers.0.price", "offers.lowPrice", "offers.0.lowPrice")},
			Original: []Rule{ld("offers.highPrice", "offers.0.highPrice")},
		},
		{
			Mode: Collect,
			Current: []Rule{
				sel(`span[class*="price"], div[class*="price"]`),
				meta("product:price:amount"),
				meta("og:price:amount"),
				re(FromMarkup, `(?i)(?:ราคา|Price)[:\s]*([฿$]?[\d,]+\.?\d*)`),
				re(FromMarkup, `([฿$]?[\d,]+\.?\d*)\s*บาท`),
			},
			Original: []Rule{
				sel(`span[class*="original"][class*="price"]`),
				sel(`span[class*="was"]`),
				sel(`div[class*="original-price"]`),
				re(FromMarkup, `ราคาปกติ[:\s]*([฿$]?[\d,]+\.?\d*)`),
				re(FromMarkup, `ปกติ[:\s]*([฿$]?[\d,]+\.?\d*)`),
			},
		},
	},

	Plausibility: defaultPlausibility,

	Images: ImageRules{
		Rules: []Rule{
			attr(`img[class*="product"]`, "src"),
			meta("og:image"),
			meta("product:image"),
			attr(`img[src*="product"]`, "src"),
			ld("image.#.url", "image.url", "image"),
		},
	},

	Skip: map[Field][]string{
		FieldName:     retailerNames,
		FieldCategory: breadcrumbStopWords,
	},
	MinLen: map[Field]int{
		FieldName:        4,
		FieldDescription: 11,
		FieldBrand:       2,
	},
}

// Generic 어떤 페이지에도 적용할 수 있는 범용 추출기를 반환합니다.
func Generic() *Extractor {
	return genericExtractor
}

var genericExtractor = newExtractor(KindGeneric, genericTable, nil)
