package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/darkkaiser/price-scraper/pkg/strutil"
)

// =============================================================================
// SKU
// =============================================================================

var (
	skuDomainSuffixes = []string{".com", ".co.th", ".net", ".org"}
	skuPathFragments  = []string{"/product/", "/item/", "/category/", "/search/", "/page/"}

	skuDateRegexp    = regexp.MustCompile(`^\d{4}[-/]\d{2}[-/]\d{2}$`)
	skuAllowedRegexp = regexp.MustCompile(`^[A-Za-z0-9\-_]+$`)
)

func sanitizeSKU(raw string, maxLength int) (string, bool) {
	if !plausibleSKU(raw) {
		return "", false
	}

	sku, ok := sanitizeText(raw, maxLength)
	if !ok || !plausibleSKU(sku) {
		return "", false
	}
	if !skuAllowedRegexp.MatchString(sku) || skuDateRegexp.MatchString(sku) {
		return "", false
	}
	return sku, true
}

// plausibleSKU URL이나 경로 조각으로 보이는 값을 걸러냅니다.
func plausibleSKU(s string) bool {
	s = strings.TrimSpace(s)
	if n := utf8.RuneCountInString(s); n < 2 {
		return false
	}
	if strings.ContainsAny(s, `/\`) {
		return false
	}

	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http") || strings.HasPrefix(lower, "www") {
		return false
	}
	for _, suffix := range skuDomainSuffixes {
		if strings.Contains(lower, suffix) {
			return false
		}
	}
	for _, fragment := range skuPathFragments {
		if strings.Contains(lower, fragment) {
			return false
		}
	}
	return true
}

// =============================================================================
// 색상
// =============================================================================

var (
	colorCSSPatterns = []*regexp.Regexp{
		regexp.MustCompile(`#[0-9a-fA-F]{3,8}\b`),
		regexp.MustCompile(`(?i)rgba?\([^)]*\)`),
		regexp.MustCompile(`(?i)hsla?\([^)]*\)`),
		regexp.MustCompile(`(?i)var\([^)]*\)`),
		regexp.MustCompile(`(?i)(?:background-color|background|color)\s*:\s*[^;\\]+;?`),
	}

	colorHexRegexp = regexp.MustCompile(`^[0-9a-fA-F]{3,6}$`)
)

func sanitizeColor(raw string, maxLength int) (string, bool) {
	for _, re := range colorCSSPatterns {
		raw = re.ReplaceAllString(raw, " ")
	}

	color, ok := sanitizeText(raw, maxLength)
	if !ok {
		return "", false
	}

	lower := strings.ToLower(color)
	if strings.HasPrefix(lower, "#") || strings.HasPrefix(lower, "rgb") || strings.HasPrefix(lower, "hsl") {
		return "", false
	}
	if colorHexRegexp.MatchString(color) {
		return "", false
	}
	return color, true
}

// =============================================================================
// 재질
// =============================================================================

var materialLabelRegexp = regexp.MustCompile(`(?i)(?:เนื้อวัสดุ|วัสดุ|ผลิตจาก|material)\s*:?\s*`)

func sanitizeMaterial(raw string, maxLength int) (string, bool) {
	raw = materialLabelRegexp.ReplaceAllString(raw, " ")

	material, ok := sanitizeText(raw, maxLength)
	if !ok || utf8.RuneCountInString(material) < 2 {
		return "", false
	}
	return material, true
}

// =============================================================================
// 치수
// =============================================================================

var (
	dimensionCSSVarRegexp = regexp.MustCompile(`(?i)var\([^)]*\)`)

	// 숫자 뒤에 오는 단위는 함께 보존합니다.
	dimensionPatterns = []*regexp.Regexp{
		regexp.MustCompile(dimensionNumber + `\s*[xX×]\s*` + dimensionNumber + `\s*[xX×]\s*` + dimensionNumber + dimensionUnit),
		regexp.MustCompile(dimensionNumber + `\s*[xX×]\s*` + dimensionNumber + dimensionUnit),
		regexp.MustCompile(dimensionNumber + dimensionUnit),
	}
)

const (
	dimensionNumber = `\d+(?:\.\d+)?`
	dimensionUnit   = `(?:\s*(?:ซม\.?|มม\.?|กก\.?|cm|mm|kg|นิ้ว|m))?`
)

func sanitizeDimensions(raw string, maxLength int) (string, bool) {
	raw = dimensionCSSVarRegexp.ReplaceAllString(raw, " ")

	for _, re := range dimensionPatterns {
		if m := re.FindString(raw); m != "" {
			if dims, ok := sanitizeText(m, maxLength); ok {
				return dims, true
			}
		}
	}

	return sanitizeText(raw, maxLength)
}

// =============================================================================
// 모델
// =============================================================================

var modelElementNames = []string{"html", "body", "div", "span", "section", "article", "header", "footer"}

func sanitizeModel(raw string, maxLength int) (string, bool) {
	model, ok := sanitizeText(raw, maxLength)
	if !ok || strutil.EqualsAnyFold(model, modelElementNames) {
		return "", false
	}
	return model, true
}
