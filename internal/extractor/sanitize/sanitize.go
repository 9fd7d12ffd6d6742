// Package sanitize 추출된 상품 필드 값에서 HTML/CSS/JSON 오염을 제거하고, 필드 종류별 형태 조건을 검증합니다.
//
// 정제에 실패한 값은 잘라내거나 일부만 남기지 않고 항상 버립니다(ok == false).
package sanitize

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/darkkaiser/price-scraper/pkg/strutil"
	"golang.org/x/text/unicode/norm"
)

// Kind 정제 규칙을 선택하는 필드 종류입니다.
type Kind int

const (
	Text Kind = iota
	Name
	Description
	Brand
	Model
	SKU
	Category
	Color
	Material
	Dimensions
	Volume
)

var kindNames = [...]string{
	Text:        "text",
	Name:        "name",
	Description: "description",
	Brand:       "brand",
	Model:       "model",
	SKU:         "sku",
	Category:    "category",
	Color:       "color",
	Material:    "material",
	Dimensions:  "dimensions",
	Volume:      "volume",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// DefaultMaxLen 필드 종류별 기본 최대 길이(문자 수)를 반환합니다.
func DefaultMaxLen(kind Kind) int {
	switch kind {
	case Name:
		return 300
	case Description:
		return 2000
	case Model, SKU, Color, Volume:
		return 50
	case Dimensions:
		return 200
	default:
		return 100
	}
}

// forbiddenChars 정제 후 결과에 남아 있으면 안 되는 문자 집합
const forbiddenChars = "{}[]\"'\\<>="

var (
	markupPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)class="[^"]*"`),
		regexp.MustCompile(`(?i)quickInfo-infoLabel-[^"\s]*`),
		regexp.MustCompile(`(?i)quickInfo-infoValue-[^"\s]*`),
		regexp.MustCompile(`(?i)style="[^"]*"`),
		regexp.MustCompile(`(?i)id="[^"]*"`),
		regexp.MustCompile(`</?[a-zA-Z][a-zA-Z0-9]*\b[^>]*>`),
	}

	urlPatterns = []*regexp.Regexp{
		regexp.MustCompile(`https?://[^\s<>"']+`),
		regexp.MustCompile(`www\.[^\s<>"']+`),
		regexp.MustCompile(`[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}(?:/[^\s<>"']*)?`),
	}

	jsonPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\{[^}]*\}`),
		regexp.MustCompile(`\[[^\]]*\]`),
		regexp.MustCompile(`"[^"]*"\s*:\s*"[^"]*"`),
		regexp.MustCompile(`"[^"]*"\s*:\s*[^,"\s]+`),
		regexp.MustCompile(`(?i)\b(?:true|false|null)\b`),
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}[T\s]\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:?\d{2})?`),
	}

	forbiddenReplacer = strings.NewReplacer(
		"{", "", "}", "", "[", "", "]", "", "\"", "", "'", "", "\\", "", "<", "", ">", "", "=", "",
	)

	forbiddenPrefixes = []string{"http", "www", "data:", "class=", "style="}
)

// Clean raw 값을 kind에 맞게 정제합니다. maxLength가 0 이하이면 DefaultMaxLen(kind)을 사용합니다.
// 정제 결과가 검증을 통과하지 못하면 ok는 false입니다.
func Clean(raw string, kind Kind, maxLength int) (string, bool) {
	if maxLength <= 0 {
		maxLength = DefaultMaxLen(kind)
	}

	raw = norm.NFC.String(raw)
	if strings.TrimSpace(raw) == "" {
		return "", false
	}

	switch kind {
	case SKU:
		return sanitizeSKU(raw, maxLength)
	case Color:
		return sanitizeColor(raw, maxLength)
	case Material:
		return sanitizeMaterial(raw, maxLength)
	case Dimensions:
		return sanitizeDimensions(raw, maxLength)
	case Model:
		return sanitizeModel(raw, maxLength)
	default:
		return sanitizeText(raw, maxLength)
	}
}

// sanitizeText 모든 필드 종류가 공유하는 기본 정제 단계입니다.
//
//  1. 마크업/CSS 조각 제거
//  2. URL과 도메인 제거
//  3. JSON 객체/배열, key:value, 불리언/null, ISO-8601 시각 제거
//  4. 금지 문자 제거
//  5. 공백 정규화, 끝의 구분 문자(,;) 제거
func sanitizeText(text string, maxLength int) (string, bool) {
	for _, re := range markupPatterns {
		text = re.ReplaceAllString(text, " ")
	}
	for _, re := range urlPatterns {
		text = re.ReplaceAllString(text, "")
	}
	for _, re := range jsonPatterns {
		text = re.ReplaceAllString(text, "")
	}
	text = forbiddenReplacer.Replace(text)
	text = strutil.NormalizeSpaces(text)
	text = strings.TrimSpace(strings.TrimRight(text, ",;"))

	if !valid(text, maxLength) {
		return "", false
	}
	return text, true
}

func valid(text string, maxLength int) bool {
	n := utf8.RuneCountInString(text)
	if n <= 1 || n > maxLength {
		return false
	}

	lower := strings.ToLower(text)
	for _, prefix := range forbiddenPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return false
		}
	}

	return !strings.ContainsAny(text, forbiddenChars)
}

// ContainsForbidden s에 정제 후 남아 있으면 안 되는 문자가 포함되어 있는지 확인합니다.
func ContainsForbidden(s string) bool {
	return strings.ContainsAny(s, forbiddenChars)
}
