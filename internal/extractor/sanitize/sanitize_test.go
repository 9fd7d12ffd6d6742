package sanitize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// 공통 정제
// =============================================================================

func TestClean_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		kind   Kind
		want   string
		wantOK bool
	}{
		{"마크업 제거", `<span class="brand">PHILIPS</span>`, Brand, "PHILIPS", true},
		{"JSON 객체는 통째로 버림", `{"name":"PHILIPS","type":"Brand"}`, Brand, "", false},
		{"key-value 조각 제거", `"@type": "Brand" MAKITA`, Brand, "MAKITA", true},
		{"URL 제거", "BOSCH https://www.bosch.co.th/tools", Brand, "BOSCH", true},
		{"URL만 남으면 버림", "https://example.com/brand", Brand, "", false},
		{"불리언 토큰 제거", "true STANLEY", Brand, "STANLEY", true},
		{"단어 일부는 유지", "Nullify Pro", Name, "Nullify Pro", true},
		{"ISO 시각 제거", "2024-01-05T10:20:30 โคมไฟ LED", Name, "โคมไฟ LED", true},
		{"끝의 구분 문자 제거", "สว่านไฟฟ้า;,", Name, "สว่านไฟฟ้า", true},
		{"공백 정규화", "  สว่าน \n\t ไฟฟ้า  ", Name, "สว่าน ไฟฟ้า", true},
		{"한 글자는 버림", "A", Brand, "", false},
		{"빈 문자열", "   ", Text, "", false},
		{"최대 길이 초과", strings.Repeat("ก", 101), Brand, "", false},
		{"quickInfo 클래스 조각 제거", `quickInfo-infoValue-abc123 ไม้สัก`, Text, "ไม้สัก", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clean(tt.raw, tt.kind, 0)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean_NeverRetainsForbiddenCharacters(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<div style="color:red">สีแดง</div>`,
		`{"@context":"https://schema.org"} โคมไฟ`,
		`ขนาด [30x40] "cm"`,
		`a\b=c<d>e'f"g`,
		`"brand": {"name": "BOSCH"}`,
		`<<<>>>`,
		`PHILIPS = best`,
	}
	kinds := []Kind{Text, Name, Description, Brand, Model, SKU, Category, Color, Material, Dimensions, Volume}

	for _, in := range inputs {
		for _, kind := range kinds {
			got, ok := Clean(in, kind, 0)
			if !ok {
				assert.Empty(t, got)
				continue
			}
			assert.False(t, ContainsForbidden(got), "kind=%s input=%q result=%q", kind, in, got)
			assert.False(t, strings.HasPrefix(strings.ToLower(got), "http"), "kind=%s result=%q", kind, got)
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		`<span class="x">PHILIPS</span>`,
		"ขนาด 35 x 67 x 50 cm",
		"วัสดุ: ไม้สัก",
		"สีดำ #fff",
		"M6000-100",
		"โคมไฟ   LED 12W",
	}
	kinds := []Kind{Text, Brand, SKU, Color, Material, Dimensions}

	for _, in := range inputs {
		for _, kind := range kinds {
			first, ok := Clean(in, kind, 0)
			if !ok {
				continue
			}
			second, ok2 := Clean(first, kind, 0)
			assert.True(t, ok2, "kind=%s value=%q", kind, first)
			assert.Equal(t, first, second, "kind=%s", kind)
		}
	}
}

// =============================================================================
// 필드별 규칙
// =============================================================================

func TestClean_SKU(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"123456", "123456", true},
		{"ABC-123_x", "ABC-123_x", true},
		{"1234/5678", "", false},
		{`12\34`, "", false},
		{"shop.com", "", false},
		{"item.co.th", "", false},
		{"https://www.homepro.co.th/p/1234", "", false},
		{"2024-01-05", "", false},
		{"ABC 123", "", false},
		{"X", "", false},
		{strings.Repeat("9", 51), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Clean(tt.raw, SKU, 0)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean_Color(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"태국어 색상", "สีดำ", "สีดำ", true},
		{"HEX 값 제거", "สีขาว #FFFFFF", "สีขาว", true},
		{"HEX만 있으면 버림", "#ff0000", "", false},
		{"# 없는 HEX", "ffcc00", "", false},
		{"rgb 함수", "rgb(0, 0, 0)", "", false},
		{"CSS 선언", "color: var(--primary); Black", "Black", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clean(tt.raw, Color, 0)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean_Material(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		want   string
		wantOK bool
	}{
		{"วัสดุ: ไม้สัก", "ไม้สัก", true},
		{"Material: Stainless Steel", "Stainless Steel", true},
		{"ผลิตจาก พลาสติก ABS", "พลาสติก ABS", true},
		{"วัสดุ:", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := Clean(tt.raw, Material, 0)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean_Dimensions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"세 변과 단위", "ขนาด 35 x 67 x 50 cm (ก x ย x ส)", "35 x 67 x 50 cm", true},
		{"곱셈 기호", "120×60 ซม.", "120×60 ซม.", true},
		{"CSS 변수 제거", "var(--size) 10 x 20", "10 x 20", true},
		{"숫자 하나와 단위", "120 ซม.", "120 ซม.", true},
		{"태국어 라벨", "สูง 80 ซม.", "80 ซม.", true},
		{"영문 라벨", "Height: 120", "120", true},
		{"무게", "น้ำหนัก: 5.5 กก.", "5.5 กก.", true},
		{"숫자 없음", "ขนาดมาตรฐาน", "ขนาดมาตรฐาน", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Clean(tt.raw, Dimensions, 0)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClean_Model(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"div", "SPAN", "html", "footer"} {
		_, ok := Clean(name, Model, 0)
		assert.False(t, ok, name)
	}

	got, ok := Clean("GSB 13 RE", Model, 0)
	assert.True(t, ok)
	assert.Equal(t, "GSB 13 RE", got)
}

func TestClean_ExplicitMaxLength(t *testing.T) {
	t.Parallel()

	_, ok := Clean("abcdef", Text, 5)
	assert.False(t, ok)

	got, ok := Clean("abcde", Text, 5)
	assert.True(t, ok)
	assert.Equal(t, "abcde", got)
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "sku", SKU.String())
	assert.Equal(t, "dimensions", Dimensions.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
