package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want Kind
	}{
		{"Thai Watsadu", "https://www.thaiwatsadu.com/th/sku/60272160", KindThaiWatsadu},
		{"HomePro 대문자 URL", "HTTPS://WWW.HOMEPRO.CO.TH/p/1", KindHomePro},
		{"Boonthavorn 스킴 없음", "boonthavorn.com/x", KindBoonthavorn},
		{"Mega Home", "https://www.megahome.co.th/p/1", KindMegaHome},
		{"DoHome", "https://www.dohome.co.th/th/product/a-10026550", KindDoHome},
		{"Global House", "https://globalhouse.co.th/product/x-i.1", KindGlobalHouse},
		{"알 수 없는 도메인", "https://example.com/p/1", KindGeneric},
		{"빈 URL", "", KindGeneric},
		{"URL이 아닌 문자열", "not a url", KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := Select(tt.url)
			require.NotNil(t, e)
			assert.Equal(t, tt.want, e.Kind())
		})
	}
}

func TestForKind(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		assert.Equal(t, k, ForKind(k).Kind(), k.String())
	}
	assert.Equal(t, KindGeneric, ForKind(KindGeneric).Kind())
	assert.Equal(t, KindGeneric, ForKind(Kind(99)).Kind())
}

func TestExtract_Dispatches(t *testing.T) {
	t.Parallel()

	html := `<html><body><div class="prd-name"><h1>Widget NO.2000 สีดำ</h1></div></body></html>`

	p := Extract(html, "https://www.megahome.co.th/p/123456")
	require.NotNil(t, p)
	assert.Equal(t, KindMegaHome, p.Kind)
	assert.Equal(t, "mgh", p.RetailerCode())

	assert.Nil(t, Extract("", "https://www.megahome.co.th/p/123456"))
}

func TestKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind        Kind
		code        string
		displayName string
	}{
		{KindThaiWatsadu, "twd", "Thai Watsadu"},
		{KindHomePro, "hp", "HomePro"},
		{KindBoonthavorn, "btv", "Boonthavorn"},
		{KindMegaHome, "mgh", "Mega Home"},
		{KindDoHome, "dh", "DoHome"},
		{KindGlobalHouse, "gbh", "Global House"},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.kind.Code())
			assert.Equal(t, tt.displayName, tt.kind.DisplayName())

			k, ok := KindByCode(tt.code)
			assert.True(t, ok)
			assert.Equal(t, tt.kind, k)
		})
	}

	_, ok := KindByCode("zzz")
	assert.False(t, ok)
	assert.Equal(t, "unknown", Kind(-1).String())
	assert.Empty(t, KindGeneric.Code())
}

func TestTable(t *testing.T) {
	t.Parallel()

	for _, k := range append(Kinds(), KindGeneric) {
		table := ForKind(k).Table()
		assert.NotEmpty(t, table.Fields, k.String())
		assert.NotEmpty(t, table.Prices, k.String())
	}

	assert.True(t, Generic().Table().HasField(FieldName))
	assert.False(t, MegaHome().Table().HasField(FieldDescription))
	assert.Contains(t, HomePro().Table().Images.Must, "ART_IMAGE")
}
