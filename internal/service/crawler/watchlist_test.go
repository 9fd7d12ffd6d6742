package crawler

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWatchlist(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    []Target
		wantErr string
	}{
		{
			name:  "url 열만 있는 파일",
			input: "url\nhttps://www.homepro.co.th/p/1\nhttps://www.dohome.co.th/th/product/a\n",
			want: []Target{
				{URL: "https://www.homepro.co.th/p/1"},
				{URL: "https://www.dohome.co.th/th/product/a"},
			},
		},
		{
			name: "retailer 열, 주석, 빈 줄, 중복",
			input: "Retailer,URL\n" +
				"# 공구\n" +
				"HP, https://www.homepro.co.th/p/1\n" +
				"\n" +
				",https://www.example.com/item/9\n" +
				"hp,https://www.homepro.co.th/p/1\n",
			want: []Target{
				{URL: "https://www.homepro.co.th/p/1", Retailer: "hp"},
				{URL: "https://www.example.com/item/9"},
			},
		},
		{
			name:  "BOM이 있는 헤더",
			input: "\ufeffurl\nhttps://www.megahome.co.th/p/123456\n",
			want:  []Target{{URL: "https://www.megahome.co.th/p/123456"}},
		},
		{
			name:  "url 값이 빈 행은 건너뜀",
			input: "url,retailer\n,twd\nhttps://www.thaiwatsadu.com/th/sku/1,twd\n",
			want:  []Target{{URL: "https://www.thaiwatsadu.com/th/sku/1", Retailer: "twd"}},
		},
		{
			name:    "url 열 없음",
			input:   "link\nhttps://a\n",
			wantErr: "url 열이 없습니다",
		},
		{
			name:    "빈 파일",
			input:   "",
			wantErr: "헤더가 없습니다",
		},
		{
			name:    "알 수 없는 판매처",
			input:   "url,retailer\nhttps://a.example.com,hp\nhttps://b.example.com,lazada\n",
			wantErr: "watch.csv:3",
		},
		{
			name:    "따옴표 형식 오류",
			input:   "url\nhttps://a\"b.example.com\n",
			wantErr: "watch.csv:2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWatchlist(strings.NewReader(tt.input), "watch.csv")
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadWatchlist(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "watch.csv")
	require.NoError(t, os.WriteFile(path, []byte("url\nhttps://www.globalhouse.co.th/product/1\n"), 0644))

	got, err := LoadWatchlist(path)
	require.NoError(t, err)
	assert.Equal(t, []Target{{URL: "https://www.globalhouse.co.th/product/1"}}, got)

	_, err = LoadWatchlist(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.System))
}
