package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/darkkaiser/price-scraper/internal/config"
	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/darkkaiser/price-scraper/internal/pkg/version"
	"github.com/darkkaiser/price-scraper/internal/service/storage"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppMetadata(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "price-scraper", config.AppName)
	assert.NotContains(t, config.AppName, " ", "애플리케이션 이름에는 공백이 포함될 수 없습니다")
	assert.Equal(t, "price-scraper.json", config.DefaultFilename)
}

func TestBanner(t *testing.T) {
	t.Parallel()

	t.Run("템플릿 형식 검증", func(t *testing.T) {
		t.Parallel()
		assert.Contains(t, banner, "%s", "배너 템플릿에는 버전 포맷팅을 위한 '%s'가 포함되어야 합니다")
		assert.Contains(t, banner, "DarkKaiser")
	})

	t.Run("출력 포맷팅 검증", func(t *testing.T) {
		t.Parallel()
		v := version.Get().Version
		output := fmt.Sprintf(banner, v)
		assert.Contains(t, output, v)
		assert.NotContains(t, output, "%s", "최종 출력된 배너에는 포맷 지정자가 남아있지 않아야 합니다")
	})
}

func TestConfigFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "인자 없음", args: nil, want: config.DefaultFilename},
		{name: "빈 인자", args: []string{""}, want: config.DefaultFilename},
		{name: "경로 지정", args: []string{"/etc/price-scraper/prod.json"}, want: "/etc/price-scraper/prod.json"},
		{name: "추가 인자는 무시", args: []string{"a.json", "b.json"}, want: "a.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, configFilename(tt.args))
		})
	}
}

func TestNewLogOptions(t *testing.T) {
	t.Parallel()

	dev := newLogOptions(true)
	assert.Equal(t, config.AppName, dev.Name)
	assert.Equal(t, applog.TraceLevel, dev.Level)
	assert.True(t, dev.EnableConsoleLog)

	prod := newLogOptions(false)
	assert.Equal(t, config.AppName, prod.Name)
	assert.Equal(t, applog.InfoLevel, prod.Level)
	assert.False(t, prod.EnableConsoleLog)
	assert.True(t, prod.EnableCriticalLog)
}

func newTestConfig(t *testing.T) *config.AppConfig {
	t.Helper()

	cfg, err := config.LoadWithFile("")
	require.NoError(t, err)
	cfg.Storage.Dir = filepath.Join(t.TempDir(), "products")
	return cfg
}

func TestNewApp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		modify       func(cfg *config.AppConfig)
		wantServices int
	}{
		{name: "API 활성화", modify: func(cfg *config.AppConfig) {}, wantServices: 2},
		{name: "API 비활성화", modify: func(cfg *config.AppConfig) { cfg.API.Enabled = false }, wantServices: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newTestConfig(t)
			tt.modify(cfg)

			a, err := newApp(context.Background(), cfg, version.Get())
			require.NoError(t, err)
			defer a.close()

			assert.Len(t, a.services, tt.wantServices)
			assert.NotNil(t, a.crawler)

			fs, ok := a.store.(*storage.FileStore)
			require.True(t, ok)
			assert.DirExists(t, fs.Dir())
		})
	}
}

func TestNewApp_UnsupportedDriver(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	cfg.Storage.Driver = "mysql"

	a, err := newApp(context.Background(), cfg, version.Get())
	require.Error(t, err)
	assert.Nil(t, a)
	assert.True(t, apperrors.Is(err, apperrors.InvalidInput))
}

func TestApp_CloseIdempotent(t *testing.T) {
	t.Parallel()

	a, err := newApp(context.Background(), newTestConfig(t), version.Get())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		a.close()
		a.close()
	})
}

func TestLoadExampleConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFilename)
	content := `{
		"debug": true,
		"fetcher": { "mode": "http", "timeout": "15s", "rate_per_second": 1, "burst": 2 },
		"crawler": { "workers": 2, "watchlist": "watchlist.csv", "schedule": "0 0 */6 * * *" },
		"storage": { "driver": "file", "dir": "` + filepath.ToSlash(filepath.Join(dir, "products")) + `" },
		"api": { "enabled": false }
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := config.LoadWithFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)
	assert.Equal(t, 2, cfg.Crawler.Workers)

	a, err := newApp(context.Background(), cfg, version.Get())
	require.NoError(t, err)
	defer a.close()
	assert.Len(t, a.services, 1)
}
