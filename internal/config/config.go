// Package config 설정 파일, .env 파일, 환경 변수를 합쳐 애플리케이션 설정을 로드합니다.
//
// 우선순위는 낮은 것부터 기본값, JSON 설정 파일, 환경 변수 순입니다.
// 환경 변수는 SCRAPER_ 접두사를 쓰고 이중 언더스코어(__)로 계층을 구분합니다.
//
//	SCRAPER_CRAWLER__WORKERS=8          -> crawler.workers
//	SCRAPER_API__ALLOW_ORIGINS=a,b      -> api.allow_origins
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션의 전역 고유 식별자입니다.
	AppName string = "price-scraper"

	// DefaultFilename 실행 인자로 경로가 주어지지 않았을 때 읽는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	// DefaultDotEnvFile 환경 변수를 읽기 전에 미리 로드하는 .env 파일입니다. 없으면 건너뜁니다.
	DefaultDotEnvFile = ".env"

	// EnvPrefix 설정을 덮어쓰는 환경 변수의 접두사입니다.
	EnvPrefix = "SCRAPER_"
)

// Load 기본 설정 파일을 읽어 애플리케이션 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile filename의 설정 파일을 읽어 AppConfig를 생성합니다.
// filename이 비어 있으면 기본값과 환경 변수만 사용합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	return load(filename, DefaultDotEnvFile)
}

func load(filename, dotEnvFile string) (*AppConfig, error) {
	k := koanf.New(".")

	// 1. 기본값
	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "애플리케이션 기본 설정 로드에 실패했습니다")
	}

	// 2. JSON 설정 파일
	if filename != "" {
		if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, apperrors.Wrap(err, apperrors.System, fmt.Sprintf("설정 파일을 찾을 수 없습니다: '%s'", filename))
			}
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
		}
	}

	// 3. .env 파일 (이미 설정된 환경 변수는 덮어쓰지 않음)
	if err := loadDotEnv(dotEnvFile); err != nil {
		return nil, err
	}

	// 4. 환경 변수
	if err := k.Load(env.Provider(EnvPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			Result:           &appConfig,
			TagName:          "json",
			ErrorUnused:      true,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 데이터를 애플리케이션 구조체로 변환하는데 실패했습니다")
	}

	if err := appConfig.validate(); err != nil {
		source := filename
		if source == "" {
			source = "환경 변수"
		}
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정('%s')의 유효성 검증에 실패했습니다", source))
	}

	return &appConfig, nil
}

func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf(".env 파일을 읽을 수 없습니다: '%s'", path))
	}
	return nil
}

// normalizeEnvKey SCRAPER_CRAWLER__RUN_ON_START를 crawler.run_on_start로 바꿉니다.
func normalizeEnvKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "__", ".")
}

// newDefaultConfig 설정 파일과 환경 변수가 비어 있을 때 사용할 기본값입니다.
func newDefaultConfig() AppConfig {
	return AppConfig{
		Debug: false,
		Fetcher: FetcherConfig{
			Mode:          "http",
			Timeout:       30 * time.Second,
			MaxBodyBytes:  10 << 20,
			RatePerSecond: 2,
			Burst:         4,
		},
		Crawler: CrawlerConfig{
			Workers:    4,
			RunTimeout: 30 * time.Minute,
		},
		Storage: StorageConfig{
			Driver:       "file",
			Dir:          "data/products",
			MaxOpenConns: 4,
		},
		API: APIConfig{
			Enabled:        true,
			ListenPort:     8080,
			AllowOrigins:   []string{"*"},
			RequestTimeout: 2 * time.Minute,
		},
	}
}
