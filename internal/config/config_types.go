package config

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
)

// AppConfig 애플리케이션의 모든 설정을 포함하는 최상위 구조체
type AppConfig struct {
	Debug   bool          `json:"debug"`
	Fetcher FetcherConfig `json:"fetcher"`
	Crawler CrawlerConfig `json:"crawler"`
	Storage StorageConfig `json:"storage"`
	API     APIConfig     `json:"api"`
}

// validate 설정을 읽은 직후 각 항목의 정합성을 검증합니다.
func (c *AppConfig) validate() error {
	if err := checkStruct(c.Fetcher, "fetcher"); err != nil {
		return err
	}
	if err := c.Crawler.validate(); err != nil {
		return err
	}
	if err := checkStruct(c.Storage, "storage"); err != nil {
		return err
	}
	return c.API.validate()
}

// VerifyRecommendations 실행을 막지는 않지만 운영상 주의가 필요한 설정에 대한 경고 메시지를 반환합니다.
func (c *AppConfig) VerifyRecommendations() []string {
	var warnings []string

	if c.Fetcher.RatePerSecond <= 0 {
		warnings = append(warnings, "수집 속도 제한(fetcher.rate_per_second)이 꺼져 있습니다. 판매처 서버에서 요청이 차단될 수 있습니다")
	}

	if c.Crawler.Schedule == "" && !c.Crawler.RunOnStart {
		warnings = append(warnings, "정기 수집 스케줄(crawler.schedule)이 없고 시작 시 수집(crawler.run_on_start)도 꺼져 있습니다. API 요청으로만 수집합니다")
	}

	if c.API.Enabled {
		if c.API.ListenPort < 1024 {
			warnings = append(warnings, fmt.Sprintf("시스템 예약 포트(1-1023)를 사용하도록 설정되었습니다(port: %d). 이 경우 서버 구동 시 관리자 권한이 필요할 수 있습니다", c.API.ListenPort))
		}
		if len(c.API.AllowOrigins) == 1 && c.API.AllowOrigins[0] == "*" {
			warnings = append(warnings, "CORS가 모든 Origin(*)을 허용합니다. 외부에 노출되는 서버라면 허용 도메인을 지정하세요")
		}
	}

	return warnings
}

// FetcherConfig 상품 페이지 수집 방식과 요청 제한 설정
type FetcherConfig struct {
	// Mode http, browser, auto(브라우저 실패 시 HTTP) 중 하나
	Mode string `json:"mode" validate:"oneof=http browser auto"`

	Timeout   time.Duration `json:"timeout" validate:"gte=1s,lte=10m"`
	UserAgent string        `json:"user_agent"`

	// MaxBodyBytes -1이면 제한하지 않습니다.
	MaxBodyBytes int64 `json:"max_body_bytes" validate:"gte=-1"`

	RatePerSecond float64 `json:"rate_per_second" validate:"gte=0"`
	Burst         int     `json:"burst" validate:"gte=0"`

	BrowserBin string `json:"browser_bin"`
}

// CrawlerConfig 수집 대상 목록과 정기 수집 설정
type CrawlerConfig struct {
	Workers int `json:"workers" validate:"gte=1,lte=64"`

	// Watchlist url, retailer 컬럼을 가진 CSV 파일 경로
	Watchlist string `json:"watchlist"`

	// Schedule 6필드 Cron 표현식 (예: "0 0 */6 * * *")
	Schedule   string        `json:"schedule" validate:"cron_spec"`
	RunOnStart bool          `json:"run_on_start"`
	RunTimeout time.Duration `json:"run_timeout" validate:"gte=0"`
}

func (c *CrawlerConfig) validate() error {
	if err := checkStruct(c, "crawler"); err != nil {
		return err
	}

	if (c.Schedule != "" || c.RunOnStart) && strings.TrimSpace(c.Watchlist) == "" {
		return apperrors.New(apperrors.InvalidInput, "정기 수집(crawler.schedule) 또는 시작 시 수집(crawler.run_on_start)을 사용하려면 수집 대상 파일(crawler.watchlist)이 필요합니다")
	}

	return nil
}

// StorageConfig 추출한 상품 정보를 기록하는 저장소 설정
type StorageConfig struct {
	Driver string `json:"driver" validate:"oneof=file postgres"`

	// Dir file 드라이버의 저장 디렉토리
	Dir string `json:"dir" validate:"required_if=Driver file"`

	// DSN postgres 드라이버의 접속 문자열
	DSN          string `json:"dsn" validate:"required_if=Driver postgres"`
	MaxOpenConns int    `json:"max_open_conns" validate:"gte=0"`

	// MaxHistory 상품 하나의 가격 이력 보관(file) 또는 조회(postgres) 건수. 0이면 저장소 기본값
	MaxHistory int `json:"max_history" validate:"gte=0"`
}

// APIConfig 추출/수집 REST API 서버 설정
type APIConfig struct {
	Enabled        bool          `json:"enabled"`
	ListenPort     int           `json:"listen_port" validate:"min=1,max=65535"`
	AllowOrigins   []string      `json:"allow_origins" validate:"dive,cors_origin"`
	RequestTimeout time.Duration `json:"request_timeout" validate:"gte=0"`
}

func (c *APIConfig) validate() error {
	if !c.Enabled {
		return nil
	}

	if err := checkStruct(c, "api"); err != nil {
		return err
	}

	for _, origin := range c.AllowOrigins {
		if origin == "*" && len(c.AllowOrigins) > 1 {
			return apperrors.New(apperrors.InvalidInput, "와일드카드(*)는 다른 도메인과 함께 사용할 수 없습니다. 모든 도메인을 허용하려면 와일드카드만 설정하세요")
		}
	}

	return nil
}
