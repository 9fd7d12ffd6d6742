package api

import (
	"net/http"
	"time"

	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	"github.com/darkkaiser/price-scraper/internal/service/api/httputil"
	appmiddleware "github.com/darkkaiser/price-scraper/internal/service/api/middleware"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// HTTPServerConfig HTTP 서버 생성에 필요한 설정을 정의합니다.
type HTTPServerConfig struct {
	// Debug Echo 프레임워크의 디버그 모드 활성화 여부
	Debug bool

	// AllowOrigins CORS에서 허용할 Origin 목록. 비어 있으면 모든 Origin을 허용합니다.
	AllowOrigins []string

	// RequestTimeout 각 HTTP 요청의 최대 처리 시간 (기본값: 2분)
	// 초과하면 요청 컨텍스트가 취소되어 진행 중인 페이지 수집도 중단됩니다.
	RequestTimeout time.Duration
}

// NewHTTPServer 미들웨어 체인이 구성된 Echo 인스턴스를 생성합니다.
//
// 미들웨어 적용 순서:
//
//  1. PanicRecovery - 다른 미들웨어에서 발생한 panic까지 복구
//  2. RequestID - 로그에 request_id를 남기려면 로깅보다 앞서야 함
//  3. Server 헤더 제거
//  4. HTTPLogger - 429, 413, 503 응답도 기록되도록 제한 미들웨어보다 앞에 둠
//  5. RateLimiting - IP별 초당 요청 수 제한
//  6. BodyLimit - 요청 본문 크기 제한 (초과 시 413)
//  7. Timeout - 요청 처리 시간 제한 (초과 시 503)
//  8. CORS
//  9. Secure - 보안 헤더
//
// 라우트는 포함되지 않으며, 반환된 Echo 인스턴스에 별도로 등록해야 합니다.
func NewHTTPServer(cfg HTTPServerConfig) *echo.Echo {
	e := echo.New()

	e.Debug = cfg.Debug
	e.HideBanner = true
	e.HidePort = true

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = constants.DefaultRequestTimeout
	}

	e.Server.ReadTimeout = constants.DefaultReadTimeout
	e.Server.ReadHeaderTimeout = constants.DefaultReadHeaderTimeout
	e.Server.WriteTimeout = max(constants.DefaultWriteTimeout, timeout+10*time.Second)
	e.Server.IdleTimeout = constants.DefaultIdleTimeout

	// Echo 내부 로그도 애플리케이션 로거와 같은 출력 대상을 사용합니다.
	e.Logger = appmiddleware.NewEchoLogger(applog.StandardLogger())

	e.HTTPErrorHandler = httputil.ErrorHandler

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}

	e.Use(appmiddleware.PanicRecovery())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Response().Header().Set(echo.HeaderServer, "")
			return next(c)
		}
	})
	e.Use(appmiddleware.HTTPLogger())
	e.Use(appmiddleware.RateLimiting(constants.DefaultRateLimitPerSecond, constants.DefaultRateLimitBurst))
	e.Use(middleware.BodyLimit(constants.DefaultMaxBodySize))
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: timeout,
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodHead, http.MethodPost},
	}))
	e.Use(middleware.Secure())

	return e
}
