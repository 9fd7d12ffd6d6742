// Package api 가격 수집 HTTP API 서버의 생명주기와 라우팅을 관리합니다.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/darkkaiser/price-scraper/internal/pkg/version"
	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	"github.com/darkkaiser/price-scraper/internal/service/api/handler/system"
	v1 "github.com/darkkaiser/price-scraper/internal/service/api/v1"
	v1handler "github.com/darkkaiser/price-scraper/internal/service/api/v1/handler"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

const (
	// shutdownTimeout Graceful Shutdown 시 최대 대기 시간 (5초)
	shutdownTimeout = 5 * time.Second
)

// ServiceConfig API 서비스 설정
type ServiceConfig struct {
	Debug bool

	// ListenPort 0이면 DefaultListenPort를 사용합니다.
	ListenPort int

	AllowOrigins []string

	RequestTimeout time.Duration
}

// Service 가격 수집 API 서버의 생명주기를 관리하는 서비스입니다.
//
// Start로 시작하면 별도 고루틴에서 Echo 서버를 실행하고, context가 취소되면
// Graceful Shutdown(최대 5초) 후 WaitGroup에 종료를 알립니다.
type Service struct {
	config ServiceConfig

	scraper v1handler.Scraper
	reports system.ReportProvider

	buildInfo version.Info

	running   bool
	runningMu sync.Mutex
}

// NewService Service 인스턴스를 생성합니다. reports가 nil이면 헬스체크에 수집 서비스 상태가 빠집니다.
func NewService(cfg ServiceConfig, scraper v1handler.Scraper, reports system.ReportProvider, buildInfo version.Info) *Service {
	if scraper == nil {
		panic(constants.PanicMsgCrawlerRequired)
	}
	if cfg.ListenPort == 0 {
		cfg.ListenPort = constants.DefaultListenPort
	}

	return &Service{
		config: cfg,

		scraper: scraper,
		reports: reports,

		buildInfo: buildInfo,
	}
}

// Start API 서비스를 시작합니다. 서버는 고루틴에서 실행되며 이 함수는 즉시 반환됩니다.
//
// 이미 실행 중이면 경고 로그만 남기고 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarting)

	if s.scraper == nil {
		defer serviceStopWG.Done()
		return ErrScraperNotInitialized
	}

	if s.running {
		defer serviceStopWG.Done()
		applog.WithComponent(constants.ComponentService).Warn(constants.LogMsgServiceAlreadyStarted)
		return nil
	}

	s.running = true

	go s.runServiceLoop(serviceStopCtx, serviceStopWG)

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStarted)

	return nil
}

func (s *Service) runServiceLoop(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) {
	defer serviceStopWG.Done()

	e := s.setupServer()

	httpServerDone := make(chan struct{})
	go s.startHTTPServer(e, httpServerDone)

	s.waitForShutdown(serviceStopCtx, e, httpServerDone)
}

// setupServer 핸들러, 미들웨어 체인, 라우트가 모두 구성된 Echo 인스턴스를 생성합니다.
func (s *Service) setupServer() *echo.Echo {
	systemHandler := system.New(s.reports, s.buildInfo)
	v1Handler := v1handler.NewHandler(s.scraper)

	e := NewHTTPServer(HTTPServerConfig{
		Debug:          s.config.Debug,
		AllowOrigins:   s.config.AllowOrigins,
		RequestTimeout: s.config.RequestTimeout,
	})

	RegisterRoutes(e, systemHandler)
	v1.RegisterRoutes(e, v1Handler)

	return e
}

// startHTTPServer 서버가 종료될 때까지 블로킹되며, 종료되면 done을 닫습니다.
func (s *Service) startHTTPServer(e *echo.Echo, done chan struct{}) {
	defer close(done)

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port": s.config.ListenPort,
	}).Info(constants.LogMsgServiceHTTPServerStarting)

	s.handleServerError(e.Start(fmt.Sprintf(":%d", s.config.ListenPort)))
}

// handleServerError http.ErrServerClosed는 정상 종료로 보고, 그 밖의 에러는 Error 레벨로 기록합니다.
func (s *Service) handleServerError(err error) {
	if err == nil {
		return
	}

	if errors.Is(err, http.ErrServerClosed) {
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceHTTPServerStopped)
		return
	}

	applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
		"port":  s.config.ListenPort,
		"error": err,
	}).Error(constants.LogMsgServiceHTTPServerFatalError)
}

// waitForShutdown 종료 신호를 기다린 뒤 Graceful Shutdown을 수행합니다.
// 포트 바인딩 실패 등으로 서버가 먼저 종료되면 Shutdown 없이 상태만 정리합니다.
func (s *Service) waitForShutdown(serviceStopCtx context.Context, e *echo.Echo, httpServerDone chan struct{}) {
	select {
	case <-serviceStopCtx.Done():
		applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopping)
	case <-httpServerDone:
		applog.WithComponent(constants.ComponentService).Error(constants.LogMsgServiceUnexpectedExit)

		s.cleanup()

		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		applog.WithComponentAndFields(constants.ComponentService, applog.Fields{
			"error": err,
		}).Error(constants.LogMsgServiceHTTPServerShutdownError)
	}

	<-httpServerDone

	s.cleanup()
}

func (s *Service) cleanup() {
	s.runningMu.Lock()
	s.running = false
	s.runningMu.Unlock()

	applog.WithComponent(constants.ComponentService).Info(constants.LogMsgServiceStopped)
}

// Running 서버가 실행 중인지 반환합니다.
func (s *Service) Running() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	return s.running
}
