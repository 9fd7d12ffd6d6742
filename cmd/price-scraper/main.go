package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/darkkaiser/price-scraper/internal/config"
	"github.com/darkkaiser/price-scraper/internal/pkg/version"
	"github.com/darkkaiser/price-scraper/internal/service"
	"github.com/darkkaiser/price-scraper/internal/service/api"
	"github.com/darkkaiser/price-scraper/internal/service/crawler"
	"github.com/darkkaiser/price-scraper/internal/service/fetcher"
	"github.com/darkkaiser/price-scraper/internal/service/storage"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	log "github.com/sirupsen/logrus"
)

const (
	banner = `
  ____         _                ____
 |  _ \  _ __ (_)  ___  ___    / ___|   ___  _ __   __ _  _ __    ___  _ __
 | |_) || '__|| | / __|/ _ \   \___ \  / __|| '__| / _' || '_ \  / _ \| '__|
 |  __/ | |   | || (__|  __/    ___) || (__ | |   | (_| || |_) ||  __/| |
 |_|    |_|   |_| \___|\___|   |____/  \___||_|    \__,_|| .__/  \___||_|
                                                         |_|     %s
                                                        developed by DarkKaiser
--------------------------------------------------------------------------------
`
)

func main() {
	// 1. 환경설정 로드 (로그 설정에 필요하므로 가장 먼저 수행한다)
	appConfig, err := config.LoadWithFile(configFilename(os.Args[1:]))
	if err != nil {
		// 로거 초기화 전이므로 표준 에러에 출력
		fmt.Fprintf(os.Stderr, "[FATAL] 환경설정 로드 실패: %v\n", err)
		os.Exit(1)
	}

	// 2. 로그 시스템 초기화
	appLogCloser, err := applog.Setup(newLogOptions(appConfig.Debug))
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] 로그 시스템 초기화 실패. 서버 구동을 중단합니다. (Cause: %v)\n", err)
		os.Exit(1)
	}
	defer appLogCloser.Close()

	// 3. 로그 레벨 최종 확정
	applog.SetDebugMode(appConfig.Debug)

	buildInfo := version.Get()
	fmt.Printf(banner, buildInfo.Version)

	fields := buildInfo.Fields()
	fields["env"] = map[bool]string{true: "development", false: "production"}[appConfig.Debug]
	applog.WithComponentAndFields("main", fields).Info("서버 초기화 시작")

	for _, warning := range appConfig.VerifyRecommendations() {
		applog.WithComponent("main").Warn(warning)
	}

	serviceStopCtx, cancel := context.WithCancel(context.Background())
	serviceStopWG := &sync.WaitGroup{}

	a, err := newApp(serviceStopCtx, appConfig, buildInfo)
	if err != nil {
		cancel()
		applog.WithComponentAndFields("main", log.Fields{"error": err}).Error("구성 요소 생성 실패")
		appLogCloser.Close()
		os.Exit(1)
	}
	defer a.close()

	// 서비스를 시작한다.
	for _, s := range a.services {
		serviceStopWG.Add(1)
		if err := s.Start(serviceStopCtx, serviceStopWG); err != nil {
			applog.WithComponentAndFields("main", log.Fields{
				"error": err,
			}).Error("서비스 초기화 실패")

			cancel() // 다른 서비스들도 종료
			serviceStopWG.Wait()
			a.close()

			log.Fatal("서비스 초기화 실패로 프로그램을 종료합니다")
		}
	}

	termC := make(chan os.Signal, 1)
	signal.Notify(termC, syscall.SIGINT, syscall.SIGTERM)

	applog.WithComponent("main").Info("서버 가동 완료")

	<-termC

	applog.WithComponent("main").Info("종료 시그널 수신: 서비스를 정리합니다")
	cancel()
	serviceStopWG.Wait()
}

// configFilename 첫 번째 실행 인자가 있으면 설정 파일 경로로 사용합니다.
func configFilename(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return config.DefaultFilename
}

func newLogOptions(debug bool) applog.Options {
	if debug {
		return applog.NewDevelopmentOptions(config.AppName)
	}
	return applog.NewProductionOptions(config.AppName)
}

// app 설정으로 조립한 구성 요소입니다. close는 서비스가 모두 종료된 뒤 호출합니다.
type app struct {
	fetcher  fetcher.Fetcher
	store    storage.ProductStore
	crawler  *crawler.Crawler
	services []service.Service

	closeOnce sync.Once
}

func newApp(ctx context.Context, cfg *config.AppConfig, buildInfo version.Info) (*app, error) {
	f, err := fetcher.New(fetcher.Config{
		Mode:          fetcher.Mode(cfg.Fetcher.Mode),
		Timeout:       cfg.Fetcher.Timeout,
		UserAgent:     cfg.Fetcher.UserAgent,
		MaxBodyBytes:  cfg.Fetcher.MaxBodyBytes,
		RatePerSecond: cfg.Fetcher.RatePerSecond,
		Burst:         cfg.Fetcher.Burst,
		BrowserBin:    cfg.Fetcher.BrowserBin,
	})
	if err != nil {
		return nil, err
	}

	store, err := storage.New(ctx, storage.Config{
		Driver:       storage.Driver(cfg.Storage.Driver),
		Dir:          cfg.Storage.Dir,
		DSN:          cfg.Storage.DSN,
		MaxOpenConns: cfg.Storage.MaxOpenConns,
		MaxHistory:   cfg.Storage.MaxHistory,
	})
	if err != nil {
		return nil, errors.Join(err, f.Close())
	}

	c := crawler.New(f, crawler.WithWorkers(cfg.Crawler.Workers), crawler.WithStore(store))
	crawlerService := crawler.NewService(c, crawler.ServiceConfig{
		Watchlist:  cfg.Crawler.Watchlist,
		Schedule:   cfg.Crawler.Schedule,
		RunOnStart: cfg.Crawler.RunOnStart,
		RunTimeout: cfg.Crawler.RunTimeout,
	})

	a := &app{
		fetcher:  f,
		store:    store,
		crawler:  c,
		services: []service.Service{crawlerService},
	}

	if cfg.API.Enabled {
		apiService := api.NewService(api.ServiceConfig{
			Debug:          cfg.Debug,
			ListenPort:     cfg.API.ListenPort,
			AllowOrigins:   cfg.API.AllowOrigins,
			RequestTimeout: cfg.API.RequestTimeout,
		}, c, crawlerService, buildInfo)
		a.services = append(a.services, apiService)
	}

	return a, nil
}

func (a *app) close() {
	a.closeOnce.Do(func() {
		if err := a.store.Close(); err != nil {
			applog.WithComponentAndFields("main", log.Fields{"error": err}).Warn("상품 저장소 종료 실패")
		}
		if err := a.fetcher.Close(); err != nil {
			applog.WithComponentAndFields("main", log.Fields{"error": err}).Warn("Fetcher 종료 실패")
		}
	})
}
