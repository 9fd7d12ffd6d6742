package crawler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/darkkaiser/price-scraper/pkg/cronx"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/robfig/cron/v3"
)

const componentService = "crawler.service"

// ServiceConfig 정기 수집 서비스 설정입니다.
type ServiceConfig struct {
	// Watchlist 수집 대상 CSV 파일 경로. 수집할 때마다 다시 읽습니다.
	Watchlist string

	// Schedule 6필드 Cron 표현식. 비어 있으면 정기 수집을 하지 않습니다.
	Schedule string

	// RunOnStart 서비스 시작 직후 한 번 수집합니다.
	RunOnStart bool

	// RunTimeout 수집 한 번의 제한 시간. 0이면 제한하지 않습니다.
	RunTimeout time.Duration
}

// Service 수집 대상 목록을 Cron 스케줄에 맞춰 수집하는 서비스입니다.
//
// 수집이 진행 중일 때 다음 스케줄이 오면 건너뜁니다.
type Service struct {
	crawler *Crawler
	cfg     ServiceConfig

	cron *cron.Cron

	// runCtx 서비스 종료 시 진행 중인 수집을 취소합니다.
	runCtx    context.Context
	runCancel context.CancelFunc
	runWG     sync.WaitGroup
	crawling  atomic.Bool

	lastReport atomic.Pointer[Report]

	running   bool
	runningMu sync.Mutex
}

func NewService(c *Crawler, cfg ServiceConfig) *Service {
	if c == nil {
		panic("Crawler는 필수입니다")
	}
	return &Service{crawler: c, cfg: cfg}
}

// Start Cron 스케줄을 등록하고 서비스를 시작합니다.
// serviceStopCtx가 취소되면 스케줄을 멈추고 진행 중인 수집이 끝날 때까지 기다린 뒤 serviceStopWG.Done()을 호출합니다.
func (s *Service) Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	applog.WithComponent(componentService).Info("서비스 시작 진입: 정기 수집 서비스 초기화를 시작합니다")

	if s.running {
		serviceStopWG.Done()
		applog.WithComponent(componentService).Warn("정기 수집 서비스가 이미 실행 중입니다 (중복 호출)")
		return nil
	}

	s.runCtx, s.runCancel = context.WithCancel(context.Background())

	s.cron = cron.New(
		cron.WithParser(cronx.StandardParser()),
		cron.WithLogger(cron.VerbosePrintfLogger(applog.StandardLogger())),
		cron.WithChain(cron.Recover(cron.VerbosePrintfLogger(applog.StandardLogger()))),
	)

	if s.cfg.Schedule != "" {
		if _, err := s.cron.AddFunc(s.cfg.Schedule, s.runScheduled); err != nil {
			s.runCancel()
			serviceStopWG.Done()
			return NewErrInvalidSchedule(s.cfg.Schedule, err)
		}
	}

	s.cron.Start()
	s.running = true

	fields := applog.Fields{
		"watchlist":    s.cfg.Watchlist,
		"schedule":     s.cfg.Schedule,
		"run_on_start": s.cfg.RunOnStart,
	}
	if next, err := cronx.Next(s.cfg.Schedule, time.Now()); err == nil {
		fields["next_run"] = next.Format(time.RFC3339)
	}
	applog.WithComponentAndFields(componentService, fields).Info("서비스 시작 완료: 정기 수집 서비스가 초기화되었습니다")

	if s.cfg.RunOnStart {
		s.runScheduled()
	}

	go func() {
		defer serviceStopWG.Done()

		<-serviceStopCtx.Done()

		s.Stop()
	}()

	return nil
}

// Stop 스케줄을 멈추고 진행 중인 수집을 취소한 뒤 끝날 때까지 기다립니다.
func (s *Service) Stop() {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()

	if !s.running {
		return
	}

	applog.WithComponent(componentService).Info("종료 절차 진입: 정기 수집 서비스 중지 시그널을 수신했습니다")

	<-s.cron.Stop().Done()
	s.runCancel()
	s.runWG.Wait()

	s.cron = nil
	s.running = false

	applog.WithComponent(componentService).Info("정기 수집 서비스 종료 완료")
}

// RunNow 수집 대상 목록을 다시 읽어 즉시 수집합니다. 이미 수집 중이면 ErrAlreadyRunning을 반환합니다.
func (s *Service) RunNow(ctx context.Context) (*Report, error) {
	if !s.crawling.CompareAndSwap(false, true) {
		return nil, ErrAlreadyRunning
	}
	defer s.crawling.Store(false)

	targets, err := LoadWatchlist(s.cfg.Watchlist)
	if err != nil {
		return nil, err
	}
	if len(targets) == 0 {
		return nil, ErrEmptyWatchlist
	}

	if s.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunTimeout)
		defer cancel()
	}

	report := s.crawler.RunTargets(ctx, targets)
	s.lastReport.Store(report)

	return report, nil
}

// LastReport 마지막 수집 보고서를 반환합니다. 아직 수집하지 않았으면 nil입니다.
func (s *Service) LastReport() *Report {
	return s.lastReport.Load()
}

// runScheduled 수집을 백그라운드로 시작합니다. Stop은 이 수집이 끝날 때까지 기다립니다.
func (s *Service) runScheduled() {
	s.runWG.Add(1)
	go func() {
		defer s.runWG.Done()

		report, err := s.RunNow(s.runCtx)
		if err != nil {
			applog.WithComponentAndFields(componentService, applog.Fields{
				"watchlist": s.cfg.Watchlist,
				"error":     err.Error(),
			}).Warn("정기 수집 실패")
			return
		}

		fields := applog.Fields{
			"total":     report.Total,
			"succeeded": report.Succeeded,
			"failed":    report.Failed,
		}
		for _, f := range report.SortedFields() {
			fields["fill_"+f] = report.FieldCounts[f]
		}
		applog.WithComponentAndFields(componentService, fields).Info("정기 수집 완료")
	}()
}
