// Package crawler 수집 대상 URL 목록을 제한된 개수의 워커로 수집하고 추출 결과를 저장소에 기록합니다.
package crawler

import (
	"context"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/darkkaiser/price-scraper/internal/extractor"
	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/darkkaiser/price-scraper/internal/service/fetcher"
	"github.com/darkkaiser/price-scraper/internal/service/storage"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
)

const (
	component = "crawler"

	defaultWorkers = 4
)

// Target 수집 대상 하나입니다.
type Target struct {
	URL string `json:"url"`

	// Retailer 판매처 코드. 비어 있으면 URL 도메인으로 추출기를 고릅니다.
	Retailer string `json:"retailer,omitempty"`
}

// Crawler URL마다 페이지 수집, 상품 추출, 저장을 수행합니다.
//
// URL 하나의 실패나 패닉은 해당 URL의 Result에만 기록되며 나머지 수집은 계속됩니다.
type Crawler struct {
	fetcher fetcher.Fetcher
	store   storage.ProductStore
	workers int
	now     func() time.Time
}

// Option Crawler의 설정을 변경하기 위한 함수 타입입니다.
type Option func(*Crawler)

// WithWorkers 동시에 수집할 URL 수를 지정합니다. 0 이하는 기본값(4)입니다.
func WithWorkers(n int) Option {
	return func(c *Crawler) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithStore 추출 결과를 기록할 저장소를 지정합니다. 지정하지 않으면 저장하지 않습니다.
func WithStore(store storage.ProductStore) Option {
	return func(c *Crawler) {
		c.store = store
	}
}

func New(f fetcher.Fetcher, opts ...Option) *Crawler {
	if f == nil {
		panic("Fetcher는 필수입니다")
	}

	c := &Crawler{
		fetcher: f,
		workers: defaultWorkers,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run urls를 수집합니다. 판매처는 URL 도메인으로 고릅니다.
func (c *Crawler) Run(ctx context.Context, urls []string) *Report {
	targets := make([]Target, len(urls))
	for i, u := range urls {
		targets[i] = Target{URL: u}
	}
	return c.RunTargets(ctx, targets)
}

// RunTargets targets를 수집하고 입력 순서대로 정렬된 결과 보고서를 반환합니다.
//
// ctx가 취소되면 아직 시작하지 않은 대상은 취소 에러로 실패 처리됩니다.
func (c *Crawler) RunTargets(ctx context.Context, targets []Target) *Report {
	startedAt := c.now()
	results := make([]Result, len(targets))

	workers := min(c.workers, len(targets))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = c.crawlOne(ctx, targets[i])
			}
		}()
	}

	for i := range targets {
		if ctx.Err() != nil {
			results[i] = Result{URL: targets[i].URL, Retailer: targets[i].Retailer, Error: ctx.Err().Error()}
			continue
		}
		select {
		case jobs <- i:
		case <-ctx.Done():
			results[i] = Result{URL: targets[i].URL, Retailer: targets[i].Retailer, Error: ctx.Err().Error()}
		}
	}
	close(jobs)
	wg.Wait()

	report := newReport(results, startedAt, c.now())

	applog.WithComponentAndFields(component, applog.Fields{
		"total":     report.Total,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
		"duration":  report.Duration().String(),
	}).Info("수집 완료")

	return report
}

// crawlOne 패닉이 발생해도 실패한 Result를 반환합니다.
func (c *Crawler) crawlOne(ctx context.Context, t Target) (res Result) {
	start := c.now()
	res = Result{URL: t.URL, Retailer: t.Retailer}

	defer func() {
		if r := recover(); r != nil {
			err := NewErrExtractionPanic(t.URL, r)
			applog.WithComponentAndFields(component, applog.Fields{
				"url":   t.URL,
				"panic": r,
				"stack": string(debug.Stack()),
			}).Error("상품 수집 중 패닉 발생: 해당 URL을 실패로 기록합니다")

			res = Result{URL: t.URL, Retailer: t.Retailer, Error: err.Error()}
		}
		res.Duration = c.now().Sub(start)
	}()

	product, err := c.Extract(ctx, t, "")
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Success = true
	res.Product = product
	res.Fields = product.PopulatedFields()
	res.Retailer = product.RetailerCode()

	if c.store != nil {
		c.save(ctx, product, &res)
	}

	return res
}

// Extract 대상 페이지에서 상품 정보를 추출합니다. html이 비어 있으면 Fetcher로 페이지를 가져옵니다.
func (c *Crawler) Extract(ctx context.Context, t Target, html string) (*extractor.ProductData, error) {
	ex, err := selectExtractor(t)
	if err != nil {
		return nil, err
	}

	if html == "" {
		page, err := c.fetcher.Fetch(ctx, t.URL)
		if err != nil {
			return nil, err
		}
		html = page.HTML
	}

	product := ex.Extract(html, t.URL)
	if product == nil {
		return nil, ErrNoExtraction
	}
	return product, nil
}

// Save 상품을 저장소에 기록합니다. 저장소가 없으면 ErrStoreNotConfigured를 반환합니다.
func (c *Crawler) Save(ctx context.Context, p *extractor.ProductData) (*storage.UpsertResult, error) {
	if c.store == nil {
		return nil, ErrStoreNotConfigured
	}

	stored, err := c.store.Upsert(ctx, p)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

// save SKU가 없는 등 입력 문제로 저장할 수 없는 상품은 성공으로 두고 StoreSkipped에 이유를 남깁니다.
// 그 밖의 저장 실패는 URL 실패로 처리합니다.
func (c *Crawler) save(ctx context.Context, p *extractor.ProductData, res *Result) {
	stored, err := c.Save(ctx, p)
	if err == nil {
		res.Stored = stored
		return
	}

	if apperrors.Is(err, apperrors.InvalidInput) {
		res.StoreSkipped = err.Error()
		return
	}

	applog.WithComponentAndFields(component, applog.Fields{
		"url":   p.URL,
		"error": err.Error(),
	}).Warn("상품 저장 실패")

	res.Success = false
	res.Error = fmt.Sprintf("상품 저장 실패: %s", err)
}

func selectExtractor(t Target) (*extractor.Extractor, error) {
	code := strings.TrimSpace(t.Retailer)
	if code == "" {
		return extractor.Select(t.URL), nil
	}

	kind, ok := extractor.KindByCode(code)
	if !ok {
		return nil, NewErrUnknownRetailer(code)
	}
	return extractor.ForKind(kind), nil
}
