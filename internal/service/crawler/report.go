package crawler

import (
	"sort"
	"time"

	"github.com/darkkaiser/price-scraper/internal/extractor"
	"github.com/darkkaiser/price-scraper/internal/service/storage"
)

// Result URL 하나의 수집 결과입니다.
type Result struct {
	URL string `json:"url"`

	// Retailer 추출에 사용한 판매처 코드. 범용 추출기는 빈 문자열입니다.
	Retailer string `json:"retailer,omitempty"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	// Fields 값이 채워진 필드 이름 목록
	Fields []string `json:"fields,omitempty"`

	Product *extractor.ProductData `json:"product,omitempty"`

	// Stored 저장소에 기록한 결과. 저장소가 없거나 SKU 또는 판매처 코드가 없어 저장하지 않았으면 nil입니다.
	Stored *storage.UpsertResult `json:"stored,omitempty"`

	// StoreSkipped 저장하지 않은 이유 (예: SKU 없음)
	StoreSkipped string `json:"store_skipped,omitempty"`

	Duration time.Duration `json:"duration"`
}

// Report 수집 한 번의 결과 요약입니다. Results는 입력 순서를 따릅니다.
type Report struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	// FieldCounts 필드별로 값이 채워진 상품 수
	FieldCounts map[string]int `json:"field_counts"`

	Results []Result `json:"results"`
}

// Duration 수집에 걸린 전체 시간을 반환합니다.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// FailedURLs 실패한 URL 목록을 입력 순서대로 반환합니다.
func (r *Report) FailedURLs() []string {
	var urls []string
	for _, res := range r.Results {
		if !res.Success {
			urls = append(urls, res.URL)
		}
	}
	return urls
}

// FillRate 성공한 상품 중 field가 채워진 비율(0~1)을 반환합니다.
func (r *Report) FillRate(field string) float64 {
	if r.Succeeded == 0 {
		return 0
	}
	return float64(r.FieldCounts[field]) / float64(r.Succeeded)
}

// SortedFields FieldCounts의 필드 이름을 정렬해서 반환합니다.
func (r *Report) SortedFields() []string {
	fields := make([]string, 0, len(r.FieldCounts))
	for f := range r.FieldCounts {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func newReport(results []Result, startedAt, finishedAt time.Time) *Report {
	r := &Report{
		StartedAt:   startedAt,
		FinishedAt:  finishedAt,
		Total:       len(results),
		FieldCounts: make(map[string]int),
		Results:     results,
	}

	for _, res := range results {
		if !res.Success {
			r.Failed++
			continue
		}
		r.Succeeded++
		for _, f := range res.Fields {
			r.FieldCounts[f]++
		}
	}

	return r
}
