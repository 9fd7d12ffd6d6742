package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/darkkaiser/price-scraper/internal/extractor"
	"github.com/darkkaiser/price-scraper/pkg/concurrency"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
)

const (
	componentFile = "storage.file"

	defaultDataDirectory = "data"

	tempFilePattern = "product-*.tmp"

	// defaultMaxHistory 파일 하나에 보관하는 가격 이력의 최대 건수. 초과하면 오래된 것부터 버립니다.
	defaultMaxHistory = 1000
)

// FileStore 상품마다 JSON 파일 하나를 저장하는 ProductStore 구현체입니다.
//
// 파일 쓰기는 "임시 파일 → fsync → rename" 순서의 원자적 쓰기이며, 같은 상품에 대한 Upsert는 상품별 잠금으로 직렬화됩니다.
type FileStore struct {
	baseDir    string
	maxHistory int
	now        func() time.Time

	locks  *concurrency.KeyedMutex[string]
	closed atomic.Bool
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ ProductStore = (*FileStore)(nil)

// FileOption FileStore의 설정을 변경하기 위한 함수 타입입니다.
type FileOption func(*FileStore)

// WithMaxHistory 상품 하나에 보관할 가격 이력 최대 건수를 지정합니다. 0 이하는 무시합니다.
func WithMaxHistory(n int) FileOption {
	return func(s *FileStore) {
		if n > 0 {
			s.maxHistory = n
		}
	}
}

// WithClock 저장 시각을 결정하는 함수를 지정합니다.
func WithClock(now func() time.Time) FileOption {
	return func(s *FileStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewFileStore dir에 상품 파일을 저장하는 저장소를 생성합니다. dir이 비어 있으면 "data"를 사용합니다.
// 이전 실행에서 남은 한 시간 이상 지난 임시 파일을 정리합니다.
func NewFileStore(dir string, opts ...FileOption) (*FileStore, error) {
	if dir == "" {
		dir = defaultDataDirectory
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, newErrDirectoryAccessFailed(err, dir)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, newErrDirectoryAccessFailed(err, absDir)
	}

	s := &FileStore{
		baseDir:    absDir,
		maxHistory: defaultMaxHistory,
		now:        time.Now,
		locks:      concurrency.NewKeyedMutex[string](),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cleanupStaleTempFiles()

	applog.WithComponentAndFields(componentFile, applog.Fields{
		"dir": absDir,
	}).Info("파일 저장소 초기화 완료")

	return s, nil
}

// Dir 상품 파일이 저장되는 절대 경로를 반환합니다.
func (s *FileStore) Dir() string {
	return s.baseDir
}

func (s *FileStore) Upsert(ctx context.Context, p *extractor.ProductData) (UpsertResult, error) {
	if s.closed.Load() {
		return UpsertResult{}, ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return UpsertResult{}, err
	}

	code, name, sku, err := productKey(p)
	if err != nil {
		return UpsertResult{}, err
	}

	path, err := s.resolveSafePath(code, sku)
	if err != nil {
		return UpsertResult{}, err
	}

	var result UpsertResult
	err = s.locks.WithLock(strings.ToLower(path), func() error {
		prev, err := s.readRecord(path)
		if err != nil && !os.IsNotExist(err) {
			return err
		}

		now := s.now().UTC()
		rec := mergeRecord(prev, p, code, name, sku, now)
		if len(rec.History) > s.maxHistory {
			rec.History = rec.History[len(rec.History)-s.maxHistory:]
		}

		data, err := json.MarshalIndent(rec, "", "\t")
		if err != nil {
			return newErrFileWriteFailed(err, "JSON 직렬화")
		}
		if err := s.writeAtomic(path, data); err != nil {
			return err
		}

		result = UpsertResult{
			RetailerCode: code,
			SKU:          sku,
			Created:      prev == nil,
			LowestPrice:  clonePrice(rec.LowestPrice),
			HighestPrice: clonePrice(rec.HighestPrice),
		}
		if prev != nil {
			result.PriceChanged = priceChanged(prev.Product.CurrentPrice, p.CurrentPrice)
		}
		return nil
	})
	if err != nil {
		return UpsertResult{}, err
	}

	applog.WithComponentAndFields(componentFile, applog.Fields{
		"retailer":      code,
		"sku":           sku,
		"created":       result.Created,
		"price_changed": result.PriceChanged,
	}).Debug("상품 저장 완료")

	return result, nil
}

// mergeRecord 이전 레코드에 새로 추출한 상품 정보를 반영한 레코드를 만듭니다. prev는 수정하지 않습니다.
func mergeRecord(prev *Record, p *extractor.ProductData, code, name, sku string, now time.Time) *Record {
	rec := &Record{
		RetailerCode: code,
		RetailerName: name,
		SKU:          sku,
		Product:      *p,
		LowestPrice:  clonePrice(p.CurrentPrice),
		HighestPrice: clonePrice(p.CurrentPrice),
		FirstSeenAt:  now,
		LastSeenAt:   now,
	}
	rec.Product.SKU = sku

	if prev != nil {
		rec.FirstSeenAt = prev.FirstSeenAt
		rec.LowestPrice = clonePrice(lowerPrice(prev.LowestPrice, p.CurrentPrice))
		rec.HighestPrice = clonePrice(higherPrice(prev.HighestPrice, p.CurrentPrice))
		rec.History = append(rec.History, prev.History...)
		if rec.RetailerName == "" {
			rec.RetailerName = prev.RetailerName
		}
	}

	rec.History = append(rec.History, PricePoint{
		Price:         clonePrice(p.CurrentPrice),
		OriginalPrice: clonePrice(p.OriginalPrice),
		Currency:      Currency,
		ObservedAt:    now,
	})

	return rec
}

func (s *FileStore) Lookup(ctx context.Context, retailerCode, sku string) (*Record, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.resolveSafePath(retailerCode, sku)
	if err != nil {
		return nil, err
	}

	var rec *Record
	err = s.locks.WithLock(strings.ToLower(path), func() error {
		var readErr error
		rec, readErr = s.readRecord(path)
		return readErr
	})
	if err != nil {
		if os.IsNotExist(err) {
			return nil, NewErrProductNotFound(retailerCode, sku)
		}
		return nil, err
	}

	return rec, nil
}

// Close 이후의 Upsert, Lookup은 ErrStoreClosed를 반환합니다.
func (s *FileStore) Close() error {
	if s.closed.CompareAndSwap(false, true) {
		applog.WithComponent(componentFile).Info("파일 저장소 종료")
	}
	return nil
}

// readRecord 파일이 없으면 os.IsNotExist를 만족하는 에러를 그대로 반환합니다. 호출자가 잠금을 잡고 있어야 합니다.
func (s *FileStore) readRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, newErrFileReadFailed(err, path)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, newErrCorruptedRecord(err, path)
	}
	return &rec, nil
}

func (s *FileStore) resolveSafePath(retailerCode, sku string) (string, error) {
	cleanPath := filepath.Clean(filepath.Join(s.baseDir, recordFilename(retailerCode, sku)))

	rel, err := filepath.Rel(s.baseDir, cleanPath)
	if err != nil || strings.HasPrefix(rel, "..") || strings.ContainsRune(rel, filepath.Separator) {
		applog.WithComponentAndFields(componentFile, applog.Fields{
			"retailer": retailerCode,
			"sku":      sku,
			"path":     cleanPath,
		}).Error("파일 경로 생성 차단: 경로 이탈 시도 감지")

		return "", ErrPathTraversalDetected
	}

	return cleanPath, nil
}

func (s *FileStore) writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	tmpFile, err := os.CreateTemp(dir, tempFilePattern)
	if err != nil {
		return newErrFileWriteFailed(err, "임시 파일 생성")
	}
	tmpPath := tmpFile.Name()

	// Close가 Remove보다 먼저 실행되어야 합니다.
	defer os.Remove(tmpPath)
	defer tmpFile.Close()

	if _, err := tmpFile.Write(data); err != nil {
		return newErrFileWriteFailed(err, "임시 파일 쓰기")
	}
	if err := tmpFile.Sync(); err != nil {
		return newErrFileWriteFailed(err, "디스크 동기화")
	}
	if err := tmpFile.Close(); err != nil {
		return newErrFileWriteFailed(err, "임시 파일 닫기")
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return newErrFileWriteFailed(err, "파일 이름 변경")
	}

	if dirFile, err := os.Open(dir); err == nil {
		_ = dirFile.Sync()
		_ = dirFile.Close()
	}

	return nil
}

// cleanupStaleTempFiles 비정상 종료로 남은 임시 파일 중 한 시간 이상 지난 것을 삭제합니다.
func (s *FileStore) cleanupStaleTempFiles() {
	matches, err := filepath.Glob(filepath.Join(s.baseDir, tempFilePattern))
	if err != nil {
		return
	}

	threshold := time.Now().Add(-1 * time.Hour)
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.ModTime().After(threshold) {
			continue
		}

		if err := os.Remove(match); err != nil {
			applog.WithComponentAndFields(componentFile, applog.Fields{
				"file":  match,
				"error": err,
			}).Warn("임시 파일 삭제 실패")
			continue
		}

		applog.WithComponentAndFields(componentFile, applog.Fields{
			"file": match,
		}).Info("이전 실행에서 남은 임시 파일 삭제")
	}
}
