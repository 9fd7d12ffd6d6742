package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	"github.com/darkkaiser/price-scraper/internal/extractor"
	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/lib/pq"
)

const (
	componentPostgres = "storage.postgres"

	defaultHistoryLimit = 100
)

// PostgresStore PostgreSQL(lib/pq)에 상품을 저장하는 ProductStore 구현체입니다.
//
// Upsert 한 번은 트랜잭션 하나이며 retailers, products, price_history 순서로 기록합니다.
type PostgresStore struct {
	db           *sql.DB
	historyLimit int
	now          func() time.Time

	closed atomic.Bool
}

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ ProductStore = (*PostgresStore)(nil)

// PostgresOption PostgresStore의 설정을 변경하기 위한 함수 타입입니다.
type PostgresOption func(*PostgresStore)

// WithHistoryLimit Lookup이 반환하는 가격 이력의 최대 건수를 지정합니다. 0 이하는 무시합니다.
func WithHistoryLimit(n int) PostgresOption {
	return func(s *PostgresStore) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithMaxOpenConns 커넥션 풀의 최대 연결 수를 지정합니다.
func WithMaxOpenConns(n int) PostgresOption {
	return func(s *PostgresStore) {
		if n > 0 {
			s.db.SetMaxOpenConns(n)
			s.db.SetMaxIdleConns(n)
		}
	}
}

// NewPostgresStore dsn으로 연결하고 스키마를 준비합니다.
func NewPostgresStore(ctx context.Context, dsn string, opts ...PostgresOption) (*PostgresStore, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, apperrors.New(apperrors.InvalidInput, "PostgreSQL 접속 정보(dsn)가 비어 있습니다")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "PostgreSQL 접속 정보를 해석할 수 없습니다")
	}

	s := &PostgresStore{
		db:           db,
		historyLimit: defaultHistoryLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, wrapPostgresError(err, "PostgreSQL에 연결할 수 없습니다")
	}

	if err := s.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	applog.WithComponent(componentPostgres).Info("PostgreSQL 저장소 초기화 완료")

	return s, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return wrapPostgresError(err, "스키마 생성에 실패했습니다")
		}
	}
	return nil
}

func (s *PostgresStore) Upsert(ctx context.Context, p *extractor.ProductData) (UpsertResult, error) {
	if s.closed.Load() {
		return UpsertResult{}, ErrStoreClosed
	}

	code, name, sku, err := productKey(p)
	if err != nil {
		return UpsertResult{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UpsertResult{}, wrapPostgresError(err, "트랜잭션을 시작할 수 없습니다")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, upsertRetailerSQL, code, name); err != nil {
		return UpsertResult{}, wrapPostgresError(err, "판매처 저장에 실패했습니다")
	}

	now := s.now().UTC()

	var (
		productID       int64
		created         bool
		prevPrice       sql.NullFloat64
		lowest, highest sql.NullFloat64
	)
	err = tx.QueryRowContext(ctx, upsertProductSQL, upsertProductArgs(code, sku, p, now)...).
		Scan(&productID, &created, &prevPrice, &lowest, &highest)
	if err != nil {
		return UpsertResult{}, wrapPostgresError(err, "상품 저장에 실패했습니다")
	}

	if _, err := tx.ExecContext(ctx, insertPriceHistorySQL,
		productID, nullFloat(p.CurrentPrice), nullFloat(p.OriginalPrice), Currency, now); err != nil {
		return UpsertResult{}, wrapPostgresError(err, "가격 이력 저장에 실패했습니다")
	}

	if err := tx.Commit(); err != nil {
		return UpsertResult{}, wrapPostgresError(err, "트랜잭션 커밋에 실패했습니다")
	}

	result := UpsertResult{
		RetailerCode: code,
		SKU:          sku,
		Created:      created,
		LowestPrice:  floatPtr(lowest),
		HighestPrice: floatPtr(highest),
	}
	if !created {
		result.PriceChanged = priceChanged(floatPtr(prevPrice), p.CurrentPrice)
	}

	applog.WithComponentAndFields(componentPostgres, applog.Fields{
		"retailer":      code,
		"sku":           sku,
		"product_id":    productID,
		"created":       result.Created,
		"price_changed": result.PriceChanged,
	}).Debug("상품 저장 완료")

	return result, nil
}

func (s *PostgresStore) Lookup(ctx context.Context, retailerCode, sku string) (*Record, error) {
	if s.closed.Load() {
		return nil, ErrStoreClosed
	}

	var (
		rec               Record
		productID         int64
		current, original sql.NullFloat64
		lowest, highest   sql.NullFloat64
		images            []string
	)
	err := s.db.QueryRowContext(ctx, selectProductSQL, retailerCode, sku).Scan(
		&productID, &rec.RetailerCode, &rec.RetailerName, &rec.SKU,
		&rec.Product.URL, &rec.Product.Name, &rec.Product.Description, &rec.Product.Brand,
		&rec.Product.Model, &rec.Product.Category,
		&current, &original,
		&rec.Product.Dimensions, &rec.Product.Material, &rec.Product.Color, &rec.Product.Volume,
		pq.Array(&images),
		&lowest, &highest, &rec.FirstSeenAt, &rec.LastSeenAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewErrProductNotFound(retailerCode, sku)
		}
		return nil, wrapPostgresError(err, "상품 조회에 실패했습니다")
	}

	rec.Product.SKU = rec.SKU
	rec.Product.Retailer = rec.RetailerName
	rec.Product.CurrentPrice = floatPtr(current)
	rec.Product.OriginalPrice = floatPtr(original)
	if len(images) > 0 {
		rec.Product.Images = images
	}
	if kind, ok := extractor.KindByCode(rec.RetailerCode); ok {
		rec.Product.Kind = kind
	}
	rec.LowestPrice = floatPtr(lowest)
	rec.HighestPrice = floatPtr(highest)

	history, err := s.loadHistory(ctx, productID)
	if err != nil {
		return nil, err
	}
	rec.History = history

	return &rec, nil
}

// loadHistory 최근 가격 이력을 오래된 순서로 반환합니다.
func (s *PostgresStore) loadHistory(ctx context.Context, productID int64) ([]PricePoint, error) {
	rows, err := s.db.QueryContext(ctx, selectPriceHistorySQL, productID, s.historyLimit)
	if err != nil {
		return nil, wrapPostgresError(err, "가격 이력 조회에 실패했습니다")
	}
	defer rows.Close()

	var history []PricePoint
	for rows.Next() {
		var (
			pt              PricePoint
			price, original sql.NullFloat64
		)
		if err := rows.Scan(&price, &original, &pt.Currency, &pt.ObservedAt); err != nil {
			return nil, wrapPostgresError(err, "가격 이력을 읽을 수 없습니다")
		}
		pt.Price = floatPtr(price)
		pt.OriginalPrice = floatPtr(original)
		history = append(history, pt)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPostgresError(err, "가격 이력을 읽을 수 없습니다")
	}

	slices.Reverse(history)

	return history, nil
}

func (s *PostgresStore) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}

	if err := s.db.Close(); err != nil {
		return apperrors.Wrap(err, apperrors.System, "PostgreSQL 연결 종료 중 에러가 발생했습니다")
	}

	applog.WithComponent(componentPostgres).Info("PostgreSQL 저장소 종료")

	return nil
}

// wrapPostgresError 드라이버 에러를 도메인 에러 타입으로 분류합니다.
//
//   - 연결 실패, 자원 부족, 관리자 개입(SQLSTATE 08, 53, 57), 네트워크 에러: Unavailable
//   - 데이터/무결성 위반(SQLSTATE 22, 23): InvalidInput
//   - ctx 기한 초과: Timeout
//   - 그 외: Internal
func wrapPostgresError(err error, message string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.Timeout, message)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "53", "57":
			return apperrors.Wrap(err, apperrors.Unavailable, message)
		case "22", "23":
			return apperrors.Wrap(err, apperrors.InvalidInput, message)
		default:
			return apperrors.Wrap(err, apperrors.Internal, message)
		}
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return apperrors.Wrap(err, apperrors.Unavailable, message)
	}

	return apperrors.Wrap(err, apperrors.Internal, message)
}
