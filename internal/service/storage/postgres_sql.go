package storage

import (
	"database/sql"
	"time"

	"github.com/darkkaiser/price-scraper/internal/extractor"
	"github.com/lib/pq"
)

// schemaStatements 저장소 초기화 시 순서대로 실행하는 DDL입니다. 모두 멱등입니다.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS retailers (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id BIGSERIAL PRIMARY KEY,
		retailer_code TEXT NOT NULL REFERENCES retailers(code),
		sku TEXT NOT NULL,
		url TEXT NOT NULL,
		name TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL DEFAULT '',
		brand TEXT NOT NULL DEFAULT '',
		model TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		current_price NUMERIC(12,2),
		original_price NUMERIC(12,2),
		dimensions TEXT NOT NULL DEFAULT '',
		material TEXT NOT NULL DEFAULT '',
		color TEXT NOT NULL DEFAULT '',
		volume TEXT NOT NULL DEFAULT '',
		images TEXT[] NOT NULL DEFAULT '{}',
		lowest_price NUMERIC(12,2),
		highest_price NUMERIC(12,2),
		first_seen_at TIMESTAMPTZ NOT NULL,
		last_seen_at TIMESTAMPTZ NOT NULL,
		UNIQUE (retailer_code, sku)
	)`,
	`CREATE TABLE IF NOT EXISTS price_history (
		id BIGSERIAL PRIMARY KEY,
		product_id BIGINT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
		price NUMERIC(12,2),
		original_price NUMERIC(12,2),
		currency VARCHAR(3) NOT NULL DEFAULT 'THB',
		observed_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_price_history_product ON price_history (product_id, observed_at)`,
}

const upsertRetailerSQL = `
	INSERT INTO retailers (code, name) VALUES ($1, $2)
	ON CONFLICT (code) DO UPDATE SET name = COALESCE(NULLIF(EXCLUDED.name, ''), retailers.name)`

// upsertProductSQL 가격 외 필드는 새 값으로 덮어쓰고, 최저가/최고가는 LEAST/GREATEST로 누적합니다.
// prev CTE는 INSERT 이전의 스냅샷을 읽으므로 직전 현재가와 신규 여부를 함께 반환할 수 있습니다.
const upsertProductSQL = `
	WITH prev AS (
		SELECT current_price FROM products WHERE retailer_code = $1 AND sku = $2
	)
	INSERT INTO products (
		retailer_code, sku, url, name, description, brand, model, category,
		current_price, original_price, dimensions, material, color, volume, images,
		lowest_price, highest_price, first_seen_at, last_seen_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8,
		$9, $10, $11, $12, $13, $14, $15,
		$9, $9, $16, $16
	)
	ON CONFLICT (retailer_code, sku) DO UPDATE SET
		url = EXCLUDED.url,
		name = EXCLUDED.name,
		description = EXCLUDED.description,
		brand = EXCLUDED.brand,
		model = EXCLUDED.model,
		category = EXCLUDED.category,
		current_price = EXCLUDED.current_price,
		original_price = EXCLUDED.original_price,
		dimensions = EXCLUDED.dimensions,
		material = EXCLUDED.material,
		color = EXCLUDED.color,
		volume = EXCLUDED.volume,
		images = EXCLUDED.images,
		lowest_price = LEAST(products.lowest_price, EXCLUDED.current_price),
		highest_price = GREATEST(products.highest_price, EXCLUDED.current_price),
		last_seen_at = EXCLUDED.last_seen_at
	RETURNING
		id,
		NOT EXISTS (SELECT 1 FROM prev),
		(SELECT current_price FROM prev),
		lowest_price,
		highest_price`

const insertPriceHistorySQL = `
	INSERT INTO price_history (product_id, price, original_price, currency, observed_at)
	VALUES ($1, $2, $3, $4, $5)`

const selectProductSQL = `
	SELECT
		p.id, p.retailer_code, r.name, p.sku, p.url, p.name, p.description, p.brand, p.model, p.category,
		p.current_price, p.original_price, p.dimensions, p.material, p.color, p.volume, p.images,
		p.lowest_price, p.highest_price, p.first_seen_at, p.last_seen_at
	FROM products p
	JOIN retailers r ON r.code = p.retailer_code
	WHERE p.retailer_code = $1 AND p.sku = $2`

// selectPriceHistorySQL 최근 $2건을 최신순으로 반환합니다.
const selectPriceHistorySQL = `
	SELECT price, original_price, currency, observed_at
	FROM price_history
	WHERE product_id = $1
	ORDER BY observed_at DESC, id DESC
	LIMIT $2`

// upsertProductArgs upsertProductSQL의 위치 인자를 만듭니다.
func upsertProductArgs(code, sku string, p *extractor.ProductData, now time.Time) []any {
	images := p.Images
	if images == nil {
		images = []string{}
	}

	return []any{
		code,
		sku,
		p.URL,
		p.Name,
		p.Description,
		p.Brand,
		p.Model,
		p.Category,
		nullFloat(p.CurrentPrice),
		nullFloat(p.OriginalPrice),
		p.Dimensions,
		p.Material,
		p.Color,
		p.Volume,
		pq.Array(images),
		now,
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
