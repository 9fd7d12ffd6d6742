// Package storage 추출한 상품 정보를 판매처 코드와 SKU 기준으로 저장하고 가격 이력을 관리합니다.
//
// 저장소 구현체는 두 가지입니다.
//   - FileStore: 상품마다 JSON 파일 하나 (가격 이력 포함)
//   - PostgresStore: retailers, products, price_history 테이블
package storage

import (
	"context"
	"strings"
	"time"

	"github.com/darkkaiser/price-scraper/internal/extractor"
)

// Currency 모든 가격 이력에 기록되는 통화 코드입니다.
const Currency = "THB"

// ProductStore 상품 저장소 인터페이스입니다.
type ProductStore interface {
	// Upsert (판매처 코드, SKU)가 같은 상품이 있으면 갱신하고 없으면 새로 저장합니다.
	// 호출마다 가격 이력이 한 건 추가됩니다.
	Upsert(ctx context.Context, p *extractor.ProductData) (UpsertResult, error)

	// Lookup 저장된 상품을 조회합니다. 없으면 NotFound 에러를 반환합니다.
	Lookup(ctx context.Context, retailerCode, sku string) (*Record, error)

	Close() error
}

// UpsertResult Upsert 결과입니다.
type UpsertResult struct {
	RetailerCode string `json:"retailer_code"`
	SKU          string `json:"sku"`

	// Created 처음 저장된 상품이면 true
	Created bool `json:"created"`

	// PriceChanged 직전에 저장된 현재가와 달라졌으면 true. 새 상품은 false입니다.
	PriceChanged bool `json:"price_changed"`

	LowestPrice  *float64 `json:"lowest_price,omitempty"`
	HighestPrice *float64 `json:"highest_price,omitempty"`
}

// PricePoint 가격 이력 한 건입니다.
type PricePoint struct {
	Price         *float64  `json:"price,omitempty"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	Currency      string    `json:"currency"`
	ObservedAt    time.Time `json:"observed_at"`
}

// Record 저장된 상품 하나입니다.
type Record struct {
	RetailerCode string                `json:"retailer_code"`
	RetailerName string                `json:"retailer_name,omitempty"`
	SKU          string                `json:"sku"`
	Product      extractor.ProductData `json:"product"`

	LowestPrice  *float64 `json:"lowest_price,omitempty"`
	HighestPrice *float64 `json:"highest_price,omitempty"`

	FirstSeenAt time.Time `json:"first_seen_at"`
	LastSeenAt  time.Time `json:"last_seen_at"`

	History []PricePoint `json:"history,omitempty"`
}

// productKey 저장 키(판매처 코드, SKU)와 판매처 이름을 결정합니다.
//
// 범용 추출기로 추출한 상품은 판매처 코드가 없으므로 저장하지 않습니다.
// 추론한 판매처 이름은 서로 다른 상점이 같은 값을 가질 수 있어 키로 사용할 수 없습니다. (예: 모든 .co.th 상점 → "Co")
func productKey(p *extractor.ProductData) (code, name, sku string, err error) {
	if p == nil {
		return "", "", "", ErrNilProduct
	}

	sku = strings.TrimSpace(p.SKU)
	if sku == "" {
		return "", "", "", NewErrMissingSKU(p.URL)
	}

	code = p.RetailerCode()
	if p.Kind == extractor.KindGeneric || code == "" {
		return "", "", "", NewErrMissingRetailer(p.URL)
	}

	return code, p.Kind.DisplayName(), sku, nil
}

// lowerPrice 두 가격 중 작은 값을 반환합니다. 한쪽이 nil이면 다른 쪽을 반환합니다. (SQL LEAST와 같은 규칙)
func lowerPrice(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *b < *a:
		return b
	default:
		return a
	}
}

// higherPrice 두 가격 중 큰 값을 반환합니다. (SQL GREATEST와 같은 규칙)
func higherPrice(a, b *float64) *float64 {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case *b > *a:
		return b
	default:
		return a
	}
}

func priceChanged(prev, cur *float64) bool {
	if prev == nil || cur == nil {
		return prev != cur
	}
	return *prev != *cur
}

func clonePrice(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
