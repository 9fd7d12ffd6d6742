package extractor

import "github.com/darkkaiser/price-scraper/internal/extractor/sanitize"

// Field 규칙 테이블이 채우는 텍스트 필드입니다. 가격과 이미지는 별도의 규칙으로 다룹니다.
type Field int

const (
	FieldName Field = iota
	FieldDescription
	FieldBrand
	FieldModel
	FieldSKU
	FieldCategory
	FieldDimensions
	FieldMaterial
	FieldColor
	FieldVolume
)

var fieldNames = [...]string{
	FieldName:        "name",
	FieldDescription: "description",
	FieldBrand:       "brand",
	FieldModel:       "model",
	FieldSKU:         "sku",
	FieldCategory:    "category",
	FieldDimensions:  "dimensions",
	FieldMaterial:    "material",
	FieldColor:       "color",
	FieldVolume:      "volume",
}

var fieldKinds = [...]sanitize.Kind{
	FieldName:        sanitize.Name,
	FieldDescription: sanitize.Description,
	FieldBrand:       sanitize.Brand,
	FieldModel:       sanitize.Model,
	FieldSKU:         sanitize.SKU,
	FieldCategory:    sanitize.Category,
	FieldDimensions:  sanitize.Dimensions,
	FieldMaterial:    sanitize.Material,
	FieldColor:       sanitize.Color,
	FieldVolume:      sanitize.Volume,
}

func (f Field) String() string {
	if f < 0 || int(f) >= len(fieldNames) {
		return "unknown"
	}
	return fieldNames[f]
}

// Kind 필드 값에 적용할 정제 규칙 종류를 반환합니다.
func (f Field) Kind() sanitize.Kind {
	if f < 0 || int(f) >= len(fieldKinds) {
		return sanitize.Text
	}
	return fieldKinds[f]
}
