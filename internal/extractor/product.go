package extractor

// ProductData 상품 페이지 하나에서 추출한 정규화된 상품 정보입니다.
//
// URL을 제외한 모든 필드는 선택 사항이며, 값이 없으면 빈 문자열(가격은 nil)입니다.
// 추출 호출마다 새로 생성되며 반환된 이후에는 수정되지 않습니다.
type ProductData struct {
	URL         string `json:"url"`
	Retailer    string `json:"retailer,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Brand       string `json:"brand,omitempty"`
	Model       string `json:"model,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Category    string `json:"category,omitempty"`

	CurrentPrice  *float64 `json:"current_price,omitempty"`
	OriginalPrice *float64 `json:"original_price,omitempty"`

	Dimensions string   `json:"dimensions,omitempty"`
	Material   string   `json:"material,omitempty"`
	Color      string   `json:"color,omitempty"`
	Volume     string   `json:"volume,omitempty"`
	Images     []string `json:"images,omitempty"`

	// Kind 이 상품을 추출한 판매처 변형입니다. 직렬화되지 않습니다.
	Kind Kind `json:"-"`
}

// RetailerCode 저장소 키로 사용하는 판매처 코드를 반환합니다. 범용 추출기로 추출한 경우 빈 문자열입니다.
func (p *ProductData) RetailerCode() string {
	return p.Kind.Code()
}

// PopulatedFields 값이 채워진 필드의 JSON 이름을 선언 순서대로 반환합니다.
func (p *ProductData) PopulatedFields() []string {
	var fields []string

	add := func(name string, populated bool) {
		if populated {
			fields = append(fields, name)
		}
	}

	add("url", p.URL != "")
	add("retailer", p.Retailer != "")
	add("name", p.Name != "")
	add("description", p.Description != "")
	add("brand", p.Brand != "")
	add("model", p.Model != "")
	add("sku", p.SKU != "")
	add("category", p.Category != "")
	add("current_price", p.CurrentPrice != nil)
	add("original_price", p.OriginalPrice != nil)
	add("dimensions", p.Dimensions != "")
	add("material", p.Material != "")
	add("color", p.Color != "")
	add("volume", p.Volume != "")
	add("images", len(p.Images) > 0)

	return fields
}

func (p *ProductData) get(f Field) string {
	switch f {
	case FieldName:
		return p.Name
	case FieldDescription:
		return p.Description
	case FieldBrand:
		return p.Brand
	case FieldModel:
		return p.Model
	case FieldSKU:
		return p.SKU
	case FieldCategory:
		return p.Category
	case FieldDimensions:
		return p.Dimensions
	case FieldMaterial:
		return p.Material
	case FieldColor:
		return p.Color
	case FieldVolume:
		return p.Volume
	}
	return ""
}

func (p *ProductData) set(f Field, v string) {
	switch f {
	case FieldName:
		p.Name = v
	case FieldDescription:
		p.Description = v
	case FieldBrand:
		p.Brand = v
	case FieldModel:
		p.Model = v
	case FieldSKU:
		p.SKU = v
	case FieldCategory:
		p.Category = v
	case FieldDimensions:
		p.Dimensions = v
	case FieldMaterial:
		p.Material = v
	case FieldColor:
		p.Color = v
	case FieldVolume:
		p.Volume = v
	}
}
