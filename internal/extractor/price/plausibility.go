package price

import (
	"regexp"
	"slices"
	"strconv"
)

// Range 허용되는 가격 범위입니다. Max가 0이면 상한이 없습니다.
type Range struct {
	Min float64
	Max float64
}

// Contains v가 범위 안에 있는지 확인합니다. 0값 Range는 모든 양수를 허용합니다.
func (r Range) Contains(v float64) bool {
	if v < r.Min {
		return false
	}
	return r.Max == 0 || v <= r.Max
}

// commonVolumeValues 용량(ml) 표기가 가격으로 잘못 읽히는 경우가 잦은 값들
var commonVolumeValues = []float64{50, 100, 150, 200, 250, 300, 400, 500, 750, 1000}

var nameVolumeRegexp = regexp.MustCompile(`(?i)(\d+)\s*(?:ml|มล|ลิตร|l\b|g\b|กรัม)`)

// Plausibility 추출된 가격이 실제 가격으로 볼 만한지 판단하는 정책입니다.
type Plausibility struct {
	Range Range

	// RejectCommonVolumes 흔한 용량 값(50, 100, ..., 1000)과 같은 가격을 거부합니다.
	RejectCommonVolumes bool

	// RejectNameVolumes 상품명에 표기된 용량/중량 숫자(또는 그 10배)와 같은 가격을 거부합니다.
	RejectNameVolumes bool
}

// Accept v가 정책을 통과하는지 확인합니다. name은 상품명이며 비어 있을 수 있습니다.
func (p Plausibility) Accept(v float64, name string) bool {
	if v <= 0 || !p.Range.Contains(v) {
		return false
	}
	if p.RejectCommonVolumes && slices.Contains(commonVolumeValues, v) {
		return false
	}
	if p.RejectNameVolumes && name != "" {
		if m := nameVolumeRegexp.FindStringSubmatch(name); m != nil {
			if n, err := strconv.ParseFloat(m[1], 64); err == nil && (v == n || v == n*10) {
				return false
			}
		}
	}
	return true
}

// Filter values 중 정책을 통과한 값만 반환합니다.
func (p Plausibility) Filter(values []float64, name string) []float64 {
	var accepted []float64
	for _, v := range values {
		if p.Accept(v, name) {
			accepted = append(accepted, v)
		}
	}
	return accepted
}
