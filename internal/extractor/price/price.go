// Package price 가격 문자열을 해석하고, 여러 가격 후보 중에서 현재가와 정상가를 결정합니다.
package price

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyReplacer = strings.NewReplacer("฿", "", "$", "", "บาท", "", "THB", "", "thb", "", ",", "")
	numberRegexp     = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// Parse 가격 문자열에서 첫 번째 숫자 토큰을 읽어 반환합니다.
// 통화 기호(฿, $, บาท, THB), 천 단위 구분자, 공백은 무시합니다.
// 숫자가 없거나 0 이하이면 ok는 false입니다.
//
//	Parse("฿1,299.00") // 1299, true
//	Parse("ราคา 350 บาท") // 350, true
func Parse(text string) (float64, bool) {
	text = currencyReplacer.Replace(text)
	text = strings.Join(strings.Fields(text), " ")

	token := numberRegexp.FindString(text)
	if token == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ParseAll texts 각각을 Parse로 해석하여 성공한 값만 순서대로 반환합니다.
func ParseAll(texts []string) []float64 {
	var values []float64
	for _, t := range texts {
		if v, ok := Parse(t); ok {
			values = append(values, v)
		}
	}
	return values
}

// Disambiguate 현재가 후보와 정상가 후보로부터 현재가(cur)와 정상가(orig)를 결정합니다.
//
//   - 정상가 후보가 있으면 그 최대값이 정상가, 정상가와 다른 현재가 후보의 최소값이 현재가입니다.
//   - 정상가 후보가 없고 현재가 후보가 둘 이상이면 최대값을 정상가, 최소값을 현재가로 봅니다.
//   - 후보가 하나뿐이면 그 값이 현재가입니다.
//
// 결과는 Finalize를 거치므로 둘 다 존재하면 항상 orig > cur입니다.
func Disambiguate(current, original []float64) (cur, orig *float64) {
	switch {
	case len(original) > 0:
		o := maxOf(original)
		orig = &o

		var others []float64
		for _, v := range current {
			if v != o {
				others = append(others, v)
			}
		}
		if len(others) > 0 {
			c := minOf(others)
			cur = &c
		}

	case len(current) >= 2:
		c, o := minOf(current), maxOf(current)
		cur, orig = &c, &o

	case len(current) == 1:
		c := current[0]
		cur = &c
	}

	return Finalize(cur, orig)
}

// Finalize 두 가격의 관계를 정리합니다.
// 정상가가 현재가 이하이면 정상가를 버리고, 현재가가 없으면 정상가를 현재가로 올립니다.
func Finalize(cur, orig *float64) (*float64, *float64) {
	if cur == nil && orig != nil {
		return orig, nil
	}
	if cur != nil && orig != nil && *orig <= *cur {
		return cur, nil
	}
	return cur, orig
}

func minOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(values []float64) float64 {
	m := values[0]
	for _, v := range values[1:] {
		m = math.Max(m, v)
	}
	return m
}
