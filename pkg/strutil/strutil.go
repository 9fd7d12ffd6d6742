// Package strutil 문자열 처리를 위한 유틸리티 함수들을 제공합니다.
package strutil

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"
)

// htmlTagRegexp < 다음에 영문자가 오는 경우만 태그로 인식합니다.
// 예: "3 < 5"는 유지되고, "<br>"이나 "<b>"는 제거됩니다.
var htmlTagRegexp = regexp.MustCompile(`</?([a-zA-Z]+)[^>]*>`)

// NormalizeSpaces 앞뒤 공백을 제거하고 연속된 공백(줄바꿈, 탭, NBSP 포함)을 하나로 축약합니다.
// 예: "  hello \n  world  " -> "hello world"
func NormalizeSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripHTMLTags HTML 태그를 공백으로 치환하고 HTML 엔티티를 복원한 뒤 공백을 정규화합니다.
// 예: "<b>Lamp</b>&nbsp;&amp; Shade" -> "Lamp & Shade"
func StripHTMLTags(s string) string {
	s = htmlTagRegexp.ReplaceAllString(s, " ")
	return NormalizeSpaces(html.UnescapeString(s))
}

// SplitAndTrim 구분자로 분리한 뒤 각 항목의 앞뒤 공백을 제거하고 빈 항목을 제외합니다.
// 결과가 없으면 nil을 반환합니다.
func SplitAndTrim(s, sep string) []string {
	var result []string
	for _, token := range strings.Split(s, sep) {
		if token = strings.TrimSpace(token); token != "" {
			result = append(result, token)
		}
	}
	return result
}

// TruncateRunes 문자열을 최대 n개의 문자(rune)로 자릅니다. 멀티바이트 문자를 깨뜨리지 않습니다.
func TruncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}

	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// EqualsAnyFold s가 candidates 중 하나와 대소문자 구분 없이 일치하는지 확인합니다.
func EqualsAnyFold(s string, candidates []string) bool {
	for _, c := range candidates {
		if strings.EqualFold(s, c) {
			return true
		}
	}
	return false
}

// ContainsAnyFold s가 keywords 중 하나라도 대소문자 구분 없이 포함하는지 확인합니다.
// 빈 키워드는 무시합니다.
func ContainsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if k == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// RemoveAllFold s에서 targets에 해당하는 부분 문자열을 대소문자 구분 없이 모두 제거합니다.
func RemoveAllFold(s string, targets []string) string {
	for _, t := range targets {
		if t == "" {
			continue
		}
		s = regexp.MustCompile(`(?i)`+regexp.QuoteMeta(t)).ReplaceAllString(s, "")
	}
	return s
}
