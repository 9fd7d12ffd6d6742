package extractor

import (
	"net/url"
	"strings"
)

// MaxImages 상품 하나에 보관하는 이미지 URL의 최대 개수
const MaxImages = 10

var excludedImageSchemes = []string{"data:", "mailto:", "tel:", "javascript:"}

// collectImages t의 이미지 규칙으로 절대 URL 목록을 만듭니다. 중복은 제거하고 최대 MaxImages개까지 반환합니다.
func collectImages(p *page, t *Table, must []string) []string {
	seen := make(map[string]bool)

	var images []string
	for _, r := range t.Images.Rules {
		for _, c := range r.candidates(p, t.Hydration) {
			u := resolveImageURL(p.base, c)
			if u == "" || seen[u] || !containsAll(u, must) {
				continue
			}

			seen[u] = true
			images = append(images, u)
			if len(images) == MaxImages {
				return images
			}
		}
	}
	return images
}

// resolveImageURL raw를 페이지 URL 기준의 절대 http(s) URL로 만듭니다. 사용할 수 없으면 빈 문자열입니다.
func resolveImageURL(base *url.URL, raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	lower := strings.ToLower(raw)
	for _, scheme := range excludedImageSchemes {
		if strings.HasPrefix(lower, scheme) {
			return ""
		}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if !u.IsAbs() {
		if base == nil || !base.IsAbs() {
			return ""
		}
		u = base.ResolveReference(u)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}

func containsAll(s string, substrings []string) bool {
	for _, sub := range substrings {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
