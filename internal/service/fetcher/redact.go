package fetcher

import (
	"net/url"
	"slices"
	"strings"
)

// sensitiveQueryKeys 로그에 값을 남기지 않는 쿼리 파라미터 이름 (대소문자 무시, 완전 일치)
var sensitiveQueryKeys = []string{
	"token", "auth", "key", "secret", "password", "passwd", "signature",
	"access_token", "api_key", "client_secret", "session", "sid",
}

// sensitiveQuerySuffixes 값을 가리는 쿼리 파라미터 이름의 접미사
var sensitiveQuerySuffixes = []string{"_token", "_secret", "_key", "_sig"}

// redactURL 로그용 URL 문자열을 만듭니다. 사용자 인증 정보와 민감한 쿼리 파라미터 값을 가립니다.
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	if u.User != nil {
		if _, has := u.User.Password(); has {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
		}
	}

	if u.RawQuery == "" {
		return u.String()
	}

	query := u.Query()
	for key := range query {
		if isSensitiveQueryKey(key) {
			query[key] = []string{"xxxxx"}
		}
	}
	u.RawQuery = query.Encode()

	return u.String()
}

func isSensitiveQueryKey(key string) bool {
	lower := strings.ToLower(key)
	if slices.Contains(sensitiveQueryKeys, lower) {
		return true
	}
	for _, suffix := range sensitiveQuerySuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
