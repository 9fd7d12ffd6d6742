package fetcher

import (
	"bytes"
	"io"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"golang.org/x/net/html/charset"
)

const (
	// defaultMaxBytes 응답 본문의 기본 크기 제한값입니다 (10MB).
	defaultMaxBytes = 10 * 1024 * 1024

	// NoLimit 응답 본문에 대한 크기 제한을 적용하지 않음을 나타내는 특수 상수입니다.
	NoLimit = -1

	// maxDrainBytes 커넥션 재사용을 위해 버리는 본문의 최대 크기 (64KB)
	maxDrainBytes = 64 * 1024
)

// readBody 최대 limit 바이트까지 본문을 읽고 Content-Type의 charset을 기준으로 UTF-8로 변환합니다.
// limit가 NoLimit이면 크기를 제한하지 않습니다.
func readBody(body io.Reader, contentType, rawURL string, limit int64) (string, error) {
	reader := body
	if limit != NoLimit {
		reader = io.LimitReader(body, limit+1)
	}

	raw, err := io.ReadAll(reader)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.Unavailable, "응답 본문을 읽는 중 에러가 발생했습니다")
	}
	if limit != NoLimit && int64(len(raw)) > limit {
		return "", NewErrBodyTooLarge(rawURL, limit)
	}

	// Content-Type에 charset이 없으면 <meta charset>을 살펴보고, 그래도 없으면 UTF-8로 간주합니다.
	utf8Reader, err := charset.NewReader(bytes.NewReader(raw), contentType)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ParsingFailed, "페이지의 인코딩 변환이 실패하였습니다")
	}

	decoded, err := io.ReadAll(utf8Reader)
	if err != nil {
		return "", apperrors.Wrap(err, apperrors.ParsingFailed, "페이지의 인코딩 변환이 실패하였습니다")
	}
	return string(decoded), nil
}

// drainAndCloseBody HTTP 커넥션 재사용을 위해 본문의 일부(maxDrainBytes)를 읽어 버리고 닫습니다.
func drainAndCloseBody(body io.ReadCloser) {
	if body == nil {
		return
	}
	defer body.Close()

	_, _ = io.Copy(io.Discard, io.LimitReader(body, maxDrainBytes))
}
