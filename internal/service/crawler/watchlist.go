package crawler

import (
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"

	"github.com/darkkaiser/price-scraper/internal/extractor"
	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
)

// LoadWatchlist CSV 파일에서 수집 대상 목록을 읽습니다.
//
// 첫 줄은 헤더이며 url 열이 반드시 있어야 합니다. retailer 열은 선택 사항입니다. (대소문자 무시)
// 빈 줄과 '#'으로 시작하는 줄은 건너뛰며, 같은 URL은 처음 한 번만 포함합니다.
func LoadWatchlist(path string) ([]Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "수집 대상 파일을 열 수 없습니다: "+path)
	}
	defer f.Close()

	return ParseWatchlist(f, path)
}

// ParseWatchlist r에서 수집 대상 CSV를 읽습니다. name은 에러 메시지에 사용됩니다.
func ParseWatchlist(r io.Reader, name string) ([]Target, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, NewErrWatchlist(name, 0, "헤더가 없습니다")
		}
		return nil, NewErrWatchlist(name, 0, err.Error())
	}

	urlCol, retailerCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))) {
		case "url":
			urlCol = i
		case "retailer":
			retailerCol = i
		}
	}
	if urlCol < 0 {
		return nil, NewErrWatchlist(name, 1, "url 열이 없습니다")
	}

	var targets []Target
	seen := make(map[string]struct{})
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				return nil, NewErrWatchlist(name, parseErr.StartLine, parseErr.Err.Error())
			}
			return nil, NewErrWatchlist(name, 0, err.Error())
		}
		line, _ := cr.FieldPos(0)

		t := Target{URL: strings.TrimSpace(field(record, urlCol))}
		if t.URL == "" {
			continue
		}
		if retailerCol >= 0 {
			t.Retailer = strings.ToLower(strings.TrimSpace(field(record, retailerCol)))
			if t.Retailer != "" {
				if _, ok := extractor.KindByCode(t.Retailer); !ok {
					return nil, NewErrWatchlist(name, line, NewErrUnknownRetailer(t.Retailer).Error())
				}
			}
		}

		if _, dup := seen[t.URL]; dup {
			continue
		}
		seen[t.URL] = struct{}{}
		targets = append(targets, t)
	}

	return targets, nil
}

func field(record []string, i int) string {
	if i < len(record) {
		return record[i]
	}
	return ""
}
