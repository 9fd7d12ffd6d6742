package storage

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// filenameReplacer 파일 시스템에서 문제가 되는 문자를 하이픈으로 치환합니다.
var filenameReplacer = strings.NewReplacer(
	"..", "--",
	"/", "-",
	"\\", "-",
	"|", "-",
	"<", "-",
	">", "-",
	":", "-",
	"\"", "-",
	"?", "-",
	"*", "-",
	" ", "-",
)

// recordFilename 판매처 코드와 SKU로 상품 파일 이름을 만듭니다.
//
// 형식은 "{판매처}-{SKU}-{16자리 해시}.json"입니다. 정제 과정에서 서로 다른 SKU가 같은 이름이 되지 않도록
// 원본 값의 FNV-64a 해시를 덧붙입니다.
func recordFilename(retailerCode, sku string) string {
	h := fnv.New64a()
	_, _ = fmt.Fprintf(h, "%d:%s|%d:%s", len(retailerCode), retailerCode, len(sku), sku)

	return fmt.Sprintf("%s-%s-%016x.json",
		truncateByBytes(sanitizeName(retailerCode), 32),
		truncateByBytes(sanitizeName(sku), 64),
		h.Sum64(),
	)
}

func sanitizeName(s string) string {
	kebab := strcase.ToKebab(s)

	kebab = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return '-'
		}
		return r
	}, kebab)

	return filenameReplacer.Replace(kebab)
}

// truncateByBytes 문자 중간이 잘리지 않도록 UTF-8 바이트 길이 기준으로 자릅니다.
func truncateByBytes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}

	n := 0
	for n < len(s) {
		_, size := utf8.DecodeRuneInString(s[n:])
		if n+size > limit {
			break
		}
		n += size
	}
	return s[:n]
}
