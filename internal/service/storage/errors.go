package storage

import (
	"fmt"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
)

var (
	// ErrNilProduct Upsert에 nil 상품이 전달되었을 때 반환됩니다.
	ErrNilProduct = apperrors.New(apperrors.InvalidInput, "저장할 상품 정보가 없습니다")

	// ErrStoreClosed Close 이후 저장소를 사용했을 때 반환됩니다.
	ErrStoreClosed = apperrors.New(apperrors.Internal, "이미 종료된 저장소입니다")

	// ErrPathTraversalDetected 생성된 파일 경로가 저장 디렉토리를 벗어났을 때 반환됩니다.
	ErrPathTraversalDetected = apperrors.New(apperrors.Internal, "보안 정책 위반: 저장 디렉토리를 벗어난 경로 접근이 차단되었습니다")
)

// NewErrMissingSKU SKU가 없어 저장 키를 만들 수 없을 때의 에러를 생성합니다.
func NewErrMissingSKU(url string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("SKU가 없는 상품은 저장할 수 없습니다: %s", url))
}

// NewErrMissingRetailer 판매처를 알 수 없어 저장 키를 만들 수 없을 때의 에러를 생성합니다.
func NewErrMissingRetailer(url string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("판매처를 알 수 없는 상품은 저장할 수 없습니다: %s", url))
}

// NewErrProductNotFound 조회한 상품이 저장소에 없을 때의 에러를 생성합니다.
func NewErrProductNotFound(retailerCode, sku string) error {
	return apperrors.New(apperrors.NotFound, fmt.Sprintf("저장된 상품이 없습니다 (retailer=%s, sku=%s)", retailerCode, sku))
}

// NewErrUnsupportedDriver 지원하지 않는 저장소 드라이버일 때의 에러를 생성합니다.
func NewErrUnsupportedDriver(driver string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("지원하지 않는 저장소 드라이버입니다: '%s' (file, postgres 중 하나)", driver))
}

func newErrDirectoryAccessFailed(err error, dir string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("저장소 초기화 실패: 디렉토리에 접근할 수 없습니다 (%s)", dir))
}

func newErrFileReadFailed(err error, path string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("상품 파일을 읽을 수 없습니다 (%s)", path))
}

func newErrFileWriteFailed(err error, step string) error {
	return apperrors.Wrap(err, apperrors.System, fmt.Sprintf("상품 파일 저장 실패: %s", step))
}

func newErrCorruptedRecord(err error, path string) error {
	return apperrors.Wrap(err, apperrors.ParsingFailed, fmt.Sprintf("상품 파일의 형식이 올바르지 않습니다 (%s)", path))
}
