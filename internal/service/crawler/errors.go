package crawler

import (
	"fmt"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
)

var (
	// ErrNoExtraction 페이지에서 상품 정보를 하나도 추출하지 못했을 때의 에러입니다.
	ErrNoExtraction = apperrors.New(apperrors.ParsingFailed, "페이지에서 상품 정보를 추출하지 못했습니다")

	// ErrEmptyWatchlist 수집 대상 목록이 비어 있을 때의 에러입니다.
	ErrEmptyWatchlist = apperrors.New(apperrors.InvalidInput, "수집 대상 URL이 없습니다")

	// ErrAlreadyRunning 이전 수집이 끝나기 전에 다시 실행을 요청했을 때의 에러입니다.
	ErrAlreadyRunning = apperrors.New(apperrors.Unavailable, "이전 수집이 아직 진행 중입니다")

	// ErrStoreNotConfigured 저장소 없이 생성된 Crawler에 저장을 요청했을 때의 에러입니다.
	ErrStoreNotConfigured = apperrors.New(apperrors.Unavailable, "상품 저장소가 설정되지 않았습니다")
)

// NewErrExtractionPanic 추출 중 발생한 패닉을 에러로 변환합니다.
func NewErrExtractionPanic(url string, recovered any) error {
	return apperrors.New(apperrors.Internal, fmt.Sprintf("상품 정보 추출 중 패닉이 발생했습니다 (%s): %v", url, recovered))
}

// NewErrWatchlist 수집 대상 CSV 파일의 형식 오류를 생성합니다. line이 0이면 위치를 생략합니다.
func NewErrWatchlist(path string, line int, reason string) error {
	if line > 0 {
		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("수집 대상 파일 오류 (%s:%d): %s", path, line, reason))
	}
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("수집 대상 파일 오류 (%s): %s", path, reason))
}

// NewErrUnknownRetailer 등록되지 않은 판매처 코드에 대한 에러를 생성합니다.
func NewErrUnknownRetailer(code string) error {
	return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("알 수 없는 판매처 코드입니다: '%s' (twd, hp, btv, mgh, dh, gbh 중 하나)", code))
}

// NewErrInvalidSchedule 해석할 수 없는 Cron 표현식에 대한 에러를 생성합니다.
func NewErrInvalidSchedule(spec string, err error) error {
	return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("잘못된 수집 스케줄입니다: '%s'", spec))
}
