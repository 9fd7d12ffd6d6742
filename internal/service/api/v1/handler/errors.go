package handler

import (
	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	"github.com/darkkaiser/price-scraper/internal/service/api/httputil"
)

// NewErrInvalidBody 요청 본문이 올바른 JSON이 아니어서 바인딩에 실패했을 때의 에러를 생성합니다.
func NewErrInvalidBody() error {
	return httputil.NewBadRequestError(constants.ErrMsgBadRequestInvalidBody)
}

// NewErrValidationFailed 필수 값 누락, 형식 위반 등 요청 검증에 실패했을 때의 에러를 생성합니다.
func NewErrValidationFailed(msg string) error {
	return httputil.NewBadRequestError(msg)
}

// NewErrStoreFailed 추출한 상품을 저장하지 못했을 때의 에러를 생성합니다.
func NewErrStoreFailed(msg string) error {
	return httputil.NewServiceUnavailableError(msg)
}
