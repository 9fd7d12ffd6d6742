// Package httputil echo 핸들러가 공통으로 쓰는 에러 생성 함수와 응답 도우미를 제공합니다.
package httputil

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	"github.com/darkkaiser/price-scraper/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

func newHTTPError(code int, message string) error {
	return echo.NewHTTPError(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}

// NewBadRequestError 400 Bad Request 에러를 생성합니다
func NewBadRequestError(message string) error {
	return newHTTPError(http.StatusBadRequest, message)
}

// NewTooManyRequestsError 429 Too Many Requests 에러를 생성합니다
func NewTooManyRequestsError(message string) error {
	return newHTTPError(http.StatusTooManyRequests, message)
}

// NewInternalServerError 500 Internal Server Error 에러를 생성합니다
func NewInternalServerError(message string) error {
	return newHTTPError(http.StatusInternalServerError, message)
}

// NewServiceUnavailableError 503 Service Unavailable 에러를 생성합니다
func NewServiceUnavailableError(message string) error {
	return newHTTPError(http.StatusServiceUnavailable, message)
}

// StatusCodeOf 애플리케이션 에러의 ErrorType을 HTTP 상태 코드로 변환합니다.
//
// 상품 페이지를 가져오다 실패한 경우(ExecutionFailed, Unavailable)는 원격 서버 문제이므로
// 502로, 시간 초과는 504로 응답합니다.
func StatusCodeOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, context.DeadlineExceeded), apperrors.Is(err, apperrors.Timeout):
		return http.StatusGatewayTimeout
	case apperrors.Is(err, apperrors.InvalidInput):
		return http.StatusBadRequest
	case apperrors.Is(err, apperrors.NotFound):
		return http.StatusNotFound
	case apperrors.Is(err, apperrors.ParsingFailed):
		return http.StatusUnprocessableEntity
	case apperrors.Is(err, apperrors.ExecutionFailed), apperrors.Is(err, apperrors.Unavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FromError err를 상태 코드에 맞는 HTTP 에러로 변환합니다.
// 5xx 내부 오류는 내부 정보가 노출되지 않도록 고정된 메시지로 바꿉니다.
func FromError(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he
	}

	code := StatusCodeOf(err)
	if code == http.StatusInternalServerError {
		return NewInternalServerError(constants.ErrMsgInternalServer)
	}
	return newHTTPError(code, clientMessage(err))
}

// clientMessage 애플리케이션 에러는 에러 타입 접두어를 뺀 메시지만 사용합니다.
func clientMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message() != "" {
		return appErr.Message()
	}
	return err.Error()
}

// Success 표준 성공 응답(200 OK)을 JSON 형식으로 반환합니다.
func Success(c echo.Context) error {
	return c.JSON(http.StatusOK, response.SuccessResponse{
		ResultCode: 0,
		Message:    "성공",
	})
}
