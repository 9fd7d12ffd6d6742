package httputil

import (
	"errors"
	"net/http"

	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	"github.com/darkkaiser/price-scraper/internal/service/api/model/response"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

// ErrorHandler Echo 프레임워크의 전역 에러 핸들러입니다.
//
// 모든 에러를 표준 ErrorResponse JSON 형식으로 변환하여 반환합니다.
// echo.HTTPError가 아닌 에러는 FromError로 상태 코드를 정합니다.
func ErrorHandler(err error, c echo.Context) {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		errors.As(FromError(err), &he)
	}

	code := he.Code
	message := constants.ErrMsgInternalServer
	switch msg := he.Message.(type) {
	case string:
		message = msg
	case response.ErrorResponse:
		message = msg.Message
	}

	// 라우팅 실패로 생긴 404는 echo 기본 메시지 대신 한국어 메시지로 통일
	if code == http.StatusNotFound && message == http.StatusText(http.StatusNotFound) {
		message = constants.ErrMsgNotFound
	}
	if code == http.StatusRequestEntityTooLarge {
		message = constants.ErrMsgRequestEntityTooLarge
	}

	fields := applog.Fields{
		"path":        c.Request().URL.Path,
		"method":      c.Request().Method,
		"status_code": code,
		"error":       err,
		"remote_ip":   c.RealIP(),
		"request_id":  c.Response().Header().Get(echo.HeaderXRequestID),
	}

	if code >= http.StatusInternalServerError {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Error(constants.LogMsgHTTP5xxServerError)
	} else if code >= http.StatusBadRequest {
		applog.WithComponentAndFields(constants.ComponentErrorHandler, fields).Warn(constants.LogMsgHTTP4xxClientError)
	}

	// 이미 응답이 전송된 경우 추가 응답 시도하지 않음
	if c.Response().Committed {
		return
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}

	_ = c.JSON(code, response.ErrorResponse{
		ResultCode: code,
		Message:    message,
	})
}
