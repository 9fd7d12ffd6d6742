package middleware

import (
	"net/http"
	"runtime"

	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

// stackBufferSize 패닉 스택 트레이스 버퍼 크기 (4KB)
const stackBufferSize = 4 << 10

// PanicRecovery 핸들러의 패닉을 복구하여 500 응답으로 바꾸고 스택 트레이스를 로깅합니다.
//
// http.ErrAbortHandler 패닉은 net/http가 연결을 끊는 용도로 쓰므로 다시 던집니다.
func PanicRecovery() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}

				stack := make([]byte, stackBufferSize)
				stack = stack[:runtime.Stack(stack, false)]

				recovered := NewErrPanicRecovered(r)

				fields := applog.Fields{
					"error":  recovered.Error(),
					"stack":  string(stack),
					"path":   c.Request().URL.Path,
					"method": c.Request().Method,
				}
				if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
					fields["request_id"] = requestID
				}

				applog.WithComponentAndFields(constants.ComponentMiddlewarePanicRecovery, fields).Error(constants.LogMsgPanicRecovered)

				err = recovered
			}()

			return next(c)
		}
	}
}
