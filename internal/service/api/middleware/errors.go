package middleware

import (
	"fmt"
	"net/http"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	"github.com/darkkaiser/price-scraper/internal/service/api/httputil"
	"github.com/darkkaiser/price-scraper/internal/service/api/model/response"
	"github.com/labstack/echo/v4"
)

var (
	// ErrRateLimitExceeded 허용된 요청 빈도를 초과한 클라이언트에게 반환하는 429 에러입니다.
	ErrRateLimitExceeded = httputil.NewTooManyRequestsError(constants.ErrMsgTooManyRequests)

	// ErrUnsupportedMediaType 요청 본문의 Content-Type을 지원하지 않을 때 반환하는 415 에러입니다.
	ErrUnsupportedMediaType = echo.NewHTTPError(http.StatusUnsupportedMediaType, response.ErrorResponse{
		ResultCode: http.StatusUnsupportedMediaType,
		Message:    constants.ErrMsgUnsupportedMediaType,
	})
)

// NewErrPanicRecovered 복구한 패닉 값을 내부 오류로 변환합니다.
func NewErrPanicRecovered(r any) error {
	if err, ok := r.(error); ok {
		return apperrors.Wrap(err, apperrors.Internal, "핸들러에서 패닉이 발생했습니다")
	}
	return apperrors.New(apperrors.Internal, fmt.Sprintf("핸들러에서 패닉이 발생했습니다: %v", r))
}
