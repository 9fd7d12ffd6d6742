package handler

import (
	"net/http"

	apperrors "github.com/darkkaiser/price-scraper/internal/pkg/errors"
	"github.com/darkkaiser/price-scraper/internal/pkg/validator"
	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	"github.com/darkkaiser/price-scraper/internal/service/api/httputil"
	"github.com/darkkaiser/price-scraper/internal/service/api/v1/model/request"
	"github.com/darkkaiser/price-scraper/internal/service/api/v1/model/response"
	"github.com/darkkaiser/price-scraper/internal/service/crawler"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

// ExtractHandler 상품 페이지 하나에서 상품 정보를 추출합니다.
//
//	POST /api/v1/extract
//	{"url": "https://www.homepro.co.th/p/1234567", "html": "<html>...", "store": true}
//
// html이 비어 있으면 서버가 url에서 페이지를 가져옵니다. store가 true이면 추출 결과를 저장소에 기록합니다.
// SKU가 없는 등 저장할 수 없는 상품은 200으로 응답하고 store_skipped에 이유를 담습니다.
//
// 응답 코드: 추출 실패 422, 페이지 없음 404, 원격 서버 오류 502, 시간 초과 504, 저장소 장애 503
func (h *Handler) ExtractHandler(c echo.Context) error {
	req := new(request.ExtractRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	ctx := c.Request().Context()
	target := crawler.Target{URL: req.URL, Retailer: req.Retailer}

	product, err := h.scraper.Extract(ctx, target, req.HTML)
	if err != nil {
		h.log(c).WithFields(applog.Fields{
			"url":      req.URL,
			"has_html": req.HTML != "",
			"error":    err.Error(),
		}).Warn(constants.LogMsgExtractFailed)

		return httputil.FromError(err)
	}

	resp := response.ExtractResponse{
		Retailer: product.RetailerCode(),
		Product:  product,
		Fields:   product.PopulatedFields(),
	}

	if req.Store {
		stored, err := h.scraper.Save(ctx, product)
		switch {
		case err == nil:
			resp.Stored = stored
		case apperrors.Is(err, apperrors.InvalidInput):
			h.log(c).WithFields(applog.Fields{"url": req.URL, "reason": err.Error()}).Info(constants.LogMsgStoreSkipped)
			resp.StoreSkipped = err.Error()
		default:
			h.log(c).WithFields(applog.Fields{"url": req.URL, "error": err.Error()}).Error(constants.LogMsgStoreFailed)
			return NewErrStoreFailed(storeFailureMessage(err))
		}
	}

	h.log(c).WithFields(applog.Fields{
		"url":      req.URL,
		"retailer": resp.Retailer,
		"fields":   len(resp.Fields),
		"stored":   resp.Stored != nil,
	}).Info(constants.LogMsgExtractDone)

	return c.JSON(http.StatusOK, resp)
}

// CrawlHandler 여러 URL을 한 번에 수집하고 결과 보고서를 반환합니다.
//
//	POST /api/v1/crawl
//	{"urls": ["https://www.homepro.co.th/p/1234567", "https://www.dohome.co.th/th/product/..."]}
//
// URL 하나의 실패는 보고서의 해당 결과에만 기록되며 응답 코드는 200입니다.
func (h *Handler) CrawlHandler(c echo.Context) error {
	req := new(request.CrawlRequest)
	if err := c.Bind(req); err != nil {
		return NewErrInvalidBody()
	}
	if err := validator.Struct(req); err != nil {
		return NewErrValidationFailed(validator.FormatValidationError(err))
	}

	report := h.scraper.Run(c.Request().Context(), req.URLs)

	h.log(c).WithFields(applog.Fields{
		"total":     report.Total,
		"succeeded": report.Succeeded,
		"failed":    report.Failed,
	}).Info(constants.LogMsgCrawlDone)

	return c.JSON(http.StatusOK, response.CrawlResponse{Report: report})
}

func storeFailureMessage(err error) string {
	var appErr *apperrors.AppError
	if apperrors.As(err, &appErr) {
		return appErr.Message()
	}
	return constants.ErrMsgServiceUnavailable
}
