package api

import (
	"github.com/darkkaiser/price-scraper/internal/service/api/handler/system"
	"github.com/labstack/echo/v4"
)

// RegisterRoutes 버전과 무관한 시스템 엔드포인트(/health, /version)를 등록합니다.
func RegisterRoutes(e *echo.Echo, h *system.Handler) {
	e.GET("/health", h.HealthCheckHandler)
	e.GET("/version", h.VersionHandler)
}
