// Package system 헬스체크, 버전 정보 등 시스템 수준의 엔드포인트 핸들러를 제공합니다.
package system

import (
	"fmt"
	"net/http"
	"time"

	"github.com/darkkaiser/price-scraper/internal/pkg/version"
	"github.com/darkkaiser/price-scraper/internal/service/api/constants"
	"github.com/darkkaiser/price-scraper/internal/service/api/model/system"
	"github.com/darkkaiser/price-scraper/internal/service/crawler"
	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/echo/v4"
)

// ReportProvider 마지막 주기 수집 결과를 조회합니다. crawler.Service가 구현합니다.
type ReportProvider interface {
	LastReport() *crawler.Report
}

// Handler 시스템 엔드포인트 핸들러 (헬스체크, 버전 정보)
type Handler struct {
	reports ReportProvider

	buildInfo version.Info

	serverStartTime time.Time
}

// New Handler 인스턴스를 생성합니다. reports가 nil이면 헬스체크에 수집 서비스 상태를 포함하지 않습니다.
func New(reports ReportProvider, buildInfo version.Info) *Handler {
	return &Handler{
		reports: reports,

		buildInfo: buildInfo,

		serverStartTime: time.Now(),
	}
}

// HealthCheckHandler 서버 가동 시간과 주기 수집 서비스의 상태를 반환합니다.
//
// 마지막 수집에서 URL이 하나도 성공하지 못했다면 unhealthy로 보고합니다.
func (h *Handler) HealthCheckHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/health",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgHealthCheck)

	deps := make(map[string]system.DependencyStatus)
	if h.reports != nil {
		deps[constants.DependencyCrawler] = crawlerStatus(h.reports.LastReport())
	}

	status := constants.HealthStatusHealthy
	for _, dep := range deps {
		if dep.Status != constants.HealthStatusHealthy {
			status = constants.HealthStatusUnhealthy
			break
		}
	}

	return c.JSON(http.StatusOK, system.HealthResponse{
		Status:       status,
		Uptime:       int64(time.Since(h.serverStartTime).Seconds()),
		Dependencies: deps,
	})
}

func crawlerStatus(report *crawler.Report) system.DependencyStatus {
	if report == nil {
		return system.DependencyStatus{
			Status:  constants.HealthStatusHealthy,
			Message: constants.MsgDepStatusNoReport,
		}
	}

	finishedAt := report.FinishedAt.Format(time.RFC3339)
	if report.Total > 0 && report.Succeeded == 0 {
		return system.DependencyStatus{
			Status:  constants.HealthStatusUnhealthy,
			Message: fmt.Sprintf(constants.MsgDepStatusAllFailed, report.Total, finishedAt),
		}
	}

	return system.DependencyStatus{
		Status:  constants.HealthStatusHealthy,
		Message: fmt.Sprintf(constants.MsgDepStatusLastRun, report.Total, report.Succeeded, finishedAt),
	}
}

// VersionHandler 빌드 정보(버전, 커밋, 빌드 날짜, Go 버전)를 반환합니다.
func (h *Handler) VersionHandler(c echo.Context) error {
	applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
		"endpoint":  "/version",
		"method":    c.Request().Method,
		"remote_ip": c.RealIP(),
	}).Debug(constants.LogMsgVersionInfo)

	return c.JSON(http.StatusOK, system.VersionResponse{
		Version:     h.buildInfo.Version,
		Commit:      h.buildInfo.Commit,
		BuildDate:   h.buildInfo.BuildDate,
		BuildNumber: h.buildInfo.BuildNumber,
		GoVersion:   h.buildInfo.GoVersion,
		OS:          h.buildInfo.OS,
		Arch:        h.buildInfo.Arch,
	})
}
