package constants

// 헬스체크 상태 상수입니다.
const (
	HealthStatusHealthy   = "healthy"
	HealthStatusUnhealthy = "unhealthy"

	// DependencyCrawler 외부 의존성 ID: 주기 수집 서비스
	DependencyCrawler = "crawler"

	MsgDepStatusNoReport  = "아직 수집 이력이 없습니다"
	MsgDepStatusLastRun   = "마지막 수집: 전체 %d건 중 %d건 성공 (%s)"
	MsgDepStatusAllFailed = "마지막 수집이 모두 실패했습니다: 전체 %d건 (%s)"
)
