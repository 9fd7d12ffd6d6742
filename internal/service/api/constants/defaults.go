package constants

import "time"

// 서버 설정 기본값 상수입니다.
const (
	// DefaultListenPort API 서버의 기본 포트
	DefaultListenPort = 8080

	// DefaultRequestTimeout HTTP 요청 처리의 기본 타임아웃 (2분)
	// 일괄 수집 요청은 여러 페이지를 가져오므로 일반 API보다 길게 잡습니다.
	DefaultRequestTimeout = 2 * time.Minute

	// DefaultReadTimeout 요청 본문 읽기 제한
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout 응답 쓰기 제한. 요청 타임아웃보다 길어야 503 응답이 전달됩니다.
	DefaultWriteTimeout = DefaultRequestTimeout + 10*time.Second

	// DefaultIdleTimeout Keep-Alive 연결 유휴 제한
	DefaultIdleTimeout = 2 * time.Minute

	// DefaultRateLimitPerSecond IP별 초당 허용 요청 수
	DefaultRateLimitPerSecond = 5

	// DefaultRateLimitBurst IP별 버스트 허용량
	DefaultRateLimitBurst = 10
)
