package constants

// 시스템 구동 시 발생할 수 있는 패닉 메시지 상수입니다.
const (
	PanicMsgCrawlerRequired = "Crawler는 필수입니다"

	PanicMsgRateLimitRequestsPerSecondInvalid = "RateLimiting: requestsPerSecond는 양수여야 합니다 (현재값: %d)"

	PanicMsgRateLimitBurstInvalid = "RateLimiting: burst는 양수여야 합니다 (현재값: %d)"
)
