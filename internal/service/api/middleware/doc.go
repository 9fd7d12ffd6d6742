// Package middleware API 서버가 사용하는 echo 미들웨어를 제공합니다.
//
// 제공되는 미들웨어:
//
//   - PanicRecovery: 핸들러 패닉 복구 및 스택 트레이스 로깅
//   - HTTPLogger: HTTP 요청/응답 로깅 (민감한 쿼리 파라미터 마스킹)
//   - RateLimiting: IP 기반 요청 속도 제한
//   - ValidateContentType: 요청 본문의 Content-Type 검증
//
// EchoLogger는 echo 프레임워크의 내부 로그를 애플리케이션 로거로 연결합니다.
package middleware
