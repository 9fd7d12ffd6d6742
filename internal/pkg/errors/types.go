package errors

import "strconv"

// ErrorType 에러의 종류를 나타내는 타입입니다.
type ErrorType int

// 에러 타입 상수
const (
	// Unknown 분류되지 않은 에러 (기본값)
	Unknown ErrorType = iota

	// Internal 내부 로직 오류 (버그, 예상하지 못한 상태)
	Internal

	// System 디스크, 데이터베이스, 브라우저 프로세스 등 인프라 수준의 장애
	System

	// InvalidInput 설정값 또는 요청 값의 유효성 검사 실패
	InvalidInput

	// NotFound 요청한 상품 또는 리소스가 존재하지 않음
	NotFound

	// ExecutionFailed 페이지 수집, 저장 등 작업 수행 실패
	ExecutionFailed

	// ParsingFailed HTML, JSON, CSV 등의 데이터 파싱 실패
	ParsingFailed

	// Timeout 작업 시간 초과
	Timeout

	// Unavailable 대상 사이트 또는 외부 서비스의 일시적 사용 불가
	Unavailable
)

var errorTypeNames = [...]string{
	Unknown:         "Unknown",
	Internal:        "Internal",
	System:          "System",
	InvalidInput:    "InvalidInput",
	NotFound:        "NotFound",
	ExecutionFailed: "ExecutionFailed",
	ParsingFailed:   "ParsingFailed",
	Timeout:         "Timeout",
	Unavailable:     "Unavailable",
}

// String fmt.Stringer 인터페이스를 구현합니다.
// 정의되지 않은 값은 "ErrorType(N)" 형식으로 출력합니다.
func (t ErrorType) String() string {
	if t < 0 || int(t) >= len(errorTypeNames) {
		return "ErrorType(" + strconv.Itoa(int(t)) + ")"
	}
	return errorTypeNames[t]
}
