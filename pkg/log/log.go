// Package log 수집기 전역 로깅 시스템(logrus + lumberjack)을 구성하고, 컴포넌트 단위 로깅 도우미를 제공합니다.
package log

import "github.com/sirupsen/logrus"

// componentKey 모든 로그에 공통으로 기록되는 컴포넌트 필드 이름
const componentKey = "component"

// WithComponent component 필드를 포함한 로그 Entry를 반환합니다.
func WithComponent(component string) *Entry {
	return logrus.WithField(componentKey, component)
}

// WithComponentAndFields component 필드와 추가 필드를 포함한 로그 Entry를 반환합니다.
// 전달된 fields 맵은 수정하지 않습니다.
func WithComponentAndFields(component string, fields Fields) *Entry {
	merged := make(Fields, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged[componentKey] = component
	return logrus.WithFields(merged)
}

// SetDebugMode Debug 모드이면 Trace 레벨, 아니면 Info 레벨로 전역 로그 레벨을 설정합니다.
func SetDebugMode(debug bool) {
	if debug {
		logrus.SetLevel(TraceLevel)
		return
	}
	logrus.SetLevel(InfoLevel)
}

// StandardLogger 전역 logrus 로거를 반환합니다. cron 등 외부 라이브러리의 로거 어댑터에 사용합니다.
func StandardLogger() *Logger {
	return logrus.StandardLogger()
}
