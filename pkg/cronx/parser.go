// Package cronx 수집 스케줄에 사용하는 Cron 표현식 파서와 검증 도우미를 제공합니다.
package cronx

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// StandardParser 초 단위를 포함하는 6필드 형식([초] [분] [시] [일] [월] [요일])과
// @daily, @every 1h 같은 Descriptor를 해석하는 파서를 반환합니다. 5필드 형식은 지원하지 않습니다.
func StandardParser() cron.Parser {
	return cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
}

// Validate spec이 StandardParser로 해석 가능한지 확인합니다. 앞뒤 공백은 무시합니다.
func Validate(spec string) error {
	_, err := parse(spec)
	return err
}

// Next from 이후 spec에 따른 다음 실행 시각을 반환합니다.
func Next(spec string, from time.Time) (time.Time, error) {
	schedule, err := parse(spec)
	if err != nil {
		return time.Time{}, err
	}
	return schedule.Next(from), nil
}

func parse(spec string) (cron.Schedule, error) {
	schedule, err := StandardParser().Parse(strings.TrimSpace(spec))
	if err != nil {
		return nil, fmt.Errorf("Cron 표현식 파싱 실패 (%q): %w", spec, err)
	}
	return schedule, nil
}
