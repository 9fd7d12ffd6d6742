package service

import (
	"context"
	"sync"
)

// Service main에서 함께 시작하고 종료하는 백그라운드 서비스입니다.
//
// Start는 serviceStopWG.Add(1)이 호출된 상태에서 불리며, 성공하든 실패하든 정확히 한 번 serviceStopWG.Done()을 호출해야 합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
