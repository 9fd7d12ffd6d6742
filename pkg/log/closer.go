package log

import (
	"errors"
	"io"
	"sync/atomic"
)

// closer 로그 파일 리소스를 한 번에 해제합니다.
// hook을 먼저 닫아 닫힌 파일에 기록하는 일을 막고, 일부 파일 닫기에 실패하더라도 나머지를 모두 닫습니다.
// 두 번째 이후의 Close 호출은 아무 일도 하지 않습니다.
type closer struct {
	closers []io.Closer

	hook *hook

	closed atomic.Bool
}

func (c *closer) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	if c.hook != nil {
		c.hook.Close()
	}

	var errs error
	for _, rc := range c.closers {
		if rc == nil {
			continue
		}
		if s, ok := rc.(interface{ Sync() error }); ok {
			_ = s.Sync()
		}
		if err := rc.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
	}

	return errs
}
