package middleware

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// setupLogHook 전역 logrus 훅을 설치합니다. 사용하는 테스트는 t.Parallel()을 호출하지 않습니다.
func setupLogHook(t *testing.T) *test.Hook {
	t.Helper()

	hook := test.NewGlobal()
	prevLevel := logrus.GetLevel()
	logrus.SetLevel(logrus.DebugLevel)

	t.Cleanup(func() {
		logrus.SetLevel(prevLevel)
		logrus.StandardLogger().ReplaceHooks(make(logrus.LevelHooks))
	})

	return hook
}
