package middleware

import (
	"bytes"
	"testing"

	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/gommon/log"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEchoLogger() (*EchoLogger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewEchoLogger(logger), hook
}

func TestEchoLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		app   applog.Level
		echo  log.Lvl
		apply bool
	}{
		{name: "Trace는 DEBUG", app: applog.TraceLevel, echo: log.DEBUG},
		{name: "Debug", app: applog.DebugLevel, echo: log.DEBUG, apply: true},
		{name: "Info", app: applog.InfoLevel, echo: log.INFO, apply: true},
		{name: "Warn", app: applog.WarnLevel, echo: log.WARN, apply: true},
		{name: "Error", app: applog.ErrorLevel, echo: log.ERROR, apply: true},
		{name: "Fatal은 OFF", app: applog.FatalLevel, echo: log.OFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l, _ := newTestEchoLogger()
			l.logger.SetLevel(tt.app)
			assert.Equal(t, tt.echo, l.Level())

			if tt.apply {
				l.logger.SetLevel(applog.PanicLevel)
				l.SetLevel(tt.echo)
				assert.Equal(t, tt.app, l.logger.GetLevel())
			}
		})
	}
}

func TestEchoLogger_SetLevelOffIgnored(t *testing.T) {
	t.Parallel()

	l, _ := newTestEchoLogger()
	l.SetLevel(log.OFF)
	assert.Equal(t, applog.DebugLevel, l.logger.GetLevel())
}

func TestEchoLogger_Entries(t *testing.T) {
	t.Parallel()

	l, hook := newTestEchoLogger()

	l.Infof("http server started on %s", ":8080")
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "http server started on :8080", entry.Message)
	assert.Equal(t, "api.echo", entry.Data["component"])
	assert.NotContains(t, entry.Data, "prefix")

	l.SetPrefix("echo")
	assert.Equal(t, "echo", l.Prefix())
	l.Warnj(log.JSON{"port": 8080})
	entry = hook.LastEntry()
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, 8080, entry.Data["port"])
	assert.Equal(t, "echo", entry.Data["prefix"])

	l.Error("listen failed")
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)

	l.Debug("debug")
	assert.Equal(t, logrus.DebugLevel, hook.LastEntry().Level)

	assert.Panics(t, func() { l.Panic("panic") })
}

func TestEchoLogger_Output(t *testing.T) {
	t.Parallel()

	l, _ := newTestEchoLogger()
	var buf bytes.Buffer
	l.SetOutput(&buf)
	assert.Same(t, &buf, l.Output())
}
