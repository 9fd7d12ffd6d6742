package middleware

import (
	"io"

	applog "github.com/darkkaiser/price-scraper/pkg/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// componentEcho echo 프레임워크 내부 로그의 컴포넌트 이름
const componentEcho = "api.echo"

// 컴파일 타임에 인터페이스 구현 여부를 검증합니다.
var _ echo.Logger = (*EchoLogger)(nil)

var (
	toEchoLevel = map[applog.Level]log.Lvl{
		applog.TraceLevel: log.DEBUG,
		applog.DebugLevel: log.DEBUG,
		applog.InfoLevel:  log.INFO,
		applog.WarnLevel:  log.WARN,
		applog.ErrorLevel: log.ERROR,
	}

	fromEchoLevel = map[log.Lvl]applog.Level{
		log.DEBUG: applog.DebugLevel,
		log.INFO:  applog.InfoLevel,
		log.WARN:  applog.WarnLevel,
		log.ERROR: applog.ErrorLevel,
	}
)

// EchoLogger echo.Logger 인터페이스를 애플리케이션 로거(logrus)로 위임하는 어댑터입니다.
//
// 모든 로그에는 component=api.echo 필드가 붙고, SetPrefix로 지정한 값은 prefix 필드로 기록됩니다.
type EchoLogger struct {
	logger *applog.Logger
	prefix string
}

// NewEchoLogger logger로 출력하는 EchoLogger를 생성합니다.
func NewEchoLogger(logger *applog.Logger) *EchoLogger {
	return &EchoLogger{logger: logger}
}

func (l *EchoLogger) entry() *applog.Entry {
	fields := applog.Fields{"component": componentEcho}
	if l.prefix != "" {
		fields["prefix"] = l.prefix
	}
	return l.logger.WithFields(fields)
}

func (l *EchoLogger) Output() io.Writer { return l.logger.Out }

func (l *EchoLogger) SetOutput(w io.Writer) { l.logger.SetOutput(w) }

func (l *EchoLogger) Prefix() string { return l.prefix }

func (l *EchoLogger) SetPrefix(p string) { l.prefix = p }

// Level 대응하는 echo 레벨이 없는 Fatal, Panic은 OFF로 보고합니다.
func (l *EchoLogger) Level() log.Lvl {
	if lvl, ok := toEchoLevel[l.logger.GetLevel()]; ok {
		return lvl
	}
	return log.OFF
}

// SetLevel log.OFF처럼 대응하는 레벨이 없으면 무시합니다.
func (l *EchoLogger) SetLevel(v log.Lvl) {
	if lvl, ok := fromEchoLevel[v]; ok {
		l.logger.SetLevel(lvl)
	}
}

// SetHeader 로그 헤더 형식은 애플리케이션 포매터가 정하므로 무시합니다.
func (l *EchoLogger) SetHeader(string) {}

func (l *EchoLogger) Print(i ...any) { l.entry().Print(i...) }
func (l *EchoLogger) Printf(format string, a ...any) { l.entry().Printf(format, a...) }
func (l *EchoLogger) Printj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Print() }

func (l *EchoLogger) Debug(i ...any) { l.entry().Debug(i...) }
func (l *EchoLogger) Debugf(format string, a ...any) { l.entry().Debugf(format, a...) }
func (l *EchoLogger) Debugj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Debug() }

func (l *EchoLogger) Info(i ...any) { l.entry().Info(i...) }
func (l *EchoLogger) Infof(format string, a ...any) { l.entry().Infof(format, a...) }
func (l *EchoLogger) Infoj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Info() }

func (l *EchoLogger) Warn(i ...any) { l.entry().Warn(i...) }
func (l *EchoLogger) Warnf(format string, a ...any) { l.entry().Warnf(format, a...) }
func (l *EchoLogger) Warnj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Warn() }

func (l *EchoLogger) Error(i ...any) { l.entry().Error(i...) }
func (l *EchoLogger) Errorf(format string, a ...any) { l.entry().Errorf(format, a...) }
func (l *EchoLogger) Errorj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Error() }

func (l *EchoLogger) Fatal(i ...any) { l.entry().Fatal(i...) }
func (l *EchoLogger) Fatalf(format string, a ...any) { l.entry().Fatalf(format, a...) }
func (l *EchoLogger) Fatalj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Fatal() }

func (l *EchoLogger) Panic(i ...any) { l.entry().Panic(i...) }
func (l *EchoLogger) Panicf(format string, a ...any) { l.entry().Panicf(format, a...) }
func (l *EchoLogger) Panicj(j log.JSON) { l.entry().WithFields(applog.Fields(j)).Panic() }
