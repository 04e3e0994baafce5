package log

import (
	"github.com/kataras/golog"
)

// GologLogger adapts a kataras/golog logger to the Logger interface so
// applications already built on golog can reuse their configured instance.
type GologLogger struct {
	logger *golog.Logger
	level  LogLevel
}

var _ Logger = (*GologLogger)(nil)

// NewGologLogger wraps an existing golog.Logger at info level.
func NewGologLogger(logger *golog.Logger) *GologLogger {
	return &GologLogger{logger: logger, level: LogLevelInfo}
}

func (l *GologLogger) enabled(level LogLevel) bool {
	return level >= l.level
}

func (l *GologLogger) Debug(format string, v ...any) {
	if l.enabled(LogLevelDebug) {
		l.logger.Debugf(format, v...)
	}
}

func (l *GologLogger) Info(format string, v ...any) {
	if l.enabled(LogLevelInfo) {
		l.logger.Infof(format, v...)
	}
}

func (l *GologLogger) Warn(format string, v ...any) {
	if l.enabled(LogLevelWarn) {
		l.logger.Warnf(format, v...)
	}
}

func (l *GologLogger) Error(format string, v ...any) {
	if l.enabled(LogLevelError) {
		l.logger.Errorf(format, v...)
	}
}

// SetLevel adjusts both the wrapper and the underlying golog level.
func (l *GologLogger) SetLevel(level LogLevel) {
	l.level = level
	l.logger.SetLevel(gologLevelName(level))
}

// GetLevel returns the current level.
func (l *GologLogger) GetLevel() LogLevel {
	return l.level
}

func gologLevelName(level LogLevel) string {
	switch level {
	case LogLevelDebug:
		return "debug"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelNone:
		return "disable"
	default:
		return "info"
	}
}
