package log

import (
	"fmt"
	"io"
	stdlog "log"
	"os"
)

// Logger is the logging interface used across the pipeline engine.
// Methods follow fmt.Printf conventions.
type Logger interface {
	Debug(format string, v ...any)
	Info(format string, v ...any)
	Warn(format string, v ...any)
	Error(format string, v ...any)
}

// LogLevel controls which messages a logger emits. A logger at a given
// level emits that level and everything more severe.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
	// LogLevelNone suppresses all output.
	LogLevelNone
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR", "NONE"}

// String returns the level name, e.g. "INFO".
func (l LogLevel) String() string {
	if l < LogLevelDebug || l > LogLevelNone {
		return fmt.Sprintf("UNKNOWN(%d)", int(l))
	}
	return levelNames[l]
}

// DefaultLogger writes leveled, prefixed lines through the standard
// library's log package.
type DefaultLogger struct {
	out   *stdlog.Logger
	level LogLevel
}

var _ Logger = (*DefaultLogger)(nil)

// NewDefaultLogger returns a DefaultLogger writing to stderr.
func NewDefaultLogger(level LogLevel) *DefaultLogger {
	return NewCustomLogger(os.Stderr, level)
}

// NewCustomLogger returns a DefaultLogger writing to out. Useful in tests
// to capture output.
func NewCustomLogger(out io.Writer, level LogLevel) *DefaultLogger {
	return &DefaultLogger{
		out:   stdlog.New(out, "[legalassist] ", stdlog.LstdFlags),
		level: level,
	}
}

func (l *DefaultLogger) emit(level LogLevel, format string, v ...any) {
	if level < l.level {
		return
	}
	l.out.Printf("["+level.String()+"] "+format, v...)
}

func (l *DefaultLogger) Debug(format string, v ...any) { l.emit(LogLevelDebug, format, v...) }
func (l *DefaultLogger) Info(format string, v ...any)  { l.emit(LogLevelInfo, format, v...) }
func (l *DefaultLogger) Warn(format string, v ...any)  { l.emit(LogLevelWarn, format, v...) }
func (l *DefaultLogger) Error(format string, v ...any) { l.emit(LogLevelError, format, v...) }

// NoOpLogger discards everything. Used when callers want logging off
// without level checks at every call site.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, ...any) {}
func (NoOpLogger) Info(string, ...any)  {}
func (NoOpLogger) Warn(string, ...any)  {}
func (NoOpLogger) Error(string, ...any) {}

var defaultLogger Logger = NewDefaultLogger(LogLevelInfo)

// SetDefaultLogger replaces the package-level logger.
func SetDefaultLogger(logger Logger) {
	defaultLogger = logger
}

// GetDefaultLogger returns the package-level logger.
func GetDefaultLogger() Logger {
	return defaultLogger
}

// Debug logs through the package-level logger.
func Debug(format string, v ...any) { defaultLogger.Debug(format, v...) }

// Info logs through the package-level logger.
func Info(format string, v ...any) { defaultLogger.Info(format, v...) }

// Warn logs through the package-level logger.
func Warn(format string, v ...any) { defaultLogger.Warn(format, v...) }

// Error logs through the package-level logger.
func Error(format string, v ...any) { defaultLogger.Error(format, v...) }
