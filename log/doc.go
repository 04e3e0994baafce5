// Package log provides a simple leveled logging facade for the legal
// assistant pipelines.
//
// The DefaultLogger writes to stderr through the standard library; the
// GologLogger wraps a kataras/golog logger for callers that already use it.
// A package-level logger is available so components can log without
// threading a Logger through every constructor:
//
//	log.SetLogLevel(log.LogLevelDebug)
//	log.Info("index built with %d sections", n)
package log

// SetLogLevel creates and sets a default logger with the specified log level
func SetLogLevel(level LogLevel) {
	defaultLogger = NewDefaultLogger(level)
}
