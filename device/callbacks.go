package device

import "go.uber.org/zap"

// Logger is an optional logging interface a session can be given.
// This allows integration with any logging framework.
//
// Example with the standard log package:
//
//	type StdLogger struct{}
//	func (l StdLogger) Debug(msg string, kv ...interface{}) { log.Println(msg, kv) }
//	func (l StdLogger) Info(msg string, kv ...interface{})  { log.Println(msg, kv) }
//	func (l StdLogger) Error(msg string, kv ...interface{}) { log.Println(msg, kv) }
//
//	session := device.New(transport, device.WithLogger(StdLogger{}))
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// zapLogger adapts a zap.Logger to the Logger interface.
type zapLogger struct {
	s *zap.SugaredLogger
}

// NewZapLogger wraps a zap.Logger for use as a session Logger.
func NewZapLogger(l *zap.Logger) Logger {
	return &zapLogger{s: l.Sugar()}
}

func (z *zapLogger) Debug(msg string, keysAndValues ...interface{}) {
	z.s.Debugw(msg, keysAndValues...)
}

func (z *zapLogger) Info(msg string, keysAndValues ...interface{}) {
	z.s.Infow(msg, keysAndValues...)
}

func (z *zapLogger) Error(msg string, keysAndValues ...interface{}) {
	z.s.Errorw(msg, keysAndValues...)
}

// StateCallback is called by a ThemeChanger on every state transition.
// Implementations should return quickly; the callback runs on the calling
// goroutine between protocol exchanges.
type StateCallback func(ChangeState)
