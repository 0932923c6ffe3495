package tasktrack

import "go.uber.org/zap"

// ZapLogger adapts a zap sugared logger to the Logger interface.
type ZapLogger struct {
	l *zap.SugaredLogger
}

var _ Logger = ZapLogger{}

func NewZapLogger(l *zap.Logger) ZapLogger {
	return ZapLogger{l: l.Sugar()}
}

func (z ZapLogger) Debug(msg string, args ...any) {
	z.l.Debugw(msg, args...)
}

func (z ZapLogger) Info(msg string, args ...any) {
	z.l.Infow(msg, args...)
}

func (z ZapLogger) Error(msg string, args ...any) {
	z.l.Errorw(msg, args...)
}
