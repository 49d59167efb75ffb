package service

import "go.uber.org/zap"

// Logger is the logging surface the services depend on
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// NewZapLogger adapts a zap.Logger to Logger
func NewZapLogger(logger *zap.Logger) Logger {
	return &zapLoggerAdapter{logger: logger}
}

type zapLoggerAdapter struct {
	logger *zap.Logger
}

func (a *zapLoggerAdapter) Info(msg string, keysAndValues ...interface{}) {
	a.logger.Info(msg, toZapFields(keysAndValues...)...)
}

func (a *zapLoggerAdapter) Error(msg string, keysAndValues ...interface{}) {
	a.logger.Error(msg, toZapFields(keysAndValues...)...)
}

// toZapFields converts key-value pairs to zap fields, dropping non-string keys
func toZapFields(keysAndValues ...interface{}) []zap.Field {
	fields := make([]zap.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		key, ok := keysAndValues[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keysAndValues[i+1]))
	}
	return fields
}
