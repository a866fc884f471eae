package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	l *zap.SugaredLogger
}

func New(l *zap.Logger) *Logger {
	return &Logger{l: l.Sugar()}
}

// NewForEnv builds a production JSON logger for "production" and a colored
// development logger for anything else.
func NewForEnv(env string) (*Logger, error) {
	var conf zap.Config

	if env == "production" {
		conf = zap.NewProductionConfig()
	} else {
		conf = zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	conf.OutputPaths = []string{"stdout"}

	l, err := conf.Build()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return New(l), nil
}

func NewNop() *Logger {
	return New(zap.NewNop())
}

func (l *Logger) LogErrorf(format string, v ...any) {
	l.l.Errorf(format, v...)
}

func (l *Logger) LogWarnf(format string, v ...any) {
	l.l.Warnf(format, v...)
}

func (l *Logger) LogInfo(format string, v ...any) {
	l.l.Infof(format, v...)
}

func (l *Logger) Sync() error {
	return l.l.Sync() //nolint:wrapcheck
}

// StdLog adapts the logger for APIs that want a *log.Logger, such as
// http.Server.ErrorLog.
func (l *Logger) StdLog() *log.Logger {
	return zap.NewStdLog(l.l.Desugar())
}
