package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Nop until Init so packages can log from tests without setup.
var log = zap.NewNop().Sugar()

// Init replaces the package logger. dev selects zap's human-readable
// development config; otherwise JSON production output is used.
func Init(dev bool) {
	var (
		l   *zap.Logger
		err error
	)
	if dev {
		l, err = zap.NewDevelopment()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		l, err = cfg.Build()
	}
	if err != nil {
		panic(err)
	}
	log = l.Sugar()
}

// L returns the underlying structured logger, for components that want typed fields.
func L() *zap.Logger {
	return log.Desugar()
}

func Sync() {
	_ = log.Sync()
}

func Info(msg string, kv ...interface{}) {
	log.Infow(msg, kv...)
}

func Warn(msg string, kv ...interface{}) {
	log.Warnw(msg, kv...)
}

func Error(msg string, kv ...interface{}) {
	log.Errorw(msg, kv...)
}
