package zap

import (
	"time"

	"github.com/lintang-b-s/water-network-maxflow/pkg/logger/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func New(cfg config.Configuration) (*zap.Logger, error) {
	zapConfig := zap.NewProductionConfig()
	zapConfig.Level = zap.NewAtomicLevelAt(toZapLevel(cfg.Level))
	zapConfig.EncoderConfig.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format(cfg.TimeFormat))
	}
	zapConfig.EncoderConfig.EncodeDuration = zapcore.StringDurationEncoder

	return zapConfig.Build()
}

func toZapLevel(level int) zapcore.Level {
	switch level {
	case config.DEBUG_LEVEL:
		return zapcore.DebugLevel
	case config.WARN_LEVEL:
		return zapcore.WarnLevel
	case config.ERROR_LEVEL:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
