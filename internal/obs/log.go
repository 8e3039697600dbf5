package obs

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "harbor-api"

var (
	loggerOnce sync.Once
	logger     *zap.Logger
)

// InitLogger builds the shared production logger. Safe to call more than
// once; only the first call's level takes effect.
func InitLogger(level string) *zap.Logger {
	loggerOnce.Do(func() {
		var zapLevel zapcore.Level
		switch level {
		case "debug":
			zapLevel = zapcore.DebugLevel
		case "warn":
			zapLevel = zapcore.WarnLevel
		case "error":
			zapLevel = zapcore.ErrorLevel
		default:
			zapLevel = zapcore.InfoLevel
		}

		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapLevel)
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}

		built, err := cfg.Build()
		if err != nil {
			built = zap.NewNop()
		}
		built = built.With(zap.String("service", serviceName))
		if hostname, err := os.Hostname(); err == nil && hostname != "" {
			built = built.With(zap.String("hostname", hostname))
		}
		logger = built
	})
	return logger
}

// Logger returns the shared structured logger used across the service.
func Logger() *zap.Logger {
	if logger == nil {
		return InitLogger("info")
	}
	return logger
}
