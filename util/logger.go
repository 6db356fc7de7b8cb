package util

import (
	"log"
	"os"
	"strconv"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// logLevel reads LOG_LEVEL as either a zap level number (-1 debug .. 5 fatal)
// or a level name. Anything else means info.
func logLevel() zapcore.Level {
	raw := os.Getenv("LOG_LEVEL")
	if n, err := strconv.Atoi(raw); err == nil {
		return zapcore.Level(n)
	}
	if lvl, err := zapcore.ParseLevel(raw); err == nil {
		return lvl
	}
	return zapcore.InfoLevel
}

func buildLogger(level zapcore.Level) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stdout"}

	enc := &cfg.EncoderConfig
	enc.CallerKey = "ln"
	enc.FunctionKey = ""
	enc.LevelKey = "severity"
	enc.EncodeLevel = zapcore.CapitalLevelEncoder
	enc.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}

// NewLogger builds the process logger, tags it with service and installs it
// as the zap global. The returned func restores the previous globals and
// flushes buffered entries.
func NewLogger(service string) (*zap.Logger, func()) {
	logger, err := buildLogger(logLevel())
	if err != nil {
		log.Fatalf("fail to init logger, error: %v", err)
	}
	if service != "" {
		logger = logger.With(zap.String("service", service))
	}

	undo := zap.ReplaceGlobals(logger)

	return logger, func() {
		undo()
		_ = logger.Sync()
	}
}
