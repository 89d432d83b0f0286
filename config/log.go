package config

import (
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvLogDebug overrides LogConfig.Debug when the latter is empty.
const EnvLogDebug = "GEMINI_LOG_DEBUG"

// NewLogger returns a console logger writing to w at level.
func NewLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	config := zap.NewProductionEncoderConfig()
	config.EncodeTime = func(ts time.Time, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(ts.UTC().Format(time.RFC3339))
	}
	config.EncodeDuration = func(d time.Duration, encoder zapcore.PrimitiveArrayEncoder) {
		encoder.AppendString(d.String())
	}
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(config),
		zapcore.Lock(zapcore.AddSync(w)),
		level,
	))
}

// SetupLogger builds the logger for c. Without a debug target it logs
// at c.Level to stderr; with one, it logs everything at debug level to
// that target. The returned func closes a debug log file, if any.
func SetupLogger(c LogConfig, stderr io.Writer) (*zap.Logger, func(), error) {
	target := c.Debug
	if target == "" {
		target = os.Getenv(EnvLogDebug)
	}
	switch target {
	case "", "disable":
		return NewLogger(stderr, c.Level), nil, nil
	case "true", "stderr":
		return NewLogger(stderr, zapcore.DebugLevel), nil, nil
	case "stdout":
		return NewLogger(os.Stdout, zapcore.DebugLevel), nil, nil
	}
	file, err := os.Create(target)
	if err != nil {
		return nil, nil, fmt.Errorf("create log: %s %w", target, err)
	}
	logger := NewLogger(file, zapcore.DebugLevel)
	return logger, func() {
		logger.Sync()
		file.Close()
	}, nil
}
