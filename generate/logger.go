package generate

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger atomic.Pointer[zap.Logger]
	nop    = zap.NewNop()
)

// Logger returns the package logger, a no-op logger unless SetLogger was called.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nop
}

// SetLogger replaces the package logger; nil restores the no-op logger.
// It is safe to call while generation runs.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = nop
	}
	logger.Store(l)
}
