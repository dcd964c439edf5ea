package graph

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger atomic.Pointer[zap.Logger]
	nopLog = zap.NewNop()
)

// Logger returns the graph package's logger instance.
// It uses a no-op logger until SetLogger installs one.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nopLog
}

// SetLogger configures the graph package's logger. Call it once at startup,
// before decoding or encoding starts; a nil logger restores the no-op one.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}
