package checker

import (
	"context"

	"go.uber.org/zap"

	"github.com/namelens/mcname/internal/core"
)

// Strategy checks many names at once. Implementations return exactly one
// availability per input name, in input order, and never fail as a whole.
type Strategy interface {
	// CheckAll checks every name and returns the codes in input order.
	CheckAll(ctx context.Context, names []string) []core.Availability

	// Name identifies the strategy in reports and logs.
	Name() string
}

// Logger is the leveled, structured logger the checkers write diagnostics to.
// Both *zap.Logger and the gofulmen CLI logger satisfy it.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
}

// Progress receives one unit per resolved name.
type Progress interface {
	Increment(value int64)
}

var nopLogger Logger = zap.NewNop()

func loggerOrNop(logger Logger) Logger {
	if logger == nil {
		return nopLogger
	}
	return logger
}

func advance(progress Progress, n int) {
	if progress == nil || n <= 0 {
		return
	}
	progress.Increment(int64(n))
}
