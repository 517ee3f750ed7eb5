package fusion

import (
	"io"
	"log/slog"
)

// Option configures an Engine before the derivation pass runs.
type Option func(e *Engine)

// WithLogger sets the logger used for the build summary and per-arcana
// debug counts. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
