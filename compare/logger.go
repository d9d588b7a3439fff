package compare

import (
	"context"
	"log/slog"
)

// Logger wraps slog.Logger with comparison-specific fields.
type Logger struct {
	*slog.Logger
}

func newLogger(l *slog.Logger, domain string) *Logger {
	return &Logger{Logger: l.With("domain", domain)}
}

// LogStage logs the completion of one stage.
func (l *Logger) LogStage(ctx context.Context, stage string, args ...any) {
	l.DebugContext(ctx, "stage completed", append([]any{"stage", stage}, args...)...)
}

// LogMismatch logs the defect that ends a comparison.
func (l *Logger) LogMismatch(ctx context.Context, m Mismatch, attr string, index int) {
	l.DebugContext(ctx, "mismatch",
		"kind", m.String(),
		"attribute", attr,
		"index", index,
	)
}
