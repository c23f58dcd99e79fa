package account

import (
	"context"
	"log/slog"
)

// tryNonFatal runs fn to completion and logs its error instead of returning it.
// Only steps whose failure must not affect the outcome go through here.
func tryNonFatal(ctx context.Context, step string, fn func(context.Context) error) {
	if err := fn(ctx); err != nil {
		slog.Warn("non-fatal step failed", "step", step, "error", err)
	}
}
