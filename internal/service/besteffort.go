package service

import (
	"context"
	"log/slog"
)

// bestEffort runs a post-commit side effect. Its failure is logged and never
// returned, the committed row stays the source of truth.
func bestEffort(ctx context.Context, logger *slog.Logger, step string, fn func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)

	if err := fn(ctx); err != nil {
		logger.WarnContext(ctx, "best-effort step failed", "step", step, "error", err)
	}
}
