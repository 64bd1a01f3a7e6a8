package cron

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/personnel-web/internal/domain/auth"
)

// SweepSessions removes expired sessions from stores that do not expire
// them on their own.
func SweepSessions(pruner auth.SessionPruner, logger *slog.Logger) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		n, err := pruner.PruneExpired(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Info("expired sessions removed", "count", n)
		}
		return nil
	}
}
