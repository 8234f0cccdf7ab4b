package maintenance

import (
	"context"
	"log/slog"
	"time"
)

// Pruner deletes rows that are no longer needed.
type Pruner interface {
	PruneSnapshots(ctx context.Context, before time.Time) (int64, error)
	PruneRevokedTokens(ctx context.Context) (int64, error)
}

// PruneResult reports how many rows a prune pass removed.
type PruneResult struct {
	Snapshots int64
	Tokens    int64
}

// Prune removes snapshots older than retention (skipped when retention is
// zero) and revocations for tokens that have expired. Failures are logged
// and do not stop the other step.
func Prune(ctx context.Context, p Pruner, retention time.Duration, now time.Time, logger *slog.Logger) PruneResult {
	var res PruneResult

	if retention > 0 {
		n, err := p.PruneSnapshots(ctx, now.Add(-retention))
		if err != nil {
			logger.Warn("Prune: failed to delete old snapshots", "error", err)
		} else if n > 0 {
			logger.Info("Prune: deleted old snapshots", "count", n)
		}
		res.Snapshots = n
	}

	n, err := p.PruneRevokedTokens(ctx)
	if err != nil {
		logger.Warn("Prune: failed to delete expired revocations", "error", err)
	} else if n > 0 {
		logger.Info("Prune: deleted expired revocations", "count", n)
	}
	res.Tokens = n
	return res
}
