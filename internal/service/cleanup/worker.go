package cleanup

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
)

// DecisionPruner deletes recorded decisions; postgres.MoveRepo is one.
type DecisionPruner interface {
	DeleteDecisionsOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type Worker struct {
	Repo     DecisionPruner
	KeepDays int
	Interval time.Duration
	now      func() time.Time
}

func NewWorker(repo DecisionPruner, keepDays int) *Worker {
	return &Worker{Repo: repo, KeepDays: keepDays, Interval: time.Hour, now: time.Now}
}

// Start runs one cleanup immediately, then every Interval until ctx is
// done.
func (w *Worker) Start(ctx context.Context) {
	go func() {
		w.RunOnce(ctx)

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				log.Info().Str("component", "cleanup").Msg("background worker stopped")
				return
			case <-ticker.C:
				w.RunOnce(ctx)
			}
		}
	}()
	log.Info().Str("component", "cleanup").Int("keep_days", w.KeepDays).Msg("background worker started")
}

// RunOnce deletes decisions older than KeepDays and returns how many went.
// A non-positive KeepDays keeps everything.
func (w *Worker) RunOnce(ctx context.Context) int64 {
	if w.KeepDays <= 0 {
		return 0
	}
	cutoff := w.now().Add(-time.Duration(w.KeepDays) * 24 * time.Hour)
	deleted, err := w.Repo.DeleteDecisionsOlderThan(ctx, cutoff)
	if err != nil {
		log.Error().Str("component", "cleanup").Err(err).Msg("error cleaning up decisions")
		return 0
	}
	if deleted > 0 {
		log.Info().Str("component", "cleanup").Int64("deleted", deleted).Msg("removed old decisions")
	}
	return deleted
}
