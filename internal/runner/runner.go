package runner

import (
	"context"
	"fmt"
	"log/slog"

	"watchertracker/internal/fetcher"
	"watchertracker/internal/ratelimit"
)

// Recorder persists one run's observations.
type Recorder interface {
	Record(observations []fetcher.Observation) error
}

// Run executes all fetchers sequentially in list order and hands the
// resulting observations to the recorder as a single row.
//
// Fetches run one at a time: column order in the trend file follows the
// symbol list, and Stocktwits throttles parallel unauthenticated clients
// anyway. A failed fetch degrades to an absent observation and never aborts
// the run; only a cancelled context or a recorder failure does.
func Run(ctx context.Context, fetchers []fetcher.Fetcher, rec Recorder) error {
	if len(fetchers) == 0 {
		return fmt.Errorf("no fetchers configured")
	}

	limiter := ratelimit.GetLimiter()
	observations := make([]fetcher.Observation, 0, len(fetchers))

	for _, f := range fetchers {
		if err := limiter.Wait(ctx, ratelimit.APIStocktwits); err != nil {
			return fmt.Errorf("run aborted: %w", err)
		}

		count, err := f.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				// Cancelled mid-fetch: abort without writing a row.
				return fmt.Errorf("run aborted: %w", ctx.Err())
			}
			slog.Warn("fetch failed, recording blank",
				"key", f.Key(),
				"symbol", f.Symbol(),
				"error", err)
			observations = append(observations, fetcher.Absent(f.Symbol()))
			continue
		}

		slog.Info("fetched watcher count",
			"key", f.Key(),
			"symbol", f.Symbol(),
			"watchers", count)
		observations = append(observations, fetcher.Value(f.Symbol(), count))
	}

	return rec.Record(observations)
}
