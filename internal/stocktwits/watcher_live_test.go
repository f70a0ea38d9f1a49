package stocktwits

import (
	"context"
	"os"
	"testing"
	"time"
)

// TestWatcherFetcher_Live hits the real Stocktwits API. Opt in with
// STOCKTWITS_LIVE=1; skipped otherwise so the suite stays hermetic.
func TestWatcherFetcher_Live(t *testing.T) {
	if os.Getenv("STOCKTWITS_LIVE") != "1" {
		t.Skip("set STOCKTWITS_LIVE=1 to run against the real Stocktwits API")
	}

	f := NewWatcherFetcher("AAPL", "https://api.stocktwits.com/api/2", 10*time.Second)
	count, err := f.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() against live API failed: %v", err)
	}
	if count <= 0 {
		t.Errorf("Fetch() = %d, want a positive watcher count for AAPL", count)
	}
	t.Logf("live watcher count for AAPL: %d", count)
}
