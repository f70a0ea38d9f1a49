package fetcher

import "context"

// Fetcher is the interface a per-symbol metric fetcher must implement.
// Each fetcher knows how to retrieve the watcher count for exactly one
// ticker symbol.
type Fetcher interface {
	// Fetch retrieves the current watcher count for the fetcher's symbol.
	// Returns an error if the fetch operation fails.
	Fetch(ctx context.Context) (int64, error)

	// Symbol returns the uppercase ticker symbol this fetcher tracks.
	Symbol() string

	// Key returns a hierarchical key identifying this fetcher in logs.
	// Format: fetcher:{source}:{symbol}
	// Example: fetcher:stocktwits:AAPL
	Key() string
}
