package stocktwits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resty.dev/v3"

	"watchertracker/internal/fetcher"
)

// StreamResponse represents the Stocktwits symbol stream response.
// Only the symbol envelope matters here; the message stream itself is ignored.
type StreamResponse struct {
	Symbol struct {
		ID             int    `json:"id"`
		Symbol         string `json:"symbol"`
		Title          string `json:"title"`
		WatchlistCount *int64 `json:"watchlist_count"`
	} `json:"symbol"`
}

// browserHeaders mimic a real browser; without them Stocktwits tends to
// answer 403 from its anti-bot layer.
var browserHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/115.0.0.0 Safari/537.36",
	"Accept":          "application/json, text/javascript, */*; q=0.01",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://stocktwits.com/",
}

// WatcherFetcher fetches the watchlist count for one symbol from Stocktwits
type WatcherFetcher struct {
	symbol string
	client *resty.Client
}

// NewWatcherFetcher creates a new watcher count fetcher for the given symbol
func NewWatcherFetcher(symbol, baseURL string, timeout time.Duration) *WatcherFetcher {
	client := fetcher.NewHTTPClient(baseURL, timeout).
		SetHeaders(browserHeaders)

	return &WatcherFetcher{
		symbol: symbol,
		client: client,
	}
}

// Fetch retrieves the current watcher count for the symbol
func (f *WatcherFetcher) Fetch(ctx context.Context) (int64, error) {
	var result StreamResponse

	resp, err := f.client.R().
		SetContext(ctx).
		SetResult(&result).
		Get(fmt.Sprintf("/streams/symbol/%s.json", f.symbol))

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fetcher.NewTimeoutError(err)
		}
		return 0, fetcher.NewNetworkError(err)
	}

	if !resp.IsSuccess() {
		return 0, fetcher.ClassifyHTTPError(resp.StatusCode())
	}

	if result.Symbol.WatchlistCount == nil {
		return 0, fetcher.NewValidationError(fmt.Sprintf("no watchlist_count in response for %s", f.symbol))
	}

	count := *result.Symbol.WatchlistCount
	if count < 0 {
		return 0, fetcher.NewValidationError(fmt.Sprintf("negative watcher count %d for %s", count, f.symbol))
	}

	return count, nil
}

// Symbol returns the ticker symbol this fetcher tracks
func (f *WatcherFetcher) Symbol() string {
	return f.symbol
}

// Key returns the log key for this fetcher
func (f *WatcherFetcher) Key() string {
	return fmt.Sprintf("fetcher:stocktwits:%s", f.symbol)
}
