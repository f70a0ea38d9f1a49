package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"watchertracker/internal/fetcher"
	"watchertracker/internal/runner"
	"watchertracker/internal/stocktwits"
	"watchertracker/internal/symbols"
	"watchertracker/internal/trend"
)

// stocktwitsStub fakes the Stocktwits symbol stream endpoint. Counts are
// mutable between runs and symbols listed in fail answer 404.
type stocktwitsStub struct {
	counts map[string]int64
	fail   map[string]bool
}

func (s *stocktwitsStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sym := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/streams/symbol/"), ".json")
		if s.fail[sym] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		count, ok := s.counts[sym]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"symbol": {"symbol": %q, "watchlist_count": %d}}`, sym, count)
	})
}

// runOnce drives the full pipeline the way main does: load symbols, build
// one fetcher per symbol, fetch sequentially, record one dated row.
func runOnce(t *testing.T, symbolsPath, trendPath, baseURL, date string) error {
	t.Helper()

	syms, err := symbols.Load(symbolsPath)
	if err != nil {
		return err
	}

	fetchers := make([]fetcher.Fetcher, 0, len(syms))
	for _, sym := range syms {
		fetchers = append(fetchers, stocktwits.NewWatcherFetcher(sym, baseURL, 5*time.Second))
	}

	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad test date %q: %v", date, err)
	}
	rec := &trend.Recorder{Path: trendPath, Now: func() time.Time { return d }}

	return runner.Run(context.Background(), fetchers, rec)
}

// TestIntegration_TrendAccumulation exercises two consecutive runs: the
// second adds a symbol to the list and loses one fetch, so the header grows
// and the failed symbol's field comes out blank.
func TestIntegration_TrendAccumulation(t *testing.T) {
	stub := &stocktwitsStub{
		counts: map[string]int64{"AAPL": 1000000, "TSLA": 800000},
		fail:   map[string]bool{},
	}
	server := httptest.NewServer(stub.handler())
	defer server.Close()

	dir := t.TempDir()
	symbolsPath := filepath.Join(dir, "symbols.txt")
	trendPath := filepath.Join(dir, "watchers_trend.csv")

	if err := os.WriteFile(symbolsPath, []byte("# tracked tickers\nAAPL\nTSLA\n"), 0644); err != nil {
		t.Fatalf("writing symbols file: %v", err)
	}

	if err := runOnce(t, symbolsPath, trendPath, server.URL, "2025-08-16"); err != nil {
		t.Fatalf("first run failed: %v", err)
	}

	data, err := os.ReadFile(trendPath)
	if err != nil {
		t.Fatalf("reading trend file: %v", err)
	}
	want := "date,AAPL,TSLA\n2025-08-16,1000000,800000\n"
	if string(data) != want {
		t.Fatalf("trend file after first run = %q, want %q", data, want)
	}

	// Second run: NVDA joins the list, AAPL's fetch now fails
	if err := os.WriteFile(symbolsPath, []byte("AAPL\nTSLA\nNVDA\n"), 0644); err != nil {
		t.Fatalf("rewriting symbols file: %v", err)
	}
	stub.counts["TSLA"] = 810000
	stub.counts["NVDA"] = 950000
	stub.fail["AAPL"] = true

	if err := runOnce(t, symbolsPath, trendPath, server.URL, "2025-08-17"); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	data, err = os.ReadFile(trendPath)
	if err != nil {
		t.Fatalf("reading trend file: %v", err)
	}
	want = "date,AAPL,TSLA,NVDA\n" +
		"2025-08-16,1000000,800000\n" +
		"2025-08-17,,810000,950000\n"
	if string(data) != want {
		t.Fatalf("trend file after second run = %q, want %q", data, want)
	}
}

// TestIntegration_MissingSymbolsFile verifies the run aborts before any
// fetch and leaves the trend file untouched.
func TestIntegration_MissingSymbolsFile(t *testing.T) {
	server := httptest.NewServer((&stocktwitsStub{}).handler())
	defer server.Close()

	dir := t.TempDir()
	trendPath := filepath.Join(dir, "watchers_trend.csv")

	err := runOnce(t, filepath.Join(dir, "missing.txt"), trendPath, server.URL, "2025-08-16")
	if err == nil {
		t.Fatal("run expected error for missing symbols file, got nil")
	}
	if _, statErr := os.Stat(trendPath); !os.IsNotExist(statErr) {
		t.Error("trend file was created despite aborted run")
	}
}
