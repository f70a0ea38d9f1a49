package testutil

import (
	"context"

	"watchertracker/internal/fetcher"
)

// MockFetcher is a mock implementation of the Fetcher interface for testing
type MockFetcher struct {
	FetchFunc func(ctx context.Context) (int64, error)
	Ticker    string
}

// Fetch implements the Fetcher interface
func (m *MockFetcher) Fetch(ctx context.Context) (int64, error) {
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx)
	}
	return 0, nil
}

// Symbol implements the Fetcher interface
func (m *MockFetcher) Symbol() string {
	return m.Ticker
}

// Key implements the Fetcher interface
func (m *MockFetcher) Key() string {
	return "fetcher:mock:" + m.Ticker
}

// NewMockFetcher creates a simple mock fetcher with predefined values
func NewMockFetcher(symbol string, count int64, err error) fetcher.Fetcher {
	return &MockFetcher{
		Ticker: symbol,
		FetchFunc: func(ctx context.Context) (int64, error) {
			return count, err
		},
	}
}
