package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Ensure no environment overrides leak in
	envVars := []string{
		"SYMBOLS_FILE",
		"TREND_FILE",
		"STOCKTWITS_BASE_URL",
		"REQUEST_TIMEOUT",
		"LOG_LEVEL",
	}
	for _, key := range envVars {
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"SymbolsFile", cfg.SymbolsFile, "symbols.txt"},
		{"TrendFile", cfg.TrendFile, "watchers_trend.csv"},
		{"StocktwitsBaseURL", cfg.StocktwitsBaseURL, "https://api.stocktwits.com/api/2"},
		{"LogLevel", cfg.LogLevel, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}

	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, 10*time.Second)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	envVars := map[string]string{
		"SYMBOLS_FILE":        "/tmp/my_symbols.txt",
		"TREND_FILE":          "/tmp/my_trend.csv",
		"STOCKTWITS_BASE_URL": "http://localhost:8080/api/2",
		"REQUEST_TIMEOUT":     "30s",
		"LOG_LEVEL":           "debug",
	}

	for key, value := range envVars {
		os.Setenv(key, value)
		defer os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"SymbolsFile", cfg.SymbolsFile, "/tmp/my_symbols.txt"},
		{"TrendFile", cfg.TrendFile, "/tmp/my_trend.csv"},
		{"StocktwitsBaseURL", cfg.StocktwitsBaseURL, "http://localhost:8080/api/2"},
		{"LogLevel", cfg.LogLevel, "debug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}

	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, 30*time.Second)
	}
}
