package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the watcher tracker.
type Config struct {
	// File paths
	SymbolsFile string `mapstructure:"symbols_file"`
	TrendFile   string `mapstructure:"trend_file"`

	// Base URL for the Stocktwits API (configurable for testing)
	StocktwitsBaseURL string `mapstructure:"stocktwits_base_url"`

	// Per-request timeout for the Stocktwits API
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Logging level: debug, info, warn, error
	LogLevel string `mapstructure:"log_level"`
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Expected environment variables (all optional):
//   - SYMBOLS_FILE (defaults to symbols.txt)
//   - TREND_FILE (defaults to watchers_trend.csv)
//   - STOCKTWITS_BASE_URL (defaults to production)
//   - REQUEST_TIMEOUT (defaults to 10s)
//   - LOG_LEVEL (defaults to info)
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.SetEnvPrefix("") // No prefix, use full names
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("symbols_file", "symbols.txt")
	v.SetDefault("trend_file", "watchers_trend.csv")
	v.SetDefault("stocktwits_base_url", "https://api.stocktwits.com/api/2")
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("log_level", "info")

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.watchertracker")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("symbols_file", "SYMBOLS_FILE")
	v.BindEnv("trend_file", "TREND_FILE")
	v.BindEnv("stocktwits_base_url", "STOCKTWITS_BASE_URL")
	v.BindEnv("request_timeout", "REQUEST_TIMEOUT")
	v.BindEnv("log_level", "LOG_LEVEL")

	// Unmarshal config into struct
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return config, nil
}
