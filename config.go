package cryptofolio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the user-tunable settings of the tracker.
type Config struct {
	// Journal is the path of the CSV transaction journal.
	Journal string `yaml:"journal"`
	// Assets are the symbols to price on refresh.
	Assets []string `yaml:"assets"`
	// RefreshInterval is a Go duration string, e.g. "60s".
	RefreshInterval string `yaml:"refresh_interval"`
	// BinanceURL overrides the market data endpoint, for tests mostly.
	BinanceURL string `yaml:"binance_url,omitempty"`
	// DisplayCurrency is the fiat currency shown next to USDT amounts.
	DisplayCurrency string `yaml:"display_currency"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Journal:         "operations.csv",
		Assets:          []string{"BTC", "ETH", "SOL", "LINK"},
		RefreshInterval: "60s",
		BinanceURL:      DefaultBinanceURL,
		DisplayCurrency: "BRL",
	}
}

// LoadConfig reads a YAML configuration file. A missing file yields the
// defaults; a present but invalid file is an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Interval parses the refresh interval.
func (c *Config) Interval() (time.Duration, error) {
	return time.ParseDuration(c.RefreshInterval)
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Journal == "" {
		return fmt.Errorf("journal is required")
	}
	if len(c.Assets) == 0 {
		return fmt.Errorf("at least one asset is required")
	}
	for _, a := range c.Assets {
		if normalizeAsset(a) == "" {
			return fmt.Errorf("empty asset symbol")
		}
	}
	d, err := c.Interval()
	if err != nil {
		return fmt.Errorf("invalid refresh_interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("refresh_interval must be positive")
	}
	return nil
}
