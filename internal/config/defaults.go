package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultRestURL      = "https://api.elections.kalshi.com/trade-api/v2"
	DefaultAPITimeout   = 30 * time.Second
	DefaultMaxRetries   = 3
	DefaultRetryBackoff = 1 * time.Second
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 10
	DefaultMinConns     = 2
	DefaultTable        = "kalshi_high_snapshots"
	DefaultInterval     = 5 * time.Minute
	DefaultHealthPort   = 8080
)

// DefaultSeriesTickers covers the daily-high temperature ladders captured
// when the config lists none.
var DefaultSeriesTickers = []string{
	"KXHIGHNY", "KXHIGHMIA", "KXHIGHAUS", "KXHIGHCHI",
	"KXHIGHLAX", "KXHIGHTDC", "KXHIGHTDAL", "KXHIGHTATL",
	"KXHIGHPHIL", "KXHIGHDEN", "KXHIGHTSEA", "KXHIGHTSFO",
	"KXHIGHTLV", "KXHIGHTHOU", "KXHIGHTPHX", "KXHIGHTNOLA",
	"KXHIGHTBOS", "KXHIGHTMIN", "KXHIGHTOKC", "KXHIGHTSATX",
}

func (c *Config) applyDefaults() {
	// API defaults
	if c.API.RestURL == "" {
		c.API.RestURL = DefaultRestURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = DefaultAPITimeout
	}
	if c.API.MaxRetries == 0 {
		c.API.MaxRetries = DefaultMaxRetries
	}
	if c.API.RetryBackoff == 0 {
		c.API.RetryBackoff = DefaultRetryBackoff
	}

	// Database defaults
	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	// Snapshot defaults
	if len(c.Snapshot.SeriesTickers) == 0 {
		c.Snapshot.SeriesTickers = append([]string(nil), DefaultSeriesTickers...)
	}
	if c.Snapshot.Table == "" {
		c.Snapshot.Table = DefaultTable
	}

	// Scheduler defaults
	if c.Scheduler.Interval == 0 {
		c.Scheduler.Interval = DefaultInterval
	}

	// Health defaults
	if c.Health.Port == 0 {
		c.Health.Port = DefaultHealthPort
	}
}
