package config

import "time"

// Config is the root configuration for the snapshot worker.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Database  DBConfig        `yaml:"database"`
	Snapshot  SnapshotConfig  `yaml:"snapshot"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Health    HealthConfig    `yaml:"health"`
}

// APIConfig holds Kalshi API settings.
type APIConfig struct {
	RestURL        string        `yaml:"rest_url"`
	KeyID          string        `yaml:"key_id"`           // API key ID (for KALSHI-ACCESS-KEY header)
	PrivateKeyPath string        `yaml:"private_key_path"` // Path to RSA private key PEM file
	PrivateKeyPEM  string        `yaml:"private_key_pem"`  // Inline PEM, usually ${KALSHI_PRIVATE_KEY}
	Timeout        time.Duration `yaml:"timeout"`
	MaxRetries     int           `yaml:"max_retries"`
	RetryBackoff   time.Duration `yaml:"retry_backoff"`
}

// DBConfig holds the PostgreSQL connection for snapshot rows.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// SnapshotConfig parameterizes one snapshot cycle.
type SnapshotConfig struct {
	SeriesTickers []string `yaml:"series_tickers"`
	Table         string   `yaml:"table"`
	BothSides     bool     `yaml:"both_sides"` // Also record NO-side depth
}

// SchedulerConfig holds the wall-clock alignment settings.
type SchedulerConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// HealthConfig holds the health endpoint settings.
type HealthConfig struct {
	Port int `yaml:"port"`
}
