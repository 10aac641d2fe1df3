package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.API.KeyID == "" {
		return errors.New("api.key_id is required")
	}
	if c.API.PrivateKeyPath == "" && c.API.PrivateKeyPEM == "" {
		return errors.New("one of api.private_key_path or api.private_key_pem is required")
	}

	if err := c.Database.validate("database"); err != nil {
		return err
	}

	if len(c.Snapshot.SeriesTickers) == 0 {
		return errors.New("snapshot.series_tickers must not be empty")
	}
	if c.Snapshot.Table == "" {
		return errors.New("snapshot.table is required")
	}

	if c.Scheduler.Interval <= 0 {
		return errors.New("scheduler.interval must be positive")
	}

	if c.Health.Port < 1 || c.Health.Port > 65535 {
		return fmt.Errorf("health.port must be between 1 and 65535, got %d", c.Health.Port)
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
	if db.Host == "" {
		return fmt.Errorf("%s.host is required", prefix)
	}
	if db.Name == "" {
		return fmt.Errorf("%s.name is required", prefix)
	}
	if db.User == "" {
		return fmt.Errorf("%s.user is required", prefix)
	}
	if db.Password == "" {
		return fmt.Errorf("%s.password is required", prefix)
	}
	if db.MaxConns < 1 {
		return fmt.Errorf("%s.max_conns must be >= 1", prefix)
	}
	if db.MinConns < 0 {
		return fmt.Errorf("%s.min_conns must be >= 0", prefix)
	}
	if db.MinConns > db.MaxConns {
		return fmt.Errorf("%s.min_conns (%d) cannot exceed max_conns (%d)", prefix, db.MinConns, db.MaxConns)
	}
	return nil
}
