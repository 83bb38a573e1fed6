package config

import (
	"errors"
	"fmt"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if c.Weightings.URL == "" {
		return errors.New("weightings.url is required")
	}
	if c.Weightings.OutputPath == "" {
		return errors.New("weightings.output_path is required")
	}
	if c.Weightings.Timeout <= 0 {
		return errors.New("weightings.timeout must be > 0")
	}
	if c.Weightings.SkipFirst < 0 {
		return errors.New("weightings.skip_first must be >= 0")
	}
	if c.Weightings.RowsToRead < 1 {
		return errors.New("weightings.rows_to_read must be >= 1")
	}

	if c.Prices.WikiURL == "" {
		return errors.New("prices.wiki_url is required")
	}
	if c.Prices.QuoteURLTemplate == "" {
		return errors.New("prices.quote_url_template is required")
	}
	if c.Prices.OutputPath == "" {
		return errors.New("prices.output_path is required")
	}
	if c.Prices.Timeout <= 0 {
		return errors.New("prices.timeout must be > 0")
	}
	if c.Prices.RequestDelay < 0 {
		return errors.New("prices.request_delay must be >= 0")
	}

	if c.Database.Enabled() {
		if err := c.Database.validate("database"); err != nil {
			return err
		}
	}

	return nil
}

func (db *DBConfig) validate(prefix string) error {
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
