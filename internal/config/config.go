package config

import (
	"log/slog"
	"time"
)

// Config is the root configuration shared by both pipelines.
type Config struct {
	Logging    LoggingConfig    `yaml:"logging"`
	Weightings WeightingsConfig `yaml:"weightings"`
	Prices     PricesConfig     `yaml:"prices"`
	Database   DBConfig         `yaml:"database"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SlogLevel maps the configured level name to a slog.Level.
func (l LoggingConfig) SlogLevel() slog.Level {
	switch l.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// WeightingsConfig holds settings for the SPY holdings pipeline.
type WeightingsConfig struct {
	URL        string        `yaml:"url"`          // SSGA daily holdings spreadsheet
	OutputPath string        `yaml:"output_path"`  // CSV destination
	Timeout    time.Duration `yaml:"timeout"`      // per-request timeout
	SkipFirst  int           `yaml:"skip_first"`   // banner rows before the header
	RowsToRead int           `yaml:"rows_to_read"` // max data rows to extract
	Normalise  bool          `yaml:"normalise"`    // true → weights rescaled to 0-1
}

// PricesConfig holds settings for the daily close history pipeline.
type PricesConfig struct {
	WikiURL          string        `yaml:"wiki_url"`           // constituent list reference page
	QuoteURLTemplate string        `yaml:"quote_url_template"` // per-symbol history URL, {symbol} placeholder
	OutputPath       string        `yaml:"output_path"`        // Parquet destination
	Timeout          time.Duration `yaml:"timeout"`            // per-request timeout
	RequestDelay     time.Duration `yaml:"request_delay"`      // pacing between quote requests
	RateLimitMarker  string        `yaml:"rate_limit_marker"`  // provider-specific body substring signalling a rate limit
}

// DBConfig holds the optional Postgres sink for price history.
// The sink is enabled when Host is non-empty.
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

// Enabled reports whether the database sink is configured.
func (db DBConfig) Enabled() bool {
	return db.Host != ""
}
