package config

import "time"

// Default values for optional configuration fields. URL defaults point at
// the public sources both pipelines were built against.
const (
	DefaultLogLevel = "info"

	DefaultHoldingsURL       = "https://www.ssga.com/library-content/products/fund-data/etfs/us/holdings-daily-us-en-spy.xlsx"
	DefaultWeightingsOutput  = "data/raw/sp500_weightings.csv"
	DefaultWeightingsTimeout = 30 * time.Second
	DefaultSkipFirst         = 4
	DefaultRowsToRead        = 504

	DefaultWikiURL          = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"
	DefaultQuoteURLTemplate = "https://stooq.com/q/d/l/?s={symbol}.us&i=d"
	DefaultPricesOutput     = "data/raw/sp500_daily_close.parquet"
	DefaultPricesTimeout    = 20 * time.Second
	DefaultRequestDelay     = 300 * time.Millisecond
	DefaultRateLimitMarker  = "Exceeded the daily hits limit"

	DefaultDBPort    = 5432
	DefaultDBSSLMode = "prefer"
	DefaultMaxConns  = 10
	DefaultMinConns  = 2
)

// Default returns a config with all defaults applied and no database sink.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}

	// Weightings defaults
	if c.Weightings.URL == "" {
		c.Weightings.URL = DefaultHoldingsURL
	}
	if c.Weightings.OutputPath == "" {
		c.Weightings.OutputPath = DefaultWeightingsOutput
	}
	if c.Weightings.Timeout == 0 {
		c.Weightings.Timeout = DefaultWeightingsTimeout
	}
	if c.Weightings.SkipFirst == 0 {
		c.Weightings.SkipFirst = DefaultSkipFirst
	}
	if c.Weightings.RowsToRead == 0 {
		c.Weightings.RowsToRead = DefaultRowsToRead
	}

	// Prices defaults
	if c.Prices.WikiURL == "" {
		c.Prices.WikiURL = DefaultWikiURL
	}
	if c.Prices.QuoteURLTemplate == "" {
		c.Prices.QuoteURLTemplate = DefaultQuoteURLTemplate
	}
	if c.Prices.OutputPath == "" {
		c.Prices.OutputPath = DefaultPricesOutput
	}
	if c.Prices.Timeout == 0 {
		c.Prices.Timeout = DefaultPricesTimeout
	}
	if c.Prices.RequestDelay == 0 {
		c.Prices.RequestDelay = DefaultRequestDelay
	}
	if c.Prices.RateLimitMarker == "" {
		c.Prices.RateLimitMarker = DefaultRateLimitMarker
	}

	// Database defaults only matter when the sink is enabled.
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
}
