package prices

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"golang.org/x/time/rate"
)

// progressEvery controls how often the loop reports progress.
const progressEvery = 50

// ErrNoData indicates every symbol failed to download.
var ErrNoData = errors.New("no price data downloaded; check connectivity or provider rate limits")

// Record is one daily closing price for one symbol.
type Record struct {
	Symbol string
	Date   time.Time // calendar date, UTC midnight
	Close  float32
}

// Getter fetches one URL. Satisfied by *fetch.Client.
type Getter interface {
	Get(ctx context.Context, url string) ([]byte, error)
}

// Pacer spaces outbound requests. Satisfied by *rate.Limiter.
type Pacer interface {
	Wait(ctx context.Context) error
}

// IntervalPacer returns a Pacer that allows one request per interval.
func IntervalPacer(interval time.Duration) Pacer {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// Downloader fetches daily close history for a list of symbols, one request
// at a time.
type Downloader struct {
	getter      Getter
	urlTemplate string
	pacer       Pacer
	logger      *slog.Logger
}

// NewDownloader creates a Downloader. urlTemplate must contain a {symbol}
// placeholder, filled with the lower-cased symbol.
func NewDownloader(getter Getter, urlTemplate string, pacer Pacer, logger *slog.Logger) *Downloader {
	if pacer == nil {
		pacer = rate.NewLimiter(rate.Inf, 1)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Downloader{
		getter:      getter,
		urlTemplate: urlTemplate,
		pacer:       pacer,
		logger:      logger,
	}
}

// Run downloads history for every symbol in order and returns the combined
// dataset plus the symbols that contributed nothing.
//
// Collection is best-effort per symbol: a failed or empty download is
// recorded in skipped and the loop continues, with no retry. Only a fully
// empty result is an error. The returned records are deduplicated on the
// full (Symbol, Date, Close) triple and sorted by Symbol then Date.
func (d *Downloader) Run(ctx context.Context, symbols []string) (records []Record, skipped []string, err error) {
	for i, sym := range symbols {
		if err := d.pacer.Wait(ctx); err != nil {
			return nil, nil, fmt.Errorf("pacing wait: %w", err)
		}

		frag, err := d.fetchSymbol(ctx, sym)
		if err != nil {
			d.logger.Warn("skipping symbol", "symbol", sym, "error", err)
			skipped = append(skipped, sym)
			continue
		}
		if len(frag) == 0 {
			d.logger.Warn("skipping symbol", "symbol", sym, "reason", "empty history")
			skipped = append(skipped, sym)
			continue
		}
		records = append(records, frag...)

		if (i+1)%progressEvery == 0 {
			d.logger.Info("download progress",
				"done", i+1,
				"total", len(symbols),
				"rows", len(records),
				"skipped", len(skipped),
			)
		}
	}

	if len(records) == 0 {
		return nil, skipped, ErrNoData
	}

	return normalize(records), skipped, nil
}

func (d *Downloader) fetchSymbol(ctx context.Context, symbol string) ([]Record, error) {
	url := strings.ReplaceAll(d.urlTemplate, "{symbol}", strings.ToLower(symbol))
	body, err := d.getter.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	return parseHistory(symbol, body)
}

// historyRow mirrors the provider's CSV layout; unneeded columns (Open,
// High, Low, Volume) are ignored by the decoder.
type historyRow struct {
	Date  string  `csv:"Date"`
	Close float32 `csv:"Close"`
}

// parseHistory decodes a provider CSV response and stamps each row with the
// originating symbol. Rows with unparseable dates are dropped.
func parseHistory(symbol string, body []byte) ([]Record, error) {
	var rows []historyRow
	if err := gocsv.UnmarshalBytes(body, &rows); err != nil {
		return nil, fmt.Errorf("parse history csv: %w", err)
	}

	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		date, err := time.Parse("2006-01-02", r.Date)
		if err != nil {
			continue
		}
		out = append(out, Record{Symbol: symbol, Date: date, Close: r.Close})
	}
	return out, nil
}

// normalize drops exact-duplicate records and sorts by (Symbol, Date).
// The input slice is reordered in place.
func normalize(records []Record) []Record {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Symbol != b.Symbol {
			return a.Symbol < b.Symbol
		}
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Close < b.Close
	})

	out := records[:0]
	for _, r := range records {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if r.Symbol == prev.Symbol && r.Date.Equal(prev.Date) && r.Close == prev.Close {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}
