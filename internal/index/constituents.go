package index

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/davidstraka/sp500-data/internal/fetch"
)

// ErrNoTable indicates the reference page contained no parseable table.
var ErrNoTable = errors.New("no table found")

// Constituents fetches the reference page and returns the current S&P 500
// symbol list, normalized to the quote provider's convention.
func Constituents(ctx context.Context, client *fetch.Client, url string) ([]string, error) {
	body, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents page: %w", err)
	}
	return ParseConstituents(body)
}

// ParseConstituents extracts the Symbol column from the first table on the
// page. Symbols are upper-cased and '.' is replaced with '-' (class shares
// like BRK.B are BRK-B at the quote provider).
func ParseConstituents(body []byte) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse constituents page: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return nil, fmt.Errorf("constituents page: %w", ErrNoTable)
	}

	symbolIdx := -1
	table.Find("tr").First().Find("th, td").Each(func(i int, cell *goquery.Selection) {
		if symbolIdx < 0 && strings.EqualFold(strings.TrimSpace(cell.Text()), "Symbol") {
			symbolIdx = i
		}
	})
	if symbolIdx < 0 {
		return nil, fmt.Errorf("constituents table has no Symbol column: %w", ErrColumnMissing)
	}

	var symbols []string
	seen := make(map[string]bool)
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		cells := row.Find("td")
		if cells.Length() <= symbolIdx {
			return
		}
		sym := strings.TrimSpace(cells.Eq(symbolIdx).Text())
		if sym == "" {
			return
		}
		sym = strings.ToUpper(strings.ReplaceAll(sym, ".", "-"))
		if seen[sym] {
			return
		}
		seen[sym] = true
		symbols = append(symbols, sym)
	})

	if len(symbols) == 0 {
		return nil, errors.New("constituents table has no symbol rows")
	}

	return symbols, nil
}
