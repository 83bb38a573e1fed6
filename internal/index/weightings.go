package index

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrColumnMissing indicates the expected column layout was not found in a
// successfully fetched resource. Upstream format drift; always fatal.
var ErrColumnMissing = errors.New("expected column missing")

// Candidate header names accepted for the two extracted columns, matched
// case-insensitively. The upstream file currently uses "Ticker" and
// "Weight".
var (
	tickerColumnNames = []string{"ticker", "ticker symbol", "symbol"}
	weightColumnNames = []string{"weight (%)", "weight", "weight_percent"}
)

// WeightRow is one constituent with its index weight.
type WeightRow struct {
	Ticker string  `csv:"Ticker"`
	Weight float64 `csv:"Weight"`
}

// WeightingsOptions configures spreadsheet extraction.
type WeightingsOptions struct {
	// SkipFirst is the number of banner rows before the header row. The
	// offset is not validated against the file: if the upstream banner
	// grows or shrinks, extraction fails (or silently misreads) until the
	// config is adjusted.
	SkipFirst int

	// RowsToRead caps the number of data rows extracted below the header.
	RowsToRead int

	// Normalise divides weights by 100, converting percentage points to a
	// 0-1 fraction.
	Normalise bool
}

// ExtractWeightings parses raw xlsx bytes into ticker/weight rows from the
// first sheet.
func ExtractWeightings(raw []byte, opts WeightingsOptions) ([]WeightRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	if len(rows) <= opts.SkipFirst {
		return nil, fmt.Errorf("sheet %q has %d rows, no header after skipping %d: %w",
			sheet, len(rows), opts.SkipFirst, ErrColumnMissing)
	}

	header := rows[opts.SkipFirst]
	tickerIdx := findColumn(header, tickerColumnNames)
	if tickerIdx < 0 {
		return nil, fmt.Errorf("no ticker column in header %q: %w", header, ErrColumnMissing)
	}
	weightIdx := findColumn(header, weightColumnNames)
	if weightIdx < 0 {
		return nil, fmt.Errorf("no weight column in header %q: %w", header, ErrColumnMissing)
	}

	data := rows[opts.SkipFirst+1:]
	if len(data) > opts.RowsToRead {
		data = data[:opts.RowsToRead]
	}

	out := make([]WeightRow, 0, len(data))
	for _, row := range data {
		if tickerIdx >= len(row) || weightIdx >= len(row) {
			continue
		}
		ticker := strings.TrimSpace(row[tickerIdx])
		if ticker == "" {
			continue
		}
		weight, err := strconv.ParseFloat(strings.TrimSpace(row[weightIdx]), 64)
		if err != nil {
			continue
		}
		if opts.Normalise {
			weight /= 100.0
		}
		out = append(out, WeightRow{Ticker: ticker, Weight: weight})
	}

	return out, nil
}

// findColumn returns the index of the first header cell matching any
// candidate name, or -1.
func findColumn(header []string, candidates []string) int {
	for i, cell := range header {
		cell = strings.ToLower(strings.TrimSpace(cell))
		for _, cand := range candidates {
			if cell == cand {
				return i
			}
		}
	}
	return -1
}
