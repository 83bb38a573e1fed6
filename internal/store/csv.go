package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/davidstraka/sp500-data/internal/index"
)

// WriteWeightings writes the weightings dataset as a CSV file with a
// Ticker,Weight header and no index column. Parent directories are created
// as needed; an existing file is overwritten.
func WriteWeightings(path string, rows []index.WeightRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}

	if err := gocsv.MarshalFile(&rows, f); err != nil {
		f.Close()
		return fmt.Errorf("write csv: %w", err)
	}

	return f.Close()
}

// FileSizeMB returns the size of a file in mebibytes.
func FileSizeMB(path string) (float64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat output file: %w", err)
	}
	return float64(fi.Size()) / (1024 * 1024), nil
}
