package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/davidstraka/sp500-data/internal/prices"
)

const secondsPerDay = 86400

// priceRow is the Parquet schema for the daily close dataset: Date as a
// calendar date, Symbol dictionary-encoded, Close narrowed to float32.
type priceRow struct {
	Date   int32   `parquet:"name=Date, type=INT32, convertedtype=DATE"`
	Symbol string  `parquet:"name=Symbol, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Close  float32 `parquet:"name=Close, type=FLOAT"`
}

// WritePrices writes the price history dataset as a Snappy-compressed
// Parquet file. Parent directories are created as needed; an existing file
// is overwritten.
func WritePrices(path string, records []prices.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create parquet file: %w", err)
	}

	pw, err := writer.NewParquetWriter(fw, new(priceRow), 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("create parquet writer: %w", err)
	}

	pw.RowGroupSize = 128 * 1024 * 1024 // 128M
	pw.PageSize = 8 * 1024              // 8k
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, r := range records {
		if err := pw.Write(toPriceRow(r)); err != nil {
			fw.Close()
			return fmt.Errorf("write parquet row for %s: %w", r.Symbol, err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("finalize parquet: %w", err)
	}

	return fw.Close()
}

func toPriceRow(r prices.Record) priceRow {
	return priceRow{
		Date:   daysSinceEpoch(r.Date),
		Symbol: r.Symbol,
		Close:  r.Close,
	}
}

// daysSinceEpoch converts a UTC date to the Parquet DATE representation.
func daysSinceEpoch(t time.Time) int32 {
	return int32(t.Unix() / secondsPerDay)
}
