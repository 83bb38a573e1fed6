package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/davidstraka/sp500-data/internal/prices"
)

// ReplaceDailyClose rebuilds the sp500_daily_close table with this run's
// dataset, mirroring the full-rebuild lifecycle of the flat-file output.
// The swap is transactional: a failed load leaves the previous rows intact.
func ReplaceDailyClose(ctx context.Context, pool *pgxpool.Pool, runID uuid.UUID, records []prices.Record) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `TRUNCATE sp500_daily_close`); err != nil {
		return 0, fmt.Errorf("truncate sp500_daily_close: %w", err)
	}

	n, err := tx.CopyFrom(ctx,
		pgx.Identifier{"sp500_daily_close"},
		[]string{"symbol", "date", "close", "run_id"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			r := records[i]
			return []any{r.Symbol, r.Date, r.Close, runID}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("copy into sp500_daily_close: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return n, nil
}
