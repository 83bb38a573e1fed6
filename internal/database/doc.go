// Package database provides the optional Postgres sink for price history.
//
// The sink is enabled by configuring database.host; without it the
// pipelines write flat files only. Expected schema (see
// migrations/001_daily_close.sql):
//
//	CREATE TABLE sp500_daily_close (
//	    symbol TEXT        NOT NULL,
//	    date   DATE        NOT NULL,
//	    close  REAL        NOT NULL,
//	    run_id UUID        NOT NULL
//	);
package database
