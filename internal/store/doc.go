// Package store serializes the pipeline outputs to flat files: weightings
// as CSV, price history as Snappy-compressed Parquet.
//
// Writes are not atomic. A crash mid-write leaves a partial file, and the
// previous run's file may already be gone; both datasets are fully rebuilt
// every run so the recovery path is simply rerunning.
package store
