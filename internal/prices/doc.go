// Package prices implements the bulk daily-close downloader.
//
// The download loop is strictly sequential: one request per symbol, spaced
// by an injected Pacer to respect the quote provider's implicit rate
// limits. Individual symbol failures are skipped and reported back to the
// caller, never retried; an entirely empty result is ErrNoData.
package prices
