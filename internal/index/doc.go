// Package index resolves S&P 500 reference data from public sources: the
// constituent list from Wikipedia and constituent weights from the SSGA SPY
// holdings spreadsheet.
//
// Both parsers are deliberately rigid: a structural change upstream (table
// order, column names, banner size) fails the run rather than producing a
// silently wrong dataset.
package index
