package index

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/davidstraka/sp500-data/internal/fetch"
)

const constituentsPage = `<html><body>
<table id="constituents">
<tr><th>Symbol</th><th>Security</th><th>GICS Sector</th></tr>
<tr><td>MMM</td><td>3M</td><td>Industrials</td></tr>
<tr><td>brk.b</td><td>Berkshire Hathaway</td><td>Financials</td></tr>
<tr><td>BF.B</td><td>Brown-Forman</td><td>Consumer Staples</td></tr>
<tr><td>MMM</td><td>3M duplicate row</td><td>Industrials</td></tr>
</table>
<table id="changes">
<tr><th>Date</th><th>Added</th></tr>
<tr><td>2024-01-02</td><td>XYZ</td></tr>
</table>
</body></html>`

func TestParseConstituents(t *testing.T) {
	symbols, err := ParseConstituents([]byte(constituentsPage))
	if err != nil {
		t.Fatalf("ParseConstituents() error = %v", err)
	}

	want := []string{"MMM", "BRK-B", "BF-B"}
	if !reflect.DeepEqual(symbols, want) {
		t.Errorf("symbols = %v, want %v", symbols, want)
	}
}

func TestParseConstituents_NormalizesSymbols(t *testing.T) {
	symbols, err := ParseConstituents([]byte(constituentsPage))
	if err != nil {
		t.Fatalf("ParseConstituents() error = %v", err)
	}

	seen := make(map[string]bool)
	for _, s := range symbols {
		if seen[s] {
			t.Errorf("duplicate symbol %q", s)
		}
		seen[s] = true
		for _, r := range s {
			if r == '.' {
				t.Errorf("symbol %q still contains '.'", s)
			}
			if r >= 'a' && r <= 'z' {
				t.Errorf("symbol %q is not upper-case", s)
			}
		}
	}
}

func TestParseConstituents_MissingSymbolColumn(t *testing.T) {
	page := `<html><body><table>
<tr><th>Security</th><th>Sector</th></tr>
<tr><td>3M</td><td>Industrials</td></tr>
</table></body></html>`

	_, err := ParseConstituents([]byte(page))
	if !errors.Is(err, ErrColumnMissing) {
		t.Errorf("error = %v, want ErrColumnMissing", err)
	}
}

func TestParseConstituents_NoTable(t *testing.T) {
	_, err := ParseConstituents([]byte("<html><body><p>moved</p></body></html>"))
	if !errors.Is(err, ErrNoTable) {
		t.Errorf("error = %v, want ErrNoTable", err)
	}
}

func TestConstituents_FetchesPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(constituentsPage))
	}))
	defer server.Close()

	client := fetch.NewClient()

	symbols, err := Constituents(context.Background(), client, server.URL)
	if err != nil {
		t.Fatalf("Constituents() error = %v", err)
	}
	if len(symbols) != 3 {
		t.Errorf("len(symbols) = %d, want 3", len(symbols))
	}
}

func TestConstituents_FetchFailureIsFatal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer server.Close()

	client := fetch.NewClient()

	_, err := Constituents(context.Background(), client, server.URL)
	var fe *fetch.Error
	if !errors.As(err, &fe) {
		t.Errorf("error = %v, want wrapped *fetch.Error", err)
	}
}
