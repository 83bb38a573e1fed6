package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Date,Close\n2024-01-02,10.0\n"))
	}))
	defer server.Close()

	c := NewClient(WithTimeout(5 * time.Second))

	body, err := c.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !strings.HasPrefix(string(body), "Date,Close") {
		t.Errorf("body = %q, want csv payload", body)
	}
}

func TestClient_Get_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not here", http.StatusNotFound)
	}))
	defer server.Close()

	c := NewClient()

	_, err := c.Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Get() expected error for 404, got nil")
	}

	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *fetch.Error", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
	}
	if fe.RateLimited {
		t.Error("RateLimited = true, want false")
	}
	if !strings.Contains(fe.Body, "not here") {
		t.Errorf("Body = %q, want to contain response text", fe.Body)
	}
}

func TestClient_Get_RateLimitMarker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Status 200 but the provider is refusing service.
		w.Write([]byte("Exceeded the daily hits limit"))
	}))
	defer server.Close()

	c := NewClient(WithRateLimitMarker("Exceeded the daily hits limit"))

	_, err := c.Get(context.Background(), server.URL)
	if err == nil {
		t.Fatal("Get() expected rate-limit error, got nil")
	}

	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *fetch.Error", err)
	}
	if !fe.RateLimited {
		t.Error("RateLimited = false, want true")
	}
	if fe.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", fe.StatusCode)
	}
}

func TestClient_Get_NoMarkerConfigured(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Exceeded the daily hits limit"))
	}))
	defer server.Close()

	// Without a configured marker the body is returned as-is.
	c := NewClient()

	body, err := c.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(body) != "Exceeded the daily hits limit" {
		t.Errorf("body = %q", body)
	}
}

func TestClient_Get_TransportError(t *testing.T) {
	c := NewClient(WithTimeout(time.Second))

	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := c.Get(context.Background(), url)
	if err == nil {
		t.Fatal("Get() expected transport error, got nil")
	}

	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("error type = %T, want *fetch.Error", err)
	}
	if fe.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for transport error", fe.StatusCode)
	}
	if fe.Unwrap() == nil {
		t.Error("Unwrap() = nil, want underlying transport error")
	}
}

func TestPreview_Truncates(t *testing.T) {
	long := strings.Repeat("x", 2*bodyPreviewLen)
	got := preview([]byte(long))
	if len(got) != bodyPreviewLen {
		t.Errorf("preview length = %d, want %d", len(got), bodyPreviewLen)
	}
}
