package server

import (
	"net/http/httptest"
	"testing"

	"github.com/pmcdona037/mcd-moves/internal/config"
)

func TestHealthRoute(t *testing.T) {
	s := NewServer(config.Config{ServerPort: ":0", DataRoot: "http://127.0.0.1:1/data", FetchTimeout: 1}, nil)

	req := httptest.NewRequest("GET", "/health", nil)
	resp, err := s.App.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200 status")
	}
}

func TestTripRouteUnreachableDataRoot(t *testing.T) {
	// Nothing listens on the data root, so metadata is unavailable and the
	// trip cannot render at all.
	s := NewServer(config.Config{ServerPort: ":0", DataRoot: "http://127.0.0.1:1/data", FetchTimeout: 1}, nil)

	req := httptest.NewRequest("GET", "/trips/some-trip", nil)
	resp, err := s.App.Test(req, 5000)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != 502 {
		t.Fatalf("expected 502 status, got %d", resp.StatusCode)
	}
}
