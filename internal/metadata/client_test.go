package metadata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>
			Nyquist Sampling Theorem
		</title></head><body></body></html>`))
	}))
	defer srv.Close()

	c := NewClient(WithRateLimit(1000))
	info, err := c.Lookup(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if info.Title != "Nyquist Sampling Theorem" {
		t.Errorf("title = %q", info.Title)
	}
	if info.URL != srv.URL {
		t.Errorf("url = %q", info.URL)
	}
}

func TestClient_Lookup_NoTitle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>untitled</body></html>"))
	}))
	defer srv.Close()

	c := NewClient(WithRateLimit(1000))
	info, err := c.Lookup(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if info.Title != "" {
		t.Errorf("title = %q, want empty", info.Title)
	}
}

func TestClient_Lookup_NonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(WithRateLimit(1000))
	if _, err := c.Lookup(context.Background(), srv.URL); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestClient_Lookup_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(WithRateLimit(0.001)) // force a limiter wait
	if _, err := c.Lookup(ctx, "https://unreachable.test"); err == nil {
		t.Error("expected error for canceled context")
	}
}

func TestSession_Generations(t *testing.T) {
	var s Session

	first := s.Begin()
	if !s.Current(first) {
		t.Error("fresh token must be current")
	}

	second := s.Begin()
	if s.Current(first) {
		t.Error("old token still current after a new Begin")
	}
	if !s.Current(second) {
		t.Error("new token must be current")
	}
}
