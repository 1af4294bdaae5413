package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

func tokenServer(t *testing.T, expiresIn int, fetches *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.Form.Get("grant_type") != "client_credentials" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "id" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		n := fetches.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","expires_in":%d}`, n, expiresIn)
	}))
}

func TestTokenFetchedOnceWhileValid(t *testing.T) {
	var fetches atomic.Int32
	ts := tokenServer(t, 3600, &fetches)
	defer ts.Close()

	p := NewTokenProvider(ts.URL, "id", "secret")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tok, err := p.Token(ctx)
			if err != nil {
				t.Errorf("token: %v", err)
				return
			}
			if tok != "tok-1" {
				t.Errorf("token = %q, want tok-1", tok)
			}
		}()
	}
	wg.Wait()

	if got := fetches.Load(); got != 1 {
		t.Fatalf("token endpoint hit %d times, want 1", got)
	}
}

func TestTokenRefreshedWhenExpiring(t *testing.T) {
	var fetches atomic.Int32
	// Lifetime shorter than the refresh margin: every call must refetch.
	ts := tokenServer(t, 5, &fetches)
	defer ts.Close()

	p := NewTokenProvider(ts.URL, "id", "secret")
	ctx := context.Background()

	if _, err := p.Token(ctx); err != nil {
		t.Fatalf("first token: %v", err)
	}
	tok, err := p.Token(ctx)
	if err != nil {
		t.Fatalf("second token: %v", err)
	}
	if tok != "tok-2" {
		t.Fatalf("token = %q, expected a refreshed token", tok)
	}
	if got := fetches.Load(); got != 2 {
		t.Fatalf("token endpoint hit %d times, want 2", got)
	}
}

func TestTokenRejectionSurfaces(t *testing.T) {
	var fetches atomic.Int32
	ts := tokenServer(t, 3600, &fetches)
	defer ts.Close()

	p := NewTokenProvider(ts.URL, "id", "wrong")
	if _, err := p.Token(context.Background()); err == nil {
		t.Fatal("expected an error for rejected credentials")
	}
}
