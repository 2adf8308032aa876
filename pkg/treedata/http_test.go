package treedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/exilemind/arbor/pkg/cache"
	"github.com/exilemind/arbor/pkg/errors"
)

func TestHTTPSourceFetch(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		switch {
		case strings.HasSuffix(r.URL.Path, "/3_26.lua"):
			_, _ = w.Write([]byte(minimalTree))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	src, err := NewHTTPSource(srv.URL+"/tree/%s.lua", srv.Client(), fc)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}

	ctx := context.Background()
	body, err := src.Fetch(ctx, "3_26")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if body != minimalTree {
		t.Errorf("body = %q", body)
	}

	// Second fetch is served from cache.
	if _, err := src.Fetch(ctx, "3_26"); err != nil {
		t.Fatalf("cached Fetch: %v", err)
	}
	if hits != 1 {
		t.Errorf("upstream hit %d times, want 1", hits)
	}

	// Missing version maps to VERSION_NOT_FOUND without retries.
	before := hits
	_, err = src.Fetch(ctx, "3_24")
	if !errors.Is(err, errors.ErrCodeVersionNotFound) {
		t.Errorf("error code = %v, want VERSION_NOT_FOUND", errors.GetCode(err))
	}
	if hits != before+1 {
		t.Errorf("404 was retried: %d extra hits", hits-before)
	}
}

func TestHTTPSourceRetriesServerErrors(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "upstream flake", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(minimalTree))
	}))
	defer srv.Close()

	src, err := NewHTTPSource(srv.URL+"/tree/%s.lua", srv.Client(), nil)
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}
	// Shrink the backoff so the test stays fast.
	body, err := fetchWithRetry(t, src, "3_26")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if body != minimalTree {
		t.Errorf("body = %q", body)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
}

// fetchWithRetry runs Fetch inside a deadline so a misbehaving retry loop
// fails the test instead of hanging it.
func fetchWithRetry(t *testing.T, src *HTTPSource, version string) (string, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return src.Fetch(ctx, version)
}

func TestNewHTTPSourceValidation(t *testing.T) {
	if _, err := NewHTTPSource("https://example.com/tree.lua", nil, nil); err == nil {
		t.Errorf("template without %s placeholder should be rejected", "%s")
	}
	if _, err := NewHTTPSource("ftp://example.com/%s.lua", nil, nil); err == nil {
		t.Error("non-http scheme should be rejected")
	}
}
