package treedata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/exilemind/arbor/pkg/cache"
	"github.com/exilemind/arbor/pkg/errors"
)

// DefaultRawTTL is how long fetched tree data stays cached. Tree data for a
// released version never changes, but a bounded TTL lets hotfixed dumps
// propagate without manual invalidation.
const DefaultRawTTL = 7 * 24 * time.Hour

// HTTPSource fetches raw tree data over HTTP with retry and byte-level
// caching. The URL template must contain one %s verb for the version.
type HTTPSource struct {
	urlTemplate string
	client      *http.Client
	cache       cache.Cache
	ttl         time.Duration
}

// NewHTTPSource creates an HTTP-backed source.
//
// Parameters:
//   - urlTemplate: e.g. "https://data.example.com/tree/%s.lua"
//   - client: HTTP client to use; nil means a client with a 30s timeout.
//   - c: byte cache for fetched text; nil disables caching.
func NewHTTPSource(urlTemplate string, client *http.Client, c cache.Cache) (*HTTPSource, error) {
	if !strings.Contains(urlTemplate, "%s") {
		return nil, errors.New(errors.ErrCodeInvalidInput, "url template must contain a %%s version placeholder")
	}
	if err := errors.ValidateURL(fmt.Sprintf(urlTemplate, "0")); err != nil {
		return nil, err
	}
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	return &HTTPSource{
		urlTemplate: urlTemplate,
		client:      client,
		cache:       c,
		ttl:         DefaultRawTTL,
	}, nil
}

// Fetch returns the raw tree-data text for the version, from cache when
// fresh. Transient failures (network errors, 5xx) are retried with
// exponential backoff; a 404 maps to ErrCodeVersionNotFound and is never
// retried.
func (s *HTTPSource) Fetch(ctx context.Context, version string) (string, error) {
	if err := errors.ValidateVersion(version); err != nil {
		return "", err
	}

	url := fmt.Sprintf(s.urlTemplate, version)
	key := cache.VersionKey(version, url)

	if data, ok, err := s.cache.Get(ctx, key); err == nil && ok {
		return string(data), nil
	}

	var body string
	err := retry(ctx, 3, time.Second, func() error {
		var err error
		body, err = s.fetchOnce(ctx, url, version)
		return err
	})
	if err != nil {
		return "", err
	}

	_ = s.cache.Set(ctx, key, []byte(body), s.ttl) // cache write failures are not fatal

	return body, nil
}

func (s *HTTPSource) fetchOnce(ctx context.Context, url, version string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "build request for %s", url)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", retryable(errors.Wrap(errors.ErrCodeNetwork, err, "fetch tree data %s", version))
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", errors.New(errors.ErrCodeVersionNotFound, "upstream has no tree data for version %s", version)
	case resp.StatusCode >= 500:
		return "", retryable(errors.New(errors.ErrCodeNetwork, "upstream returned %d for version %s", resp.StatusCode, version))
	case resp.StatusCode != http.StatusOK:
		return "", errors.New(errors.ErrCodeNetwork, "upstream returned %d for version %s", resp.StatusCode, version)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read tree data %s", version))
	}
	return string(body), nil
}

// retryableError wraps an error to indicate it should trigger a retry.
// Transient failures (network timeouts, 5xx responses) are wrapped with this
// type so the retry loop knows to attempt the operation again.
type retryableError struct{ err error }

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }

func retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// retry executes fn up to attempts times with exponential backoff.
// It only retries errors wrapped with retryableError; other errors are
// returned immediately. The delay doubles after each failed attempt.
func retry(ctx context.Context, attempts int, delay time.Duration, fn func() error) error {
	attempts = max(attempts, 1)
	var lastErr error

	for i := range attempts {
		if err := fn(); err == nil {
			return nil
		} else if lastErr = err; !stderrors.As(err, new(*retryableError)) {
			return err
		}

		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
				delay *= 2
			}
		}
	}
	return lastErr
}

// Ensure sources implement Source.
var (
	_ Source = (*HTTPSource)(nil)
	_ Source = (*FileSource)(nil)
	_ Source = (StaticSource)(nil)
)
