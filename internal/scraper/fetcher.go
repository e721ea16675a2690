// Package scraper retrieves recipe pages from the upstream site and turns
// their markup into recipe records.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultFetchTimeout bounds a single page request.
const DefaultFetchTimeout = 10 * time.Second

// maxBodySize caps how much of a page is read into memory.
const maxBodySize = 4 << 20

// Fetcher retrieves raw HTML for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Ensure HTTPFetcher implements Fetcher at compile time.
var _ Fetcher = (*HTTPFetcher)(nil)

// HTTPFetcher fetches pages with a plain HTTP GET. Every call hits the
// network; nothing is cached.
type HTTPFetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// NewHTTPFetcher creates an HTTPFetcher with DefaultFetchTimeout unless
// overridden.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch performs a single GET and returns the response body. Failures are
// reported as *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", &FetchError{URL: url, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	return string(body), nil
}
