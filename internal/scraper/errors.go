package scraper

import "fmt"

// FetchError is returned when an upstream page cannot be retrieved, either
// because the request failed or because the server answered with a non-2xx
// status.
type FetchError struct {
	URL        string
	StatusCode int // zero when no response was received
	Err        error
}

// Error returns the error message.
func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// ExtractError is returned when a page lacks the structure every listing
// must have.
type ExtractError struct {
	Reason string
}

// Error returns the error message.
func (e *ExtractError) Error() string {
	return "extract: " + e.Reason
}
