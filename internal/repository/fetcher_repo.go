package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// UserAgent is the desktop browser identity sent with every page request.
const UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// PageFetcher defines the contract for retrieving the HTML of a page.
type PageFetcher interface {
	// Fetch returns the page markup or a *FetchError.
	Fetch(ctx context.Context, url string, timeout time.Duration) (string, error)
}

// FetchError reports a page that could not be retrieved.
// StatusCode is set when the server answered with a non-2xx status.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	if e.Err != nil {
		return fmt.Sprintf("failed to fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("failed to fetch %s", e.URL)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
