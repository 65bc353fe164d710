package lps

import "context"

// Fetcher retrieves HTML from schedule page URLs.
// Implementations may use browser automation to handle JavaScript-rendered
// schedules.
type Fetcher interface {
	// Fetch retrieves the page at url and returns its HTML.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources (browser processes, connections).
	// Must be called when the Fetcher is no longer needed.
	Close() error
}
