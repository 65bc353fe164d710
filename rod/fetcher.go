// Package rod provides a browser-based implementation of lps.Fetcher for
// schedule pages that populate their listing with JavaScript.
package rod

import (
	"context"
	"time"

	"github.com/go-rod/rod/lib/proto"
	"github.com/hoanghai81/lps"
)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 15 * time.Second

// DefaultSettleDelay is how long to wait after load before reading the
// DOM. Listing widgets fill their rows from an XHR that fires after the
// load event.
const DefaultSettleDelay = 2 * time.Second

// Ensure Fetcher implements lps.Fetcher at compile time.
var _ lps.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	manager     *BrowserManager
	timeout     time.Duration
	settleDelay time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-page render timeout.
// Defaults to DefaultFetchTimeout (15s).
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithSettleDelay sets the post-load wait before reading the DOM.
// Defaults to DefaultSettleDelay (2s).
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settleDelay = d
	}
}

// NewFetcher creates a Fetcher backed by a managed headless Chrome
// browser. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		settleDelay: DefaultSettleDelay,
	}
	for _, opt := range opts {
		opt(f)
	}

	manager, err := NewBrowserManager()
	if err != nil {
		return nil, err
	}
	f.manager = manager
	return f, nil
}

// Fetch navigates to the URL, waits for the listing to settle, and
// returns the rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", lps.Errorf(lps.EUNAVAILABLE, "failed to open page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", lps.Errorf(lps.EUNAVAILABLE, "navigate %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", lps.Errorf(lps.EUNAVAILABLE, "wait load %s: %v", url, err)
	}
	if f.settleDelay > 0 {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(f.settleDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", lps.Errorf(lps.EUNAVAILABLE, "read page %s: %v", url, err)
	}

	f.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.manager.Close()
}
