package crawl

import (
	"strings"

	"github.com/hoanghai81/lps"
)

var _ lps.Extractor = (*Chain)(nil)

// Chain runs extraction strategies in priority order and keeps the first
// non-empty result. Strategies are ordered most-structured-first, so a
// page with a clean table never reaches the generic text scan.
type Chain struct {
	extractors []lps.Extractor
}

// NewChain creates a Chain over the given extractors.
func NewChain(extractors ...lps.Extractor) *Chain {
	return &Chain{extractors: extractors}
}

// Name returns the identifiers of the chained extractors.
func (c *Chain) Name() string {
	names := make([]string, 0, len(c.extractors))
	for _, e := range c.extractors {
		names = append(names, e.Name())
	}
	return "chain(" + strings.Join(names, ",") + ")"
}

// Extract tries each strategy in order and returns the first non-empty
// entry list. Strategy errors are not fatal to the chain; a later
// strategy may still read the page. The last error is surfaced only when
// every strategy comes back empty.
func (c *Chain) Extract(html string) ([]lps.Entry, error) {
	var lastErr error
	for _, e := range c.extractors {
		entries, err := e.Extract(html)
		if err != nil {
			lastErr = err
			continue
		}
		if len(entries) > 0 {
			return entries, nil
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}
	return nil, nil
}
