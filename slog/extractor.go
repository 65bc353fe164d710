package slog

import (
	"log/slog"
	"time"

	"github.com/hoanghai81/lps"
)

// Ensure LoggingExtractor implements lps.Extractor.
var _ lps.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging, recording which
// strategy produced entries for a page.
type LoggingExtractor struct {
	next   lps.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next lps.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(html string) (entries []lps.Entry, err error) {
	defer func(begin time.Time) {
		e.logger.Info("extract",
			"strategy", e.next.Name(),
			"entries", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}

// Name delegates to the wrapped extractor.
func (e *LoggingExtractor) Name() string {
	return e.next.Name()
}
