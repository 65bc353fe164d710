package lps

import (
	"context"
	"time"
)

// Run records one crawl execution over the configured channel list.
type Run struct {
	ID         string
	TargetDay  time.Time
	StartedAt  time.Time
	FinishedAt time.Time
	Channels   int
	Programmes int
	Failed     int
}

// Validate returns an error if the run cannot be recorded.
func (r *Run) Validate() error {
	if r.TargetDay.IsZero() {
		return Errorf(EINVALID, "run target day required")
	}
	return nil
}

// ChannelResult records one fetched schedule page within a run: which
// channel and day it covered, the raw page, and how many programmes came
// out of it. The page hash supports change detection between runs.
type ChannelResult struct {
	ID         string
	RunID      string
	ChannelID  string
	Day        time.Time
	PageHTML   string
	PageHash   string
	Programmes int
	CreatedAt  time.Time
}

// Validate returns an error if the result cannot be recorded.
func (r *ChannelResult) Validate() error {
	if r.RunID == "" {
		return Errorf(EINVALID, "channel result run ID required")
	}
	if r.ChannelID == "" {
		return Errorf(EINVALID, "channel result channel ID required")
	}
	if r.Day.IsZero() {
		return Errorf(EINVALID, "channel result day required")
	}
	return nil
}

// RunFilter narrows FindRuns results.
type RunFilter struct {
	ID     *string
	Limit  int
	Offset int
}

// RunService persists crawl history.
type RunService interface {
	// CreateRun records a new run and assigns its ID.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stamps the run finished with its final counts.
	FinishRun(ctx context.Context, id string, programmes, failed int) error

	// FindRuns returns runs matching the filter, most recent first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// SaveChannelResult records one fetched page and assigns its ID and
	// page hash.
	SaveChannelResult(ctx context.Context, result *ChannelResult) error

	// LastPageHash returns the most recent page hash recorded for the
	// channel and day, or ENOTFOUND if none exists.
	LastPageHash(ctx context.Context, channelID string, day time.Time) (string, error)
}
