// Package crawl orchestrates multi-channel schedule crawling. It
// coordinates fetching, extraction, and temporal normalization into
// per-channel programme guides.
package crawl

import (
	"context"
	"sort"
	"time"

	"github.com/hoanghai81/lps"
	"github.com/hoanghai81/lps/schedule"
	"golang.org/x/sync/errgroup"
)

// Crawler turns a channel list into programme guides for a target date.
type Crawler struct {
	// Fetcher retrieves page HTML. Renderer, if set, is used instead for
	// channels marked Render, which need a browser to populate the page.
	Fetcher  lps.Fetcher
	Renderer lps.Fetcher

	// Extractor reads entries from page HTML, typically a Chain.
	Extractor lps.Extractor

	// Limiter spaces out requests per host. Optional.
	Limiter *HostLimiter

	// Location is the timezone for the whole run.
	Location *time.Location

	// DayOffsets are the days fetched per channel, relative to the target
	// date. The default {0, 1} picks up the after-midnight tail of the
	// target day's listing from the next day's page.
	DayOffsets []int

	// Concurrency bounds the number of channels crawled at once.
	Concurrency int

	// RetryDelays configures fetch backoff. Defaults to 1s, 2s, 4s.
	RetryDelays []time.Duration

	// DefaultDuration substitutes for a missing stop signal.
	DefaultDuration time.Duration

	// Logger receives retry and failure lines. Optional.
	Logger LogFunc

	// OnPage, if set, receives every successfully fetched page along with
	// the programme count its extraction produced. Used to record crawl
	// history.
	OnPage func(channelID string, day time.Time, html string, programmes int)
}

// Result holds the outcome of a crawl run.
type Result struct {
	// Guides holds one guide per channel, in input order. A channel whose
	// pages could not be fetched or read still gets a guide, with no
	// programmes.
	Guides []*lps.Guide

	// Programmes is the total programme count across all guides.
	Programmes int

	// Failed counts page fetches that exhausted their retries.
	Failed int
}

// ProgressEvent reports progress during a crawl run.
type ProgressEvent struct {
	Type       ProgressType
	Completed  int
	Total      int
	Channel    string
	Programmes int
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressChannelDone
	ProgressChannelEmpty
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawl fetches and normalizes every channel's schedule for the target
// date. Channels are crawled concurrently; one channel's failure never
// blocks the others. The progress callback, if provided, receives events
// as channels complete.
func (c *Crawler) Crawl(ctx context.Context, channels []lps.Channel, target time.Time, progress ProgressFunc) (*Result, error) {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: len(channels)})
	}

	type channelResult struct {
		guide  *lps.Guide
		failed int
	}
	results := make([]channelResult, len(channels))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, ch := range channels {
		g.Go(func() error {
			guide, failed := c.crawlChannel(gctx, ch, target)
			results[i] = channelResult{guide: guide, failed: failed}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Guides: make([]*lps.Guide, 0, len(channels))}
	for i, r := range results {
		result.Guides = append(result.Guides, r.guide)
		result.Programmes += len(r.guide.Programmes)
		result.Failed += r.failed

		if progress != nil {
			typ := ProgressChannelDone
			if len(r.guide.Programmes) == 0 {
				typ = ProgressChannelEmpty
			}
			progress(ProgressEvent{
				Type:       typ,
				Completed:  i + 1,
				Total:      len(channels),
				Channel:    channels[i].ID,
				Programmes: len(r.guide.Programmes),
			})
		}
	}
	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: len(channels), Total: len(channels)})
	}
	return result, nil
}

// crawlChannel fetches each configured day offset for one channel and
// merges the normalized programmes into a single guide. A day that fails
// is skipped; the guide carries whatever the remaining days produced.
func (c *Crawler) crawlChannel(ctx context.Context, ch lps.Channel, target time.Time) (*lps.Guide, int) {
	guide := &lps.Guide{ChannelID: ch.ID, ChannelName: ch.Name}
	targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, c.Location)

	offsets := c.DayOffsets
	if len(offsets) == 0 {
		offsets = []int{0, 1}
	}

	failed := 0
	var programmes []lps.Programme
	for _, offset := range offsets {
		day := targetDay.AddDate(0, 0, offset)
		dayURL, err := WithDateParam(ch.URL, day)
		if err != nil {
			c.logf("channel %s: %v", ch.ID, err)
			failed++
			continue
		}

		html, err := c.fetchPage(ctx, ch, dayURL)
		if err != nil {
			c.logf("channel %s: fetch %s: %v", ch.ID, dayURL, err)
			failed++
			continue
		}

		entries, err := c.Extractor.Extract(html)
		if err != nil {
			c.logf("channel %s: extract %s: %v", ch.ID, dayURL, err)
			continue
		}

		anchor := day
		if printed, ok := PageDate(html, c.Location); ok {
			anchor = printed
		}
		dayProgrammes := schedule.Normalize(entries, schedule.Options{
			Anchor:          anchor,
			Target:          day,
			Location:        c.Location,
			DefaultDuration: c.DefaultDuration,
			EarlyHoursFix:   ch.EarlyHoursFix,
		})
		programmes = append(programmes, dayProgrammes...)

		if c.OnPage != nil {
			c.OnPage(ch.ID, day, html, len(dayProgrammes))
		}
	}

	guide.Programmes = mergeProgrammes(programmes)
	return guide, failed
}

// fetchPage applies the rate limiter and retry policy around the fetcher
// appropriate for the channel.
func (c *Crawler) fetchPage(ctx context.Context, ch lps.Channel, url string) (string, error) {
	fetcher := c.Fetcher
	if ch.Render && c.Renderer != nil {
		fetcher = c.Renderer
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx, url); err != nil {
			return "", err
		}
	}
	return FetchWithRetry(ctx, url, fetcher.Fetch, c.Logger, c.RetryDelays)
}

// mergeProgrammes combines the per-day normalization outputs into one
// ordered, non-overlapping sequence. Consecutive day pages overlap where
// the first day's listing rolls past midnight into the second; the merge
// keeps the first programme per start instant and clips stops to the
// successor's start.
func mergeProgrammes(programmes []lps.Programme) []lps.Programme {
	if len(programmes) == 0 {
		return nil
	}
	sort.SliceStable(programmes, func(i, j int) bool {
		return programmes[i].Start.Before(programmes[j].Start)
	})

	merged := programmes[:0]
	for i, p := range programmes {
		if i > 0 && p.Start.Equal(programmes[i-1].Start) {
			continue
		}
		merged = append(merged, p)
	}
	for i := range merged[:len(merged)-1] {
		if merged[i].Stop.After(merged[i+1].Start) {
			merged[i].Stop = merged[i+1].Start
		}
	}
	return merged
}

func (c *Crawler) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger(format, args...)
	}
}
