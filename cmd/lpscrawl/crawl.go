package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hoanghai81/lps"
	"github.com/hoanghai81/lps/crawl"
	"github.com/hoanghai81/lps/etree"
	"github.com/hoanghai81/lps/fs"
	"github.com/hoanghai81/lps/goquery"
	"github.com/hoanghai81/lps/htmltomarkdown"
	lpshttp "github.com/hoanghai81/lps/http"
	"github.com/hoanghai81/lps/rod"
	lpsslog "github.com/hoanghai81/lps/slog"
	"github.com/hoanghai81/lps/yaml"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}

	target := time.Now().In(loc)
	if c.Date != "" {
		target, err = time.ParseInLocation("2006-01-02", c.Date, loc)
		if err != nil {
			return fmt.Errorf("invalid date %q, want YYYY-MM-DD: %w", c.Date, err)
		}
	}

	channels, err := loadChannels(deps, c.Channels)
	if err != nil {
		return err
	}
	if c.Render {
		for i := range channels {
			channels[i].Render = true
		}
	}

	fetcher := lpsslog.NewLoggingFetcher(lpshttp.NewFetcher(), deps.Logger)
	defer fetcher.Close()

	var renderer lps.Fetcher
	if needsRenderer(channels) {
		rodFetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		renderer = lpsslog.NewLoggingFetcher(rodFetcher, deps.Logger)
		defer renderer.Close()
	}

	extractor := lpsslog.NewLoggingExtractor(crawl.NewChain(
		goquery.NewTableExtractor(goquery.TableConfig{}),
		htmltomarkdown.NewPipeExtractor(),
		goquery.NewProximityExtractor(goquery.ProximityConfig{}),
	), deps.Logger)

	run := &lps.Run{TargetDay: target, Channels: len(channels)}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	var mu sync.Mutex
	crawler := &crawl.Crawler{
		Fetcher:         fetcher,
		Renderer:        renderer,
		Extractor:       extractor,
		Limiter:         crawl.NewHostLimiter(c.RPS),
		Location:        loc,
		DayOffsets:      c.Days,
		Concurrency:     c.Concurrency,
		DefaultDuration: c.Duration,
		Logger: func(format string, args ...any) {
			deps.Logger.Warn(fmt.Sprintf(format, args...))
		},
		OnPage: func(channelID string, day time.Time, html string, programmes int) {
			mu.Lock()
			defer mu.Unlock()
			err := deps.Runs.SaveChannelResult(deps.Ctx, &lps.ChannelResult{
				RunID:      run.ID,
				ChannelID:  channelID,
				Day:        day,
				PageHTML:   html,
				Programmes: programmes,
			})
			if err != nil {
				deps.Logger.Warn("failed to record page", "channel", channelID, "err", err)
			}
		},
	}

	result, err := crawler.Crawl(deps.Ctx, channels, target, func(e crawl.ProgressEvent) {
		switch e.Type {
		case crawl.ProgressChannelDone:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %d programmes\n", e.Completed, e.Total, e.Channel, e.Programmes)
		case crawl.ProgressChannelEmpty:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: no programmes\n", e.Completed, e.Total, e.Channel)
		}
	})
	if err != nil {
		return err
	}

	if err := deps.Runs.FinishRun(deps.Ctx, run.ID, result.Programmes, result.Failed); err != nil {
		deps.Logger.Warn("failed to finish run", "err", err)
	}

	guides := result.Guides
	if c.TodayOnly {
		targetDay := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, loc)
		windowed := make([]*lps.Guide, 0, len(guides))
		for _, g := range guides {
			windowed = append(windowed, g.DayWindow(targetDay))
		}
		guides = windowed
	}

	if c.Preview {
		printPreview(deps.Stdout, guides)
		return nil
	}

	writer := &etree.XMLTVWriter{Generator: "lpscrawl", Lang: c.Lang}
	if err := writer.WriteFile(c.Out, guides); err != nil {
		return err
	}
	fmt.Fprintf(deps.Stderr, "wrote %d programmes for %d channels to %s\n",
		result.Programmes, len(result.Guides), c.Out)
	return nil
}

// loadChannels picks a loader by file extension: YAML configs carry
// per-channel options, plain text lists are id | url | name lines.
func loadChannels(deps *Dependencies, path string) ([]lps.Channel, error) {
	var source lps.ChannelSource
	if strings.HasSuffix(path, ".yml") || strings.HasSuffix(path, ".yaml") {
		source = yaml.NewChannelConfig(path)
	} else {
		source = fs.NewChannelFile(path)
	}
	return source.Channels(deps.Ctx)
}

func needsRenderer(channels []lps.Channel) bool {
	for _, ch := range channels {
		if ch.Render {
			return true
		}
	}
	return false
}
