package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/hoanghai81/lps"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Runs   lps.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log fetch and extraction detail to stderr"`
	DB      string `help:"SQLite database path (overrides $LPS_DB)"`

	Crawl CrawlCmd `cmd:"" help:"Crawl channel schedules and write an XMLTV guide"`
	Runs  RunsCmd  `cmd:"" help:"List recent crawl runs"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Channels    string        `arg:"" help:"Channel list: a .yml config or a pipe-delimited .txt file"`
	Date        string        `short:"d" help:"Target date (YYYY-MM-DD), defaults to today"`
	Out         string        `short:"o" default:"guide.xml" help:"Output XMLTV path"`
	Preview     bool          `short:"p" help:"Print the guide to stdout instead of writing XMLTV"`
	Timezone    string        `default:"Asia/Ho_Chi_Minh" help:"IANA timezone for the run"`
	Days        []int         `default:"0,1" help:"Day offsets to fetch per channel, relative to the target date"`
	Duration    time.Duration `default:"30m" help:"Fallback programme duration when the page gives no stop signal"`
	Lang        string        `default:"vi" help:"Language code for XMLTV title and desc elements"`
	TodayOnly   bool          `help:"Keep only programmes starting on the target date"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent channel limit"`
	RPS         float64       `name:"rps" default:"1" help:"Requests per second per host"`
	Render      bool          `help:"Force browser rendering for all channels"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Limit int `short:"n" default:"10" help:"Number of runs to show"`
}
