package main

import (
	"fmt"
	"time"

	"github.com/hoanghai81/lps"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.FindRuns(deps.Ctx, lps.RunFilter{Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lps.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs recorded. Use 'lpscrawl crawl' to start one.")
		return nil
	}

	for _, r := range runs {
		status := "running"
		if !r.FinishedAt.IsZero() {
			status = r.FinishedAt.Sub(r.StartedAt).Round(time.Second).String()
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  channels=%d programmes=%d failed=%d  %s\n",
			r.ID, r.TargetDay.Format("2006-01-02"), r.Channels, r.Programmes, r.Failed, status)
	}

	return nil
}
