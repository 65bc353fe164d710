package schedule

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/hoanghai81/lps"
)

// DefaultDuration is used for a programme's stop time whenever no other
// signal (explicit duration, successor start) is available.
const DefaultDuration = 30 * time.Minute

// DefaultEarlyHoursBefore is the hour below which the early-hours
// correction considers a start "early". The boundary is empirically tuned,
// not mandated by any source, hence configurable.
const DefaultEarlyHoursBefore = 4

// Options configures one normalization pass.
type Options struct {
	// Anchor is the calendar date the listing's clock sequence starts on,
	// in Location. Only its year/month/day are used.
	Anchor time.Time

	// Target is the nominal date the listing was requested for. It only
	// matters to EarlyHoursFix: some sources date their page a day behind
	// the requested schedule, leaving the 00:00–03:59 block anchored to
	// the previous day. Defaults to Anchor.
	Target time.Time

	// Location is the fixed timezone for the whole run.
	// Defaults to the Anchor's location.
	Location *time.Location

	// DefaultDuration substitutes for a missing stop signal.
	// Defaults to DefaultDuration (30 minutes).
	DefaultDuration time.Duration

	// EarlyHoursFix enables the correction for sources that mis-anchor
	// early-morning times to the previous day.
	EarlyHoursFix bool

	// EarlyHoursBefore is the exclusive hour bound for EarlyHoursFix.
	// Defaults to DefaultEarlyHoursBefore.
	EarlyHoursBefore int
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = o.Anchor.Location()
	}
	if o.Target.IsZero() {
		o.Target = o.Anchor
	}
	if o.DefaultDuration <= 0 {
		o.DefaultDuration = DefaultDuration
	}
	if o.EarlyHoursBefore <= 0 {
		o.EarlyHoursBefore = DefaultEarlyHoursBefore
	}
	return o
}

// Normalize converts raw entries, in document order, into a monotonically
// increasing sequence of programme intervals. Listings are a single run of
// clock times that wrap past midnight without any explicit date marker;
// the pass threads a rolling current-day cursor to detect those wraps.
func Normalize(entries []lps.Entry, opts Options) []lps.Programme {
	opts = opts.withDefaults()

	currentDay := time.Date(opts.Anchor.Year(), opts.Anchor.Month(), opts.Anchor.Day(), 0, 0, 0, 0, opts.Location)
	var lastStart time.Time

	type provisional struct {
		start    time.Time
		title    string
		desc     string
		duration time.Duration
		hasDur   bool
	}

	var accepted []provisional
	seen := make(map[string]bool)

	for _, e := range entries {
		if strings.TrimSpace(e.TitleText) == "" {
			continue
		}
		tok, ok := FindTimeToken(e.TimeText)
		if !ok {
			continue
		}

		// Dedup on the raw clock token before any date math. A repeated
		// row otherwise reads as a midnight wrap and rolls the rest of
		// the listing a day forward.
		key := tok.Norm + "|" + foldTitle(e.TitleText)
		if seen[key] {
			continue
		}
		seen[key] = true

		hour, minute := mustSplitClock(tok.Norm)
		candidate := currentDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		// A candidate at or before the previous start means the listing
		// wrapped past midnight into a later calendar day.
		for !lastStart.IsZero() && !candidate.After(lastStart) {
			currentDay = currentDay.AddDate(0, 0, 1)
			candidate = currentDay.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
		}
		lastStart = candidate

		p := provisional{
			start: candidate,
			title: strings.TrimSpace(e.TitleText),
			desc:  strings.TrimSpace(e.DescText),
		}
		if d, ok := ParseDuration(e.DurationText); ok {
			p.duration, p.hasDur = d, true
		}
		accepted = append(accepted, p)
	}

	programmes := make([]lps.Programme, 0, len(accepted))
	for i, p := range accepted {
		stop := p.start.Add(opts.DefaultDuration)
		switch {
		case p.hasDur:
			stop = p.start.Add(p.duration)
		case i+1 < len(accepted) && accepted[i+1].start.After(p.start):
			stop = accepted[i+1].start
		}
		programmes = append(programmes, lps.Programme{
			Start: p.start,
			Stop:  stop,
			Title: p.title,
			Desc:  p.desc,
		})
	}

	if opts.EarlyHoursFix {
		targetDay := time.Date(opts.Target.Year(), opts.Target.Month(), opts.Target.Day(), 0, 0, 0, 0, opts.Location)
		fixEarlyHours(programmes, targetDay, opts.EarlyHoursBefore)
	}

	// Entries are already ordered by construction; the sort guards against
	// pathological inputs, and identical starts with differing titles are
	// a genuine data conflict resolved keep-first.
	sort.SliceStable(programmes, func(i, j int) bool {
		return programmes[i].Start.Before(programmes[j].Start)
	})
	deduped := programmes[:0]
	for i, p := range programmes {
		if i > 0 && p.Start.Equal(programmes[i-1].Start) {
			continue
		}
		deduped = append(deduped, p)
	}

	return deduped
}

// fixEarlyHours shifts programmes whose start landed on a date before the
// target with an early-morning hour forward onto the target date, moving
// the stop by the same number of days. Observed on sources that list the
// 00:00–03:59 block against the previous day.
func fixEarlyHours(programmes []lps.Programme, targetDay time.Time, before int) {
	for i := range programmes {
		start := programmes[i].Start
		if !dayOf(start).Before(targetDay) || start.Hour() >= before {
			continue
		}
		days := 0
		for dayOf(start).Before(targetDay) {
			start = start.AddDate(0, 0, 1)
			days++
		}
		programmes[i].Start = start
		programmes[i].Stop = programmes[i].Stop.AddDate(0, 0, days)
	}
}

func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// foldTitle normalizes a title for deduplication: case-folded with
// whitespace runs collapsed.
func foldTitle(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// mustSplitClock splits a normalized "HH:MM" produced by FindTimeToken.
func mustSplitClock(norm string) (hour, minute int) {
	hour, _ = strconv.Atoi(norm[:2])
	minute, _ = strconv.Atoi(norm[3:])
	return hour, minute
}
