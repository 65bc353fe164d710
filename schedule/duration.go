package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	durationHMRe    = regexp.MustCompile(`^(\d+):(\d{2})`)
	durationIntRe   = regexp.MustCompile(`^(\d+)`)
	durationExactRe = regexp.MustCompile(`^\d+:\d{2}$`)
	durationUnitRe  = regexp.MustCompile(`^\d{1,3}(\s*phút|\s*min(utes)?)?$`)
)

// ParseDuration interprets a raw duration expression from a schedule cell:
// "H:MM" as hours and minutes, a bare integer as minutes. Trailing unit
// text ("30 phút") is tolerated. Unparseable, zero, or negative values
// report false and the caller falls back to its default.
func ParseDuration(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	if m := durationHMRe.FindStringSubmatch(s); m != nil {
		hours, _ := strconv.Atoi(m[1])
		minutes, _ := strconv.Atoi(m[2])
		d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
		if d <= 0 {
			return 0, false
		}
		return d, true
	}

	if m := durationIntRe.FindStringSubmatch(s); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		if minutes <= 0 {
			return 0, false
		}
		return time.Duration(minutes) * time.Minute, true
	}

	return 0, false
}

// LooksLikeDuration reports whether a cell reads as a duration expression
// rather than a title: "1:00", "30", "30 phút". Cells that also parse as a
// clock time are only treated as durations when short (an "H:MM" with a
// plausible hour reads ambiguously; trailing unit text disambiguates).
func LooksLikeDuration(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return durationExactRe.MatchString(s) || durationUnitRe.MatchString(strings.ToLower(s))
}
