// Package schedule implements the pure text and time algorithms of the
// engine: clock-token recognition, noise classification, duration parsing,
// and temporal normalization of raw listing entries into programme
// intervals.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// clockRe matches clock expressions like "7:30", "07.30", "7h30".
// Hour is 1–2 digits, minute exactly 2; range checks happen after the match
// so "27:80" is rejected rather than partially matched.
var clockRe = regexp.MustCompile(`(\d{1,2})[:h.](\d{2})`)

// TimeToken is a recognized clock expression within a text fragment.
type TimeToken struct {
	// Norm is the normalized "HH:MM" form (zero-padded hour, ":" separator).
	Norm string

	// Start and End delimit the raw match within the searched text.
	Start int
	End   int
}

// FindTimeToken finds the first substring of s that reads as a 24-hour
// clock time (H:MM, HH:MM, H.MM, HhMM). It reports false when no valid
// token exists, which is a routine outcome for non-time fragments.
//
// No timezone or AM/PM interpretation occurs here; inputs are assumed to
// be 24-hour local clock strings.
func FindTimeToken(s string) (TimeToken, bool) {
	for _, idx := range clockRe.FindAllStringSubmatchIndex(s, -1) {
		hour, err := strconv.Atoi(s[idx[2]:idx[3]])
		if err != nil || hour > 23 {
			continue
		}
		minute, err := strconv.Atoi(s[idx[4]:idx[5]])
		if err != nil || minute > 59 {
			continue
		}
		return TimeToken{
			Norm:  fmt.Sprintf("%02d:%02d", hour, minute),
			Start: idx[0],
			End:   idx[1],
		}, true
	}
	return TimeToken{}, false
}

// Residual returns s with the matched token removed and surrounding
// whitespace collapsed. Extractors use it to recover the title text that
// shares a node with the clock expression.
func (t TimeToken) Residual(s string) string {
	if t.End > len(s) || t.Start > t.End {
		return strings.TrimSpace(s)
	}
	rest := s[:t.Start] + " " + s[t.End:]
	return strings.Join(strings.Fields(rest), " ")
}

// HasTimeToken reports whether s contains at least one valid clock token.
func HasTimeToken(s string) bool {
	_, ok := FindTimeToken(s)
	return ok
}

// IsTimeOnly reports whether s is nothing but a clock token (ignoring
// surrounding whitespace). Used to reject time cells as title candidates.
func IsTimeOnly(s string) bool {
	tok, ok := FindTimeToken(s)
	if !ok {
		return false
	}
	return tok.Residual(s) == ""
}
