package schedule

import (
	"strings"
	"time"

	"github.com/hoanghai81/lps"
)

// maxPlausibleDuration bounds a trailing "H:MM" cell read as a duration.
// Beyond it the cell is an end-time column, not a programme length.
const maxPlausibleDuration = 5 * time.Hour

// EntryFromCells applies the shared cell-role heuristic to one row of
// cells, whether the row came from real table markup or a pipe-delimited
// pseudo-table: the first time-bearing cell is the time, the next usable
// cell is the title, a trailing duration-shaped cell is the duration, and
// anything in between is description.
//
// Rows without a time token, or whose title candidate is noise, report
// false and are skipped rather than recorded.
func EntryFromCells(cells []string, filter *NoiseFilter) (lps.Entry, bool) {
	timeIdx := -1
	for i, cell := range cells {
		if HasTimeToken(cell) {
			timeIdx = i
			break
		}
	}
	if timeIdx == -1 {
		return lps.Entry{}, false
	}

	entry := lps.Entry{TimeText: strings.TrimSpace(cells[timeIdx])}

	titleIdx := -1
	for i := timeIdx + 1; i < len(cells); i++ {
		cell := strings.TrimSpace(cells[i])
		if cell == "" || IsTimeOnly(cell) || LooksLikeDuration(cell) {
			continue
		}
		titleIdx = i
		entry.TitleText = cell
		break
	}
	if titleIdx == -1 {
		return lps.Entry{}, false
	}
	if filter != nil && filter.IsNoise(entry.TitleText) {
		return lps.Entry{}, false
	}

	// Trailing duration cell, then whatever sits between title and
	// duration becomes the description. An "H:MM" here also parses as a
	// clock time; the position past the title plus a plausibility bound
	// on its length disambiguate a duration from an end-time column.
	rest := cells[titleIdx+1:]
	if len(rest) > 0 {
		last := strings.TrimSpace(rest[len(rest)-1])
		if LooksLikeDuration(last) {
			if d, ok := ParseDuration(last); ok && d <= maxPlausibleDuration {
				entry.DurationText = last
				rest = rest[:len(rest)-1]
			}
		}
	}
	var descParts []string
	for _, cell := range rest {
		cell = strings.TrimSpace(cell)
		if cell == "" || IsTimeOnly(cell) {
			continue
		}
		descParts = append(descParts, cell)
	}
	entry.DescText = strings.Join(descParts, " ")

	return entry, true
}
