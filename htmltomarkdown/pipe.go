// Package htmltomarkdown extracts schedule entries from pipe-delimited
// pseudo-tables by first flattening the page to Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/hoanghai81/lps"
	"github.com/hoanghai81/lps/schedule"
)

var _ lps.Extractor = (*PipeExtractor)(nil)

// PipeExtractor handles schedules published as pipe-delimited text, either
// literally in the page text or as table markup that the Markdown
// conversion renders into pipe rows. Some broadcasters paste their listing
// into a CMS as preformatted "06:00 | Thời sự" lines, which DOM-oriented
// strategies cannot see as rows.
type PipeExtractor struct {
	conv  *converter.Converter
	noise *schedule.NoiseFilter
}

// NewPipeExtractor creates a PipeExtractor with the standard noise filter.
func NewPipeExtractor() *PipeExtractor {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &PipeExtractor{conv: conv, noise: schedule.DefaultNoiseFilter()}
}

// Name returns the extractor's identifier.
func (e *PipeExtractor) Name() string {
	return "pipe"
}

// Extract flattens the page to Markdown, locates the largest contiguous
// block of pipe-delimited lines that carries time tokens, and reads each
// line as a row.
func (e *PipeExtractor) Extract(html string) ([]lps.Entry, error) {
	if strings.TrimSpace(html) == "" {
		return nil, lps.Errorf(lps.EINVALID, "empty HTML input")
	}

	text := html
	if strings.Contains(html, "<") {
		md, err := e.conv.ConvertString(html)
		if err != nil {
			return nil, lps.Errorf(lps.EINVALID, "failed to convert HTML: %v", err)
		}
		text = md
	}

	block := largestPipeBlock(strings.Split(text, "\n"))

	var entries []lps.Entry
	for _, line := range block {
		if isRuleLine(line) {
			continue
		}
		cells := splitPipeRow(line)
		if entry, ok := schedule.EntryFromCells(cells, e.noise); ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// largestPipeBlock returns the longest contiguous run of pipe-bearing
// lines that contains at least one time token. Navigation menus also
// render as short pipe runs; length plus a token requirement singles out
// the listing.
func largestPipeBlock(lines []string) []string {
	var best, current []string
	bestHasToken, currentHasToken := false, false

	flush := func() {
		if currentHasToken && (len(current) > len(best) || !bestHasToken) {
			best, bestHasToken = current, true
		}
		current, currentHasToken = nil, false
	}

	for _, line := range lines {
		if !strings.Contains(line, "|") {
			flush()
			continue
		}
		current = append(current, line)
		if schedule.HasTimeToken(line) {
			currentHasToken = true
		}
	}
	flush()

	if !bestHasToken {
		return nil
	}
	return best
}

// splitPipeRow splits a pipe row into trimmed cells, dropping the empty
// edge cells produced by Markdown's leading and trailing pipes.
func splitPipeRow(line string) []string {
	parts := strings.Split(line, "|")
	// Interior empties stay so column positions survive; the cell reader
	// tolerates the edge empties from "| a | b |".
	cells := make([]string, 0, len(parts))
	for _, part := range parts {
		cells = append(cells, strings.Join(strings.Fields(part), " "))
	}
	return cells
}

// isRuleLine reports whether the line is a Markdown table separator such
// as "| --- | :--- |".
func isRuleLine(line string) bool {
	seen := false
	for _, r := range line {
		switch r {
		case '|', '-', ':', ' ', '\t':
			if r == '-' {
				seen = true
			}
		default:
			return false
		}
	}
	return seen
}
