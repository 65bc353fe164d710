// Package goquery provides DOM-based extraction strategies for schedule
// pages using CSS selectors.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hoanghai81/lps"
	"github.com/hoanghai81/lps/schedule"
)

var _ lps.Extractor = (*TableExtractor)(nil)

// DefaultRowSelectors are candidate row selectors for schedules rendered
// as div-tables rather than real table markup, tried in order. Broadcaster
// sites differ only in which of these they use, so the variation is
// configuration data, not separate code paths.
var DefaultRowSelectors = []string{
	"div.tbl-row",
	".lich-item",
	".lich-row",
	".schedule-item",
	".schedule .item",
	".program-row",
	"ul.schedule li",
	".list-group-item",
}

// TableConfig configures the structured-table extractor.
type TableConfig struct {
	// RowSelectors are tried in order when no real <table> carries the
	// schedule. Defaults to DefaultRowSelectors.
	RowSelectors []string

	// Noise filters title candidates. Defaults to the standard filter.
	Noise *schedule.NoiseFilter
}

// TableExtractor extracts schedule entries from row-and-cell containers:
// the most time-token-dense <table> on the page, falling back to
// configured div-table row selectors.
type TableExtractor struct {
	rowSelectors []string
	noise        *schedule.NoiseFilter
}

// NewTableExtractor creates a TableExtractor from cfg.
func NewTableExtractor(cfg TableConfig) *TableExtractor {
	e := &TableExtractor{
		rowSelectors: cfg.RowSelectors,
		noise:        cfg.Noise,
	}
	if len(e.rowSelectors) == 0 {
		e.rowSelectors = DefaultRowSelectors
	}
	if e.noise == nil {
		e.noise = schedule.DefaultNoiseFilter()
	}
	return e
}

// Name returns the extractor's identifier.
func (e *TableExtractor) Name() string {
	return "table"
}

// Extract returns candidate entries from the schedule table in document
// order. Malformed rows are skipped, not recorded.
func (e *TableExtractor) Extract(html string) ([]lps.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, lps.Errorf(lps.EINVALID, "failed to parse HTML: %v", err)
	}

	if entries := e.fromDensestTable(doc); len(entries) > 0 {
		return entries, nil
	}
	return e.fromRowSelectors(doc), nil
}

// fromDensestTable picks the <table> whose text carries the most time
// tokens and extracts its rows. Pages often hold several tables (layout,
// navigation); token density reliably singles out the schedule.
func (e *TableExtractor) fromDensestTable(doc *goquery.Document) []lps.Entry {
	var best *goquery.Selection
	bestCount := 0
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		count := countTimeTokens(table.Text())
		if count > bestCount {
			best, bestCount = table, count
		}
	})
	if best == nil {
		return nil
	}

	var entries []lps.Entry
	best.Find("tr").Each(func(_ int, row *goquery.Selection) {
		var cells []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			cells = append(cells, normalizeSpace(cell.Text()))
		})
		if entry, ok := schedule.EntryFromCells(cells, e.noise); ok {
			entries = append(entries, entry)
		}
	})
	return entries
}

// fromRowSelectors tries each configured row selector in order and keeps
// the first one that yields entries.
func (e *TableExtractor) fromRowSelectors(doc *goquery.Document) []lps.Entry {
	for _, selector := range e.rowSelectors {
		var entries []lps.Entry
		doc.Find(selector).Each(func(_ int, row *goquery.Selection) {
			var cells []string
			row.Children().Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, normalizeSpace(cell.Text()))
			})
			if len(cells) < 2 {
				// Row renders time and title in one flat text run.
				cells = splitFlatRow(row.Text())
			}
			if entry, ok := schedule.EntryFromCells(cells, e.noise); ok {
				entries = append(entries, entry)
			}
		})
		if len(entries) > 0 {
			return entries
		}
	}
	return nil
}

// splitFlatRow splits "07:30 Thời sự" style rows into pseudo-cells.
func splitFlatRow(text string) []string {
	text = normalizeSpace(text)
	tok, ok := schedule.FindTimeToken(text)
	if !ok {
		return nil
	}
	return []string{text[tok.Start:tok.End], tok.Residual(text)}
}

func countTimeTokens(text string) int {
	count := 0
	for {
		tok, ok := schedule.FindTimeToken(text)
		if !ok {
			return count
		}
		count++
		text = text[tok.End:]
	}
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
