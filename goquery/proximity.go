package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hoanghai81/lps"
	"github.com/hoanghai81/lps/schedule"
	"golang.org/x/net/html"
)

var _ lps.Extractor = (*ProximityExtractor)(nil)

// DefaultLookahead bounds how many text nodes past a time token the
// generic scan searches for a title before giving up on the entry.
const DefaultLookahead = 18

// DefaultContainerSelectors are candidate schedule containers tried in
// order before falling back to the whole document. Scoping the scan cuts
// down on sidebar and footer noise.
var DefaultContainerSelectors = []string{
	".lich-phat-song",
	".tv-schedule",
	".schedule",
	".box-list",
	"main",
	"#main",
	".content",
	".page-content",
}

// ProximityConfig configures the generic time-token-proximity extractor.
type ProximityConfig struct {
	// ContainerSelectors scope the scan; the first selector matching a
	// node with at least three time tokens wins. Defaults to
	// DefaultContainerSelectors.
	ContainerSelectors []string

	// Lookahead bounds the forward search for a title.
	// Defaults to DefaultLookahead.
	Lookahead int

	// Noise filters title candidates. Defaults to the standard filter.
	Noise *schedule.NoiseFilter
}

// ProximityExtractor is the fallback of last resort: it scans text nodes
// in document order for time tokens and pairs each with the nearest
// usable title text.
type ProximityExtractor struct {
	containerSelectors []string
	lookahead          int
	noise              *schedule.NoiseFilter
}

// NewProximityExtractor creates a ProximityExtractor from cfg.
func NewProximityExtractor(cfg ProximityConfig) *ProximityExtractor {
	e := &ProximityExtractor{
		containerSelectors: cfg.ContainerSelectors,
		lookahead:          cfg.Lookahead,
		noise:              cfg.Noise,
	}
	if len(e.containerSelectors) == 0 {
		e.containerSelectors = DefaultContainerSelectors
	}
	if e.lookahead <= 0 {
		e.lookahead = DefaultLookahead
	}
	if e.noise == nil {
		e.noise = schedule.DefaultNoiseFilter()
	}
	return e
}

// Name returns the extractor's identifier.
func (e *ProximityExtractor) Name() string {
	return "proximity"
}

// Extract scans for time tokens and searches nearby text for titles, in
// order of preference: remaining text in the same node, the following
// sibling, the preceding sibling, then subsequent text nodes up to the
// lookahead bound. Entries without a usable title are discarded.
func (e *ProximityExtractor) Extract(htmlSrc string) ([]lps.Entry, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, lps.Errorf(lps.EINVALID, "failed to parse HTML: %v", err)
	}

	scope := e.scanScope(doc)
	texts := collectTextNodes(scope)

	var entries []lps.Entry
	for i, node := range texts {
		text := normalizeSpace(node.Data)
		tok, ok := schedule.FindTimeToken(text)
		if !ok {
			continue
		}

		title := e.firstUsable(
			tok.Residual(text),
			subtreeText(node.NextSibling),
			parentNextText(node),
			subtreeText(node.PrevSibling),
		)
		if title == "" {
			title = e.lookaheadTitle(texts[i+1:])
		}
		if title == "" {
			continue
		}

		entries = append(entries, lps.Entry{
			TimeText:  text[tok.Start:tok.End],
			TitleText: title,
		})
	}
	return entries, nil
}

// scanScope picks the schedule container to scan. A container only wins
// if it carries enough time tokens to plausibly hold a listing.
func (e *ProximityExtractor) scanScope(doc *goquery.Document) *goquery.Selection {
	for _, selector := range e.containerSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && countTimeTokens(sel.Text()) >= 3 {
			return sel
		}
	}
	return doc.Selection
}

// firstUsable returns the first candidate that passes the title rules.
func (e *ProximityExtractor) firstUsable(candidates ...string) string {
	for _, cand := range candidates {
		cand = normalizeSpace(cand)
		if cand == "" || schedule.HasTimeToken(cand) || e.noise.IsNoise(cand) {
			continue
		}
		return cand
	}
	return ""
}

// lookaheadTitle searches subsequent text nodes for a title, stopping at
// the next time token (the following entry's clock cell).
func (e *ProximityExtractor) lookaheadTitle(texts []*html.Node) string {
	limit := e.lookahead
	if len(texts) < limit {
		limit = len(texts)
	}
	for _, node := range texts[:limit] {
		text := normalizeSpace(node.Data)
		if text == "" {
			continue
		}
		if schedule.HasTimeToken(text) {
			return ""
		}
		if e.noise.IsNoise(text) {
			continue
		}
		return text
	}
	return ""
}

// collectTextNodes returns the scope's text nodes in document order,
// skipping script and style subtrees.
func collectTextNodes(scope *goquery.Selection) []*html.Node {
	var texts []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" || n.Data == "noscript" {
				return
			}
		case html.TextNode:
			if strings.TrimSpace(n.Data) != "" {
				texts = append(texts, n)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range scope.Nodes {
		walk(n)
	}
	return texts
}

// subtreeText renders the visible text of a node and its descendants.
func subtreeText(n *html.Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// parentNextText is the common markup shape where the clock sits alone in
// a leaf element and the title lives in that element's next sibling.
func parentNextText(n *html.Node) string {
	if n.Parent == nil {
		return ""
	}
	return subtreeText(n.Parent.NextSibling)
}
