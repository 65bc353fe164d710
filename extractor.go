package lps

// Extractor locates candidate schedule entries inside arbitrary markup.
//
// Implementations are deterministic and side-effect-free. "Nothing found"
// is a routine outcome expressed as an empty slice, not an error; an error
// is returned only for inputs that cannot be processed at all (e.g. an
// unparseable document).
type Extractor interface {
	// Extract returns candidate entries in document order.
	Extract(html string) ([]Entry, error)

	// Name returns the extractor's identifier (e.g., "table", "pipe").
	Name() string
}
