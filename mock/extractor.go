package mock

import "github.com/hoanghai81/lps"

var _ lps.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of lps.Extractor.
type Extractor struct {
	ExtractFn func(html string) ([]lps.Entry, error)
	NameFn    func() string
}

func (e *Extractor) Extract(html string) ([]lps.Entry, error) {
	return e.ExtractFn(html)
}

func (e *Extractor) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}
