package mock

import (
	"io"

	"github.com/hoanghai81/lps"
)

var _ lps.GuideWriter = (*GuideWriter)(nil)

// GuideWriter is a mock implementation of lps.GuideWriter.
type GuideWriter struct {
	WriteGuidesFn func(w io.Writer, guides []*lps.Guide) error
}

func (g *GuideWriter) WriteGuides(w io.Writer, guides []*lps.Guide) error {
	return g.WriteGuidesFn(w, guides)
}
