package lps

import "io"

// GuideWriter renders guides into a programme-guide interchange document.
// Every Start/Stop instant handed to a writer is already fully resolved
// and timezone-attached; writers perform no further time arithmetic.
type GuideWriter interface {
	WriteGuides(w io.Writer, guides []*Guide) error
}
