package main

import (
	"fmt"
	"io"

	"github.com/hoanghai81/lps"
	"github.com/mattn/go-runewidth"
)

// printPreview renders guides as an aligned text table. Titles are padded
// by display width, not byte length, so Vietnamese text lines up.
func printPreview(w io.Writer, guides []*lps.Guide) {
	for _, g := range guides {
		name := g.ChannelName
		if name == "" {
			name = g.ChannelID
		}
		fmt.Fprintf(w, "%s (%s): %d programmes\n", name, g.ChannelID, len(g.Programmes))

		titleWidth := 0
		for _, p := range g.Programmes {
			if width := runewidth.StringWidth(p.Title); width > titleWidth {
				titleWidth = width
			}
		}

		for _, p := range g.Programmes {
			line := fmt.Sprintf("  %s - %s  %s",
				p.Start.Format("15:04"), p.Stop.Format("15:04"),
				runewidth.FillRight(p.Title, titleWidth))
			if p.Desc != "" {
				line += "  " + p.Desc
			}
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	}
}
