// Package etree writes programme guides as XMLTV documents.
package etree

import (
	"io"
	"os"
	"path/filepath"

	"github.com/beevik/etree"
	"github.com/hoanghai81/lps"
)

// xmltvTimeLayout is the XMLTV timestamp format, local time with a
// numeric zone offset.
const xmltvTimeLayout = "20060102150405 -0700"

var _ lps.GuideWriter = (*XMLTVWriter)(nil)

// XMLTVWriter serializes guides into the XMLTV interchange format
// consumed by EPG frontends.
type XMLTVWriter struct {
	// Generator is recorded as generator-info-name on the document root.
	Generator string

	// Lang is the language attribute on titles and descriptions.
	// Defaults to "vi".
	Lang string
}

// WriteGuides writes all guides as a single XMLTV document: channel
// declarations first, then programmes in guide order.
func (x *XMLTVWriter) WriteGuides(w io.Writer, guides []*lps.Guide) error {
	lang := x.Lang
	if lang == "" {
		lang = "vi"
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	tv := doc.CreateElement("tv")
	if x.Generator != "" {
		tv.CreateAttr("generator-info-name", x.Generator)
	}

	for _, g := range guides {
		ch := tv.CreateElement("channel")
		ch.CreateAttr("id", g.ChannelID)
		name := g.ChannelName
		if name == "" {
			name = g.ChannelID
		}
		ch.CreateElement("display-name").SetText(name)
	}

	for _, g := range guides {
		for _, p := range g.Programmes {
			el := tv.CreateElement("programme")
			el.CreateAttr("start", p.Start.Format(xmltvTimeLayout))
			el.CreateAttr("stop", p.Stop.Format(xmltvTimeLayout))
			el.CreateAttr("channel", g.ChannelID)

			title := el.CreateElement("title")
			title.CreateAttr("lang", lang)
			title.SetText(p.Title)

			if p.Desc != "" {
				desc := el.CreateElement("desc")
				desc.CreateAttr("lang", lang)
				desc.SetText(p.Desc)
			}
		}
	}

	doc.Indent(2)
	if _, err := doc.WriteTo(w); err != nil {
		return lps.Errorf(lps.EINTERNAL, "failed to write XMLTV document: %v", err)
	}
	return nil
}

// WriteFile writes the guides to path atomically, through a temp file in
// the same directory renamed over the target. EPG consumers poll the
// output path and must never see a half-written document.
func (x *XMLTVWriter) WriteFile(path string, guides []*lps.Guide) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return lps.Errorf(lps.EINTERNAL, "failed to create temp file: %v", err)
	}
	defer os.Remove(tmp.Name())

	if err := x.WriteGuides(tmp, guides); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return lps.Errorf(lps.EINTERNAL, "failed to close temp file: %v", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return lps.Errorf(lps.EINTERNAL, "failed to replace %s: %v", path, err)
	}
	return nil
}
