package schedule

import (
	"regexp"
	"strings"
	"unicode"
)

// Patterns for contact-information shapes that schedule pages interleave
// with real listings at similar DOM depth.
var (
	phoneRe     = regexp.MustCompile(`\b0\d{8,}\b`)
	intlPhoneRe = regexp.MustCompile(`\+\d{6,}`)
	emailRe     = regexp.MustCompile(`[\w.\-]+@[\w.\-]+`)
)

// DefaultNoiseKeywords is the keyword set observed on Vietnamese
// broadcaster pages: hotline and contact blocks, social-media handles,
// advertising copy, and markup fragments that leak into text nodes.
var DefaultNoiseKeywords = []string{
	"hotline",
	"hot-line",
	"số điện thoại",
	"điện thoại",
	"email",
	"gmail",
	"yahoo",
	"facebook",
	"zalo",
	"www.",
	"http://",
	"https://",
	"quảng cáo",
	"đặt quảng cáo",
	"advertis",
	"sponsor",
	"javascript",
	"function(",
	"<div",
	"<span",
	"&nbsp;",
}

// NoiseFilter classifies text blocks that look like contact information,
// advertising, or markup artifacts rather than programme titles. A
// lightweight textual filter is cheaper and more robust here than
// exhaustive structural rules.
type NoiseFilter struct {
	keywords []string
}

// NewNoiseFilter creates a NoiseFilter with the given keyword set.
// Keywords are matched case-insensitively as substrings.
func NewNoiseFilter(keywords []string) *NoiseFilter {
	lowered := make([]string, len(keywords))
	for i, kw := range keywords {
		lowered[i] = strings.ToLower(kw)
	}
	return &NoiseFilter{keywords: lowered}
}

// DefaultNoiseFilter returns a filter loaded with DefaultNoiseKeywords.
func DefaultNoiseFilter() *NoiseFilter {
	return NewNoiseFilter(DefaultNoiseKeywords)
}

// IsNoise reports whether text should be rejected as a title candidate.
// It is used to reject candidates during extraction, never to revoke a
// title that already passed.
func (f *NoiseFilter) IsNoise(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len([]rune(trimmed)) <= 1 {
		return true
	}
	if phoneRe.MatchString(trimmed) || intlPhoneRe.MatchString(trimmed) || emailRe.MatchString(trimmed) {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, kw := range f.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	// A block with no letters at all (digits, punctuation, whitespace)
	// carries no title content.
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
