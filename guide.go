package lps

import (
	"time"
)

// Entry is one candidate schedule row found in markup, in document order.
// Extractors only construct entries whose TimeText contains a recognizable
// clock pattern; everything else is dropped at the source.
type Entry struct {
	// TimeText is the unnormalized clock expression as found ("7h30", "07:30").
	TimeText string

	// TitleText is the candidate programme title.
	TitleText string

	// DescText is an optional description.
	DescText string

	// DurationText is an optional raw duration expression ("1:00", "30", "30 phút").
	DurationText string
}

// Programme is one canonical schedule entry with fully resolved,
// timezone-attached instants.
type Programme struct {
	Start time.Time `json:"start"`
	Stop  time.Time `json:"stop"`
	Title string    `json:"title"`
	Desc  string    `json:"desc,omitempty"`
}

// Guide is the canonical output for one channel: an ordered,
// non-overlapping list of programmes. It is assembled once per crawl and
// read-only thereafter.
type Guide struct {
	ChannelID   string      `json:"channelId"`
	ChannelName string      `json:"channelName"`
	Programmes  []Programme `json:"programmes"`
}

// Validate returns an error if the guide violates its ordering or
// non-overlap invariants.
func (g *Guide) Validate() error {
	if g.ChannelID == "" {
		return Errorf(EINVALID, "guide channel ID required")
	}
	for i, p := range g.Programmes {
		if !p.Stop.After(p.Start) {
			return Errorf(EINVALID, "programme %d (%q) stop does not follow start", i, p.Title)
		}
		if p.Title == "" {
			return Errorf(EINVALID, "programme %d has empty title", i)
		}
		if i > 0 && g.Programmes[i-1].Stop.After(p.Start) {
			return Errorf(EINVALID, "programme %d (%q) overlaps its predecessor", i, p.Title)
		}
	}
	return nil
}

// DayWindow returns a copy of the guide keeping only programmes whose
// start falls within [dayStart, dayStart+24h). Callers that crawl several
// calendar days in one pass use this to split results per day.
func (g *Guide) DayWindow(dayStart time.Time) *Guide {
	dayEnd := dayStart.Add(24 * time.Hour)
	out := &Guide{ChannelID: g.ChannelID, ChannelName: g.ChannelName}
	for _, p := range g.Programmes {
		if !p.Start.Before(dayStart) && p.Start.Before(dayEnd) {
			out.Programmes = append(out.Programmes, p)
		}
	}
	return out
}
