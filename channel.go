package lps

import "context"

// Channel describes one schedule source. The ID and display name are
// opaque identifiers that end up in the exported guide unchanged; the
// engine never derives them from page content.
type Channel struct {
	ID   string `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`

	// Render requests a JavaScript-rendering fetcher for this source.
	Render bool `json:"render,omitempty" yaml:"render,omitempty"`

	// EarlyHoursFix enables the per-site correction for sources that
	// mis-anchor 00:00–03:59 programmes to the previous day.
	EarlyHoursFix bool `json:"earlyHoursFix,omitempty" yaml:"early_hours_fix,omitempty"`
}

// Validate returns an error if the channel configuration is unusable.
func (c *Channel) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "channel ID required")
	}
	if c.URL == "" {
		return Errorf(EINVALID, "channel %s: URL required", c.ID)
	}
	return nil
}

// ChannelSource loads the configured channel list.
type ChannelSource interface {
	Channels(ctx context.Context) ([]Channel, error)
}
