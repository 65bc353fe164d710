// Package yaml loads channel lists from YAML configuration files.
package yaml

import (
	"context"
	"os"

	"github.com/hoanghai81/lps"
	"gopkg.in/yaml.v3"
)

// Ensure ChannelConfig implements lps.ChannelSource at compile time.
var _ lps.ChannelSource = (*ChannelConfig)(nil)

// ChannelConfig reads channels from a YAML file of the form:
//
//	channels:
//	  - id: thvl1
//	    name: THVL1
//	    url: https://thvl.vn/lich-phat-song
//	    render: false
//	    early_hours_fix: true
type ChannelConfig struct {
	path string
}

// NewChannelConfig creates a ChannelConfig reading from path.
func NewChannelConfig(path string) *ChannelConfig {
	return &ChannelConfig{path: path}
}

type configFile struct {
	Channels []lps.Channel `yaml:"channels"`
}

// Channels parses the file and returns the channels in file order.
func (c *ChannelConfig) Channels(ctx context.Context) ([]lps.Channel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lps.Errorf(lps.ENOTFOUND, "channel config %s not found", c.path)
		}
		return nil, lps.Errorf(lps.EINTERNAL, "failed to read channel config: %v", err)
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, lps.Errorf(lps.EINVALID, "failed to parse %s: %v", c.path, err)
	}
	if len(cfg.Channels) == 0 {
		return nil, lps.Errorf(lps.EINVALID, "%s declares no channels", c.path)
	}

	for i := range cfg.Channels {
		if err := cfg.Channels[i].Validate(); err != nil {
			return nil, err
		}
	}
	return cfg.Channels, nil
}
