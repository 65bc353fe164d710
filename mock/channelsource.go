package mock

import (
	"context"

	"github.com/hoanghai81/lps"
)

var _ lps.ChannelSource = (*ChannelSource)(nil)

// ChannelSource is a mock implementation of lps.ChannelSource.
type ChannelSource struct {
	ChannelsFn func(ctx context.Context) ([]lps.Channel, error)
}

func (s *ChannelSource) Channels(ctx context.Context) ([]lps.Channel, error) {
	return s.ChannelsFn(ctx)
}
