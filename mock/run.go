package mock

import (
	"context"
	"time"

	"github.com/hoanghai81/lps"
)

var _ lps.RunService = (*RunService)(nil)

// RunService is a mock implementation of lps.RunService.
type RunService struct {
	CreateRunFn         func(ctx context.Context, run *lps.Run) error
	FinishRunFn         func(ctx context.Context, id string, programmes, failed int) error
	FindRunsFn          func(ctx context.Context, filter lps.RunFilter) ([]*lps.Run, error)
	SaveChannelResultFn func(ctx context.Context, result *lps.ChannelResult) error
	LastPageHashFn      func(ctx context.Context, channelID string, day time.Time) (string, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *lps.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, id string, programmes, failed int) error {
	return s.FinishRunFn(ctx, id, programmes, failed)
}

func (s *RunService) FindRuns(ctx context.Context, filter lps.RunFilter) ([]*lps.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) SaveChannelResult(ctx context.Context, result *lps.ChannelResult) error {
	return s.SaveChannelResultFn(ctx, result)
}

func (s *RunService) LastPageHash(ctx context.Context, channelID string, day time.Time) (string, error) {
	return s.LastPageHashFn(ctx, channelID, day)
}
