package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/hoanghai81/lps"
	"github.com/hoanghai81/lps/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRunService_CreateRun(t *testing.T) {
	t.Parallel()

	t.Run("assigns an ID and persists the run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		ctx := context.Background()

		run := &lps.Run{
			TargetDay: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			Channels:  3,
		}
		require.NoError(t, svc.CreateRun(ctx, run))
		assert.NotEmpty(t, run.ID)
		assert.False(t, run.StartedAt.IsZero())

		got, err := svc.FindRuns(ctx, lps.RunFilter{ID: &run.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, run.ID, got[0].ID)
		assert.Equal(t, 3, got[0].Channels)
		assert.True(t, got[0].TargetDay.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
		assert.True(t, got[0].FinishedAt.IsZero())
	})

	t.Run("rejects a run without a target day", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		err := svc.CreateRun(context.Background(), &lps.Run{})
		require.Error(t, err)
		assert.Equal(t, lps.EINVALID, lps.ErrorCode(err))
	})
}

func TestRunService_FinishRun(t *testing.T) {
	t.Parallel()

	t.Run("stamps the run with final counts", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		ctx := context.Background()

		run := &lps.Run{TargetDay: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		require.NoError(t, svc.CreateRun(ctx, run))
		require.NoError(t, svc.FinishRun(ctx, run.ID, 120, 1))

		got, err := svc.FindRuns(ctx, lps.RunFilter{ID: &run.ID})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, 120, got[0].Programmes)
		assert.Equal(t, 1, got[0].Failed)
		assert.False(t, got[0].FinishedAt.IsZero())
	})

	t.Run("unknown run is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		err := svc.FinishRun(context.Background(), "no-such-run", 0, 0)
		require.Error(t, err)
		assert.Equal(t, lps.ENOTFOUND, lps.ErrorCode(err))
	})
}

func TestRunService_FindRuns(t *testing.T) {
	t.Parallel()

	t.Run("orders most recent first and paginates", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		ctx := context.Background()

		base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			run := &lps.Run{
				TargetDay: base.AddDate(0, 0, i),
				StartedAt: base.Add(time.Duration(i) * time.Hour),
			}
			require.NoError(t, svc.CreateRun(ctx, run))
		}

		got, err := svc.FindRuns(ctx, lps.RunFilter{Limit: 2})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.True(t, got[0].StartedAt.After(got[1].StartedAt))

		rest, err := svc.FindRuns(ctx, lps.RunFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		require.Len(t, rest, 1)
	})
}

func TestRunService_ChannelResults(t *testing.T) {
	t.Parallel()

	t.Run("saves a result with a page hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		ctx := context.Background()
		day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		run := &lps.Run{TargetDay: day}
		require.NoError(t, svc.CreateRun(ctx, run))

		res := &lps.ChannelResult{
			RunID:      run.ID,
			ChannelID:  "thvl1",
			Day:        day,
			PageHTML:   "<html>06:00 Thời sự</html>",
			Programmes: 12,
		}
		require.NoError(t, svc.SaveChannelResult(ctx, res))
		assert.NotEmpty(t, res.ID)
		assert.NotEmpty(t, res.PageHash)

		hash, err := svc.LastPageHash(ctx, "thvl1", day)
		require.NoError(t, err)
		assert.Equal(t, res.PageHash, hash)
	})

	t.Run("identical pages hash identically across runs", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		ctx := context.Background()
		day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

		var hashes []string
		for i := 0; i < 2; i++ {
			run := &lps.Run{TargetDay: day}
			require.NoError(t, svc.CreateRun(ctx, run))
			res := &lps.ChannelResult{
				RunID:     run.ID,
				ChannelID: "thvl1",
				Day:       day,
				PageHTML:  "<html>same page</html>",
			}
			require.NoError(t, svc.SaveChannelResult(ctx, res))
			hashes = append(hashes, res.PageHash)
		}
		assert.Equal(t, hashes[0], hashes[1])
	})

	t.Run("missing hash is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		_, err := svc.LastPageHash(context.Background(), "nope", time.Now())
		require.Error(t, err)
		assert.Equal(t, lps.ENOTFOUND, lps.ErrorCode(err))
	})

	t.Run("rejects a result without a run", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewRunService(openDB(t))
		err := svc.SaveChannelResult(context.Background(), &lps.ChannelResult{ChannelID: "thvl1"})
		require.Error(t, err)
		assert.Equal(t, lps.EINVALID, lps.ErrorCode(err))
	})
}
