package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hoanghai81/lps/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetry(t *testing.T) {
	t.Parallel()

	fastDelays := []time.Duration{time.Millisecond, time.Millisecond}

	t.Run("returns on first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "<html/>", nil
		}

		html, err := crawl.FetchWithRetry(context.Background(), "http://x", fetch, nil, fastDelays)
		require.NoError(t, err)
		assert.Equal(t, "<html/>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries until a fetch succeeds", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("connection reset")
			}
			return "ok", nil
		}

		html, err := crawl.FetchWithRetry(context.Background(), "http://x", fetch, nil, fastDelays)
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after exhausting delays", func(t *testing.T) {
		t.Parallel()

		calls := 0
		wantErr := errors.New("unreachable")
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", wantErr
		}

		var logged int
		logger := func(format string, args ...any) { logged++ }

		_, err := crawl.FetchWithRetry(context.Background(), "http://x", fetch, logger, fastDelays)
		assert.ErrorIs(t, err, wantErr)
		assert.Equal(t, 3, calls)
		assert.Equal(t, 2, logged)
	})

	t.Run("stops waiting when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(ctx context.Context, url string) (string, error) {
			cancel()
			return "", errors.New("down")
		}

		_, err := crawl.FetchWithRetry(ctx, "http://x", fetch, nil, []time.Duration{time.Hour})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
