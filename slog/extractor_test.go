package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hoanghai81/lps"
	"github.com/hoanghai81/lps/mock"
	lpsslog "github.com/hoanghai81/lps/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs strategy and entry count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html string) ([]lps.Entry, error) {
				return []lps.Entry{{TimeText: "06:00", TitleText: "Thời sự"}}, nil
			},
			NameFn: func() string { return "table" },
		}

		extractor := lpsslog.NewLoggingExtractor(inner, logger)
		entries, err := extractor.Extract("<html/>")

		require.NoError(t, err)
		assert.Len(t, entries, 1)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "strategy=table")
		assert.Contains(t, output, "entries=1")
	})

	t.Run("name delegates to the wrapped extractor", func(t *testing.T) {
		t.Parallel()

		inner := &mock.Extractor{NameFn: func() string { return "pipe" }}
		extractor := lpsslog.NewLoggingExtractor(inner, slog.New(slog.DiscardHandler))
		assert.Equal(t, "pipe", extractor.Name())
	})
}
