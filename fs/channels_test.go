package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hoanghai81/lps"
	"github.com/hoanghai81/lps/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChannelFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "kenh.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestChannelFile_Channels(t *testing.T) {
	t.Parallel()

	t.Run("parses pipe-delimited lines", func(t *testing.T) {
		t.Parallel()

		path := writeChannelFile(t, ""+
			"# kênh truyền hình\n"+
			"thvl1 | https://thvl.vn/lich-phat-song | THVL1\n"+
			"\n"+
			"antv | https://antv.gov.vn/lps\n")

		got, err := fs.NewChannelFile(path).Channels(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, lps.Channel{ID: "thvl1", Name: "THVL1", URL: "https://thvl.vn/lich-phat-song"}, got[0])
		assert.Equal(t, "antv", got[1].ID)
		assert.Equal(t, "ANTV", got[1].Name)
	})

	t.Run("derives the ID from a bare URL", func(t *testing.T) {
		t.Parallel()

		path := writeChannelFile(t, "https://www.thvl.vn/lich-phat-song\n")

		got, err := fs.NewChannelFile(path).Channels(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "thvl", got[0].ID)
		assert.Equal(t, "THVL", got[0].Name)
	})

	t.Run("rejects lines without a URL", func(t *testing.T) {
		t.Parallel()

		path := writeChannelFile(t, "thvl1 | \n")

		_, err := fs.NewChannelFile(path).Channels(context.Background())
		require.Error(t, err)
		assert.Equal(t, lps.EINVALID, lps.ErrorCode(err))
		assert.Contains(t, err.Error(), ":1:")
	})

	t.Run("missing file is ENOTFOUND", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewChannelFile(filepath.Join(t.TempDir(), "nope.txt")).Channels(context.Background())
		require.Error(t, err)
		assert.Equal(t, lps.ENOTFOUND, lps.ErrorCode(err))
	})
}
