package main_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/hoanghai81/lps"
	main "github.com/hoanghai81/lps/cmd/lpscrawl"
	"github.com/hoanghai81/lps/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const schedulePage = `<html><body>
<table>
<tr><th>Giờ</th><th>Chương trình</th></tr>
<tr><td>06:00</td><td>Thời sự</td></tr>
<tr><td>07:00</td><td>Phim truyện</td></tr>
<tr><td>08:30</td><td>Ca nhạc</td></tr>
</table>
</body></html>`

func newMain(t *testing.T) *main.Main {
	t.Helper()
	m := main.NewMain()
	m.DBPath = filepath.Join(t.TempDir(), "lps.db")
	return m
}

func TestMain_Run(t *testing.T) {
	t.Parallel()

	t.Run("no arguments shows help and errors", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := newMain(t).Run(context.Background(), nil, &stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no command specified")
		assert.Contains(t, stdout.String(), "crawl")
	})

	t.Run("help exits cleanly", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := newMain(t).Run(context.Background(), []string{"--help"}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "lpscrawl")
	})

	t.Run("runs on a fresh database reports none", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := newMain(t).Run(context.Background(), []string{"runs"}, &stdout, &stderr)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs recorded")
	})

	t.Run("runs surfaces a history service failure", func(t *testing.T) {
		t.Parallel()

		m := newMain(t)
		m.Runs = &mock.RunService{
			FindRunsFn: func(ctx context.Context, filter lps.RunFilter) ([]*lps.Run, error) {
				return nil, lps.Errorf(lps.EINTERNAL, "history unavailable")
			},
		}

		var stdout, stderr bytes.Buffer
		err := m.Run(context.Background(), []string{"runs"}, &stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, stderr.String(), "history unavailable")
	})

	t.Run("crawl previews a guide from a text channel list", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(schedulePage))
		}))
		defer server.Close()

		channelFile := filepath.Join(t.TempDir(), "kenh.txt")
		require.NoError(t, os.WriteFile(channelFile, []byte("demo | "+server.URL+" | Demo TV\n"), 0o644))

		var stdout, stderr bytes.Buffer
		m := newMain(t)
		err := m.Run(context.Background(), []string{
			"crawl", channelFile,
			"--date", "2024-01-01",
			"--preview",
			"--rps", "1000",
		}, &stdout, &stderr)
		require.NoError(t, err)

		out := stdout.String()
		assert.Contains(t, out, "Demo TV (demo)")
		assert.Contains(t, out, "Thời sự")
		assert.Contains(t, out, "06:00 - 07:00")
	})

	t.Run("crawl with --today-only drops next-day programmes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(schedulePage))
		}))
		defer server.Close()

		channelFile := filepath.Join(t.TempDir(), "kenh.txt")
		require.NoError(t, os.WriteFile(channelFile, []byte("demo | "+server.URL+"\n"), 0o644))

		var stdout, stderr bytes.Buffer
		err := newMain(t).Run(context.Background(), []string{
			"crawl", channelFile,
			"--date", "2024-01-01",
			"--preview",
			"--today-only",
			"--rps", "1000",
		}, &stdout, &stderr)
		require.NoError(t, err)

		// Both day pages serve the same listing, so without the window the
		// guide would carry six programmes across two days.
		assert.Contains(t, stdout.String(), "(demo): 3 programmes")
	})

	t.Run("crawl writes an XMLTV file and records the run", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(schedulePage))
		}))
		defer server.Close()

		dir := t.TempDir()
		channelFile := filepath.Join(dir, "kenh.txt")
		require.NoError(t, os.WriteFile(channelFile, []byte("demo | "+server.URL+"\n"), 0o644))
		outPath := filepath.Join(dir, "guide.xml")

		m := newMain(t)
		var stdout, stderr bytes.Buffer
		err := m.Run(context.Background(), []string{
			"crawl", channelFile,
			"--date", "2024-01-01",
			"--out", outPath,
			"--rps", "1000",
		}, &stdout, &stderr)
		require.NoError(t, err)

		data, err := os.ReadFile(outPath)
		require.NoError(t, err)
		assert.Contains(t, string(data), `channel="demo"`)
		assert.Contains(t, string(data), "Thời sự")

		var runsOut bytes.Buffer
		err = m.Run(context.Background(), []string{"runs"}, &runsOut, &stderr)
		require.NoError(t, err)
		assert.Contains(t, runsOut.String(), "2024-01-01")
		assert.Contains(t, runsOut.String(), "channels=1")
	})

	t.Run("crawl rejects a malformed date", func(t *testing.T) {
		t.Parallel()

		channelFile := filepath.Join(t.TempDir(), "kenh.txt")
		require.NoError(t, os.WriteFile(channelFile, []byte("demo | https://example.com\n"), 0o644))

		var stdout, stderr bytes.Buffer
		err := newMain(t).Run(context.Background(), []string{
			"crawl", channelFile, "--date", "01/01/2024",
		}, &stdout, &stderr)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid date")
	})
}
