// Package fs loads channel lists from plain text files.
package fs

import (
	"bufio"
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/hoanghai81/lps"
)

// Ensure ChannelFile implements lps.ChannelSource at compile time.
var _ lps.ChannelSource = (*ChannelFile)(nil)

// ChannelFile reads channels from a pipe-delimited text file, one channel
// per line:
//
//	id | url | display name
//
// The name is optional, and a line holding a bare URL is accepted with an
// ID derived from the host. Blank lines and lines starting with # are
// ignored.
type ChannelFile struct {
	path string
}

// NewChannelFile creates a ChannelFile reading from path.
func NewChannelFile(path string) *ChannelFile {
	return &ChannelFile{path: path}
}

// Channels parses the file and returns the channels in file order.
func (f *ChannelFile) Channels(ctx context.Context) ([]lps.Channel, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, lps.Errorf(lps.ENOTFOUND, "channel file %s not found", f.path)
		}
		return nil, lps.Errorf(lps.EINTERNAL, "failed to open channel file: %v", err)
	}
	defer file.Close()

	var channels []lps.Channel
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		ch, err := parseChannelLine(line)
		if err != nil {
			return nil, lps.Errorf(lps.EINVALID, "%s:%d: %v", f.path, lineNo, err)
		}
		channels = append(channels, ch)
	}
	if err := scanner.Err(); err != nil {
		return nil, lps.Errorf(lps.EINTERNAL, "failed to read channel file: %v", err)
	}

	return channels, nil
}

func parseChannelLine(line string) (lps.Channel, error) {
	parts := strings.Split(line, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var ch lps.Channel
	switch {
	case len(parts) == 1:
		// Bare URL; derive the ID from the host.
		id, err := idFromURL(parts[0])
		if err != nil {
			return lps.Channel{}, err
		}
		ch = lps.Channel{ID: id, URL: parts[0]}
	case len(parts) >= 2:
		ch = lps.Channel{ID: parts[0], URL: parts[1]}
		if len(parts) >= 3 {
			ch.Name = parts[2]
		}
	}
	if ch.Name == "" {
		ch.Name = strings.ToUpper(ch.ID)
	}

	if err := ch.Validate(); err != nil {
		return lps.Channel{}, err
	}
	return ch, nil
}

func idFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "", lps.Errorf(lps.EINVALID, "invalid channel URL %q", rawURL)
	}
	host := strings.TrimPrefix(u.Host, "www.")
	if i := strings.IndexByte(host, '.'); i > 0 {
		host = host[:i]
	}
	return host, nil
}
