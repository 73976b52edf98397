// Package metadata fetches video and playlist descriptors by invoking
// yt-dlp in its non-downloading dump modes with bounded timeouts. Failures
// never propagate to the caller as errors: a nil descriptor plus a log event
// is the whole contract.
package metadata

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/event"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
)

// Bounded timeouts for the dump invocations.
const (
	VideoInfoTimeout    = 30 * time.Second
	PlaylistInfoTimeout = 30 * time.Second
)

// DefaultBinary is the yt-dlp executable name resolved via PATH.
const DefaultBinary = "yt-dlp"

// Fetcher runs yt-dlp metadata dumps. Both methods block and are expected
// to be called off the consumer's primary thread of control.
type Fetcher struct {
	binary   string
	logger   *log.Logger
	listener event.Listener
}

// NewFetcher creates a fetcher that resolves yt-dlp via PATH.
func NewFetcher(logger *log.Logger) *Fetcher {
	return &Fetcher{
		binary:   DefaultBinary,
		logger:   logger,
		listener: event.Noop{},
	}
}

// SetBinary overrides the yt-dlp executable path.
func (f *Fetcher) SetBinary(path string) {
	f.binary = path
}

// SetListener replaces the event listener. A nil listener restores the
// discarding default.
func (f *Fetcher) SetListener(l event.Listener) {
	if l == nil {
		l = event.Noop{}
	}
	f.listener = l
}

// VideoInfo fetches the descriptor for a single video. It returns nil on
// timeout, a nonzero exit, or malformed JSON.
func (f *Fetcher) VideoInfo(ctx context.Context, url string) *model.VideoInfo {
	f.listener.OnLog("Fetching video information...")

	ctx, cancel := context.WithTimeout(ctx, VideoInfoTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.binary, "--dump-json", "--no-download", url)
	output, err := cmd.Output()
	if err != nil {
		f.report(ctx, "Could not fetch video information", err)
		return nil
	}

	firstLine, _, _ := strings.Cut(strings.TrimSpace(string(output)), "\n")
	var info model.VideoInfo
	if err := json.Unmarshal([]byte(firstLine), &info); err != nil {
		f.logger.Warn("malformed video metadata", "err", err)
		f.listener.OnLog("Error parsing video information")
		return nil
	}

	f.listener.OnLog("Video information loaded")
	return &info
}

// PlaylistInfo fetches the descriptor for a playlist using the flattened
// dump mode. Lines that fail to parse are skipped; nil is returned when no
// videos were recovered even if yt-dlp exited cleanly.
func (f *Fetcher) PlaylistInfo(ctx context.Context, url string) *model.PlaylistInfo {
	f.listener.OnLog("Analyzing playlist...")

	ctx, cancel := context.WithTimeout(ctx, PlaylistInfoTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.binary, "--flat-playlist", "--dump-json", "--quiet", url)
	output, err := cmd.Output()
	if err != nil {
		f.report(ctx, "Could not fetch playlist information", err)
		return nil
	}

	var videos []model.PlaylistEntry
	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry model.PlaylistEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			// Tolerate partial or mixed output.
			continue
		}
		videos = append(videos, entry)
	}

	if len(videos) == 0 {
		f.listener.OnLog("No videos found in playlist")
		return nil
	}

	info := model.NewPlaylistInfo(videos)
	f.logger.Debug("playlist analyzed", "videos", info.TotalCount)
	f.listener.OnLog("Playlist analyzed")
	return info
}

// report emits a diagnostic for a failed invocation, distinguishing the
// timeout case.
func (f *Fetcher) report(ctx context.Context, what string, err error) {
	if ctx.Err() == context.DeadlineExceeded {
		f.logger.Warn("metadata fetch timed out")
		f.listener.OnLog("Request timed out while fetching information")
		return
	}
	f.logger.Warn("metadata fetch failed", "err", err)
	f.listener.OnLog(what)
}
