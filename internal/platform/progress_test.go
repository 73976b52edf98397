package platform

import (
	"testing"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
)

// These tests pin the output format of current yt-dlp releases. They are
// characterization tests: when yt-dlp changes its human-readable output the
// expectations here go stale and extraction silently degrades, so a failure
// after a tool upgrade means the patterns need re-pinning, not that the
// parser regressed.

func TestParseProgressDownloadLine(t *testing.T) {
	line := "[download]  42.0% of 10.00MiB at 1.50MiB/s ETA 00:10"

	progress := ParseProgress(line)
	if progress == nil {
		t.Fatal("expected progress event, got nil")
	}

	if progress.Percentage != 42.0 {
		t.Errorf("expected percentage 42.0, got %v", progress.Percentage)
	}
	if progress.Speed != "1.50MiB/s" {
		t.Errorf("expected speed '1.50MiB/s', got %q", progress.Speed)
	}
	if progress.ETA != "00:10" {
		t.Errorf("expected ETA '00:10', got %q", progress.ETA)
	}
	if progress.Status != model.StatusDownloading {
		t.Errorf("expected status %q, got %q", model.StatusDownloading, progress.Status)
	}
}

func TestParseProgressDestinationLine(t *testing.T) {
	line := "[download] Destination: /x/y/video.mp4"

	progress := ParseProgress(line)
	if progress == nil {
		t.Fatal("expected progress event, got nil")
	}

	if progress.Status != model.StatusPreparing {
		t.Errorf("expected status %q, got %q", model.StatusPreparing, progress.Status)
	}
	if progress.FilePath != "/x/y/video.mp4" {
		t.Errorf("expected file path '/x/y/video.mp4', got %q", progress.FilePath)
	}
	if progress.HasPercentage() {
		t.Errorf("expected no percentage, got %v", progress.Percentage)
	}
}

func TestParseProgressAlreadyDownloaded(t *testing.T) {
	line := "[download] /x/y/video.mp4 has already been downloaded"

	progress := ParseProgress(line)
	if progress == nil {
		t.Fatal("expected progress event, got nil")
	}
	if progress.Status != model.StatusExists {
		t.Errorf("expected status %q, got %q", model.StatusExists, progress.Status)
	}
}

func TestParseProgressNoMatch(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{name: "empty line", line: ""},
		{name: "no download marker", line: "42.0% of 10.00MiB at 1.50MiB/s"},
		{name: "unrelated log line", line: "[youtube] dQw4w9WgXcQ: Downloading android player API JSON"},
		{name: "marker but no signals", line: "[download] Resuming"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if progress := ParseProgress(tt.line); progress != nil {
				t.Errorf("expected nil, got %+v", progress)
			}
		})
	}
}

func TestParseProgressSpeedUnits(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "KiB per second", line: "[download]   5.0% of 2.00MiB at 512.00KiB/s ETA 00:30", expected: "512.00KiB/s"},
		{name: "GiB per second", line: "[download]  99.9% of 8.00GiB at 1.20GiB/s ETA 00:01", expected: "1.20GiB/s"},
		{name: "plain bytes", line: "[download]   1.0% of 500.00KiB at 900.00iB/s ETA 01:00", expected: "900.00iB/s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := ParseProgress(tt.line)
			if progress == nil {
				t.Fatal("expected progress event, got nil")
			}
			if progress.Speed != tt.expected {
				t.Errorf("expected speed %q, got %q", tt.expected, progress.Speed)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{name: "merging", line: "[Merger] Merging formats into \"video.mp4\"", expected: "Merging video and audio..."},
		{name: "extracting audio", line: "[ExtractAudio] Destination: song.mp3", expected: "Extracting audio..."},
		{name: "fetching page", line: "[youtube] abc: Downloading webpage", expected: "Fetching video information..."},
		{name: "loading config", line: "[youtube] abc: Downloading tv client config", expected: "Loading video data..."},
		{name: "no marker", line: "[download]  42.0% of 10.00MiB", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseStatus(tt.line); got != tt.expected {
				t.Errorf("ParseStatus(%q) = %q, expected %q", tt.line, got, tt.expected)
			}
		})
	}
}
