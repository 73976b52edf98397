package model

import "testing"

func TestVideoInfoFormattedDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration int
		expected string
	}{
		{name: "minutes and seconds", duration: 245, expected: "4:05"},
		{name: "under a minute", duration: 42, expected: "0:42"},
		{name: "unknown duration", duration: 0, expected: UnknownValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &VideoInfo{Duration: tt.duration}
			if got := v.FormattedDuration(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestVideoInfoFormattedUploadDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		expected string
	}{
		{name: "full date", date: "20240115", expected: "2024-01-15"},
		{name: "empty date", date: "", expected: UnknownValue},
		{name: "truncated date", date: "2024", expected: UnknownValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &VideoInfo{UploadDate: tt.date}
			if got := v.FormattedUploadDate(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestVideoInfoFormattedViewCount(t *testing.T) {
	tests := []struct {
		name     string
		count    int64
		expected string
	}{
		{name: "millions", count: 1234567, expected: "1,234,567"},
		{name: "hundreds", count: 999, expected: "999"},
		{name: "exact thousands", count: 1000, expected: "1,000"},
		{name: "zero views", count: 0, expected: UnknownValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &VideoInfo{ViewCount: tt.count}
			if got := v.FormattedViewCount(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNewPlaylistInfoDurations(t *testing.T) {
	videos := []PlaylistEntry{
		{ID: "a", Title: "First", Duration: 100},
		{ID: "b", Title: "Second", Duration: 200},
		{ID: "c", Title: "Third"}, // duration unknown
	}

	p := NewPlaylistInfo(videos)

	if p.TotalCount != 3 {
		t.Errorf("expected total count 3, got %d", p.TotalCount)
	}
	if p.TotalDuration != 300 {
		t.Errorf("expected known duration 300, got %d", p.TotalDuration)
	}
	// Average of known durations (150) extrapolated to all 3 videos.
	if p.EstimatedDuration != 450 {
		t.Errorf("expected estimated duration 450, got %d", p.EstimatedDuration)
	}
}

func TestNewPlaylistInfoNoKnownDurations(t *testing.T) {
	p := NewPlaylistInfo([]PlaylistEntry{{ID: "a"}, {ID: "b"}})

	if p.EstimatedDuration != 0 {
		t.Errorf("expected zero estimate, got %d", p.EstimatedDuration)
	}
	if p.FormattedDuration() != "Duration unknown" {
		t.Errorf("expected 'Duration unknown', got %q", p.FormattedDuration())
	}
}

func TestPlaylistInfoPreviewTitles(t *testing.T) {
	videos := []PlaylistEntry{
		{Title: "One"},
		{Title: ""},
		{Title: "Three"},
		{Title: "Four"},
	}

	titles := NewPlaylistInfo(videos).PreviewTitles(3)

	expected := []string{"One", "Video 2", "Three"}
	if len(titles) != len(expected) {
		t.Fatalf("expected %d titles, got %d", len(expected), len(titles))
	}
	for i, want := range expected {
		if titles[i] != want {
			t.Errorf("title %d: expected %q, got %q", i, want, titles[i])
		}
	}
}

func TestPlaylistInfoFormattedDuration(t *testing.T) {
	tests := []struct {
		name     string
		estimate int
		expected string
	}{
		{name: "hours and minutes", estimate: 7260, expected: "~2h 1m"},
		{name: "minutes only", estimate: 540, expected: "~9m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PlaylistInfo{EstimatedDuration: tt.estimate}
			if got := p.FormattedDuration(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
