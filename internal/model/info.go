package model

import "fmt"

// Upload date length in yt-dlp metadata (YYYYMMDD)
const uploadDateLength = 8

// UnknownValue is the placeholder for metadata yt-dlp did not report.
const UnknownValue = "Unknown"

// VideoInfo is a read-only descriptor of a single video, derived once from
// the metadata JSON yt-dlp dumps.
type VideoInfo struct {
	Title        string `json:"title"`
	Uploader     string `json:"uploader"`
	Duration     int    `json:"duration"`
	ViewCount    int64  `json:"view_count"`
	UploadDate   string `json:"upload_date"` // 8-digit YYYYMMDD
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail"`
	VideoID      string `json:"id"`
	URL          string `json:"webpage_url"`
}

// FormattedDuration returns the duration in M:SS format.
func (v *VideoInfo) FormattedDuration() string {
	if v.Duration <= 0 {
		return UnknownValue
	}
	return fmt.Sprintf("%d:%02d", v.Duration/60, v.Duration%60)
}

// FormattedUploadDate returns the upload date in YYYY-MM-DD format.
func (v *VideoInfo) FormattedUploadDate() string {
	if len(v.UploadDate) < uploadDateLength {
		return UnknownValue
	}
	return v.UploadDate[:4] + "-" + v.UploadDate[4:6] + "-" + v.UploadDate[6:8]
}

// FormattedViewCount returns the view count with thousands separators.
func (v *VideoInfo) FormattedViewCount() string {
	if v.ViewCount <= 0 {
		return UnknownValue
	}
	return groupDigits(v.ViewCount)
}

// groupDigits inserts commas every three digits.
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	out := make([]byte, 0, len(s)+len(s)/3)
	for i, c := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}

// PlaylistEntry is one raw per-video metadata record from a flattened
// playlist dump. Only the fields the core consumes are decoded.
type PlaylistEntry struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
}

// PlaylistInfo is a read-only descriptor of a playlist, derived once from a
// flattened playlist dump.
type PlaylistInfo struct {
	Videos            []PlaylistEntry
	TotalCount        int
	TotalDuration     int // sum of known durations, seconds
	EstimatedDuration int // extrapolated to all videos, seconds
}

// NewPlaylistInfo computes the duration aggregates from the raw entries. The
// estimate assumes videos with unknown duration match the average of the
// known ones.
func NewPlaylistInfo(videos []PlaylistEntry) *PlaylistInfo {
	p := &PlaylistInfo{
		Videos:     videos,
		TotalCount: len(videos),
	}

	known := 0
	for _, v := range videos {
		if v.Duration > 0 {
			p.TotalDuration += int(v.Duration)
			known++
		}
	}
	if known > 0 {
		avg := float64(p.TotalDuration) / float64(known)
		p.EstimatedDuration = int(avg * float64(p.TotalCount))
	}
	return p
}

// PreviewTitles returns the first count video titles.
func (p *PlaylistInfo) PreviewTitles(count int) []string {
	titles := make([]string, 0, count)
	for i, v := range p.Videos {
		if i >= count {
			break
		}
		title := v.Title
		if title == "" {
			title = fmt.Sprintf("Video %d", i+1)
		}
		titles = append(titles, title)
	}
	return titles
}

// FormattedDuration returns the estimated total duration as "~Xh Ym".
func (p *PlaylistInfo) FormattedDuration() string {
	if p.EstimatedDuration == 0 {
		return "Duration unknown"
	}
	hours := p.EstimatedDuration / 3600
	minutes := (p.EstimatedDuration % 3600) / 60
	if hours > 0 {
		return fmt.Sprintf("~%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("~%dm", minutes)
}
