package model

// Quality presets for downloads
type Quality string

const (
	QualityBest  Quality = "best"
	Quality1080p Quality = "1080p"
	Quality720p  Quality = "720p"
	QualityWorst Quality = "worst"
	QualityAudio Quality = "audio"
)

// String returns the string representation of Quality
func (q Quality) String() string {
	return string(q)
}

// IsValid reports whether q is one of the recognized presets.
func (q Quality) IsValid() bool {
	switch q {
	case QualityBest, Quality1080p, Quality720p, QualityWorst, QualityAudio:
		return true
	}
	return false
}

// QualityOptions returns the presets in display order.
func QualityOptions() []Quality {
	return []Quality{QualityBest, Quality1080p, Quality720p, QualityWorst, QualityAudio}
}

// Playlist quantity defaults
const (
	PlaylistQuantityAll     = "All"
	DefaultPlaylistQuantity = "10"
)

// Request describes a single download attempt. It is constructed fresh per
// attempt and must not be mutated after being handed to the download engine.
type Request struct {
	URL              string
	Quality          Quality
	DownloadPlaylist bool
	PlaylistStart    int
	PlaylistEnd      int
	PlaylistQuantity string // numeric string or PlaylistQuantityAll
	Subtitles        bool
	Thumbnail        bool
	OutputPath       string
}

// NewRequest creates a request with the default quality, playlist range and
// quantity filled in.
func NewRequest(url, outputPath string) *Request {
	return &Request{
		URL:              url,
		Quality:          QualityBest,
		PlaylistStart:    1,
		PlaylistEnd:      10,
		PlaylistQuantity: DefaultPlaylistQuantity,
		OutputPath:       outputPath,
	}
}
