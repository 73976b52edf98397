package platform

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
)

// Markers in yt-dlp download lines. This is log scraping over yt-dlp's
// human-readable output, which is not a stable contract: the patterns here
// pin the format of current yt-dlp releases and the characterization tests
// exist to catch silent breakage when that format changes.
const (
	downloadLineMarker   = "[download]"
	destinationMarker    = "Destination:"
	destinationPrefix    = "[download] Destination: "
	alreadyDownloadedTag = "already been downloaded"
)

// Extraction patterns for download lines.
var (
	percentagePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)%`)
	speedPattern      = regexp.MustCompile(`(\d+(?:\.\d+)?[KMG]?iB/s)`)
	etaPattern        = regexp.MustCompile(`ETA (\S+)`)
)

// Status phrases for lines that carry no numeric progress, keyed by a
// case-insensitive substring of the line.
var statusPhrases = []struct {
	marker string
	phrase string
}{
	{marker: "merging formats", phrase: "Merging video and audio..."},
	{marker: "extractaudio", phrase: "Extracting audio..."},
	{marker: "downloading webpage", phrase: "Fetching video information..."},
	{marker: "downloading tv client config", phrase: "Loading video data..."},
}

// ParseProgress extracts progress information from one line of yt-dlp
// output. It returns nil unless the line carries the download marker and at
// least one recognizable signal, so callers never see empty events.
func ParseProgress(line string) *model.Progress {
	if line == "" || !strings.Contains(line, downloadLineMarker) {
		return nil
	}

	progress := &model.Progress{Percentage: model.NoPercentage}
	found := false

	if m := percentagePattern.FindStringSubmatch(line); m != nil {
		if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
			progress.Percentage = pct
			found = true
		}
	}
	if m := speedPattern.FindStringSubmatch(line); m != nil {
		progress.Speed = m[1]
		found = true
	}
	if m := etaPattern.FindStringSubmatch(line); m != nil {
		progress.ETA = m[1]
		found = true
	}

	switch {
	case strings.Contains(line, "%"):
		progress.Status = model.StatusDownloading
		found = true
	case strings.Contains(line, destinationMarker):
		progress.Status = model.StatusPreparing
		if idx := strings.Index(line, destinationPrefix); idx >= 0 {
			progress.FilePath = line[idx+len(destinationPrefix):]
		}
		found = true
	case strings.Contains(line, alreadyDownloadedTag):
		progress.Status = model.StatusExists
		found = true
	}

	if !found {
		return nil
	}
	return progress
}

// ParseStatus maps known substrings of a yt-dlp output line to fixed
// human-readable phrases. It returns "" for lines with no known marker.
func ParseStatus(line string) string {
	lower := strings.ToLower(line)
	for _, s := range statusPhrases {
		if strings.Contains(lower, s.marker) {
			return s.phrase
		}
	}
	return ""
}
