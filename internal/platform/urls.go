package platform

import (
	"regexp"
	"strings"
)

// Playlist URL markers
const (
	playlistQueryMarker = "playlist?list="
	listParamMarker     = "&list="
)

// Recognized YouTube URL shapes: watch, short link, embed, legacy /v/ and
// explicit playlist.
var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/watch\?v=[\w-]+`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtu\.be/[\w-]+`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/embed/[\w-]+`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/v/[\w-]+`),
	regexp.MustCompile(`^(?:https?://)?(?:www\.)?youtube\.com/playlist\?list=[\w-]+`),
}

var (
	videoIDPattern    = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/|youtube\.com/embed/)([^&\n?#]+)`)
	playlistIDPattern = regexp.MustCompile(`list=([^&\n?#]+)`)
)

// IsValidVideoURL reports whether the trimmed input matches one of the
// recognized YouTube URL shapes. Empty or malformed input returns false.
func IsValidVideoURL(url string) bool {
	url = strings.TrimSpace(url)
	if url == "" {
		return false
	}
	for _, pattern := range videoURLPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}

// IsPlaylistURL reports whether the URL carries a playlist list marker.
func IsPlaylistURL(url string) bool {
	if url == "" {
		return false
	}
	return strings.Contains(url, playlistQueryMarker) || strings.Contains(url, listParamMarker)
}

// ExtractVideoID pulls the video identifier out of a YouTube URL, or returns
// "" when no shape matches.
func ExtractVideoID(url string) string {
	if m := videoIDPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

// ExtractPlaylistID pulls the playlist identifier out of a YouTube URL, or
// returns "" when the URL has no list parameter.
func ExtractPlaylistID(url string) string {
	if m := playlistIDPattern.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}
