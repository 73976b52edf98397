package download

import (
	"path/filepath"
	"strconv"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
)

// Output template combining uploader and title. The placeholders belong to
// yt-dlp's output-template grammar, not Go formatting.
const outputTemplate = "%(uploader)s - %(title)s.%(ext)s"

// Format-selection expressions per quality preset. These are pinned against
// yt-dlp's current format-selection syntax; if that grammar changes the
// mapping silently breaks, which is why the characterization tests exist.
const (
	formatBest  = "bv*+ba[ext=m4a]/best[ext=mp4]"
	format1080p = "bv*[height<=1080]+ba[ext=m4a]/best[height<=1080]"
	format720p  = "bv*[height<=720]+ba[ext=m4a]/best[height<=720]"
	formatWorst = "worst[ext=mp4]"
	formatAudio = "bestaudio"
)

// buildArgs constructs the yt-dlp argument vector for a request. It is a
// pure function of the request.
func buildArgs(req *model.Request) []string {
	var args []string

	switch req.Quality {
	case model.Quality1080p:
		args = append(args, "-f", format1080p, "--merge-output-format", "mp4")
	case model.Quality720p:
		args = append(args, "-f", format720p, "--merge-output-format", "mp4")
	case model.QualityWorst:
		args = append(args, "-f", formatWorst)
	case model.QualityAudio:
		args = append(args, "-f", formatAudio, "--extract-audio", "--audio-format", "mp3")
	default:
		args = append(args, "-f", formatBest, "--merge-output-format", "mp4")
	}

	if req.DownloadPlaylist {
		args = append(args, playlistArgs(req)...)
	} else {
		args = append(args, "--no-playlist")
	}

	if req.Subtitles {
		args = append(args, "--write-subs", "--write-auto-subs", "--sub-lang", "en")
	}
	if req.Thumbnail {
		args = append(args, "--write-thumbnail")
	}

	args = append(args, "-o", filepath.Join(req.OutputPath, outputTemplate))
	args = append(args, "--ignore-errors", "--no-warnings")
	args = append(args, req.URL)
	return args
}

// playlistArgs maps the playlist selection to range flags: an explicit valid
// start/end pair wins, then a numeric quantity, then the default quantity.
// "All" means no limiting flags at all.
func playlistArgs(req *model.Request) []string {
	if req.PlaylistQuantity == model.PlaylistQuantityAll {
		return nil
	}

	if req.PlaylistStart > 0 && req.PlaylistEnd > 0 {
		if req.PlaylistStart <= req.PlaylistEnd {
			return []string{
				"--playlist-start", strconv.Itoa(req.PlaylistStart),
				"--playlist-end", strconv.Itoa(req.PlaylistEnd),
			}
		}
		// Inverted range: fall back to the quantity.
		return []string{"--playlist-end", numericQuantity(req.PlaylistQuantity)}
	}

	return []string{"--playlist-end", numericQuantity(req.PlaylistQuantity)}
}

// numericQuantity validates the quantity string, falling back to the default
// when it is not a positive number.
func numericQuantity(quantity string) string {
	if n, err := strconv.Atoi(quantity); err == nil && n > 0 {
		return quantity
	}
	return model.DefaultPlaylistQuantity
}
