// Package cli implements the command-line front-end. It is presentation
// plumbing only: commands translate flags into core requests and render
// the events the core emits.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/compress"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/config"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/core"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/download"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/platform"
)

var (
	flagQuality   string
	flagOutput    string
	flagPlaylist  bool
	flagStart     int
	flagEnd       int
	flagQuantity  string
	flagSubtitles bool
	flagThumbnail bool
	flagCompress  bool
	flagVerbose   bool
	flagBinary    string
)

var rootCmd = &cobra.Command{
	Use:   "shtxd-clip <url>",
	Short: "Download YouTube videos and playlists through yt-dlp",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,

	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagQuality, "quality", "q", "", "quality preset: "+qualityList())
	flags.StringVarP(&flagOutput, "output", "o", "", "output directory (default: settings download path)")
	flags.BoolVarP(&flagPlaylist, "playlist", "p", false, "download the whole playlist")
	flags.IntVar(&flagStart, "start", 1, "first playlist item")
	flags.IntVar(&flagEnd, "end", 10, "last playlist item")
	flags.StringVar(&flagQuantity, "quantity", "", "playlist item count, or \"All\"")
	flags.BoolVarP(&flagSubtitles, "subtitles", "s", false, "download English subtitles")
	flags.BoolVarP(&flagThumbnail, "thumbnail", "t", false, "save the thumbnail")
	flags.BoolVarP(&flagCompress, "compress", "c", false, "re-encode downloaded files with ffmpeg to cut size")

	pflags := rootCmd.PersistentFlags()
	pflags.BoolVarP(&flagVerbose, "verbose", "v", false, "log yt-dlp output lines")
	pflags.StringVar(&flagBinary, "binary", "", "yt-dlp executable to use")
}

// Execute runs the root command tree.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

func newLogger() *log.Logger {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

func newCore(logger *log.Logger) *core.Core {
	c := core.New(logger)
	if flagBinary != "" {
		c.SetBinary(flagBinary)
	}
	return c
}

func qualityList() string {
	options := model.QualityOptions()
	names := make([]string, len(options))
	for i, q := range options {
		names[i] = q.String()
	}
	return strings.Join(names, ", ")
}

func runDownload(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	c := newCore(logger)

	url := strings.TrimSpace(args[0])
	if !c.ValidateURL(url) {
		return fmt.Errorf("not a recognized video URL: %s", url)
	}

	settings := config.NewSettings("")
	if err := settings.Load(); err != nil {
		logger.Warn("failed to load settings, using defaults", "err", err)
	}

	req, err := buildRequest(cmd, c, logger, settings, url)
	if err != nil {
		return err
	}

	renderer := newRenderer(logger)
	c.SetListener(renderer)

	if missing := platform.MissingDependencies(); len(missing) > 0 {
		return fmt.Errorf("%s", platform.FormatDependencyError(missing))
	}

	logger.Info("starting download", "url", url, "quality", req.Quality, "output", req.OutputPath)
	if !c.Download(req) {
		return fmt.Errorf("download could not be started")
	}

	outcome := waitOutcome(cmd.Context(), c, renderer)
	if !outcome.Success {
		return outcomeError(outcome)
	}

	recordHistory(logger, settings, outcome)
	logger.Info("download finished", "files", len(outcome.Files), "dir", outcome.OutputPath)

	if flagCompress {
		return compressFiles(cmd.Context(), logger, renderer, outcome.Files)
	}
	return nil
}

// compressFiles re-encodes each downloaded file in place next to the
// original.
func compressFiles(ctx context.Context, logger *log.Logger, renderer *progressRenderer, files []string) error {
	if len(files) == 0 {
		logger.Warn("nothing to compress: no destination paths were reported")
		return nil
	}

	compressor := compress.NewCompressor(logger)
	compressor.SetListener(renderer)

	for _, file := range files {
		output, err := compressor.Compress(ctx, file)
		renderer.finishBar()
		if err != nil {
			return fmt.Errorf("compression failed for %s: %w", filepath.Base(file), err)
		}
		logger.Info("compressed", "file", filepath.Base(output))
	}
	return nil
}

// buildRequest merges flags over persisted settings into a download request.
func buildRequest(cmd *cobra.Command, c *core.Core, logger *log.Logger, settings *config.Settings, url string) (*model.Request, error) {
	output := flagOutput
	if output == "" {
		output = settings.DownloadPath()
	}

	req := model.NewRequest(url, output)
	req.Quality = settings.DefaultQuality()
	req.PlaylistQuantity = settings.PlaylistQuantity()

	if cmd.Flags().Changed("quality") {
		q := model.Quality(flagQuality)
		if !q.IsValid() {
			return nil, fmt.Errorf("unknown quality %q, expected one of: %s", flagQuality, qualityList())
		}
		req.Quality = q
	}
	if cmd.Flags().Changed("quantity") {
		req.PlaylistQuantity = flagQuantity
	}
	req.DownloadPlaylist = flagPlaylist
	req.PlaylistStart = flagStart
	req.PlaylistEnd = flagEnd
	req.Subtitles = flagSubtitles
	req.Thumbnail = flagThumbnail

	if c.IsPlaylistURL(url) && !flagPlaylist {
		logger.Info("URL points at a playlist, downloading the single video; pass --playlist for all items")
	}
	return req, nil
}

// waitOutcome blocks until the download finishes, forwarding context
// cancellation (Ctrl-C) as a cancel request.
func waitOutcome(ctx context.Context, c *core.Core, renderer *progressRenderer) model.Outcome {
	select {
	case outcome := <-renderer.outcomes:
		return outcome
	case <-ctx.Done():
		c.Cancel()
		return <-renderer.outcomes
	}
}

func outcomeError(outcome model.Outcome) error {
	switch outcome.Reason {
	case model.ReasonCancelled:
		return fmt.Errorf("download cancelled")
	case model.ReasonMissingDependency:
		return fmt.Errorf("%s", download.MissingToolMessage)
	case model.ReasonFailed:
		return fmt.Errorf("yt-dlp exited with code %d", outcome.ExitCode)
	default:
		return fmt.Errorf("download error: %s", outcome.Err)
	}
}

func recordHistory(logger *log.Logger, settings *config.Settings, outcome model.Outcome) {
	title := outcome.Request.URL
	if len(outcome.Files) > 0 {
		base := filepath.Base(outcome.Files[0])
		title = strings.TrimSuffix(base, filepath.Ext(base))
	}

	entry := model.NewHistoryEntry(title, outcome.Request.URL, outcome.Request.Quality.String(), outcome.OutputPath)
	if err := config.NewHistory("").Add(entry); err != nil {
		logger.Warn("failed to record history", "err", err)
	}

	// An explicit output directory becomes the new default.
	if flagOutput != "" && flagOutput != settings.DownloadPath() {
		settings.SetDownloadPath(flagOutput)
		if err := settings.Save(); err != nil {
			logger.Warn("failed to save settings", "err", err)
		}
	}
}
