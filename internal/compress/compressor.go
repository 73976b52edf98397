// Package compress re-encodes finished downloads with ffmpeg to cut file
// size. Progress is reported through the same listener boundary the
// download engine uses.
package compress

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/event"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
)

// Encoding settings
const (
	videoCodec   = "libx264"
	videoPreset  = "medium"
	videoCRF     = "23"
	audioCodec   = "aac"
	audioBitrate = "128k"

	// MP4 header up front so playback can start before the file is read fully.
	fastStartFlag = "+faststart"

	compressedSuffix = "-compressed"
	outputExtension  = ".mp4"
)

// Tool invocation
const (
	DefaultFFmpeg  = "ffmpeg"
	DefaultFFprobe = "ffprobe"

	// ffmpeg -progress key carrying the current position in microseconds.
	progressTimePrefix = "out_time_us="

	ProbeTimeout = 10 * time.Second
)

// Compressor runs one ffmpeg re-encode at a time. Cancellation goes
// through the context; a cancelled or failed run removes its partial
// output file.
type Compressor struct {
	ffmpeg   string
	ffprobe  string
	logger   *log.Logger
	listener event.Listener
}

// NewCompressor creates a compressor with no-op event delivery.
func NewCompressor(logger *log.Logger) *Compressor {
	return &Compressor{
		ffmpeg:   DefaultFFmpeg,
		ffprobe:  DefaultFFprobe,
		logger:   logger,
		listener: event.Noop{},
	}
}

// SetBinaries overrides the ffmpeg and ffprobe executables.
func (c *Compressor) SetBinaries(ffmpeg, ffprobe string) {
	c.ffmpeg = ffmpeg
	c.ffprobe = ffprobe
}

// SetListener replaces the event listener. Pass nil to silence events.
func (c *Compressor) SetListener(l event.Listener) {
	if l == nil {
		l = event.Noop{}
	}
	c.listener = l
}

// OutputPath returns the destination for a compressed copy of inputPath.
func OutputPath(inputPath string) string {
	base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
	return base + compressedSuffix + outputExtension
}

// Compress re-encodes inputPath and returns the output path. The input
// file is left untouched.
func (c *Compressor) Compress(ctx context.Context, inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); err != nil {
		return "", fmt.Errorf("input file not readable: %w", err)
	}

	duration, err := c.probeDuration(ctx, inputPath)
	if err != nil {
		return "", err
	}

	jobID := uuid.NewString()
	outputPath := OutputPath(inputPath)
	c.logger.Info("compression started", "job", jobID, "input", inputPath, "output", outputPath)

	cmd := exec.CommandContext(ctx, c.ffmpeg, buildFFmpegArgs(inputPath, outputPath)...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return "", fmt.Errorf("failed to create progress pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("failed to start %s: %w", c.ffmpeg, err)
	}

	scanner := bufio.NewScanner(stderr)
	for scanner.Scan() {
		c.reportProgress(strings.TrimSpace(scanner.Text()), duration)
	}

	if err := cmd.Wait(); err != nil {
		os.Remove(outputPath)
		if ctx.Err() != nil {
			return "", fmt.Errorf("compression cancelled: %w", ctx.Err())
		}
		return "", fmt.Errorf("%s failed: %w", c.ffmpeg, err)
	}

	c.logger.Info("compression finished", "job", jobID, "output", outputPath)
	return outputPath, nil
}

// reportProgress turns one ffmpeg -progress line into a listener event.
func (c *Compressor) reportProgress(line string, totalDuration float64) {
	if !strings.HasPrefix(line, progressTimePrefix) || totalDuration <= 0 {
		return
	}
	micros, err := strconv.ParseInt(strings.TrimPrefix(line, progressTimePrefix), 10, 64)
	if err != nil {
		return
	}

	pct := float64(micros) / 1e6 / totalDuration * 100
	if pct > 100 {
		pct = 100
	}
	c.listener.OnProgress(model.Progress{
		Percentage: pct,
		Status:     model.StatusDownloading,
		StatusText: "Compressing video...",
	})
}

// probeDuration asks ffprobe for the input length in seconds, needed to
// turn ffmpeg's absolute positions into percentages.
func (c *Compressor) probeDuration(ctx context.Context, inputPath string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		inputPath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("failed to probe %s: %w", inputPath, err)
	}

	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, errors.New("ffprobe returned no usable duration")
	}
	return duration, nil
}

func buildFFmpegArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-i", inputPath,
		"-c:v", videoCodec,
		"-preset", videoPreset,
		"-crf", videoCRF,
		"-c:a", audioCodec,
		"-b:a", audioBitrate,
		"-movflags", fastStartFlag,
		"-progress", "pipe:2",
		"-nostats",
		outputPath,
	}
}
