package download

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/event"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/platform"
)

// DefaultBinary is the yt-dlp executable name resolved via PATH.
const DefaultBinary = "yt-dlp"

// CancelGracePeriod is how long Cancel waits for the process to exit after
// a graceful terminate before escalating to a forced kill.
const CancelGracePeriod = 2 * time.Second

// Scanner buffer sizes for the output stream.
const (
	scanBufferInitial = 64 * 1024
	scanBufferMax     = 1024 * 1024
)

// MissingToolMessage is the user-facing explanation when yt-dlp is absent.
const MissingToolMessage = "yt-dlp not found! Please install yt-dlp first."

// Engine supervises a single yt-dlp process at a time. Download rejects new
// requests while one is active; there is no queue. Events are delivered to
// the configured listener, possibly from the worker goroutine.
type Engine struct {
	binary   string
	logger   *log.Logger
	listener event.Listener

	mu          sync.Mutex
	cmd         *exec.Cmd
	downloading bool
	waitDone    chan struct{}

	cancelRequested atomic.Bool
}

// NewEngine creates an engine that resolves yt-dlp via PATH.
func NewEngine(logger *log.Logger) *Engine {
	return &Engine{
		binary:   DefaultBinary,
		logger:   logger,
		listener: event.Noop{},
	}
}

// SetBinary overrides the yt-dlp executable path, e.g. for a bundled copy
// shipped adjacent to the application binary.
func (e *Engine) SetBinary(path string) {
	e.binary = path
}

// SetListener replaces the event listener. A nil listener restores the
// discarding default.
func (e *Engine) SetListener(l event.Listener) {
	if l == nil {
		l = event.Noop{}
	}
	e.listener = l
}

// IsBusy reports whether a download is in progress.
func (e *Engine) IsBusy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.downloading
}

// Download validates the request and starts the worker goroutine. It returns
// false, with an error event, when a download is already active, the URL is
// not recognized, or the output directory cannot be created. The caller is
// never blocked on the download itself.
func (e *Engine) Download(req *model.Request) bool {
	e.mu.Lock()
	if e.downloading {
		e.mu.Unlock()
		e.listener.OnError("Download already in progress")
		return false
	}

	if !platform.IsValidVideoURL(req.URL) {
		e.mu.Unlock()
		e.listener.OnError("Invalid YouTube URL")
		return false
	}

	if err := platform.EnsureDirectoryExists(req.OutputPath); err != nil {
		e.mu.Unlock()
		e.listener.OnError(fmt.Sprintf("Could not create output directory: %s", req.OutputPath))
		return false
	}

	e.downloading = true
	e.waitDone = make(chan struct{})
	e.cancelRequested.Store(false)
	done := e.waitDone
	e.mu.Unlock()

	go e.run(req, done)
	return true
}

// Cancel requests cooperative cancellation of the active download. It
// returns false when nothing is active. The process is asked to terminate
// gracefully; if it has not exited after CancelGracePeriod it is killed.
// This is the only blocking wait-with-timeout outside the streaming loop.
func (e *Engine) Cancel() bool {
	e.mu.Lock()
	if !e.downloading {
		e.mu.Unlock()
		return false
	}
	e.cancelRequested.Store(true)
	cmd := e.cmd
	done := e.waitDone
	e.mu.Unlock()

	e.listener.OnLog("Cancel requested - stopping download...")

	if cmd != nil && cmd.Process != nil {
		e.terminate(cmd)
		select {
		case <-done:
		case <-time.After(CancelGracePeriod):
			if err := cmd.Process.Kill(); err == nil {
				e.listener.OnLog("Process force-killed")
			}
		}
	}
	return true
}

// terminate asks the process to exit gracefully. Interrupt delivery is not
// implemented on Windows, where we go straight to Kill.
func (e *Engine) terminate(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	if err := cmd.Process.Signal(os.Interrupt); err != nil {
		_ = cmd.Process.Kill()
	}
}

// run is the download worker. It owns the subprocess from launch to exit and
// always releases the busy flag and process handle on the way out.
func (e *Engine) run(req *model.Request, done chan struct{}) {
	jobID := uuid.New().String()
	e.logger.Debug("starting download worker", "job", jobID, "url", req.URL)

	defer func() {
		e.mu.Lock()
		e.downloading = false
		e.cmd = nil
		e.mu.Unlock()
	}()

	args := buildArgs(req)
	e.listener.OnLog("Starting download...")

	cmd := exec.Command(e.binary, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		close(done)
		e.fail(fmt.Sprintf("Unexpected error: %v", err))
		return
	}
	// Merge stderr into the stdout stream so one reader sees all output in
	// arrival order.
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		close(done)
		if errors.Is(err, exec.ErrNotFound) {
			e.logger.Error("yt-dlp binary not found", "binary", e.binary)
			e.listener.OnError(MissingToolMessage)
			e.listener.OnComplete(model.Outcome{Reason: model.ReasonMissingDependency})
			return
		}
		e.fail(fmt.Sprintf("Unexpected error: %v", err))
		return
	}

	e.mu.Lock()
	e.cmd = cmd
	e.mu.Unlock()

	var files []string
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, scanBufferInitial), scanBufferMax)

	for scanner.Scan() {
		// Cancellation is polled once per line, so its latency is bounded
		// by the time to read one more line of output.
		if e.cancelRequested.Load() {
			e.terminate(cmd)
			e.listener.OnLog("Download cancelled by user")
			e.listener.OnComplete(model.Outcome{Reason: model.ReasonCancelled})
			_ = cmd.Wait()
			close(done)
			return
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		e.listener.OnLog(line)

		if progress := platform.ParseProgress(line); progress != nil {
			e.listener.OnProgress(*progress)
			if progress.FilePath != "" {
				files = append(files, progress.FilePath)
			}
		}
		if status := platform.ParseStatus(line); status != "" {
			e.listener.OnProgress(model.Progress{
				Percentage: model.NoPercentage,
				StatusText: status,
			})
		}
	}

	waitErr := cmd.Wait()
	close(done)

	if e.cancelRequested.Load() {
		e.listener.OnLog("Download stopped")
		e.listener.OnComplete(model.Outcome{Reason: model.ReasonCancelled})
		return
	}

	if waitErr == nil {
		e.logger.Debug("download worker finished", "job", jobID, "files", len(files))
		e.listener.OnLog("Download completed successfully!")
		e.listener.OnComplete(model.Outcome{
			Success:    true,
			Files:      files,
			OutputPath: req.OutputPath,
			Request:    req,
		})
		return
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		code := exitErr.ExitCode()
		e.listener.OnLog(fmt.Sprintf("Download failed with return code: %d", code))
		e.listener.OnComplete(model.Outcome{Reason: model.ReasonFailed, ExitCode: code})
		return
	}
	e.fail(fmt.Sprintf("Unexpected error: %v", waitErr))
}

// fail reports a generic launch/streaming error as both an error event and
// an error outcome.
func (e *Engine) fail(message string) {
	e.logger.Error(message)
	e.listener.OnError(message)
	e.listener.OnComplete(model.Outcome{Reason: model.ReasonError, Err: message})
}
