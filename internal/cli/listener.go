package cli

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/schollz/progressbar/v3"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
)

// progressRenderer consumes core events and draws a terminal progress bar.
// Callbacks arrive from the engine worker goroutine; the renderer is only
// touched from there and from the final outcome read.
type progressRenderer struct {
	logger   *log.Logger
	bar      *progressbar.ProgressBar
	outcomes chan model.Outcome
}

func newRenderer(logger *log.Logger) *progressRenderer {
	return &progressRenderer{
		logger:   logger,
		outcomes: make(chan model.Outcome, 1),
	}
}

func (r *progressRenderer) OnLog(message string) {
	r.logger.Debug(message)
}

func (r *progressRenderer) OnProgress(p model.Progress) {
	switch {
	case p.Status == model.StatusPreparing && p.FilePath != "":
		r.finishBar()
		r.logger.Info("downloading", "file", filepath.Base(p.FilePath))
	case p.Status == model.StatusExists:
		r.finishBar()
		r.logger.Info("already downloaded, skipping")
	case p.HasPercentage():
		r.ensureBar()
		r.bar.Set(int(p.Percentage))
	case p.StatusText != "":
		r.finishBar()
		r.logger.Info(p.StatusText)
	}
}

func (r *progressRenderer) OnComplete(outcome model.Outcome) {
	r.finishBar()
	r.outcomes <- outcome
}

func (r *progressRenderer) OnError(message string) {
	r.logger.Error(message)
}

func (r *progressRenderer) ensureBar() {
	if r.bar != nil {
		return
	}
	r.bar = progressbar.NewOptions(100,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *progressRenderer) finishBar() {
	if r.bar == nil {
		return
	}
	r.bar.Finish()
	r.bar = nil
}
