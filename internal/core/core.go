// Package core wires the download engine, metadata fetcher and update
// checkers behind a single facade. Front-ends talk to Core and receive
// everything else through the event listener.
package core

import (
	"context"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/download"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/event"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/metadata"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/model"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/platform"
	"github.com/MiAlhazmi/SHTxd-Clip/internal/update"
)

// AppVersion is the application release the checkers compare against.
const AppVersion = "2.0.0"

const appReleaseAPI = "https://api.github.com/repos/MiAlhazmi/SHTxd-Clip/releases/latest"

// StartupReport aggregates the results of the launch-time checks.
type StartupReport struct {
	MissingDependencies []string
	AppUpdate           update.Result
	ToolUpdate          update.Result
}

// Core is the orchestrator facade. One instance drives at most one
// download at a time; metadata and update calls are independent.
type Core struct {
	logger      *log.Logger
	engine      *download.Engine
	fetcher     *metadata.Fetcher
	appChecker  *update.ReleaseChecker
	toolUpdater *update.ToolUpdater
}

// New builds a Core with no-op event delivery. Call SetListener to
// receive progress.
func New(logger *log.Logger) *Core {
	return &Core{
		logger:      logger,
		engine:      download.NewEngine(logger),
		fetcher:     metadata.NewFetcher(logger),
		appChecker:  update.NewReleaseChecker(appReleaseAPI, AppVersion, logger),
		toolUpdater: update.NewToolUpdater(logger),
	}
}

// SetListener routes engine and fetcher events to l.
func (c *Core) SetListener(l event.Listener) {
	c.engine.SetListener(l)
	c.fetcher.SetListener(l)
}

// SetBinary points the engine, fetcher and tool updater at a specific
// yt-dlp executable.
func (c *Core) SetBinary(binary string) {
	c.engine.SetBinary(binary)
	c.fetcher.SetBinary(binary)
	c.toolUpdater.SetBinary(binary)
}

// Download starts a download attempt. See download.Engine.Download.
func (c *Core) Download(req *model.Request) bool { return c.engine.Download(req) }

// Cancel requests cancellation of the in-flight download.
func (c *Core) Cancel() bool { return c.engine.Cancel() }

// IsBusy reports whether a download is in flight.
func (c *Core) IsBusy() bool { return c.engine.IsBusy() }

// VideoInfo fetches a single video descriptor, nil on any failure.
func (c *Core) VideoInfo(ctx context.Context, url string) *model.VideoInfo {
	return c.fetcher.VideoInfo(ctx, url)
}

// PlaylistInfo fetches a flat playlist descriptor, nil on any failure.
func (c *Core) PlaylistInfo(ctx context.Context, url string) *model.PlaylistInfo {
	return c.fetcher.PlaylistInfo(ctx, url)
}

// ValidateURL reports whether the input is a recognized video page URL.
func (c *Core) ValidateURL(url string) bool { return platform.IsValidVideoURL(url) }

// IsPlaylistURL reports whether the input points at a playlist.
func (c *Core) IsPlaylistURL(url string) bool { return platform.IsPlaylistURL(url) }

// AppChecker exposes the application release checker.
func (c *Core) AppChecker() *update.ReleaseChecker { return c.appChecker }

// ToolUpdater exposes the yt-dlp updater.
func (c *Core) ToolUpdater() *update.ToolUpdater { return c.toolUpdater }

// StartupChecks runs the launch-time probes concurrently: required
// external tools, the application release feed and the tool release feed.
// Check failures are reported inside the results, so the group never
// returns an error.
func (c *Core) StartupChecks(ctx context.Context) StartupReport {
	var report StartupReport

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.MissingDependencies = platform.MissingDependencies()
		return nil
	})
	g.Go(func() error {
		report.AppUpdate = c.appChecker.Check()
		return nil
	})
	g.Go(func() error {
		report.ToolUpdate = c.toolUpdater.CheckLatest()
		return nil
	})
	g.Wait()

	if len(report.MissingDependencies) > 0 {
		c.logger.Warn("missing dependencies", "tools", report.MissingDependencies)
	}
	return report
}
