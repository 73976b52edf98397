package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/cli"
)

func main() {
	// Ctrl-C cancels the context; the download command turns that into a
	// cancel request so yt-dlp gets a chance to exit cleanly.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.Execute(ctx)
}
