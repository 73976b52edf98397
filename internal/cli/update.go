package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/core"
)

var flagApplyTool bool

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Check for application and yt-dlp updates",
	Args:  cobra.NoArgs,
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().BoolVar(&flagApplyTool, "apply", false, "install the yt-dlp update if one is available")
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, _ []string) error {
	logger := newLogger()
	c := newCore(logger)

	report := c.StartupChecks(cmd.Context())

	fmt.Printf("Application version: %s\n", core.AppVersion)
	switch {
	case report.AppUpdate.Err != "":
		fmt.Printf("  check failed: %s\n", report.AppUpdate.Err)
	case report.AppUpdate.Available:
		fmt.Printf("  %s available: %s\n", report.AppUpdate.ReleaseName, report.AppUpdate.DownloadURL)
	default:
		fmt.Println("  up to date")
	}

	tool := c.ToolUpdater()
	current, err := tool.CurrentVersion()
	if err != nil {
		current = "not installed"
	}
	fmt.Printf("yt-dlp version: %s\n", current)
	switch {
	case report.ToolUpdate.Err != "":
		fmt.Printf("  check failed: %s\n", report.ToolUpdate.Err)
	case report.ToolUpdate.Available:
		fmt.Printf("  %s available\n", report.ToolUpdate.LatestVersion)
	default:
		fmt.Println("  up to date")
	}

	if !flagApplyTool || !report.ToolUpdate.Available {
		return nil
	}

	if tool.Bundled() {
		if err := tool.Apply(report.ToolUpdate); err != nil {
			return fmt.Errorf("failed to update bundled yt-dlp: %w", err)
		}
		logger.Info("bundled yt-dlp updated", "version", report.ToolUpdate.LatestVersion)
		return nil
	}

	if err := tool.SelfUpdate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to update yt-dlp: %w", err)
	}
	logger.Info("yt-dlp updated", "version", report.ToolUpdate.LatestVersion)
	return nil
}
