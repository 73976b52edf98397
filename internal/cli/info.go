package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info <url>",
	Short: "Show metadata for a single video",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

var playlistCmd = &cobra.Command{
	Use:   "playlist <url>",
	Short: "Show a playlist summary",
	Args:  cobra.ExactArgs(1),
	RunE:  runPlaylistInfo,
}

const previewCount = 5

func init() {
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(playlistCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	c := newCore(newLogger())

	url := args[0]
	if !c.ValidateURL(url) {
		return fmt.Errorf("not a recognized video URL: %s", url)
	}

	info := c.VideoInfo(cmd.Context(), url)
	if info == nil {
		return fmt.Errorf("could not fetch video information for %s", url)
	}

	fmt.Printf("Title:    %s\n", info.Title)
	fmt.Printf("Uploader: %s\n", info.Uploader)
	fmt.Printf("Duration: %s\n", info.FormattedDuration())
	fmt.Printf("Views:    %s\n", info.FormattedViewCount())
	fmt.Printf("Uploaded: %s\n", info.FormattedUploadDate())
	fmt.Printf("URL:      %s\n", info.URL)
	return nil
}

func runPlaylistInfo(cmd *cobra.Command, args []string) error {
	c := newCore(newLogger())

	url := args[0]
	if !c.IsPlaylistURL(url) {
		return fmt.Errorf("not a playlist URL: %s", url)
	}

	info := c.PlaylistInfo(cmd.Context(), url)
	if info == nil {
		return fmt.Errorf("could not fetch playlist information for %s", url)
	}

	fmt.Printf("Videos:   %d\n", info.TotalCount)
	fmt.Printf("Duration: %s\n", info.FormattedDuration())
	for i, title := range info.PreviewTitles(previewCount) {
		fmt.Printf("  %d. %s\n", i+1, title)
	}
	if info.TotalCount > previewCount {
		fmt.Printf("  ... and %d more\n", info.TotalCount-previewCount)
	}
	return nil
}
