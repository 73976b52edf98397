package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MiAlhazmi/SHTxd-Clip/internal/config"
)

var flagClear bool

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or clear the download history",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "remove all history entries")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	history := config.NewHistory("")

	if flagClear {
		if err := history.Clear(); err != nil {
			return fmt.Errorf("failed to clear history: %w", err)
		}
		fmt.Println("History cleared.")
		return nil
	}

	entries, err := history.Load()
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No downloads recorded.")
		return nil
	}

	// Newest first.
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		fmt.Printf("%s  [%s]  %s\n", e.Date, e.Quality, e.Title)
		fmt.Printf("    %s -> %s\n", e.URL, e.Path)
	}
	return nil
}
