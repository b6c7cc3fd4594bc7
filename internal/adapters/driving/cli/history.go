package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long:  `Lists the most recent search queries with their result counts and timings.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if historyStore == nil {
		return errors.New("history store not configured")
	}

	entries, err := historyStore.Recent(context.Background(), historyLimit)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("No searches yet.")
		return nil
	}

	for _, e := range entries {
		cmd.Printf("%-10s %-40q %3d results  %6.1f ms\n",
			e.QueryType, e.Query, e.ResultCount, e.ElapsedMS)
	}
	return nil
}
