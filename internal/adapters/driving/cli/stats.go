package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsJSON bool

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show engine statistics",
	Long:  `Reports semantic index state, cache occupancy and search history aggregates.`,
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	stats := searchService.Stats(context.Background())

	if statsJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal stats: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	cmd.Printf("Semantic search: %v\n", stats.SemanticEnabled)
	cmd.Printf("Indexed articles: %d\n", stats.IndexSize)
	cmd.Printf("Cached queries:   %d\n", stats.CacheSize)
	cmd.Printf("Total searches:   %d\n", stats.History.TotalSearches)
	if stats.History.TotalSearches > 0 {
		cmd.Printf("Avg time:         %.1f ms\n", stats.History.AvgElapsedMS)
		cmd.Printf("Min/max time:     %.1f / %.1f ms\n", stats.History.MinElapsedMS, stats.History.MaxElapsedMS)
	}
	for queryType, count := range stats.History.TypeCounts {
		cmd.Printf("  %s searches: %d\n", queryType, count)
	}
	return nil
}
