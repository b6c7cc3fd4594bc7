package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var rebuildCmd = &cobra.Command{
	Use:   "rebuild",
	Short: "Rebuild the semantic index",
	Long: `Retrains the TF-IDF model from every stored article. Run this after
bulk ingestion or when the vocabulary has drifted from incremental
additions.`,
	Args: cobra.NoArgs,
	RunE: runRebuild,
}

func init() {
	rootCmd.AddCommand(rebuildCmd)
}

func runRebuild(cmd *cobra.Command, _ []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	if !searchService.RebuildIndex(context.Background()) {
		return errors.New("rebuild failed; run with --verbose for details")
	}
	cmd.Println("Semantic index rebuilt.")
	return nil
}
