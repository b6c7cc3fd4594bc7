package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
)

var suggestLimit int

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Suggest search queries",
	Long: `Returns prior search queries containing the given fragment, padded
with common legal terms when history alone cannot fill the limit.`,
	Args: cobra.ExactArgs(1),
	RunE: runSuggest,
}

func init() {
	suggestCmd.Flags().IntVarP(&suggestLimit, "limit", "n", 5, "maximum number of suggestions")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	suggestions := searchService.Suggestions(context.Background(), args[0], suggestLimit)
	if len(suggestions) == 0 {
		cmd.Println("No suggestions.")
		return nil
	}
	for _, s := range suggestions {
		cmd.Println(s)
	}
	return nil
}
