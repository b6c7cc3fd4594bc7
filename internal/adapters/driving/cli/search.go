package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
)

var (
	searchType     string
	searchDocTypes []string
	searchRepealed bool
	searchLimit    int
	searchJSON     bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search legal documents",
	Long: `Performs hybrid search across all ingested articles.
Combines keyword (FTS5) and semantic (TF-IDF) search for best results.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchType, "type", "t", "mixed", "search type: keyword, semantic or mixed")
	searchCmd.Flags().StringSliceVar(&searchDocTypes, "doc-type", nil, "restrict to document types (KANUN, YONETMELIK, ...)")
	searchCmd.Flags().BoolVar(&searchRepealed, "include-repealed", false, "include repealed (mülga) articles")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "show at most this many results (0 = engine default)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	if searchService == nil {
		return errors.New("search service not configured")
	}

	opts := domain.SearchOptions{
		Type:            domain.SearchType(searchType),
		IncludeRepealed: searchRepealed,
	}
	for _, raw := range searchDocTypes {
		dt := domain.DocumentType(strings.ToUpper(strings.TrimSpace(raw)))
		if !dt.IsValid() {
			return fmt.Errorf("unknown document type %q", raw)
		}
		opts.DocumentTypes = append(opts.DocumentTypes, dt)
	}

	results, err := searchService.Search(context.Background(), query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := &results[i]

		heading := r.DocumentTitle
		if r.ArticleNumber != "" {
			heading = fmt.Sprintf("%s, Madde %s", heading, r.ArticleNumber)
		}

		cmd.Printf("  [%d] %s (%.3f, %s)\n", i+1, heading, r.Score, r.Match)
		if r.LawNumber != "" {
			cmd.Printf("      %s sayılı %s\n", r.LawNumber, r.DocumentType.Description())
		}
		if r.IsRepealed {
			cmd.Printf("      [mülga]\n")
		} else if r.IsAmended {
			cmd.Printf("      [değişik]\n")
		}
		if len(r.Highlights) > 0 {
			cmd.Printf("      %s\n", r.Highlights[0])
		}
		cmd.Println()
	}
	return nil
}
