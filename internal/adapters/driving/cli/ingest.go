package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mevzuat-labs/mevzuat-cli/internal/core/domain"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/ports/driving"
)

var (
	ingestTitle     string
	ingestLawNumber string
	ingestDocType   string
	ingestCategory  string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a legal document",
	Long: `Reads a UTF-8 text file, splits it into articles on MADDE headings
and stores it for searching. Metadata not given via flags is detected
from the file content.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestTitle, "title", "", "document title (detected from content if empty)")
	ingestCmd.Flags().StringVar(&ingestLawNumber, "law-number", "", "instrument number, e.g. 193")
	ingestCmd.Flags().StringVar(&ingestDocType, "doc-type", "", "document type (KANUN, YONETMELIK, ...)")
	ingestCmd.Flags().StringVar(&ingestCategory, "category", "", "free-form category label")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	meta := driving.IngestMeta{
		Title:     ingestTitle,
		LawNumber: ingestLawNumber,
		Category:  ingestCategory,
	}
	if ingestDocType != "" {
		dt := domain.DocumentType(strings.ToUpper(strings.TrimSpace(ingestDocType)))
		if !dt.IsValid() {
			return fmt.Errorf("unknown document type %q", ingestDocType)
		}
		meta.Type = dt
	}

	doc, count, err := ingestService.IngestFile(context.Background(), args[0], meta)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateDocument) {
			return fmt.Errorf("already ingested: %w", err)
		}
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %q as document %d (%s), %d articles.\n",
		doc.Title, doc.ID, doc.Type, count)
	return nil
}
