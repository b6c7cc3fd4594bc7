package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mevzuat-labs/mevzuat-cli/internal/adapters/driven/config/file"
	"github.com/mevzuat-labs/mevzuat-cli/internal/adapters/driven/semantic/tfidf"
	"github.com/mevzuat-labs/mevzuat-cli/internal/adapters/driven/storage/sqlite"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/ports/driven"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/ports/driving"
	"github.com/mevzuat-labs/mevzuat-cli/internal/core/services"
	"github.com/mevzuat-labs/mevzuat-cli/internal/logger"
)

const version = "0.1.0"

// Wired lazily by initServices; tests substitute mocks, which skips the
// real wiring entirely.
var (
	searchService driving.SearchService
	ingestService driving.IngestService
	historyStore  driven.HistoryStore

	store  *sqlite.Store
	engine *services.Engine
)

var (
	verbose bool
	dataDir string
)

var rootCmd = &cobra.Command{
	Use:   "mevzuat",
	Short: "Turkish legal document search",
	Long: `mevzuat ingests Turkish legal documents (laws, regulations,
circulars), splits them into addressable articles and serves hybrid
keyword + semantic search over them.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(verbose)
		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}
		return initServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default ~/.mevzuat/data)")
}

// initServices opens the config store, SQLite store and semantic index,
// then builds the services on top. Already wired services are left alone.
func initServices() error {
	if searchService != nil {
		return nil
	}

	cfg, err := file.NewConfigStore("")
	if err != nil {
		return err
	}

	store, err = sqlite.NewStore(dataDir)
	if err != nil {
		return err
	}

	indexDir := cfg.GetString("index.dir")
	if indexDir == "" {
		indexDir = filepath.Join(filepath.Dir(store.Path()), "index")
	}
	index := tfidf.NewIndex(indexDir, tfidf.DefaultVectorizerConfig())
	if !index.Initialize(context.Background(), nil) {
		logger.Debug("no persisted semantic model; run 'mevzuat rebuild' after ingesting")
	}

	engine = services.NewEngine(cfg, store.ArticleStore(), store.HistoryStore(), index)
	searchService = engine
	ingestService = services.NewIngestor(store.ArticleStore(), index)
	historyStore = store.HistoryStore()
	return nil
}

func closeServices() {
	if engine != nil {
		engine.Close()
		engine = nil
	}
	if store != nil {
		if err := store.Close(); err != nil {
			logger.Warn("closing store: %v", err)
		}
		store = nil
	}
}

// Execute runs the root command and releases resources on the way out.
func Execute() error {
	defer closeServices()
	return rootCmd.Execute()
}
