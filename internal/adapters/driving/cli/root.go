// Package cli provides the docsight command line interface.
// It implements a driving adapter following hexagonal architecture.
package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docsight-labs/docsight-cli/internal/adapters/driven/api"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driven/config/file"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driven/storage/memory"
	"github.com/docsight-labs/docsight-cli/internal/adapters/driven/storage/sqlite"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driven"
	"github.com/docsight-labs/docsight-cli/internal/core/ports/driving"
	"github.com/docsight-labs/docsight-cli/internal/core/services"
	"github.com/docsight-labs/docsight-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Persistent flags.
var (
	flagVerbose   bool
	flagServerURL string
	flagConfigDir string
)

// Shared services, wired once per invocation in initServices.
var (
	configStore     *file.ConfigStore
	backendClient   *api.Client
	catalog         *services.Catalog
	documentService driving.DocumentService
	queryService    driving.QueryService
	historyService  driving.HistoryService
	historyStore    *sqlite.HistoryStore
)

var rootCmd = &cobra.Command{
	Use:   "docsight",
	Short: "Ask questions about your documents",
	Long: `Docsight is a terminal client for a document question-answering service.

Upload documents, ask questions about them, and follow the answer's
citations straight to the page and paragraph they were drawn from.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false,
		"enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "",
		"backend server URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "",
		"configuration directory (default ~/.docsight)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// initServices wires the driven adapters and core services for every
// command. The backend is not contacted here; commands fail lazily when
// it is unreachable.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	cs, err := file.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	configStore = cs

	baseURL := flagServerURL
	if baseURL == "" {
		baseURL = configStore.GetString(file.KeyServerURL)
	}
	backendClient = api.NewClient(baseURL)

	catalog = services.NewCatalog(backendClient)
	documentService = services.NewDocumentService(backendClient, catalog)

	var history driven.HistoryStore
	if historyEnabled() {
		dataDir := filepath.Join(filepath.Dir(configStore.Path()), "data")
		store, err := sqlite.NewHistoryStore(dataDir)
		if err != nil {
			// History is a convenience; a broken store must not block asking.
			// Fall back to an in-memory store for the current invocation.
			logger.Warn("opening history store: %v", err)
			history = memory.NewHistoryStore()
		} else {
			historyStore = store
			history = store
		}
	}

	topK := flagTopK
	if topK <= 0 {
		topK = configStore.GetInt(file.KeyTopK)
	}
	query := services.NewQueryService(backendClient, history, topK)
	queryService = query
	historyService = query

	return nil
}

// historyEnabled reads the history toggle, defaulting to on when the key
// has never been set.
func historyEnabled() bool {
	if _, ok := configStore.Get(file.KeyHistoryEnabled); !ok {
		return true
	}
	return configStore.GetBool(file.KeyHistoryEnabled)
}

// closeServices releases anything initServices opened.
func closeServices() {
	if historyStore != nil {
		if err := historyStore.Close(); err != nil {
			logger.Warn("closing history store: %v", err)
		}
		historyStore = nil
	}
}
