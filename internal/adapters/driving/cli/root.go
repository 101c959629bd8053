// Package cli provides the command-line interface for Dextr.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dextr-labs/dextr-cli/internal/adapters/driven/assistant"
	configfile "github.com/dextr-labs/dextr-cli/internal/adapters/driven/config/file"
	"github.com/dextr-labs/dextr-cli/internal/adapters/driven/identity"
	"github.com/dextr-labs/dextr-cli/internal/adapters/driven/storage/memory"
	"github.com/dextr-labs/dextr-cli/internal/adapters/driven/storage/sqlite"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driven"
	"github.com/dextr-labs/dextr-cli/internal/core/ports/driving"
	"github.com/dextr-labs/dextr-cli/internal/core/services"
	"github.com/dextr-labs/dextr-cli/internal/logger"
	"github.com/dextr-labs/dextr-cli/internal/sniffers/csvfile"
	"github.com/dextr-labs/dextr-cli/internal/sniffers/jsonfile"
	"github.com/dextr-labs/dextr-cli/internal/sniffers/xmlfile"
)

// version is set at build time via -ldflags.
var version = "dev"

// Config keys for storage settings.
const (
	keyStorageBackend = "storage.backend"
	keyStorageDataDir = "storage.data_dir"
)

// Services wired in initServices. Package-level so commands and tests
// can reach them.
var (
	configStore     driven.ConfigStore
	projectService  driving.ProjectService
	analysisService driving.AnalysisService
	exportService   driving.ExportService

	storeCloser io.Closer
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "dextr",
	Short: "Schema inference and mapping reconciliation",
	Long: `Dextr builds integration projects from sample data: infer a target
schema from CSV, JSON or XML samples, analyse a source system, reconcile
source-to-target field mappings and generate platform-specific
transformation logic.`,
	PersistentPreRunE: initServices,
	SilenceUsage:      true,
}

// Execute runs the root command.
func Execute() error {
	defer closeStore()
	return rootCmd.Execute()
}

// initServices wires adapters and services before any command runs.
func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verboseFlag)

	// version and help need no wiring
	if cmd.Name() == "version" {
		return nil
	}

	// Tests inject their own services.
	if projectService != nil {
		return nil
	}

	var err error
	configStore, err = configfile.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	projectStore, err := openProjectStore()
	if err != nil {
		return err
	}

	backend, err := assistant.FromConfig(configStore)
	if err != nil {
		return fmt.Errorf("configure assistant: %w", err)
	}

	registry := services.NewSnifferRegistry()
	registry.Register(csvfile.New())
	registry.Register(jsonfile.New())
	registry.Register(xmlfile.New())

	projectService = services.NewProjectService(projectStore, identity.NewUUIDGenerator(), identity.NewSystemClock())
	analysisService = services.NewAnalysisService(registry, backend, projectService)
	exportService = services.NewExportService(projectStore)
	return nil
}

// openProjectStore opens the configured registry backend. SQLite is the
// default; the memory backend exists for throwaway sessions.
func openProjectStore() (driven.ProjectStore, error) {
	switch backend := configStore.GetString(keyStorageBackend); backend {
	case "memory":
		logger.Debug("Using in-memory project store")
		return memory.NewProjectStore(), nil
	case "", "sqlite":
		store, err := sqlite.NewStore(configStore.GetString(keyStorageDataDir))
		if err != nil {
			return nil, fmt.Errorf("open project store: %w", err)
		}
		logger.Debug("Using SQLite project store at %s", store.Path())
		storeCloser = store
		return store.ProjectStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

func closeStore() {
	if storeCloser != nil {
		storeCloser.Close()
		storeCloser = nil
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose output")
}
