package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dextr-labs/dextr-cli/internal/adapters/driven/assistant"
)

var (
	settingsEndpoint string
	settingsTimeout  int
	settingsBackend  string
	settingsDataDir  string
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	RunE:  runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsAssistantCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Configure the assistant backend",
	Long: `Configure the analysis endpoint and API key. The key is prompted
without echo; pass --endpoint "" to disconnect the backend.`,
	RunE: runSettingsAssistant,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Configure the project registry backend",
	Long: `Select where projects are stored.

Available backends:
  sqlite - persistent store under the data directory (default)
  memory - throwaway in-process store, useful for experiments`,
	RunE: runSettingsStorage,
}

func init() {
	settingsAssistantCmd.Flags().StringVar(&settingsEndpoint, "endpoint", "", "analysis endpoint URL")
	settingsAssistantCmd.Flags().IntVar(&settingsTimeout, "timeout", 0, "request timeout in seconds")
	settingsStorageCmd.Flags().StringVar(&settingsBackend, "backend", "", "storage backend (sqlite or memory)")
	settingsStorageCmd.Flags().StringVar(&settingsDataDir, "data-dir", "", "data directory for the sqlite backend")

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsAssistantCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	cmd.Println(titleStyle.Render("Current Settings"))
	cmd.Println()

	cmd.Println("[Assistant]")
	endpoint := configStore.GetString(assistant.KeyEndpoint)
	if endpoint == "" {
		cmd.Println("  Endpoint: (not set, local sniffing only)")
	} else {
		cmd.Printf("  Endpoint: %s\n", endpoint)
	}
	if key := configStore.GetString(assistant.KeyAPIKey); key != "" {
		cmd.Printf("  API Key:  %s\n", maskAPIKey(key))
	} else {
		cmd.Println("  API Key:  (not set)")
	}
	if secs := configStore.GetInt(assistant.KeyTimeoutSeconds); secs > 0 {
		cmd.Printf("  Timeout:  %ds\n", secs)
	}
	cmd.Println()

	cmd.Println("[Storage]")
	backend := configStore.GetString(keyStorageBackend)
	if backend == "" {
		backend = "sqlite"
	}
	cmd.Printf("  Backend:  %s\n", backend)
	if dir := configStore.GetString(keyStorageDataDir); dir != "" {
		cmd.Printf("  Data dir: %s\n", dir)
	}
	cmd.Println()
	cmd.Printf("Config file: %s\n", configStore.Path())
	return nil
}

func runSettingsAssistant(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if cmd.Flags().Changed("endpoint") {
		if err := configStore.Set(assistant.KeyEndpoint, settingsEndpoint); err != nil {
			return fmt.Errorf("save endpoint: %w", err)
		}
	}
	if settingsTimeout > 0 {
		if err := configStore.Set(assistant.KeyTimeoutSeconds, settingsTimeout); err != nil {
			return fmt.Errorf("save timeout: %w", err)
		}
	}

	if configStore.GetString(assistant.KeyEndpoint) != "" {
		cmd.Print("API key (leave empty to keep current): ")
		key := readPassword()
		cmd.Println()
		if key != "" {
			if err := configStore.Set(assistant.KeyAPIKey, key); err != nil {
				return fmt.Errorf("save api key: %w", err)
			}
		}
	}

	cmd.Println(successStyle.Render("Assistant settings saved"))
	return nil
}

func runSettingsStorage(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if settingsBackend != "" {
		if settingsBackend != "sqlite" && settingsBackend != "memory" {
			return fmt.Errorf("unknown storage backend %q", settingsBackend)
		}
		if err := configStore.Set(keyStorageBackend, settingsBackend); err != nil {
			return fmt.Errorf("save backend: %w", err)
		}
	}
	if settingsDataDir != "" {
		if err := configStore.Set(keyStorageDataDir, settingsDataDir); err != nil {
			return fmt.Errorf("save data dir: %w", err)
		}
	}

	cmd.Println(successStyle.Render("Storage settings saved"))
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
