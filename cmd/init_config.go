package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"drive-delivery/domain/delivery"
	"drive-delivery/infrastructure/config"

	"github.com/spf13/cobra"
)

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Create the config file interactively",
	Long: `Prompts for the OAuth client ID and secret of your Google Cloud "Desktop app"
client and the ID of the Drive folder to upload into, then writes the
config file named by --config.`,
	Args: cobra.NoArgs,
	RunE: runInitConfig,
}

func init() {
	rootCmd.AddCommand(initConfigCmd)
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	return RunInitConfigWithPrompter(DefaultPrompter, cfgFile, cmd.OutOrStdout())
}

// RunInitConfigWithPrompter runs init-config with a given prompter (for testing)
func RunInitConfigWithPrompter(prompter Prompter, configPath string, output io.Writer) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm(fmt.Sprintf("%s already exists. Overwrite?", configPath), false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(output, "Setup cancelled.")
			return nil
		}
	}

	cfg := &delivery.Config{}

	clientID, err := prompter.Input("OAuth client ID?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.ClientID = clientID

	clientSecret, err := prompter.Input("OAuth client secret?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.ClientSecret = clientSecret

	folderID, err := prompter.Input("Google Drive folder ID to upload into?", "")
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.FolderID = folderID

	if err := cfg.Validate(); err != nil {
		return err
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintf(output, "Configuration saved to %s\n", configPath)
	fmt.Fprintf(output, "Next: run 'drive-delivery setup' to authorize access.\n")
	return nil
}
