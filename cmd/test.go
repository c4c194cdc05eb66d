package cmd

import (
	"context"
	"fmt"

	appdelivery "drive-delivery/application/delivery"
	"drive-delivery/infrastructure/tokenstore"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Check the setup by uploading a throwaway file",
	Long: `Checks the config file and the saved refresh token, then uploads a small
temporary file as drive-delivery-test.txt and prints its links.

The temporary file is deleted afterwards, even when the upload fails.`,
	Args: cobra.NoArgs,
	RunE: runTest,
}

func init() {
	rootCmd.AddCommand(testCmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Config error: %v\n", err)
		return fmt.Errorf("test failed: %w", err)
	}

	service := appdelivery.NewSmokeTestService(
		*cfg,
		tokenstore.New(tokenFile),
		newUploadService(*cfg, false, cmd.OutOrStdout()),
		"",
		cmd.OutOrStdout(),
	)

	return RunTestWithDependencies(cmd.Context(), service)
}

// RunTestWithDependencies runs the smoke test with an injected service (for testing)
func RunTestWithDependencies(ctx context.Context, service *appdelivery.SmokeTestService) error {
	if _, err := service.Run(ctx); err != nil {
		return fmt.Errorf("test failed: %w", err)
	}
	return nil
}
