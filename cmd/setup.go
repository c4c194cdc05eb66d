package cmd

import (
	"context"
	"fmt"
	"io"

	appdelivery "drive-delivery/application/delivery"
	"drive-delivery/domain/delivery"
	"drive-delivery/infrastructure/drive"
	"drive-delivery/infrastructure/tokenstore"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

// PromptCodeReader implements delivery.CodeReader with a Prompter
type PromptCodeReader struct {
	Prompter Prompter
}

// ReadCode asks the user to paste the code shown after granting consent
func (r PromptCodeReader) ReadCode(ctx context.Context, authURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return r.Prompter.Input("Paste the authorization code here:", "")
}

var setupNoBrowser bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Authorize access to Google Drive",
	Long: `Runs the one-time OAuth2 authorization.

Prints an authorization URL, waits for you to paste the code Google shows
after you grant access, and saves the resulting refresh token with
owner-only permissions. Run it again to replace the saved token.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
	setupCmd.Flags().BoolVar(&setupNoBrowser, "no-browser", false, "Only print the authorization URL")
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	var openURL func(string) error
	if !setupNoBrowser {
		openURL = drive.OpenBrowser
	}

	return RunSetupWithDependencies(
		cmd.Context(),
		*cfg,
		drive.NewOAuthClient(*cfg, drive.WithOAuthHTTPClient(newHTTPClient())),
		tokenstore.New(tokenFile),
		PromptCodeReader{Prompter: DefaultPrompter},
		openURL,
		cmd.OutOrStdout(),
	)
}

// RunSetupWithDependencies runs the setup command with injected dependencies (for testing)
func RunSetupWithDependencies(
	ctx context.Context,
	cfg delivery.Config,
	authorizer delivery.Authorizer,
	store delivery.TokenStore,
	codes delivery.CodeReader,
	openURL func(string) error,
	output io.Writer,
) error {
	fmt.Fprintf(output, "Google Drive OAuth2 Setup\n\n")

	service := appdelivery.NewAuthorizeService(cfg, authorizer, store, codes, openURL, output, log)
	if _, err := service.Authorize(ctx); err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}

	fmt.Fprintf(output, "\nNext: run 'drive-delivery upload' to upload a file, or 'drive-delivery test' to verify.\n")
	return nil
}
