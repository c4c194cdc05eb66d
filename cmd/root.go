package cmd

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"drive-delivery/domain/delivery"
	"drive-delivery/infrastructure/config"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	tokenFile string
	timeout   time.Duration
	verbose   bool

	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "drive-delivery",
	Short: "Upload files to a Google Drive folder and print a share link",
	Long: `drive-delivery uploads a single local file (usually a workspace archive)
to a Google Drive folder using your own OAuth2 credentials:

  - Authorize once with 'setup' to store a refresh token
  - Upload with 'upload' to get a shareable link
  - Verify everything end to end with 'test'

Example:
  drive-delivery setup
  drive-delivery upload --file /tmp/workspace.tar.gz`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.json", "config file (.json, .yaml or .yml)")
	rootCmd.PersistentFlags().StringVar(&tokenFile, "tokens", ".drive-tokens.json", "refresh token file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 60*time.Second, "timeout for each request to Google")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostic details to stderr")
}

func configureLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
}

// loadConfig loads and validates the config file named by --config
func loadConfig() (*delivery.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	log.WithField("config", cfgFile).Debug("Loaded configuration")
	return cfg, nil
}

// newHTTPClient returns the client used for every request to Google
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: timeout}
}
