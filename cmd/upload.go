package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	appdelivery "drive-delivery/application/delivery"
	"drive-delivery/domain/delivery"
	"drive-delivery/infrastructure/drive"
	"drive-delivery/infrastructure/filesystem"
	"drive-delivery/infrastructure/tokenstore"

	"github.com/spf13/cobra"
)

// DefaultWorkspaceArchive is the archive uploaded when --file is not given
const DefaultWorkspaceArchive = "/tmp/workspace.tar.gz"

var (
	uploadFile string
	uploadName string
	uploadSDK  bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a file to the configured Google Drive folder",
	Long: `Upload a single file to the Google Drive folder from the config file and
print its share link.

By default the workspace archive /tmp/workspace.tar.gz is uploaded as
Workspace-<today>.tar.gz. Every upload creates a new file in Drive.

Example:
  drive-delivery upload
  drive-delivery upload --file ./report.pdf
  drive-delivery upload --file /tmp/workspace.tar.gz --name Workspace-2026-02-14.tar.gz`,
	Args: cobra.NoArgs,
	RunE: runUpload,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadFile, "file", DefaultWorkspaceArchive, "Path to the file to upload")
	uploadCmd.Flags().StringVar(&uploadName, "name", "", "Filename in Drive (defaults to the local name)")
	uploadCmd.Flags().BoolVar(&uploadSDK, "sdk", false, "Stream the file through the Drive API client instead of a base64 multipart request")
}

func runUpload(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	service := newUploadService(*cfg, uploadSDK, cmd.OutOrStdout())
	name := resolveUploadName(uploadFile, uploadName, time.Now())

	return RunUploadWithDependencies(cmd.Context(), service, uploadFile, name, cmd.OutOrStdout())
}

// newUploadService wires the production adapters
func newUploadService(cfg delivery.Config, useSDK bool, output io.Writer) *appdelivery.UploadService {
	httpClient := newHTTPClient()

	var uploader delivery.DriveUploader = drive.NewClient(
		drive.WithHTTPClient(httpClient),
		drive.WithLogger(log),
	)
	if useSDK {
		uploader = drive.NewSDKUploader(httpClient, "")
	}

	return appdelivery.NewUploadService(
		cfg,
		tokenstore.New(tokenFile),
		drive.NewOAuthClient(cfg, drive.WithOAuthHTTPClient(httpClient)),
		uploader,
		filesystem.NewChecker(),
		output,
		log,
	)
}

// resolveUploadName names the default workspace archive after today's date
func resolveUploadName(localPath, name string, now time.Time) string {
	if name != "" {
		return name
	}
	if localPath == DefaultWorkspaceArchive {
		return fmt.Sprintf("Workspace-%s.tar.gz", now.Format("2006-01-02"))
	}
	return ""
}

// RunUploadWithDependencies runs the upload command with injected dependencies (for testing)
func RunUploadWithDependencies(
	ctx context.Context,
	uploader appdelivery.FileUploader,
	localPath string,
	name string,
	output io.Writer,
) error {
	fmt.Fprintf(output, "Uploading %s...\n", localPath)

	result, err := uploader.UploadToDrive(ctx, localPath, name)
	if err != nil {
		return fmt.Errorf("upload failed: %w", err)
	}

	fmt.Fprintf(output, "\nUpload successful!\n")
	fmt.Fprintf(output, "  File ID: %s\n", result.FileID)
	fmt.Fprintf(output, "  Filename: %s\n", result.FileName)
	fmt.Fprintf(output, "  Size: %.2f MB\n", float64(result.Size)/1024/1024)
	fmt.Fprintf(output, "  View link: %s\n", result.URL)
	fmt.Fprintf(output, "  Share link: %s\n", result.WebViewLink)
	return nil
}
