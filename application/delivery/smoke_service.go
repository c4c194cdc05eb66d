package delivery

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"drive-delivery/domain/delivery"
)

// SmokeTestFileName is the remote name of the smoke test upload
const SmokeTestFileName = "drive-delivery-test.txt"

// FileUploader uploads a single local file
type FileUploader interface {
	UploadToDrive(ctx context.Context, localPath, customFilename string) (*delivery.UploadResult, error)
}

// SmokeTestService verifies configuration and authorization by uploading a throwaway file
type SmokeTestService struct {
	cfg      delivery.Config
	tokens   delivery.TokenStore
	uploader FileUploader
	tempDir  string
	now      func() time.Time
	output   io.Writer
}

// NewSmokeTestService creates a new smoke test service. An empty tempDir uses os.TempDir.
func NewSmokeTestService(
	cfg delivery.Config,
	tokens delivery.TokenStore,
	uploader FileUploader,
	tempDir string,
	output io.Writer,
) *SmokeTestService {
	if output == nil {
		output = io.Discard
	}
	return &SmokeTestService{
		cfg:      cfg,
		tokens:   tokens,
		uploader: uploader,
		tempDir:  tempDir,
		now:      time.Now,
		output:   output,
	}
}

// Run checks the config and token, then uploads a temporary file.
// The temporary file is removed whether or not the upload succeeds.
func (s *SmokeTestService) Run(ctx context.Context) (*delivery.UploadResult, error) {
	fmt.Fprintf(s.output, "Testing drive-delivery (OAuth2)...\n\n")

	fmt.Fprintf(s.output, "[1/3] Checking configuration...\n")
	fmt.Fprintf(s.output, "      Client ID: %s\n", s.cfg.MaskedClientID())
	fmt.Fprintf(s.output, "      Folder ID: %s\n", s.cfg.FolderID)
	if err := s.cfg.Validate(); err != nil {
		fmt.Fprintf(s.output, "      Config error: %v\n\n", err)
		return nil, err
	}
	fmt.Fprintf(s.output, "      Config looks good\n\n")

	fmt.Fprintf(s.output, "[2/3] Checking authorization...\n")
	if _, err := s.tokens.Load(); err != nil {
		fmt.Fprintf(s.output, "      Refresh token not usable\n\n")
		fmt.Fprintf(s.output, "You need to authorize first:\n\n")
		fmt.Fprintf(s.output, "   drive-delivery setup\n\n")
		return nil, err
	}
	fmt.Fprintf(s.output, "      Refresh token found\n\n")

	fmt.Fprintf(s.output, "[3/3] Creating and uploading test file...\n")
	testFile, err := s.writeTestFile()
	if err != nil {
		return nil, err
	}
	defer s.remove(testFile)
	fmt.Fprintf(s.output, "      Test file created: %s\n", testFile)

	result, err := s.uploader.UploadToDrive(ctx, testFile, SmokeTestFileName)
	if err != nil {
		fmt.Fprintf(s.output, "      Upload failed: %v\n\n", err)
		return nil, err
	}

	fmt.Fprintf(s.output, "\nResults:\n")
	fmt.Fprintf(s.output, "   File ID: %s\n", result.FileID)
	fmt.Fprintf(s.output, "   Filename: %s\n", result.FileName)
	fmt.Fprintf(s.output, "   MIME Type: %s\n", result.MimeType)
	fmt.Fprintf(s.output, "\n   View link: %s\n", result.URL)
	fmt.Fprintf(s.output, "   Share link: %s\n", result.WebViewLink)
	fmt.Fprintf(s.output, "\nTest passed! drive-delivery is ready to use.\n")

	return result, nil
}

func (s *SmokeTestService) writeTestFile() (string, error) {
	f, err := os.CreateTemp(s.tempDir, "drive-delivery-test-*.txt")
	if err != nil {
		return "", fmt.Errorf("failed to create test file: %w", err)
	}

	content := fmt.Sprintf("Test file created at %s\n\nIf you see this, drive-delivery is working!\n",
		s.now().UTC().Format(time.RFC3339))
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write test file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write test file: %w", err)
	}

	return f.Name(), nil
}

func (s *SmokeTestService) remove(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(s.output, "Warning: could not remove test file %s: %v\n", path, err)
	}
}
