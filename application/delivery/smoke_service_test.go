package delivery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"drive-delivery/domain/delivery"
)

// recordingUploader implements FileUploader and notes whether the local file existed at upload time
type recordingUploader struct {
	err          error
	paths        []string
	names        []string
	existedAtRun bool
}

func (r *recordingUploader) UploadToDrive(ctx context.Context, localPath, customFilename string) (*delivery.UploadResult, error) {
	r.paths = append(r.paths, localPath)
	r.names = append(r.names, customFilename)
	_, statErr := os.Stat(localPath)
	r.existedAtRun = statErr == nil
	if r.err != nil {
		return nil, r.err
	}
	return &delivery.UploadResult{
		FileID:      "smoke-id",
		URL:         delivery.ViewURL("smoke-id"),
		WebViewLink: delivery.ShareURL("smoke-id"),
		FileName:    customFilename,
		MimeType:    delivery.MimeTypeText,
	}, nil
}

func TestSmokeTestService_Run(t *testing.T) {
	uploader := &recordingUploader{}
	tokens := &mockTokenStore{record: &delivery.TokenRecord{RefreshToken: "r"}}
	var output bytes.Buffer

	service := NewSmokeTestService(testConfig, tokens, uploader, t.TempDir(), &output)

	result, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.FileID != "smoke-id" {
		t.Errorf("FileID = %q", result.FileID)
	}
	if len(uploader.names) != 1 || uploader.names[0] != SmokeTestFileName {
		t.Errorf("uploaded names = %v", uploader.names)
	}
	if !uploader.existedAtRun {
		t.Error("expected the test file to exist during upload")
	}
	if _, err := os.Stat(uploader.paths[0]); !os.IsNotExist(err) {
		t.Errorf("expected test file to be removed, stat error = %v", err)
	}
	for _, line := range []string{"Config looks good", "Refresh token found", "File ID: smoke-id", "Test passed!"} {
		if !strings.Contains(output.String(), line) {
			t.Errorf("output missing %q in:\n%s", line, output.String())
		}
	}
}

func TestSmokeTestService_Run_CleansUpWhenUploadFails(t *testing.T) {
	uploader := &recordingUploader{err: fmt.Errorf("%w (HTTP 500): backend error", delivery.ErrUploadFailed)}
	tokens := &mockTokenStore{record: &delivery.TokenRecord{RefreshToken: "r"}}
	dir := t.TempDir()

	service := NewSmokeTestService(testConfig, tokens, uploader, dir, nil)

	_, err := service.Run(context.Background())
	if !errors.Is(err, delivery.ErrUploadFailed) {
		t.Fatalf("expected ErrUploadFailed, got %v", err)
	}
	if !uploader.existedAtRun {
		t.Error("expected the test file to exist during upload")
	}
	if _, err := os.Stat(uploader.paths[0]); !os.IsNotExist(err) {
		t.Errorf("expected test file to be removed after failure, stat error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty temp dir, found %d entries", len(entries))
	}
}

func TestSmokeTestService_Run_StopsBeforeUpload(t *testing.T) {
	tests := []struct {
		name       string
		cfg        delivery.Config
		tokens     *mockTokenStore
		wantErr    error
		wantOutput string
	}{
		{
			name:       "placeholder config",
			cfg:        delivery.Config{ClientID: "YOUR_CLIENT_ID", ClientSecret: "s", FolderID: "f1"},
			tokens:     &mockTokenStore{record: &delivery.TokenRecord{RefreshToken: "r"}},
			wantErr:    delivery.ErrConfigInvalid,
			wantOutput: "Config error",
		},
		{
			name:       "not authorized",
			cfg:        testConfig,
			tokens:     &mockTokenStore{},
			wantErr:    delivery.ErrTokenFileMissing,
			wantOutput: "drive-delivery setup",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &recordingUploader{}
			var output bytes.Buffer

			service := NewSmokeTestService(tt.cfg, tt.tokens, uploader, t.TempDir(), &output)

			_, err := service.Run(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if len(uploader.paths) != 0 {
				t.Errorf("expected no upload, got %v", uploader.paths)
			}
			if !strings.Contains(output.String(), tt.wantOutput) {
				t.Errorf("output missing %q in:\n%s", tt.wantOutput, output.String())
			}
		})
	}
}
