package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"drive-delivery/domain/delivery"
	"drive-delivery/infrastructure/config"
)

// mockPrompter implements Prompter for testing
type mockPrompter struct {
	inputs   []string
	confirms []bool
}

func (m *mockPrompter) Input(message string, defaultValue string) (string, error) {
	if len(m.inputs) == 0 {
		return "", fmt.Errorf("no more input responses available for message: %s", message)
	}
	response := m.inputs[0]
	m.inputs = m.inputs[1:]
	return response, nil
}

func (m *mockPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if len(m.confirms) == 0 {
		return defaultValue, nil
	}
	response := m.confirms[0]
	m.confirms = m.confirms[1:]
	return response, nil
}

// fakeUploader implements appdelivery.FileUploader for testing
type fakeUploader struct {
	result *delivery.UploadResult
	err    error
	names  []string
}

func (f *fakeUploader) UploadToDrive(ctx context.Context, localPath, customFilename string) (*delivery.UploadResult, error) {
	f.names = append(f.names, customFilename)
	return f.result, f.err
}

func TestResolveUploadName(t *testing.T) {
	now := time.Date(2026, 2, 14, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		localPath string
		flagName  string
		want      string
	}{
		{"explicit name wins", DefaultWorkspaceArchive, "custom.tar.gz", "custom.tar.gz"},
		{"default archive is dated", DefaultWorkspaceArchive, "", "Workspace-2026-02-14.tar.gz"},
		{"other files keep their name", "/home/me/report.pdf", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveUploadName(tt.localPath, tt.flagName, now); got != tt.want {
				t.Errorf("resolveUploadName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRunUploadWithDependencies(t *testing.T) {
	uploader := &fakeUploader{result: &delivery.UploadResult{
		FileID:      "abc",
		URL:         delivery.ViewURL("abc"),
		WebViewLink: delivery.ShareURL("abc"),
		FileName:    "Workspace-2026-02-14.tar.gz",
		Size:        2 * 1024 * 1024,
	}}
	var output bytes.Buffer

	err := RunUploadWithDependencies(context.Background(), uploader, DefaultWorkspaceArchive, "Workspace-2026-02-14.tar.gz", &output)
	if err != nil {
		t.Fatalf("RunUploadWithDependencies() error = %v", err)
	}

	for _, line := range []string{"Upload successful!", "File ID: abc", "Size: 2.00 MB", "Share link: https://drive.google.com/file/d/abc/view?usp=sharing"} {
		if !strings.Contains(output.String(), line) {
			t.Errorf("output missing %q in:\n%s", line, output.String())
		}
	}
}

func TestRunUploadWithDependencies_Error(t *testing.T) {
	uploader := &fakeUploader{err: fmt.Errorf("%w: /tmp/workspace.tar.gz", delivery.ErrLocalFileNotFound)}

	err := RunUploadWithDependencies(context.Background(), uploader, DefaultWorkspaceArchive, "", &bytes.Buffer{})
	if !errors.Is(err, delivery.ErrLocalFileNotFound) {
		t.Fatalf("expected ErrLocalFileNotFound, got %v", err)
	}
}

func TestRunInitConfigWithPrompter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	prompter := &mockPrompter{inputs: []string{"client.apps.googleusercontent.com", "secret", "folder-1"}}
	var output bytes.Buffer

	if err := RunInitConfigWithPrompter(prompter, path, &output); err != nil {
		t.Fatalf("RunInitConfigWithPrompter() error = %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := delivery.Config{ClientID: "client.apps.googleusercontent.com", ClientSecret: "secret", FolderID: "folder-1"}
	if *cfg != want {
		t.Errorf("config = %+v, want %+v", *cfg, want)
	}
}

func TestRunInitConfigWithPrompter_KeepsExistingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	original := `{"clientId": "c", "clientSecret": "s", "folderId": "f1"}`
	if err := os.WriteFile(path, []byte(original), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	var output bytes.Buffer

	if err := RunInitConfigWithPrompter(&mockPrompter{confirms: []bool{false}}, path, &output); err != nil {
		t.Fatalf("RunInitConfigWithPrompter() error = %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != original {
		t.Errorf("config changed to %s", data)
	}
	if !strings.Contains(output.String(), "Setup cancelled.") {
		t.Errorf("output = %q", output.String())
	}
}

func TestRunInitConfigWithPrompter_RejectsPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	prompter := &mockPrompter{inputs: []string{"YOUR_CLIENT_ID", "secret", "folder-1"}}

	err := RunInitConfigWithPrompter(prompter, path, &bytes.Buffer{})
	if !errors.Is(err, delivery.ErrConfigInvalid) {
		t.Fatalf("expected ErrConfigInvalid, got %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("expected no config file to be written")
	}
}

func TestPromptCodeReader(t *testing.T) {
	reader := PromptCodeReader{Prompter: &mockPrompter{inputs: []string{"4/0AbC"}}}

	code, err := reader.ReadCode(context.Background(), "https://accounts.google.com/o/oauth2/v2/auth")
	if err != nil {
		t.Fatalf("ReadCode() error = %v", err)
	}
	if code != "4/0AbC" {
		t.Errorf("ReadCode() = %q", code)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := reader.ReadCode(ctx, ""); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
