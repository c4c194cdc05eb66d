package delivery

import (
	"strings"
	"testing"
)

func TestNewUploadRequest(t *testing.T) {
	tests := []struct {
		name       string
		localPath  string
		customName string
		wantName   string
		wantMime   string
	}{
		{
			name:      "uses local base name",
			localPath: "/tmp/work/a.txt",
			wantName:  "a.txt",
			wantMime:  "text/plain",
		},
		{
			name:       "custom name decides mime type",
			localPath:  "/tmp/work/a.txt",
			customName: "b.gz",
			wantName:   "b.gz",
			wantMime:   "application/gzip",
		},
		{
			name:      "workspace archive",
			localPath: "/tmp/workspace.tar.gz",
			wantName:  "workspace.tar.gz",
			wantMime:  "application/gzip",
		},
		{
			name:      "unknown extension",
			localPath: "/tmp/blob.zzqx",
			wantName:  "blob.zzqx",
			wantMime:  "application/octet-stream",
		},
		{
			name:      "no extension",
			localPath: "/tmp/README",
			wantName:  "README",
			wantMime:  "application/octet-stream",
		},
		{
			name:      "extension case is ignored",
			localPath: "/tmp/NOTES.TXT",
			wantName:  "NOTES.TXT",
			wantMime:  "text/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewUploadRequest(tt.localPath, tt.customName, "f1")

			if req.FileName != tt.wantName {
				t.Errorf("FileName = %q, want %q", req.FileName, tt.wantName)
			}
			if req.MimeType != tt.wantMime {
				t.Errorf("MimeType = %q, want %q", req.MimeType, tt.wantMime)
			}
			if req.FolderID != "f1" {
				t.Errorf("FolderID = %q, want %q", req.FolderID, "f1")
			}
			if req.LocalPath != tt.localPath {
				t.Errorf("LocalPath = %q, want %q", req.LocalPath, tt.localPath)
			}
		})
	}
}

func TestMimeTypeFor_StripsParameters(t *testing.T) {
	// .html comes from the system table as "text/html; charset=utf-8"
	got := MimeTypeFor("index.html")
	if strings.Contains(got, ";") {
		t.Errorf("MimeTypeFor() = %q, want bare media type", got)
	}
}

func TestShareLinks(t *testing.T) {
	if got := ViewURL("abc"); got != "https://drive.google.com/file/d/abc/view" {
		t.Errorf("ViewURL() = %q", got)
	}
	if got := ShareURL("abc"); got != "https://drive.google.com/file/d/abc/view?usp=sharing" {
		t.Errorf("ShareURL() = %q", got)
	}
}
