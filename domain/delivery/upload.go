package delivery

import (
	"fmt"
	"path/filepath"
)

// UploadRequest contains the parameters needed to upload a file to Google Drive
type UploadRequest struct {
	LocalPath string // Full path to the local file
	FileName  string // Target filename in Google Drive
	FolderID  string // Target folder ID in Google Drive
	MimeType  string // MIME type of the file
}

// UploadResult contains the result of a successful upload
type UploadResult struct {
	FileID      string // Google Drive file ID
	URL         string // Plain view link
	WebViewLink string // View link flagged for sharing
	FileName    string // Name of the uploaded file
	MimeType    string // MIME type sent with the file
	Size        int64  // Size of the uploaded file in bytes
}

// NewUploadRequest resolves the remote name and MIME type for a local file.
// An empty customName keeps the local base name.
func NewUploadRequest(localPath, customName, folderID string) UploadRequest {
	name := customName
	if name == "" {
		name = filepath.Base(localPath)
	}
	return UploadRequest{
		LocalPath: localPath,
		FileName:  name,
		FolderID:  folderID,
		MimeType:  MimeTypeFor(name),
	}
}

// ViewURL returns the plain view link for a Drive file
func ViewURL(fileID string) string {
	return fmt.Sprintf("https://drive.google.com/file/d/%s/view", fileID)
}

// ShareURL returns the sharing view link for a Drive file
func ShareURL(fileID string) string {
	return ViewURL(fileID) + "?usp=sharing"
}
