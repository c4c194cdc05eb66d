package delivery

import (
	"mime"
	"path/filepath"
	"strings"
)

// MIME type constants for common delivery formats
const (
	MimeTypeOctetStream = "application/octet-stream"
	MimeTypeText        = "text/plain"
	MimeTypeGzip        = "application/gzip"
)

// knownTypes takes precedence over the system table, which differs between hosts
var knownTypes = map[string]string{
	".txt":  MimeTypeText,
	".log":  MimeTypeText,
	".md":   "text/markdown",
	".csv":  "text/csv",
	".json": "application/json",
	".gz":   MimeTypeGzip,
	".tgz":  MimeTypeGzip,
	".tar":  "application/x-tar",
	".zip":  "application/zip",
	".bz2":  "application/x-bzip2",
	".xz":   "application/x-xz",
	".7z":   "application/x-7z-compressed",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".mp3":  "audio/mpeg",
	".mp4":  "video/mp4",
}

// MimeTypeFor detects the MIME type from a filename's extension
func MimeTypeFor(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return MimeTypeOctetStream
	}
	if t, ok := knownTypes[ext]; ok {
		return t
	}

	t := mime.TypeByExtension(ext)
	if t == "" {
		return MimeTypeOctetStream
	}
	// Drive expects the bare media type
	mediaType, _, err := mime.ParseMediaType(t)
	if err != nil {
		return MimeTypeOctetStream
	}
	return mediaType
}
