package drive

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
)

// multipartBody is a multipart/related upload body
type multipartBody struct {
	Boundary string
	Content  string
}

// ContentType returns the header value announcing the boundary
func (b multipartBody) ContentType() string {
	return fmt.Sprintf("multipart/related; boundary=%q", b.Boundary)
}

// newBoundary derives a boundary from the clock. Delimiter lines start with
// "--", which cannot appear in base64 output.
func newBoundary(now time.Time) string {
	return fmt.Sprintf("===============%d===============", now.UnixMilli())
}

// buildMultipartBody builds the two-part body Drive expects for uploadType=multipart:
// JSON metadata first, then the base64-encoded file content.
func buildMultipartBody(boundary string, metadata *drive.File, content []byte) (multipartBody, error) {
	meta, err := json.Marshal(metadata)
	if err != nil {
		return multipartBody{}, fmt.Errorf("failed to encode file metadata: %w", err)
	}

	delimiter := "--" + boundary
	var body strings.Builder

	// Metadata part
	body.WriteString(delimiter + "\r\n")
	body.WriteString("Content-Type: application/json; charset=UTF-8\r\n\r\n")
	body.Write(meta)
	body.WriteString("\r\n")

	// Media part
	body.WriteString(delimiter + "\r\n")
	body.WriteString(fmt.Sprintf("Content-Type: %s\r\n", metadata.MimeType))
	body.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")
	body.WriteString(base64.StdEncoding.EncodeToString(content))
	body.WriteString("\r\n")

	body.WriteString(delimiter + "--\r\n")

	return multipartBody{Boundary: boundary, Content: body.String()}, nil
}
