package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"drive-delivery/domain/delivery"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

// DefaultUploadURL is Drive's media upload endpoint
const DefaultUploadURL = "https://www.googleapis.com/upload/drive/v3/files"

// Client implements delivery.DriveUploader with a single multipart/related POST
type Client struct {
	httpClient *http.Client
	uploadURL  string
	now        func() time.Time
	log        logrus.FieldLogger
}

// ClientOption is a functional option for configuring Client
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for uploads
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithUploadURL overrides the upload endpoint (for testing)
func WithUploadURL(uploadURL string) ClientOption {
	return func(c *Client) {
		c.uploadURL = uploadURL
	}
}

// WithClock sets the clock the multipart boundary is derived from
func WithClock(now func() time.Time) ClientOption {
	return func(c *Client) {
		c.now = now
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(log logrus.FieldLogger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient creates a new Google Drive upload client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: http.DefaultClient,
		uploadURL:  DefaultUploadURL,
		now:        time.Now,
		log:        discardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Upload reads the whole file, base64-encodes it and creates it in Drive.
// Every call creates a new remote file.
func (c *Client) Upload(ctx context.Context, accessToken string, req delivery.UploadRequest) (*delivery.UploadResult, error) {
	content, err := os.ReadFile(req.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", delivery.ErrLocalFileNotFound, req.LocalPath)
	}

	metadata := &drive.File{
		Name:     req.FileName,
		MimeType: req.MimeType,
		Parents:  []string{req.FolderID},
	}

	body, err := buildMultipartBody(newBoundary(c.now()), metadata, content)
	if err != nil {
		return nil, err
	}

	endpoint, err := c.endpoint()
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(body.Content))
	if err != nil {
		return nil, fmt.Errorf("failed to create upload request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Content-Type", body.ContentType())

	c.log.WithFields(logrus.Fields{
		"name":     req.FileName,
		"mimeType": req.MimeType,
		"folderId": req.FolderID,
		"bytes":    len(content),
	}).Debug("Uploading file")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", delivery.ErrUploadFailed, err)
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return nil, uploadError(err)
	}

	var created drive.File
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("%w: unreadable response: %v", delivery.ErrUploadFailed, err)
	}
	if created.Id == "" {
		return nil, fmt.Errorf("%w: response did not include a file id", delivery.ErrUploadFailed)
	}

	c.log.WithField("fileId", created.Id).Debug("Upload complete")

	return &delivery.UploadResult{
		FileID:      created.Id,
		URL:         delivery.ViewURL(created.Id),
		WebViewLink: delivery.ShareURL(created.Id),
		FileName:    req.FileName,
		MimeType:    req.MimeType,
		Size:        int64(len(content)),
	}, nil
}

// endpoint adds the multipart and shared drive query parameters
func (c *Client) endpoint() (string, error) {
	u, err := url.Parse(c.uploadURL)
	if err != nil {
		return "", fmt.Errorf("invalid upload URL %q: %w", c.uploadURL, err)
	}
	q := u.Query()
	q.Set("uploadType", "multipart")
	q.Set("supportsAllDrives", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// uploadError keeps the HTTP status and the verbatim response body
func uploadError(err error) error {
	if gerr, ok := err.(*googleapi.Error); ok {
		return fmt.Errorf("%w (HTTP %d): %s", delivery.ErrUploadFailed, gerr.Code, strings.TrimSpace(gerr.Body))
	}
	return fmt.Errorf("%w: %v", delivery.ErrUploadFailed, err)
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// Ensure Client implements delivery.DriveUploader
var _ delivery.DriveUploader = (*Client)(nil)
