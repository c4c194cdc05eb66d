package drive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"drive-delivery/domain/delivery"

	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveService defines the interface for Google Drive API operations
// This allows mocking the Google Drive API in tests
type DriveService interface {
	CreateFile(ctx context.Context, file *drive.File, media io.Reader) (*drive.File, error)
}

// GoogleDriveService is the production implementation using the Google Drive API
type GoogleDriveService struct {
	service *drive.Service
}

// CreateFile creates a file with its content in one request.
// ChunkSize(0) disables resumable uploads.
func (s *GoogleDriveService) CreateFile(ctx context.Context, file *drive.File, media io.Reader) (*drive.File, error) {
	return s.service.Files.Create(file).
		Media(media, googleapi.ChunkSize(0), googleapi.ContentType(file.MimeType)).
		SupportsAllDrives(true).
		Fields("id, name, mimeType, size, webViewLink").
		Context(ctx).
		Do()
}

// ServiceFactory builds a DriveService authorized with an access token
type ServiceFactory func(ctx context.Context, accessToken string) (DriveService, error)

// SDKUploader implements delivery.DriveUploader through the Drive API client library.
// Unlike Client it streams the file instead of buffering it.
type SDKUploader struct {
	newService ServiceFactory
}

// SDKOption is a functional option for configuring SDKUploader
type SDKOption func(*SDKUploader)

// WithDriveService sets a custom drive service (for testing)
func WithDriveService(svc DriveService) SDKOption {
	return func(u *SDKUploader) {
		u.newService = func(context.Context, string) (DriveService, error) {
			return svc, nil
		}
	}
}

// NewSDKUploader creates an uploader backed by google.golang.org/api/drive/v3.
// httpClient carries timeouts; endpoint may be empty for the production API.
func NewSDKUploader(httpClient *http.Client, endpoint string, opts ...SDKOption) *SDKUploader {
	u := &SDKUploader{
		newService: googleServiceFactory(httpClient, endpoint),
	}

	for _, opt := range opts {
		opt(u)
	}

	return u
}

func googleServiceFactory(httpClient *http.Client, endpoint string) ServiceFactory {
	return func(ctx context.Context, accessToken string) (DriveService, error) {
		base := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		client := oauth2.NewClient(base, oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: accessToken,
			TokenType:   "Bearer",
		}))

		opts := []option.ClientOption{option.WithHTTPClient(client)}
		if endpoint != "" {
			opts = append(opts, option.WithEndpoint(endpoint))
		}

		srv, err := drive.NewService(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("unable to create drive service: %w", err)
		}
		return &GoogleDriveService{service: srv}, nil
	}
}

// Upload implements delivery.DriveUploader
func (u *SDKUploader) Upload(ctx context.Context, accessToken string, req delivery.UploadRequest) (*delivery.UploadResult, error) {
	f, err := os.Open(req.LocalPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", delivery.ErrLocalFileNotFound, req.LocalPath)
	}
	defer f.Close()

	srv, err := u.newService(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	created, err := srv.CreateFile(ctx, &drive.File{
		Name:     req.FileName,
		MimeType: req.MimeType,
		Parents:  []string{req.FolderID},
	}, f)
	if err != nil {
		return nil, uploadError(err)
	}
	if created.Id == "" {
		return nil, fmt.Errorf("%w: response did not include a file id", delivery.ErrUploadFailed)
	}

	size := created.Size
	if size == 0 {
		if info, err := f.Stat(); err == nil {
			size = info.Size()
		}
	}

	return &delivery.UploadResult{
		FileID:      created.Id,
		URL:         delivery.ViewURL(created.Id),
		WebViewLink: delivery.ShareURL(created.Id),
		FileName:    req.FileName,
		MimeType:    req.MimeType,
		Size:        size,
	}, nil
}

// Ensure SDKUploader implements delivery.DriveUploader
var _ delivery.DriveUploader = (*SDKUploader)(nil)
