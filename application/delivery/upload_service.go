package delivery

import (
	"context"
	"fmt"
	"io"

	"drive-delivery/domain/delivery"

	"github.com/sirupsen/logrus"
)

// UploadService turns a stored refresh token into an access token and uploads one file
type UploadService struct {
	cfg          delivery.Config
	tokens       delivery.TokenStore
	accessTokens delivery.AccessTokenSource
	uploader     delivery.DriveUploader
	fileChecker  delivery.FileChecker
	output       io.Writer
	log          logrus.FieldLogger
}

// NewUploadService creates a new upload service
func NewUploadService(
	cfg delivery.Config,
	tokens delivery.TokenStore,
	accessTokens delivery.AccessTokenSource,
	uploader delivery.DriveUploader,
	fileChecker delivery.FileChecker,
	output io.Writer,
	log logrus.FieldLogger,
) *UploadService {
	if output == nil {
		output = io.Discard
	}
	if log == nil {
		log = discardLogger()
	}
	return &UploadService{
		cfg:          cfg,
		tokens:       tokens,
		accessTokens: accessTokens,
		uploader:     uploader,
		fileChecker:  fileChecker,
		output:       output,
		log:          log,
	}
}

// UploadToDrive uploads localPath into the configured folder. An empty
// customFilename keeps the local base name. Each call creates a new remote
// file, even for identical arguments.
func (s *UploadService) UploadToDrive(ctx context.Context, localPath, customFilename string) (*delivery.UploadResult, error) {
	if !s.fileChecker.Exists(localPath) {
		return nil, fmt.Errorf("%w: %s", delivery.ErrLocalFileNotFound, localPath)
	}

	record, err := s.tokens.Load()
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.output, "Target folder ID: %s\n", s.cfg.FolderID)

	accessToken, err := s.accessTokens.AccessToken(ctx, record.RefreshToken)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(s.output, "Got access token\n")

	req := delivery.NewUploadRequest(localPath, customFilename, s.cfg.FolderID)
	s.log.WithFields(logrus.Fields{
		"localPath": localPath,
		"name":      req.FileName,
		"mimeType":  req.MimeType,
	}).Debug("Resolved upload request")

	result, err := s.uploader.Upload(ctx, accessToken, req)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.output, "Upload successful: %s\n", result.FileName)
	return result, nil
}

func discardLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
