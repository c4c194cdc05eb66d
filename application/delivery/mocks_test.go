package delivery

import (
	"context"
	"fmt"
	"os"
	"time"

	"drive-delivery/domain/delivery"
)

// mockTokenStore implements delivery.TokenStore for testing
type mockTokenStore struct {
	record  *delivery.TokenRecord
	loadErr error
	saveErr error
	saved   []string
}

func (m *mockTokenStore) Load() (*delivery.TokenRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.record == nil {
		return nil, fmt.Errorf("%w. Run: drive-delivery setup to authorize first", delivery.ErrTokenFileMissing)
	}
	return m.record, nil
}

func (m *mockTokenStore) Save(refreshToken string) (*delivery.TokenRecord, error) {
	m.saved = append(m.saved, refreshToken)
	record := &delivery.TokenRecord{RefreshToken: refreshToken, SavedAt: time.Now()}
	if m.saveErr != nil {
		return record, m.saveErr
	}
	m.record = record
	return record, nil
}

func (m *mockTokenStore) Path() string {
	return "/tmp/.drive-tokens.json"
}

// mockAccessTokens implements delivery.AccessTokenSource for testing
type mockAccessTokens struct {
	token         string
	err           error
	refreshTokens []string
}

func (m *mockAccessTokens) AccessToken(ctx context.Context, refreshToken string) (string, error) {
	m.refreshTokens = append(m.refreshTokens, refreshToken)
	if m.err != nil {
		return "", m.err
	}
	return m.token, nil
}

// mockUploader implements delivery.DriveUploader for testing
type mockUploader struct {
	requests     []delivery.UploadRequest
	accessTokens []string
	err          error
}

func (m *mockUploader) Upload(ctx context.Context, accessToken string, req delivery.UploadRequest) (*delivery.UploadResult, error) {
	m.requests = append(m.requests, req)
	m.accessTokens = append(m.accessTokens, accessToken)
	if m.err != nil {
		return nil, m.err
	}
	id := fmt.Sprintf("file-%d", len(m.requests))
	return &delivery.UploadResult{
		FileID:      id,
		URL:         delivery.ViewURL(id),
		WebViewLink: delivery.ShareURL(id),
		FileName:    req.FileName,
		MimeType:    req.MimeType,
	}, nil
}

// mockFileChecker implements delivery.FileChecker for testing
type mockFileChecker struct {
	existingFiles map[string]bool
}

func (m *mockFileChecker) Exists(path string) bool {
	return m.existingFiles[path]
}

// osFileChecker checks the real filesystem
type osFileChecker struct{}

func (osFileChecker) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// mockAuthorizer implements delivery.Authorizer for testing
type mockAuthorizer struct {
	state       string
	response    *delivery.TokenResponse
	exchangeErr error
	codes       []string
	redirects   []string
}

func (m *mockAuthorizer) AuthorizationURL(redirectURI string) (string, string, error) {
	m.redirects = append(m.redirects, redirectURI)
	return "https://accounts.google.com/o/oauth2/v2/auth?state=" + m.state, m.state, nil
}

func (m *mockAuthorizer) ExchangeCode(ctx context.Context, code, redirectURI string) (*delivery.TokenResponse, error) {
	m.codes = append(m.codes, code)
	if m.exchangeErr != nil {
		return nil, m.exchangeErr
	}
	return m.response, nil
}

// mockCodeReader implements delivery.CodeReader for testing
type mockCodeReader struct {
	input   string
	err     error
	prompts []string
}

func (m *mockCodeReader) ReadCode(ctx context.Context, authURL string) (string, error) {
	m.prompts = append(m.prompts, authURL)
	return m.input, m.err
}
