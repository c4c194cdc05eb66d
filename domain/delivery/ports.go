package delivery

import "context"

// TokenStore persists the refresh token between invocations
type TokenStore interface {
	// Load reads the saved token record
	Load() (*TokenRecord, error)

	// Save replaces the saved token record with a new refresh token
	Save(refreshToken string) (*TokenRecord, error)

	// Path returns where the record is stored
	Path() string
}

// Authorizer runs the provider side of the OAuth2 authorization code flow
type Authorizer interface {
	// AuthorizationURL returns the consent URL and the state value embedded in it
	AuthorizationURL(redirectURI string) (url string, state string, err error)

	// ExchangeCode trades an authorization code for tokens
	ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenResponse, error)
}

// AccessTokenSource derives short-lived access tokens from a refresh token
type AccessTokenSource interface {
	AccessToken(ctx context.Context, refreshToken string) (string, error)
}

// DriveUploader creates a new file in Google Drive
// This is a port that can be implemented by different infrastructure adapters
type DriveUploader interface {
	Upload(ctx context.Context, accessToken string, req UploadRequest) (*UploadResult, error)
}

// CodeReader blocks until a human supplies the authorization code
type CodeReader interface {
	ReadCode(ctx context.Context, authURL string) (string, error)
}

// FileChecker checks local file existence
type FileChecker interface {
	Exists(path string) bool
}
