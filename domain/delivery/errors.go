package delivery

import "errors"

var (
	// ErrConfigMissing is returned when the config file does not exist
	ErrConfigMissing = errors.New("config file not found")

	// ErrConfigInvalid is returned when the config file cannot be parsed or lacks required values
	ErrConfigInvalid = errors.New("invalid config")

	// ErrTokenFileMissing is returned when no refresh token has been saved yet
	ErrTokenFileMissing = errors.New("refresh token not found")

	// ErrTokenFileInvalid is returned when the token file is malformed or has no refresh token
	ErrTokenFileInvalid = errors.New("invalid token file")

	// ErrTokenExchangeFailed is returned when the token endpoint rejects an authorization code
	ErrTokenExchangeFailed = errors.New("failed to exchange authorization code")

	// ErrNoRefreshToken is returned when a code exchange succeeds but no refresh token is issued
	ErrNoRefreshToken = errors.New("no refresh token in response")

	// ErrRefreshFailed is returned when the token endpoint rejects a refresh token
	ErrRefreshFailed = errors.New("failed to refresh access token")

	// ErrNoAccessToken is returned when a refresh succeeds but no access token is issued
	ErrNoAccessToken = errors.New("no access token in response")

	// ErrLocalFileNotFound is returned when the file to upload does not exist
	ErrLocalFileNotFound = errors.New("local file not found")

	// ErrUploadFailed is returned when the upload endpoint rejects the request
	ErrUploadFailed = errors.New("upload failed")

	// ErrNoAuthorizationCode is returned when the user submits an empty authorization code
	ErrNoAuthorizationCode = errors.New("no authorization code provided")

	// ErrStateMismatch is returned when a pasted redirect URL carries a foreign state value
	ErrStateMismatch = errors.New("authorization state mismatch")

	// ErrPermissionsUnsupported is returned when the platform cannot restrict the token file to its owner
	ErrPermissionsUnsupported = errors.New("owner-only file permissions are not supported on this platform")
)
