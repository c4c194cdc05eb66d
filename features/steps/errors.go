//go:build integration

package steps

import (
	"errors"
	"fmt"

	"drive-delivery/domain/delivery"
)

// errorKinds maps the names used in feature files to error sentinels
var errorKinds = map[string]error{
	"config missing":        delivery.ErrConfigMissing,
	"config invalid":        delivery.ErrConfigInvalid,
	"token file missing":    delivery.ErrTokenFileMissing,
	"token file invalid":    delivery.ErrTokenFileInvalid,
	"token exchange failed": delivery.ErrTokenExchangeFailed,
	"no refresh token":      delivery.ErrNoRefreshToken,
	"refresh failed":        delivery.ErrRefreshFailed,
	"no access token":       delivery.ErrNoAccessToken,
	"local file not found":  delivery.ErrLocalFileNotFound,
	"upload failed":         delivery.ErrUploadFailed,
	"no authorization code": delivery.ErrNoAuthorizationCode,
}

func expectErrorKind(err error, kind string) error {
	want, ok := errorKinds[kind]
	if !ok {
		return fmt.Errorf("unknown error kind %q", kind)
	}
	if err == nil {
		return fmt.Errorf("expected %s error but got none", kind)
	}
	if !errors.Is(err, want) {
		return fmt.Errorf("expected %s error, got: %v", kind, err)
	}
	return nil
}
