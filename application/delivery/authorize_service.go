package delivery

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"drive-delivery/domain/delivery"

	"github.com/sirupsen/logrus"
)

// revokeURL is where a user can drop an earlier grant so consent is asked again
const revokeURL = "https://myaccount.google.com/permissions"

// AuthorizeService runs the one-time interactive authorization
type AuthorizeService struct {
	cfg        delivery.Config
	authorizer delivery.Authorizer
	store      delivery.TokenStore
	codes      delivery.CodeReader
	openURL    func(string) error
	output     io.Writer
	log        logrus.FieldLogger
}

// NewAuthorizeService creates a new authorization service. openURL may be nil.
func NewAuthorizeService(
	cfg delivery.Config,
	authorizer delivery.Authorizer,
	store delivery.TokenStore,
	codes delivery.CodeReader,
	openURL func(string) error,
	output io.Writer,
	log logrus.FieldLogger,
) *AuthorizeService {
	if output == nil {
		output = io.Discard
	}
	if log == nil {
		log = discardLogger()
	}
	return &AuthorizeService{
		cfg:        cfg,
		authorizer: authorizer,
		store:      store,
		codes:      codes,
		openURL:    openURL,
		output:     output,
		log:        log,
	}
}

// Authorize asks the user for consent, exchanges the pasted code and saves
// the refresh token. It blocks until the code is supplied.
func (s *AuthorizeService) Authorize(ctx context.Context) (*delivery.TokenRecord, error) {
	redirectURI := s.cfg.Redirect()

	fmt.Fprintf(s.output, "[1/3] Generating authorization URL...\n\n")
	authURL, state, err := s.authorizer.AuthorizationURL(redirectURI)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.output, "Open this URL in your browser and grant permission:\n\n")
	fmt.Fprintf(s.output, "%s\n\n", authURL)

	if s.openURL != nil {
		if err := s.openURL(authURL); err != nil {
			s.log.WithError(err).Debug("Could not open browser")
		}
	}

	input, err := s.codes.ReadCode(ctx, authURL)
	if err != nil {
		return nil, fmt.Errorf("failed to read authorization code: %w", err)
	}

	code, err := parseCode(input, state)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(s.output, "\n[2/3] Exchanging code for refresh token...\n\n")
	tokens, err := s.authorizer.ExchangeCode(ctx, code, redirectURI)
	if err != nil {
		return nil, err
	}
	if tokens.RefreshToken == "" {
		return nil, fmt.Errorf("%w; authorization may have failed. If this app was authorized before, remove its access at %s and run setup again",
			delivery.ErrNoRefreshToken, revokeURL)
	}

	fmt.Fprintf(s.output, "[3/3] Saving refresh token...\n\n")
	record, err := s.store.Save(tokens.RefreshToken)
	switch {
	case errors.Is(err, delivery.ErrPermissionsUnsupported) && record != nil:
		fmt.Fprintf(s.output, "Warning: %v\n", err)
		fmt.Fprintf(s.output, "         Restrict access to %s manually.\n", s.store.Path())
	case err != nil:
		return nil, err
	}

	fmt.Fprintf(s.output, "Refresh token saved to: %s\n", s.store.Path())
	fmt.Fprintf(s.output, "   Keep this file secure - it grants access to your Drive\n\n")
	fmt.Fprintf(s.output, "Setup complete! You can now upload files to your Drive.\n")

	s.log.WithField("tokenFile", s.store.Path()).Debug("Authorization complete")
	return record, nil
}

// parseCode accepts either the bare code or the full redirect URL the
// browser landed on. A URL must carry the state generated for this run.
func parseCode(input, state string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", delivery.ErrNoAuthorizationCode
	}

	if !strings.Contains(input, "code=") && !strings.Contains(input, "error=") {
		return input, nil
	}

	u, err := url.Parse(input)
	if err != nil {
		return input, nil
	}
	query := u.Query()

	if providerErr := query.Get("error"); providerErr != "" {
		return "", fmt.Errorf("%w: provider returned %s", delivery.ErrTokenExchangeFailed, providerErr)
	}

	code := query.Get("code")
	if code == "" {
		return "", delivery.ErrNoAuthorizationCode
	}
	if got := query.Get("state"); got != state {
		return "", delivery.ErrStateMismatch
	}

	return code, nil
}
