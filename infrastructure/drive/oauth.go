package drive

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"drive-delivery/domain/delivery"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/drive/v3"
)

// stateBytes is the amount of randomness in the anti-CSRF state value
const stateBytes = 32

// OAuthClient implements delivery.Authorizer and delivery.AccessTokenSource
// against Google's OAuth 2.0 endpoints
type OAuthClient struct {
	config     *oauth2.Config
	httpClient *http.Client
}

// OAuthOption is a functional option for configuring OAuthClient
type OAuthOption func(*OAuthClient)

// WithEndpoint overrides the authorization and token URLs (for testing)
func WithEndpoint(authURL, tokenURL string) OAuthOption {
	return func(c *OAuthClient) {
		c.config.Endpoint.AuthURL = authURL
		c.config.Endpoint.TokenURL = tokenURL
	}
}

// WithOAuthHTTPClient sets the HTTP client used for token requests
func WithOAuthHTTPClient(client *http.Client) OAuthOption {
	return func(c *OAuthClient) {
		c.httpClient = client
	}
}

// NewOAuthClient creates an OAuth client for the configured Google Cloud client
func NewOAuthClient(cfg delivery.Config, opts ...OAuthOption) *OAuthClient {
	endpoint := google.Endpoint
	// Google expects the client credentials as form parameters
	endpoint.AuthStyle = oauth2.AuthStyleInParams

	c := &OAuthClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{drive.DriveFileScope},
		},
		httpClient: http.DefaultClient,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AuthorizationURL builds the consent URL. It requests offline access and
// forces the consent screen so that a refresh token is always issued.
func (c *OAuthClient) AuthorizationURL(redirectURI string) (string, string, error) {
	state, err := newState()
	if err != nil {
		return "", "", err
	}

	config := c.withRedirect(redirectURI)
	authURL := config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	return authURL, state, nil
}

// ExchangeCode trades an authorization code for tokens
func (c *OAuthClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*delivery.TokenResponse, error) {
	config := c.withRedirect(redirectURI)

	token, err := config.Exchange(c.context(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", delivery.ErrTokenExchangeFailed, providerMessage(err))
	}

	return &delivery.TokenResponse{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}, nil
}

// AccessToken exchanges a refresh token for a fresh access token.
// Nothing is cached: every call hits the token endpoint.
func (c *OAuthClient) AccessToken(ctx context.Context, refreshToken string) (string, error) {
	source := c.config.TokenSource(c.context(ctx), &oauth2.Token{RefreshToken: refreshToken})

	token, err := source.Token()
	if err != nil {
		if isMissingAccessToken(err) {
			return "", delivery.ErrNoAccessToken
		}
		return "", fmt.Errorf("%w: %s", delivery.ErrRefreshFailed, providerMessage(err))
	}
	if token.AccessToken == "" {
		return "", delivery.ErrNoAccessToken
	}

	return token.AccessToken, nil
}

// withRedirect returns a copy of the config bound to a redirect URI
func (c *OAuthClient) withRedirect(redirectURI string) *oauth2.Config {
	config := *c.config
	config.RedirectURL = redirectURI
	return &config
}

// context attaches the HTTP client that oauth2 uses for token requests
func (c *OAuthClient) context(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// providerMessage extracts the provider's response body when there is one
func providerMessage(err error) string {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) && len(retrieveErr.Body) > 0 {
		return string(retrieveErr.Body)
	}
	return err.Error()
}

// isMissingAccessToken detects oauth2's error for a 2xx response without access_token.
// The library does not export a sentinel for it.
func isMissingAccessToken(err error) bool {
	return strings.Contains(err.Error(), "missing access_token")
}

func newState() (string, error) {
	b := make([]byte, stateBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Ensure OAuthClient implements the delivery ports
var (
	_ delivery.Authorizer        = (*OAuthClient)(nil)
	_ delivery.AccessTokenSource = (*OAuthClient)(nil)
)
