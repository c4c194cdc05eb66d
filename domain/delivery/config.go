package delivery

import (
	"fmt"
	"strings"
)

// DefaultRedirectURI is the out-of-band redirect that makes the provider display the code for manual entry
const DefaultRedirectURI = "urn:ietf:wg:oauth:2.0:oob"

// placeholderMarker marks values copied unchanged from the example config
const placeholderMarker = "YOUR_"

// Config holds the OAuth client credentials and the destination folder
type Config struct {
	ClientID     string `json:"clientId" yaml:"clientId"`
	ClientSecret string `json:"clientSecret" yaml:"clientSecret"`
	FolderID     string `json:"folderId" yaml:"folderId"`
	RedirectURI  string `json:"redirectUri,omitempty" yaml:"redirectUri,omitempty"`
}

// Validate checks that every required field is set to a real value
func (c Config) Validate() error {
	required := []struct {
		key   string
		value string
	}{
		{"clientId", c.ClientID},
		{"clientSecret", c.ClientSecret},
		{"folderId", c.FolderID},
	}

	for _, field := range required {
		value := strings.TrimSpace(field.value)
		if value == "" {
			return fmt.Errorf("%w: %s is required", ErrConfigInvalid, field.key)
		}
		if IsPlaceholder(value) {
			return fmt.Errorf("%w: %s still has a placeholder value", ErrConfigInvalid, field.key)
		}
	}

	return nil
}

// Redirect returns the configured redirect URI or the out-of-band default
func (c Config) Redirect() string {
	if c.RedirectURI != "" {
		return c.RedirectURI
	}
	return DefaultRedirectURI
}

// MaskedClientID returns a prefix of the client ID suitable for display
func (c Config) MaskedClientID() string {
	if len(c.ClientID) <= 20 {
		return c.ClientID
	}
	return c.ClientID[:20] + "..."
}

// IsPlaceholder reports whether a value was left at its example placeholder
func IsPlaceholder(value string) bool {
	return strings.Contains(value, placeholderMarker)
}
