package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"drive-delivery/domain/delivery"
)

// SetupCommand is the command that creates the token file
const SetupCommand = "drive-delivery setup"

// Store implements delivery.TokenStore on a JSON file
type Store struct {
	path string
	now  func() time.Time
}

// Option is a functional option for configuring Store
type Option func(*Store)

// WithClock sets the clock used for SavedAt (for testing)
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a token store backed by the file at path
func New(path string, opts ...Option) *Store {
	s := &Store{
		path: path,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the token file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the saved refresh token
func (s *Store) Load() (*delivery.TokenRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w. Run: %s to authorize first. Token should be saved to: %s",
			delivery.ErrTokenFileMissing, SetupCommand, s.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var record delivery.TokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", delivery.ErrTokenFileInvalid, s.path, err)
	}
	if strings.TrimSpace(record.RefreshToken) == "" {
		return nil, fmt.Errorf("%w: %s is missing refresh_token", delivery.ErrTokenFileInvalid, s.path)
	}

	return &record, nil
}

// Save overwrites the token file and restricts it to its owner.
// The record is returned even when the platform cannot restrict permissions;
// in that case the error wraps delivery.ErrPermissionsUnsupported.
func (s *Store) Save(refreshToken string) (*delivery.TokenRecord, error) {
	record := &delivery.TokenRecord{
		RefreshToken: refreshToken,
		SavedAt:      s.now().UTC(),
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize token: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write token file: %w", err)
	}

	// WriteFile keeps the mode of an existing file
	if err := restrictToOwner(s.path); err != nil {
		return record, fmt.Errorf("token saved to %s: %w", s.path, err)
	}

	return record, nil
}

// Ensure Store implements delivery.TokenStore
var _ delivery.TokenStore = (*Store)(nil)
