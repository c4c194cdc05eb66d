package delivery

import "time"

// TokenRecord is the persisted refresh token
type TokenRecord struct {
	RefreshToken string    `json:"refresh_token"`
	SavedAt      time.Time `json:"saved_at"`
}

// TokenResponse is the useful part of a successful authorization code exchange
type TokenResponse struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}
