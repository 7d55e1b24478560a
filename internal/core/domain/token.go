package domain

import "time"

// TokenClaims is the identity carried by a verified bearer token.
type TokenClaims struct {
	UserID         string
	Role           string
	OrganizationID string
	ExpiresAt      time.Time
}
