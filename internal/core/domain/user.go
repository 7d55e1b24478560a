package domain

import (
	"strings"
	"time"
)

const (
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)

// User models an authenticated actor in the system. Every user belongs to
// exactly one organization; the role is fixed at creation time.
type User struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	Role             string    `json:"role"`
	OrganizationID   string    `json:"organizationId"`
	BiometricEnabled bool      `json:"biometricEnabled"`
	CreatedAt        time.Time `json:"createdAt"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// BelongsTo reports whether the user is a member of the given organization.
func (u *User) BelongsTo(organizationID string) bool {
	return u != nil && organizationID != "" && u.OrganizationID == organizationID
}

// NormalizeEmail lower-cases and trims an email so uniqueness checks are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
