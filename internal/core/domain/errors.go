package domain

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrForbidden            = errors.New("access forbidden")
	ErrUserExists           = errors.New("email already registered")
	ErrOrganizationExists   = errors.New("email already registered to an organization")
	ErrUserNotFound         = errors.New("user not found")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNoOrganization       = errors.New("user has no organization assigned")
	ErrTooManyAttempts      = errors.New("too many failed login attempts")
)

var (
	ErrLocationRequired   = errors.New("longitude and latitude are required")
	ErrInvalidCoordinates = errors.New("longitude and latitude must be valid numbers")
)

// Token verification failures. All of them surface as 401 at the edge.
var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrExpiredToken   = errors.New("token expired")
	ErrMalformedToken = errors.New("malformed token")
)

// ValidationError reports field-level schema violations.
type ValidationError struct {
	Details []string
}

func NewValidationError(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation error"
	}
	return "validation error: " + strings.Join(e.Details, "; ")
}
