package ports

import (
	"context"

	"github.com/attendr/attendance-api/internal/core/domain"
)

// TokenIssuer mints bearer tokens for a user.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (*domain.TokenClaims, error)
}

// RegisterOrganizationInput carries the fields of the organization sign-up form.
type RegisterOrganizationInput struct {
	Name             string
	Email            string
	Password         string
	OrganizationName string
}

// RegistrationResult is returned after an organization and its admin were created.
type RegistrationResult struct {
	Organization *domain.Organization
	Admin        *domain.User
	Token        string
}

type AuthService interface {
	RegisterOrganization(ctx context.Context, in RegisterOrganizationInput) (*RegistrationResult, error)
	Login(ctx context.Context, email, password, role string) (string, *domain.User, error)
}
