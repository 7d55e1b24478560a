package ports

import (
	"context"

	"github.com/attendr/attendance-api/internal/core/domain"
)

// UserRepository is the user half of the credential store.
type UserRepository interface {
	// Create inserts a user and returns it with its generated ID.
	// Returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ListByOrganization returns the users of one organization holding role.
	ListByOrganization(ctx context.Context, organizationID, role string) ([]*domain.User, error)
	// FindOrganizationAdmin returns the first admin of the organization.
	FindOrganizationAdmin(ctx context.Context, organizationID string) (*domain.User, error)
}

// OrganizationRepository is the organization half of the credential store.
type OrganizationRepository interface {
	Create(ctx context.Context, org *domain.Organization) (*domain.Organization, error)
	FindByID(ctx context.Context, id string) (*domain.Organization, error)
	// Delete removes an organization. Only used to roll back a failed registration.
	Delete(ctx context.Context, id string) error
}
