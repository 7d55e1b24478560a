package ports

import (
	"context"
	"time"

	"github.com/attendr/attendance-api/internal/core/domain"
)

// OrganizationDetails is the public view of an organization.
type OrganizationDetails struct {
	ID        string
	Name      string
	Email     string
	AdminName string // empty when the organization has no admin
	CreatedAt time.Time
}

// ProfileService exposes read-only views of the caller and their organization.
type ProfileService interface {
	UserDetails(ctx context.Context, caller *domain.User) (*domain.User, error)
	OrganizationDetails(ctx context.Context, caller *domain.User, organizationID string) (*OrganizationDetails, error)
}
