package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/attendr/attendance-api/internal/core/domain"
	"github.com/attendr/attendance-api/internal/core/ports"
)

type profileService struct {
	users ports.UserRepository
	orgs  ports.OrganizationRepository
}

// NewProfileService returns a ProfileService implementation.
func NewProfileService(users ports.UserRepository, orgs ports.OrganizationRepository) ports.ProfileService {
	return &profileService{users: users, orgs: orgs}
}

// UserDetails re-reads the caller's record from the store.
func (s *profileService) UserDetails(ctx context.Context, caller *domain.User) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("user details: %w", err)
	}
	return user, nil
}

// OrganizationDetails returns the caller's own organization. Any other ID is
// reported as not found.
func (s *profileService) OrganizationDetails(ctx context.Context, caller *domain.User, organizationID string) (*ports.OrganizationDetails, error) {
	if !caller.BelongsTo(organizationID) {
		return nil, domain.ErrOrganizationNotFound
	}

	org, err := s.orgs.FindByID(ctx, organizationID)
	if err != nil {
		if errors.Is(err, domain.ErrOrganizationNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("organization details: %w", err)
	}

	details := &ports.OrganizationDetails{
		ID:        org.ID,
		Name:      org.Name,
		Email:     org.Email,
		CreatedAt: org.CreatedAt,
	}

	admin, err := s.users.FindOrganizationAdmin(ctx, org.ID)
	switch {
	case err == nil:
		details.AdminName = admin.Name
	case errors.Is(err, domain.ErrUserNotFound):
	default:
		return nil, fmt.Errorf("organization details: admin lookup: %w", err)
	}

	return details, nil
}
