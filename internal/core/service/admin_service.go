package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/attendr/attendance-api/internal/core/domain"
	"github.com/attendr/attendance-api/internal/core/ports"
	"github.com/attendr/attendance-api/internal/pkg/metrics"
)

// AdminService implements the tenant-scoped admin use cases. The organization
// is always read from the admin's own record, never from client input.
type AdminService struct {
	users      ports.UserRepository
	attendance ports.AttendanceRepository
	log        zerolog.Logger
}

func NewAdminService(users ports.UserRepository, attendance ports.AttendanceRepository, log zerolog.Logger) *AdminService {
	return &AdminService{users: users, attendance: attendance, log: log}
}

// RegisterEmployee creates an employee inside the admin's organization.
func (s *AdminService) RegisterEmployee(ctx context.Context, admin *domain.User, in ports.RegisterEmployeeInput) (*domain.User, error) {
	orgID, err := adminOrganization(admin)
	if err != nil {
		return nil, err
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Email = domain.NormalizeEmail(in.Email)
	if err := validateAccountFields(in.Name, in.Email, in.Password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, in.Email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("register employee: lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("register employee: hash password: %w", err)
	}

	employee, err := s.users.Create(ctx, &domain.User{
		Name:             in.Name,
		Email:            in.Email,
		PasswordHash:     string(hash),
		Role:             domain.RoleEmployee,
		OrganizationID:   orgID,
		BiometricEnabled: in.BiometricEnabled,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("register employee: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues("employee").Inc()
	s.log.Info().
		Str("organization_id", orgID).
		Str("admin_id", admin.ID).
		Str("employee_id", employee.ID).
		Msg("employee registered")

	return employee, nil
}

// ListEmployees returns every employee of the admin's organization.
func (s *AdminService) ListEmployees(ctx context.Context, admin *domain.User) ([]*domain.User, error) {
	orgID, err := adminOrganization(admin)
	if err != nil {
		return nil, err
	}

	employees, err := s.users.ListByOrganization(ctx, orgID, domain.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return employees, nil
}

// GetEmployeeAttendance returns the attendance of one employee, newest first.
// An employee of another organization is reported as not found so the
// response does not confirm that the ID exists.
func (s *AdminService) GetEmployeeAttendance(ctx context.Context, admin *domain.User, employeeID string) ([]*domain.AttendanceRecord, error) {
	orgID, err := adminOrganization(admin)
	if err != nil {
		return nil, err
	}

	employee, err := s.users.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("employee attendance: %w", err)
	}
	if !employee.BelongsTo(orgID) {
		metrics.CrossTenantLookupsTotal.Inc()
		s.log.Warn().
			Str("admin_id", admin.ID).
			Str("employee_id", employeeID).
			Msg("cross-tenant employee lookup denied")
		return nil, domain.ErrEmployeeNotFound
	}

	records, err := s.attendance.ListByUser(ctx, employee.ID)
	if err != nil {
		return nil, fmt.Errorf("employee attendance: %w", err)
	}
	return records, nil
}

func adminOrganization(admin *domain.User) (string, error) {
	if !admin.IsAdmin() {
		return "", domain.ErrForbidden
	}
	if admin.OrganizationID == "" {
		return "", domain.ErrNoOrganization
	}
	return admin.OrganizationID, nil
}
