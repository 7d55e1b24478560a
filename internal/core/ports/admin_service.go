package ports

import (
	"context"

	"github.com/attendr/attendance-api/internal/core/domain"
)

// RegisterEmployeeInput carries the admin-supplied employee fields. The
// organization is never part of it; it is taken from the admin's record.
type RegisterEmployeeInput struct {
	Name             string
	Email            string
	Password         string
	BiometricEnabled bool
}

// AdminService holds the tenant-scoped operations available to admins.
// Every method is filtered by admin.OrganizationID.
type AdminService interface {
	RegisterEmployee(ctx context.Context, admin *domain.User, in RegisterEmployeeInput) (*domain.User, error)
	ListEmployees(ctx context.Context, admin *domain.User) ([]*domain.User, error)
	GetEmployeeAttendance(ctx context.Context, admin *domain.User, employeeID string) ([]*domain.AttendanceRecord, error)
}
