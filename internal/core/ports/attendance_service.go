package ports

import (
	"context"

	"github.com/attendr/attendance-api/internal/core/domain"
)

// LocationInput holds the raw coordinate values as sent by the client.
// An empty string means the field was absent.
type LocationInput struct {
	Longitude string
	Latitude  string
}

// AttendanceService records and lists the caller's own attendance.
type AttendanceService interface {
	// MarkAttendance appends a record for the caller. A nil location yields
	// domain.ErrLocationRequired.
	MarkAttendance(ctx context.Context, caller *domain.User, location *LocationInput) (*domain.AttendanceRecord, error)
	History(ctx context.Context, caller *domain.User) ([]*domain.AttendanceRecord, error)
}
