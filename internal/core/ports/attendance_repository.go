package ports

import (
	"context"

	"github.com/attendr/attendance-api/internal/core/domain"
)

// AttendanceRepository is an append-only store of attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, record *domain.AttendanceRecord) (*domain.AttendanceRecord, error)
	// ListByUser returns the user's records ordered by timestamp descending.
	ListByUser(ctx context.Context, userID string) ([]*domain.AttendanceRecord, error)
}
