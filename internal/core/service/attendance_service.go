package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/attendr/attendance-api/internal/core/domain"
	"github.com/attendr/attendance-api/internal/core/ports"
	"github.com/attendr/attendance-api/internal/pkg/metrics"
)

type attendanceService struct {
	repo ports.AttendanceRepository
	log  zerolog.Logger
	now  func() time.Time
}

// NewAttendanceService returns an AttendanceService implementation.
func NewAttendanceService(repo ports.AttendanceRepository, log zerolog.Logger) ports.AttendanceService {
	return &attendanceService{repo: repo, log: log, now: time.Now}
}

// MarkAttendance validates the coordinates and appends a new record stamped
// with the server time. Repeated marks are never merged.
func (s *attendanceService) MarkAttendance(ctx context.Context, caller *domain.User, location *ports.LocationInput) (*domain.AttendanceRecord, error) {
	point, err := parseLocation(location)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.Create(ctx, &domain.AttendanceRecord{
		UserID:    caller.ID,
		Timestamp: s.now().UTC(),
		Location:  point,
	})
	if err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	metrics.AttendanceMarkedTotal.WithLabelValues(caller.Role).Inc()
	s.log.Info().
		Str("user_id", caller.ID).
		Str("attendance_id", record.ID).
		Float64("lng", point.Longitude()).
		Float64("lat", point.Latitude()).
		Msg("attendance marked")

	return record, nil
}

// History returns the caller's own records, newest first.
func (s *attendanceService) History(ctx context.Context, caller *domain.User) ([]*domain.AttendanceRecord, error) {
	records, err := s.repo.ListByUser(ctx, caller.ID)
	if err != nil {
		return nil, fmt.Errorf("attendance history: %w", err)
	}
	return records, nil
}

func parseLocation(in *ports.LocationInput) (domain.GeoPoint, error) {
	if in == nil {
		metrics.AttendanceRejectedTotal.WithLabelValues("location_required").Inc()
		return domain.GeoPoint{}, domain.ErrLocationRequired
	}
	lngRaw, latRaw := strings.TrimSpace(in.Longitude), strings.TrimSpace(in.Latitude)
	if lngRaw == "" || latRaw == "" {
		metrics.AttendanceRejectedTotal.WithLabelValues("location_required").Inc()
		return domain.GeoPoint{}, domain.ErrLocationRequired
	}

	lng, lngErr := strconv.ParseFloat(lngRaw, 64)
	lat, latErr := strconv.ParseFloat(latRaw, 64)
	point := domain.NewGeoPoint(lng, lat)
	if lngErr != nil || latErr != nil || !point.Valid() {
		metrics.AttendanceRejectedTotal.WithLabelValues("invalid_coordinates").Inc()
		return domain.GeoPoint{}, domain.ErrInvalidCoordinates
	}
	return point, nil
}
