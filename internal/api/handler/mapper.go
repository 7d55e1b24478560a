package handler

import (
	"fmt"
	"strconv"

	"github.com/attendr/attendance-api/internal/core/domain"
	"github.com/attendr/attendance-api/internal/core/ports"
)

// --- Request → Service input ---

func toLocationInput(req *locationRequest) *ports.LocationInput {
	if req == nil {
		return nil
	}
	return &ports.LocationInput{
		Longitude: coordinateString(req.Longitude),
		Latitude:  coordinateString(req.Latitude),
	}
}

// coordinateString renders a decoded JSON value as text. Absent values become
// "" and are reported as missing by the service.
func coordinateString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

// --- Domain → Response ---

func toAttendanceResponse(r *domain.AttendanceRecord) attendanceResponse {
	return attendanceResponse{ID: r.ID, Timestamp: r.Timestamp, Location: r.Location}
}

func toOrganizationResponse(d *ports.OrganizationDetails) organizationResponse {
	return organizationResponse{
		ID:        d.ID,
		Name:      d.Name,
		Email:     d.Email,
		AdminName: d.AdminName,
		CreatedAt: d.CreatedAt,
	}
}

func nonNilUsers(users []*domain.User) []*domain.User {
	if users == nil {
		return []*domain.User{}
	}
	return users
}

func toAttendanceResponses(records []*domain.AttendanceRecord) []attendanceResponse {
	out := make([]attendanceResponse, 0, len(records))
	for _, r := range records {
		out = append(out, toAttendanceResponse(r))
	}
	return out
}
