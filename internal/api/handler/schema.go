package handler

import (
	"time"

	"github.com/attendr/attendance-api/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type registerOrganizationRequest struct {
	Name             string `json:"name"             validate:"required"`
	Email            string `json:"email"            validate:"required,email"`
	Password         string `json:"password"         validate:"required"`
	OrganizationName string `json:"organizationName"`
}

type registerOrganizationResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *domain.User `json:"user"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// --- Admin ---

type registerEmployeeRequest struct {
	Name             string `json:"name"     validate:"required"`
	Email            string `json:"email"    validate:"required,email"`
	Password         string `json:"password" validate:"required"`
	BiometricEnabled bool   `json:"biometricEnabled"`
}

type registerEmployeeResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type employeesResponse struct {
	Employees []*domain.User `json:"employees"`
}

type employeeAttendanceResponse struct {
	Attendance []attendanceResponse `json:"attendance"`
}

// --- Attendance ---

// locationRequest accepts numbers or numeric strings; the service does the
// parsing so both shapes get the same validation.
type locationRequest struct {
	Longitude any `json:"longitude"`
	Latitude  any `json:"latitude"`
}

type markAttendanceRequest struct {
	Location *locationRequest `json:"location"`
}

type attendanceResponse struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Location  domain.GeoPoint `json:"location"`
}

type markAttendanceResponse struct {
	Message    string             `json:"message"`
	Attendance attendanceResponse `json:"attendance"`
}

// --- Profile ---

type organizationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AdminName string    `json:"adminName"`
	CreatedAt time.Time `json:"createdAt"`
}
