package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/attendr/attendance-api/internal/core/ports"
)

type AttendanceHandler struct {
	service ports.AttendanceService
}

func NewAttendanceHandler(service ports.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{service: service}
}

// Mark records the caller's attendance at the given location.
//
// @Summary      Mark attendance
// @Tags         attendance
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      markAttendanceRequest  true  "Current location"
// @Success      201   {object}  markAttendanceResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /attendance/mark-attendance [post]
func (h *AttendanceHandler) Mark(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	var req markAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	record, err := h.service.MarkAttendance(c.Request().Context(), user, toLocationInput(req.Location))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, markAttendanceResponse{
		Message:    "Attendance marked successfully",
		Attendance: toAttendanceResponse(record),
	})
}

// History lists the caller's attendance, newest first.
//
// @Summary      Attendance history
// @Tags         attendance
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   attendanceResponse
// @Failure      401  {object}  errorResponse
// @Router       /attendance/attendance-history [get]
func (h *AttendanceHandler) History(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	records, err := h.service.History(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toAttendanceResponses(records))
}
