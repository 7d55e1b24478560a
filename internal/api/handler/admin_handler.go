package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/attendr/attendance-api/internal/core/ports"
)

// AdminHandler serves the /admin routes. Every route is behind the admin
// role gate; the service still scopes each call to the admin's organization.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// RegisterEmployee adds an employee to the caller's organization.
//
// @Summary      Register an employee
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerEmployeeRequest  true  "Employee details"
// @Success      201   {object}  registerEmployeeResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/register-employee [post]
func (h *AdminHandler) RegisterEmployee(c echo.Context) error {
	admin, err := caller(c)
	if err != nil {
		return err
	}

	var req registerEmployeeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	employee, err := h.service.RegisterEmployee(c.Request().Context(), admin, ports.RegisterEmployeeInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		BiometricEnabled: req.BiometricEnabled,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerEmployeeResponse{
		Message: "Employee registered successfully",
		User:    employee,
	})
}

// ListEmployees returns the employees of the caller's organization.
//
// @Summary      List employees
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  employeesResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/employees [get]
func (h *AdminHandler) ListEmployees(c echo.Context) error {
	admin, err := caller(c)
	if err != nil {
		return err
	}

	employees, err := h.service.ListEmployees(c.Request().Context(), admin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employeesResponse{Employees: nonNilUsers(employees)})
}

// EmployeeAttendance returns the attendance history of one employee.
// Employees of other organizations are reported as not found.
//
// @Summary      Employee attendance
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        employeeId  path      string  true  "Employee ID"
// @Success      200         {object}  employeeAttendanceResponse
// @Failure      401         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /admin/employee-attendance/{employeeId} [get]
func (h *AdminHandler) EmployeeAttendance(c echo.Context) error {
	admin, err := caller(c)
	if err != nil {
		return err
	}

	records, err := h.service.GetEmployeeAttendance(c.Request().Context(), admin, c.Param("employeeId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, employeeAttendanceResponse{Attendance: toAttendanceResponses(records)})
}
