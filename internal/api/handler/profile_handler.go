package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/attendr/attendance-api/internal/core/ports"
)

// ProfileHandler serves /user/details and /organization/:id.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// UserDetails returns the caller's own record.
//
// @Summary      Current user
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /user/details [get]
func (h *ProfileHandler) UserDetails(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	details, err := h.service.UserDetails(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

// Organization returns the caller's organization with its admin's name.
//
// @Summary      Organization details
// @Tags         organization
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Organization ID"
// @Success      200  {object}  organizationResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /organization/{id} [get]
func (h *ProfileHandler) Organization(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	details, err := h.service.OrganizationDetails(c.Request().Context(), user, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrganizationResponse(details))
}
