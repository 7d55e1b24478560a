package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/attendr/attendance-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterOrganization creates an organization together with its first admin.
//
// @Summary      Register an organization
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerOrganizationRequest  true  "Admin and organization details"
// @Success      201   {object}  registerOrganizationResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /auth/register-organization [post]
func (h *AuthHandler) RegisterOrganization(c echo.Context) error {
	var req registerOrganizationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.RegisterOrganization(c.Request().Context(), ports.RegisterOrganizationInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		OrganizationName: req.OrganizationName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerOrganizationResponse{
		Message: "Organization registered successfully",
		Token:   result.Token,
		User:    result.Admin,
	})
}

// Login authenticates a user for the requested role and returns a JWT.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	token, user, err := h.authService.Login(c.Request().Context(), req.Email, req.Password, req.Role)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{Token: token, User: user})
}
