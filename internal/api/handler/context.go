package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/attendr/attendance-api/internal/api/middleware"
	"github.com/attendr/attendance-api/internal/core/domain"
)

// caller returns the user resolved by the Auth middleware. A missing user
// means the route was mounted without the guard; treat it as unauthenticated.
func caller(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}
	return user, nil
}

// bindAndValidate decodes the body into req and runs the struct validator
// when one is registered.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
