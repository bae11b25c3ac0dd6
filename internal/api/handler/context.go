package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/api/middleware"
	"github.com/inkpost/blog-api/internal/core/domain"
)

// authContext returns the caller identity resolved by the Identity
// middleware. Handlers never reject on it; the services' permission rules do.
func authContext(c echo.Context) domain.AuthContext {
	return middleware.AuthContextFrom(c)
}

// requireLogin rejects anonymous callers of login-only routes before their
// input is parsed, so a bad body never hides the 401.
func requireLogin(c echo.Context) error {
	if !authContext(c).Authenticated {
		return fmt.Errorf("%w: please log in and try again", domain.ErrUnauthenticated)
	}
	return nil
}

// bindAndValidate decodes the request into req and runs its validate tags.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "id must be a positive integer")
	}
	return id, nil
}
