package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/core/ports"
)

type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Me handles GET /me.
//
// @Summary      Current user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  errorResponse
// @Router       /me [get]
func (h *UserHandler) Me(c echo.Context) error {
	user, err := h.service.Me(c.Request().Context(), authContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /users.
//
// @Summary      List users
// @Description  Other users' drafts are never included.
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.service.AllUsers(c.Request().Context(), authContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
