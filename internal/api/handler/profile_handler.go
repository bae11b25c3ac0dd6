package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/core/ports"
)

type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// Create handles POST /profiles.
//
// @Summary      Create the caller's profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      201   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /profiles [post]
func (h *ProfileHandler) Create(c echo.Context) error {
	if err := requireLogin(c); err != nil {
		return err
	}
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.service.Create(c.Request().Context(), authContext(c), req.toFields())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, profile)
}

// Update handles PUT /profiles/:id.
//
// @Summary      Update a profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int             true  "Profile ID"
// @Param        body  body      profileRequest  true  "Profile fields"
// @Success      200   {object}  domain.Profile
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /profiles/{id} [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	if err := requireLogin(c); err != nil {
		return err
	}
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var req profileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	profile, err := h.service.Update(c.Request().Context(), authContext(c), ports.UpdateProfileInput{
		ID:     id,
		Fields: req.toFields(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}
