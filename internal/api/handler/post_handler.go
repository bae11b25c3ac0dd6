package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/api/metrics"
	"github.com/inkpost/blog-api/internal/core/ports"
)

// PostHandler handles HTTP requests for post operations.
type PostHandler struct {
	service ports.PostService
}

func NewPostHandler(service ports.PostService) *PostHandler {
	return &PostHandler{service: service}
}

// Feed handles GET /feed.
//
// @Summary      List published posts
// @Tags         posts
// @Produce      json
// @Param        searchString  query     string  false  "Substring matched against title and description"
// @Param        skip          query     int     false  "Number of posts to skip"
// @Param        take          query     int     false  "Maximum number of posts (capped at 100)"
// @Param        orderBy       query     string  false  "Order by update time"  Enums(asc, desc)
// @Success      200           {array}   domain.Post
// @Failure      400           {object}  errorResponse
// @Router       /feed [get]
func (h *PostHandler) Feed(c echo.Context) error {
	var q feedQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	posts, err := h.service.Feed(c.Request().Context(), authContext(c), q.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Get handles GET /posts/:id.
//
// @Summary      Get a post
// @Description  Drafts are only visible to their author.
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [get]
func (h *PostHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := h.service.PostByID(c.Request().Context(), authContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// Drafts handles GET /users/drafts.
//
// @Summary      List a user's drafts
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id     query     int     false  "User ID"
// @Param        email  query     string  false  "User email, used when id is absent"
// @Success      200    {array}   domain.Post
// @Failure      400    {object}  errorResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Failure      404    {object}  errorResponse
// @Router       /users/drafts [get]
func (h *PostHandler) Drafts(c echo.Context) error {
	if err := requireLogin(c); err != nil {
		return err
	}
	var q draftsQuery
	if err := bindAndValidate(c, &q); err != nil {
		return err
	}

	posts, err := h.service.DraftsByUser(c.Request().Context(), authContext(c), ports.UserRef{ID: q.ID, Email: q.Email})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// Create handles POST /posts.
//
// @Summary      Create a draft
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createDraftRequest  true  "Post content"
// @Success      201   {object}  domain.Post
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /posts [post]
func (h *PostHandler) Create(c echo.Context) error {
	if err := requireLogin(c); err != nil {
		return err
	}
	var req createDraftRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.service.CreateDraft(c.Request().Context(), authContext(c), ports.CreateDraftInput{
		Title:       req.Title,
		Description: req.Description,
		PostImage:   req.PostImage,
	})
	if err != nil {
		return err
	}

	metrics.DraftsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, post)
}

// TogglePublish handles PUT /posts/:id/publish.
//
// @Summary      Publish or unpublish a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id}/publish [put]
func (h *PostHandler) TogglePublish(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := h.service.TogglePublish(c.Request().Context(), authContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// IncrementViews handles POST /posts/:id/views.
//
// @Summary      Record a post view
// @Tags         posts
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id}/views [post]
func (h *PostHandler) IncrementViews(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := h.service.IncrementViews(c.Request().Context(), authContext(c), id)
	if err != nil {
		return err
	}

	metrics.PostViewsTotal.Inc()
	return c.JSON(http.StatusOK, post)
}

// Delete handles DELETE /posts/:id.
//
// @Summary      Delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  domain.Post
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /posts/{id} [delete]
func (h *PostHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	post, err := h.service.Delete(c.Request().Context(), authContext(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}
