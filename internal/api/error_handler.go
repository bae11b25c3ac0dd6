package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/api/metrics"
	"github.com/inkpost/blog-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

type errorMapping struct {
	sentinel error
	status   int
	kind     string
}

// Order matters only for errors wrapping several sentinels; the first match
// wins.
var errorMappings = []errorMapping{
	{domain.ErrInvalidInput, http.StatusBadRequest, "invalid_input"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "unauthenticated"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "invalid_token"},
	{domain.ErrInvalidCredential, http.StatusUnauthorized, "invalid_credential"},
	{domain.ErrPermissionDenied, http.StatusForbidden, "permission_denied"},
	{domain.ErrNotFound, http.StatusNotFound, "not_found"},
	{domain.ErrConflict, http.StatusConflict, "conflict"},
	{domain.ErrTooManyAttempts, http.StatusTooManyRequests, "too_many_attempts"},
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to their HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			metrics.RequestFailuresTotal.WithLabelValues(m.kind).Inc()
			return m.status, publicMessage(err, m.sentinel)
		}
	}

	metrics.RequestFailuresTotal.WithLabelValues("internal").Inc()
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}

// publicMessage returns the detail a service attached with
// fmt.Errorf("%w: detail"). Errors wrapped further down (store adapters
// prefix their operation) fall back to the bare sentinel text.
func publicMessage(err, sentinel error) string {
	prefix := sentinel.Error() + ": "
	if msg, ok := strings.CutPrefix(err.Error(), prefix); ok && msg != "" {
		return msg
	}
	return sentinel.Error()
}
