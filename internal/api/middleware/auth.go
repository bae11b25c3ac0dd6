package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

const authContextKey = "auth_context"

// ResolveAuthContext derives the caller's identity from an Authorization
// header value. A missing, malformed or invalid credential yields the
// anonymous context; the decision to reject belongs to the permission rules.
func ResolveAuthContext(header string, verifier ports.TokenVerifier) domain.AuthContext {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return domain.Anonymous()
	}

	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Anonymous()
	}

	userID, err := verifier.Verify(token)
	if err != nil {
		return domain.Anonymous()
	}
	return domain.Authenticated(userID)
}

// Identity resolves the AuthContext of every request and stores it on the
// echo context. It never rejects a request.
func Identity(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ac := ResolveAuthContext(c.Request().Header.Get(echo.HeaderAuthorization), verifier)
			c.Set(authContextKey, ac)
			return next(c)
		}
	}
}

// AuthContextFrom returns the identity stored by Identity, or the anonymous
// context when the middleware did not run.
func AuthContextFrom(c echo.Context) domain.AuthContext {
	ac, _ := c.Get(authContextKey).(domain.AuthContext)
	return ac
}
