package middleware

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/inkpost/blog-api/internal/api/metrics"
	"github.com/inkpost/blog-api/internal/core/domain"
)

// Limiter counts attempts per key and fails with domain.ErrTooManyAttempts
// when the key is over budget.
type Limiter interface {
	Hit(ctx context.Context, key string) error
}

// Throttle limits requests per client IP. When the limiter itself fails the
// request goes through: an unavailable Redis must not lock everyone out.
func Throttle(limiter Limiter, scope string, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := limiter.Hit(c.Request().Context(), scope+":"+c.RealIP())
			switch {
			case err == nil:
			case errors.Is(err, domain.ErrTooManyAttempts):
				metrics.ThrottledRequestsTotal.WithLabelValues(scope).Inc()
				return err
			default:
				log.Warn().Err(err).Str("scope", scope).Msg("throttle unavailable, letting request through")
			}
			return next(c)
		}
	}
}
