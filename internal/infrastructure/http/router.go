package http

import (
	"github.com/labstack/echo/v4"

	"github.com/inkpost/blog-api/internal/infrastructure/http/handlers"
)

// RegisterProbes mounts the liveness and readiness probes. They sit outside
// authentication and throttling.
func RegisterProbes(e *echo.Echo, deps map[string]handlers.Pinger) {
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
}
