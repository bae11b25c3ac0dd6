package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/inkpost/blog-api/docs" // swagger spec
	"github.com/inkpost/blog-api/internal/api/handler"
	"github.com/inkpost/blog-api/internal/api/middleware"
	"github.com/inkpost/blog-api/internal/core/authz"
	"github.com/inkpost/blog-api/internal/core/ports"
	"github.com/inkpost/blog-api/internal/core/service"
	infrahttp "github.com/inkpost/blog-api/internal/infrastructure/http"
	"github.com/inkpost/blog-api/internal/infrastructure/http/handlers"
)

// Options carries the infrastructure the router wires into the services.
type Options struct {
	Store    ports.Store
	Hasher   ports.PasswordHasher
	Issuer   ports.TokenIssuer
	Verifier ports.TokenVerifier
	// LoginLimiter throttles POST /auth/login per client IP. Nil disables it.
	LoginLimiter middleware.Limiter
	// Probes are checked by /health/ready in addition to the store.
	Probes map[string]handlers.Pinger
	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(opts Options) (*echo.Echo, error) {
	log := opts.Logger

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.IPExtractor = echo.ExtractIPFromXFFHeader()

	// HTTP metrics get their own registry so several routers can coexist in
	// one process; /metrics serves it together with the default registry.
	registry := prometheus.NewRegistry()
	promMiddleware, err := echoprometheus.MiddlewareConfig{
		Namespace:  "blog",
		Registerer: registry,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || strings.HasPrefix(c.Path(), "/health")
		},
	}.ToMiddleware()
	if err != nil {
		return nil, fmt.Errorf("prometheus middleware: %w", err)
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	// Outside the request logger so it sees the status the error handler wrote.
	e.Use(promMiddleware)
	e.Use(middleware.RequestLogger(log))
	e.Use(middleware.Identity(opts.Verifier))

	// --- Dependencies ---
	policy := authz.NewPolicy(service.NewTargetLoader(opts.Store))
	authService, err := service.NewAuthService(opts.Store.Users(), opts.Hasher, opts.Issuer, log)
	if err != nil {
		return nil, err
	}
	authHandler := handler.NewAuthHandler(authService)
	postHandler := handler.NewPostHandler(service.NewPostService(opts.Store.Posts(), opts.Store.Users(), policy, log))
	profileHandler := handler.NewProfileHandler(service.NewProfileService(opts.Store.Profiles(), opts.Store.Users(), policy, log))
	userHandler := handler.NewUserHandler(service.NewUserService(opts.Store, policy))

	// --- Auth routes ---
	e.POST("/auth/signup", authHandler.Signup)
	if opts.LoginLimiter != nil {
		e.POST("/auth/login", authHandler.Login, middleware.Throttle(opts.LoginLimiter, "login", log))
	} else {
		e.POST("/auth/login", authHandler.Login)
	}

	// --- Users ---
	e.GET("/me", userHandler.Me)
	e.GET("/users", userHandler.List)
	e.GET("/users/drafts", postHandler.Drafts)

	// --- Posts ---
	e.GET("/feed", postHandler.Feed)
	e.GET("/posts/:id", postHandler.Get)
	e.POST("/posts", postHandler.Create)
	e.PUT("/posts/:id/publish", postHandler.TogglePublish)
	e.POST("/posts/:id/views", postHandler.IncrementViews)
	e.DELETE("/posts/:id", postHandler.Delete)

	// --- Profiles ---
	e.POST("/profiles", profileHandler.Create)
	e.PUT("/profiles/:id", profileHandler.Update)

	// --- Operations ---
	probes := map[string]handlers.Pinger{"store": opts.Store}
	for name, p := range opts.Probes {
		probes[name] = p
	}
	infrahttp.RegisterProbes(e, probes)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{registry, prometheus.DefaultGatherer},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusTemporaryRedirect, "/swagger/index.html")
	})

	return e, nil
}
