// @title                       Blog API
// @version                     1.0
// @description                 Posts, profiles and users behind JWT authentication and ownership checks.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/inkpost/blog-api/internal/api"
	"github.com/inkpost/blog-api/internal/api/middleware"
	"github.com/inkpost/blog-api/internal/core/ports"
	"github.com/inkpost/blog-api/internal/infrastructure/config"
	"github.com/inkpost/blog-api/internal/infrastructure/db/gormdb"
	mongostore "github.com/inkpost/blog-api/internal/infrastructure/db/mongo"
	redisstore "github.com/inkpost/blog-api/internal/infrastructure/db/redis"
	"github.com/inkpost/blog-api/internal/infrastructure/http/handlers"
	"github.com/inkpost/blog-api/internal/infrastructure/security"
	"github.com/inkpost/blog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "blog-api",
	})

	issuer, err := security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}
	if cfg.Auth.TokenTTL == 0 {
		log.Warn().Msg("TOKEN_TTL is 0: issued tokens never expire")
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("closing store")
		}
	}()

	probes := map[string]handlers.Pinger{}
	var limiter middleware.Limiter
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter = redisstore.NewLoginThrottle(rdb, cfg.Throttle.LoginMaxAttempts, cfg.Throttle.LoginWindow)
		probes["redis"] = redisstore.NewProbe(rdb)
	} else {
		log.Warn().Msg("REDIS_ADDR not set: login throttling disabled")
	}

	e, err := api.NewRouter(api.Options{
		Store:        store,
		Hasher:       security.NewBcryptHasher(cfg.Auth.BcryptCost),
		Issuer:       issuer,
		Verifier:     issuer,
		LoginLimiter: limiter,
		Probes:       probes,
		Logger:       log,
	})
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("store", cfg.Store.Driver).Msg("server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

// openStore runs after logger.Init, so the process logger is ready.
func openStore(ctx context.Context, cfg *config.Config) (ports.Store, error) {
	log := logger.Get()
	switch cfg.Store.Driver {
	case "mongo":
		store, err := mongostore.Open(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			Timeout:  cfg.Mongo.Timeout,
		})
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("document store ready")
		return store, nil
	default:
		store, err := gormdb.Open(gormdb.Config{Driver: cfg.Store.Driver, DSN: cfg.Store.DSN}, log)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}
