package gormdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/inkpost/blog-api/internal/core/domain"
	"github.com/inkpost/blog-api/internal/core/ports"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	slowQueryThreshold = 200 * time.Millisecond
)

// Config selects the SQL backend. DSN is a file path or URI for sqlite and a
// connection string for postgres.
type Config struct {
	Driver string
	DSN    string
}

// Store is the relational ports.Store. Schema is migrated on Open.
type Store struct {
	db       *gorm.DB
	users    *UserRepository
	posts    *PostRepository
	profiles *ProfileRepository
}

// Open connects, migrates the schema and returns a ready Store. Query logs go
// through logger at warn level and above.
func Open(cfg Config, logger zerolog.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("gorm open: unsupported driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: gormlogger.New(&logger, gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm open: %w", err)
	}
	if cfg.Driver == DriverSQLite {
		// sqlite allows one writer; a single connection keeps in-memory
		// databases alive and avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	}

	if err := db.AutoMigrate(&userModel{}, &profileModel{}, &postModel{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("gorm migrate: %w", err)
	}

	return NewStore(db), nil
}

// NewStore wraps an already migrated connection.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:       db,
		users:    NewUserRepository(db),
		posts:    NewPostRepository(db),
		profiles: NewProfileRepository(db),
	}
}

func (s *Store) Users() ports.UserRepository       { return s.users }
func (s *Store) Posts() ports.PostRepository       { return s.posts }
func (s *Store) Profiles() ports.ProfileRepository { return s.profiles }

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// translate maps gorm sentinels onto domain errors. TranslateError makes the
// dialects report unique violations as gorm.ErrDuplicatedKey.
func translate(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
