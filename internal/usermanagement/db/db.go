// Package db is the gorm-backed persistence layer for industries, companies
// and users.
package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	dbmodels "github.com/gartstein/usermanagement/internal/usermanagement/db/models"
	e "github.com/gartstein/usermanagement/internal/usermanagement/errors"
	"github.com/gartstein/usermanagement/internal/usermanagement/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Repository struct {
	db *gorm.DB
}

type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders cfg as a libpq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// NewRepository connects to postgres, applies pool settings and migrates the schema.
func NewRepository(cfg *Config) (*Repository, error) {
	repo, err := Open(postgres.Open(cfg.DSN()))
	if err != nil {
		return nil, err
	}

	if err := repo.SetPool(cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime); err != nil {
		return nil, err
	}
	return repo, nil
}

// SetPool tunes the underlying connection pool. Zero values keep the driver defaults.
func (r *Repository) SetPool(maxOpen, maxIdle int, lifetime time.Duration) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if maxOpen > 0 {
		sqlDB.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		sqlDB.SetMaxIdleConns(maxIdle)
	}
	if lifetime > 0 {
		sqlDB.SetConnMaxLifetime(lifetime)
	}
	return nil
}

// NewRepositoryWithRetry keeps calling NewRepository with exponential backoff
// until it succeeds, ctx is done or maxElapsed passes.
func NewRepositoryWithRetry(ctx context.Context, cfg *Config, maxElapsed time.Duration, log *zap.Logger) (*Repository, error) {
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxElapsed

	var repo *Repository
	err := backoff.RetryNotify(func() error {
		var err error
		repo, err = NewRepository(cfg)
		return err
	}, backoff.WithContext(policy, ctx), func(err error, wait time.Duration) {
		log.Warn("database not ready, retrying",
			zap.Error(err),
			zap.Duration("wait", wait),
		)
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// Open wraps an already chosen dialector. Duplicate keys surface as
// gorm.ErrDuplicatedKey and timestamps are stored in UTC.
func Open(dialector gorm.Dialector) (*Repository, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(dbmodels.All()...); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// NotDeleted restricts a query to rows that have not been soft-deleted.
// Every uniqueness check, existence check and listing goes through it.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

func (r *Repository) exists(ctx context.Context, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(model).
		Scopes(NotDeleted).
		Where(query, args...).
		Limit(1).
		Count(&count)
	return count > 0, result.Error
}

// softDelete flags one row as deleted when its version still equals version.
func (r *Repository) softDelete(ctx context.Context, model interface{}, id interface{}, version int64, notFound error) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(model).
		Scopes(NotDeleted).
		Where("id = ? AND version = ?", id, version).
		Updates(map[string]interface{}{
			"is_deleted":       true,
			"version":          gorm.Expr("version + 1"),
			"last_modified":    now,
			"last_modified_by": models.ActorFromContext(ctx),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	found, err := r.exists(ctx, model, "id = ?", id)
	if err != nil {
		return err
	}
	if !found {
		return notFound
	}
	return fmt.Errorf("%w: stale version %d", e.ErrConcurrencyConflict, version)
}

func (r *Repository) WithTransaction(ctx context.Context, fn func(repo *Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// Exec runs a raw statement. Used for maintenance such as test cleanup.
func (r *Repository) Exec(ctx context.Context, query string, params ...interface{}) error {
	return r.db.WithContext(ctx).Exec(query, params...).Error
}

// Ping checks that the database answers.
func (r *Repository) Ping(ctx context.Context) error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

func (r *Repository) Close() error {
	db, err := r.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
