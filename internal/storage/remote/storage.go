// Package remote implements the record store on the hosted backend: record
// and photo rows in a relational database, photo binaries in object storage.
package remote

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sakelabeler/sakelabeler/internal/blob"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Identity resolves the authenticated user behind remote operations.
type Identity interface {
	// UserID returns the acting user id.
	// Returns storage.ErrNotAuthenticated when no valid session exists.
	UserID(ctx context.Context) (string, error)
}

// Open connects to the backend database and applies pending schema
// migrations. A postgres:// DSN selects the Postgres driver; anything else
// is treated as a SQLite path (used in development and tests).
func Open(ctx context.Context, dsn string) (*gorm.DB, error) {
	var (
		dialector gorm.Dialector
		dialect   string
	)
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
		dialect = "postgres"
	} else {
		dialector = sqlite.Open(dsn)
		dialect = "sqlite3"
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == "sqlite3" {
		if _, err := sqlDB.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect(dialect); err != nil {
		return nil, fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return nil, fmt.Errorf("goose up failed: %w", err)
	}

	return db, nil
}

// Store is the remote record store. Without an acting owner it operates on
// the authenticated caller's records; ForOwner returns a store scoped to a
// shared dataset instead. Every operation requires a resolvable user id.
type Store struct {
	db          *gorm.DB
	blobs       blob.Store
	identity    Identity
	actingOwner string
}

// New creates a remote store operating on the caller's own records.
func New(db *gorm.DB, blobs blob.Store, identity Identity) *Store {
	return &Store{db: db, blobs: blobs, identity: identity}
}

// ForOwner returns a store operating on the given owner's records, used
// when viewing a dataset shared with the caller. Authentication is still
// required for every operation.
func (s *Store) ForOwner(ownerID string) *Store {
	cp := *s
	cp.actingOwner = ownerID
	return &cp
}

// owner resolves the id whose records this store operates on.
func (s *Store) owner(ctx context.Context) (string, error) {
	uid, err := s.identity.UserID(ctx)
	if err != nil {
		return "", err
	}
	if s.actingOwner != "" {
		return s.actingOwner, nil
	}
	return uid, nil
}

// Probe performs a harmless read against the caller's records, verifying
// that the backend is reachable and the session resolves to a user.
func (s *Store) Probe(ctx context.Context) error {
	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}

	var n int64
	if err := s.db.WithContext(ctx).Model(&recordRow{}).
		Where("owner_id = ?", owner).Count(&n).Error; err != nil {
		return fmt.Errorf("failed to probe backend: %w", err)
	}
	return nil
}
