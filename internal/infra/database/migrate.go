package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	"github.com/teamhub/server/internal/infra/database/migrations"
)

const migrationTimeout = time.Minute

// Migrator applies the embedded goose migrations.
type Migrator struct {
	dsn    string
	logger *zap.Logger
}

// NewMigrator creates a migrator for the database at dsn.
func NewMigrator(dsn string, logger *zap.Logger) *Migrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Migrator{dsn: dsn, logger: logger}
}

// Up applies pending migrations.
func (m *Migrator) Up(ctx context.Context) error {
	return m.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		m.logger.Info("applying migrations")
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		m.logger.Info("migrations applied")
		return nil
	})
}

// Down rolls back the latest migration, or down to version when it is positive.
func (m *Migrator) Down(ctx context.Context, version int64) error {
	return m.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		if version > 0 {
			m.logger.Info("rolling back migrations", zap.Int64("target", version))
			if err := goose.DownToContext(ctx, db, ".", version); err != nil {
				return fmt.Errorf("rollback to version %d: %w", version, err)
			}
			return nil
		}
		m.logger.Info("rolling back latest migration")
		if err := goose.DownContext(ctx, db, "."); err != nil {
			return fmt.Errorf("rollback latest migration: %w", err)
		}
		return nil
	})
}

// Status prints applied and pending migrations.
func (m *Migrator) Status(ctx context.Context) error {
	return m.withDB(ctx, func(ctx context.Context, db *sql.DB) error {
		if err := goose.StatusContext(ctx, db, "."); err != nil {
			return fmt.Errorf("migration status: %w", err)
		}
		return nil
	})
}

func (m *Migrator) withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("configure goose: %w", err)
	}

	db, err := goose.OpenDBWithDriver("postgres", m.dsn)
	if err != nil {
		return fmt.Errorf("open sql connection: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(ctx, migrationTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping sql connection: %w", err)
	}
	return fn(ctx, db)
}
