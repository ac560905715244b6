package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"member/internal/errors"
	"member/internal/infra/persistence/postgres/migrations"

	"github.com/pressly/goose/v3"
)

// Migrator applies the embedded goose migrations to the primary database.
type Migrator struct {
	db     *sql.DB
	logger *slog.Logger
	up     func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error
}

// NewMigrator builds a Migrator over an open pool.
func NewMigrator(db *sql.DB, logger *slog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		logger: logger,
		up:     goose.UpContext,
	}
}

// Up runs every pending migration.
func (m *Migrator) Up(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "failed to set goose dialect")
	}

	if err := m.up(ctx, m.db, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	m.logger.Info("Database migrations applied")

	return nil
}
