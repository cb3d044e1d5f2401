package postgres

import (
	"embed"
	"errors"
	"fmt"

	"taste-trail-backend/internal/storage"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store is the PostgreSQL implementation of the storage interfaces. The
// schema enforces the referential rules the memory store implements by
// hand: cascade deletes through foreign keys and membership uniqueness
// through a composite unique index.
type Store struct {
	db *pgxpool.Pool
}

// New creates a store backed by the given connection pool.
func New(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

var _ storage.Store = (*Store)(nil)

// Migrate applies any pending schema migrations.
func (s *Store) Migrate() error {
	src, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}

	db := stdlib.OpenDBFromPool(s.db)
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// translateErr maps driver errors onto the storage sentinels.
func translateErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return storage.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return storage.ErrDuplicate
		case "23503": // foreign_key_violation
			return storage.ErrNotFound
		}
	}
	return err
}
