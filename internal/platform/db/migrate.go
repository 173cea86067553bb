package db

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/branchbuddy/branchbuddy/migrations"
)

// Migrate applies all pending schema migrations from the embedded FS.
func Migrate(dsn string, logger *slog.Logger) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("platform/db: migration source: %w", err)
	}

	// golang-migrate expects a pgx5:// URL for the pgx/v5 driver.
	url := strings.Replace(dsn, "postgres://", "pgx5://", 1)

	m, err := migrate.NewWithSourceInstance("iofs", source, url)
	if err != nil {
		return fmt.Errorf("platform/db: init migrations: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("platform/db: apply migrations: %w", err)
	}

	version, dirty, _ := m.Version()
	if logger != nil {
		logger.Info("migrations applied", slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
	}
	return nil
}
