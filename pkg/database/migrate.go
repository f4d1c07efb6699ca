package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applica tutte le migrazioni non ancora eseguite
func RunMigrations(db *sql.DB, logger *zap.Logger) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("caricamento migrazioni fallito: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("creazione driver migrazioni fallita: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("inizializzazione migrazioni fallita: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("esecuzione migrazioni fallita: %w", err)
	}

	version, dirty, _ := m.Version()
	if dirty {
		logger.Warn("migrazioni in stato dirty", zap.Uint("version", version))
	} else {
		logger.Info("migrazioni completate", zap.Uint("version", version))
	}

	return nil
}
