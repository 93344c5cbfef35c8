package infra

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite3/*.sql
var migrationsFS embed.FS

// RunMigrations applies every pending embedded migration for the database
// behind databaseURL.
//
// Postgres migrations use a dedicated connection that is closed afterwards.
// SQLite migrations reuse db's pool so that in-memory databases see them.
func RunMigrations(db *gorm.DB, databaseURL string) error {
	driverName, err := Driver(databaseURL)
	if err != nil {
		return err
	}

	var (
		driver database.Driver
		owned  bool
	)
	switch driverName {
	case DriverPostgres:
		migrateDB, err := sql.Open("pgx", databaseURL)
		if err != nil {
			return fmt.Errorf("open migration database: %w", err)
		}
		driver, err = migratepostgres.WithInstance(migrateDB, &migratepostgres.Config{})
		if err != nil {
			_ = migrateDB.Close()
			return fmt.Errorf("create postgres driver: %w", err)
		}
		owned = true
	default:
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("create sqlite driver: %w", err)
		}
	}

	src, err := iofs.New(migrationsFS, "migrations/"+driverName)
	if err != nil {
		return fmt.Errorf("create iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, driver)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	if owned {
		defer m.Close() //nolint: errcheck
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
