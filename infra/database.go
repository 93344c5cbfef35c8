package infra

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amirasaad/fintrack/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Driver picks the SQL driver from the DATABASE_URL scheme.
func Driver(databaseURL string) (string, error) {
	switch {
	case strings.HasPrefix(databaseURL, "postgres://"),
		strings.HasPrefix(databaseURL, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(databaseURL, "sqlite://"),
		strings.HasPrefix(databaseURL, "file:"),
		databaseURL == ":memory:":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database url scheme: %q", databaseURL)
	}
}

// SQLiteDSN strips the sqlite:// scheme and turns foreign key enforcement on.
func SQLiteDSN(databaseURL string) string {
	dsn := strings.TrimPrefix(databaseURL, "sqlite://")
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=1"
}

// NewDBConnection opens the database named by cfg.Url.
func NewDBConnection(
	cfg *config.DB,
	appEnv string,
) (*gorm.DB, error) {
	if cfg == nil || cfg.Url == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	driver, err := Driver(cfg.Url)
	if err != nil {
		return nil, err
	}

	logMode := logger.Silent
	if appEnv == "development" {
		logMode = logger.Info
	}

	var dialector gorm.Dialector
	if driver == DriverPostgres {
		dialector = postgres.Open(cfg.Url)
	} else {
		dialector = sqlite.Open(SQLiteDSN(cfg.Url))
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		// a single connection serializes writers and keeps in-memory databases alive
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		return connection, nil
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	if cfg.ConnMaxLifetime == 0 {
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return connection, nil
}
