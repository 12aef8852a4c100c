// Package db opens the session database and keeps its schema current.
package db

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// Registers the postgres driver for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/go-shop/internal/config"
	"github.com/diewo77/go-shop/internal/session"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var passwordRe = regexp.MustCompile(`(password=)(\S+)|(://[^:/]+:)([^@]+)(@)`)

// MaskDSN hides the password of a key=value or URL style DSN.
func MaskDSN(dsn string) string {
	return passwordRe.ReplaceAllStringFunc(dsn, func(m string) string {
		if strings.HasPrefix(m, "password=") {
			return "password=***"
		}
		i := strings.LastIndex(m, ":")
		return m[:i+1] + "***@"
	})
}

// Connect opens the configured database. Postgres is retried while the
// server starts up.
func Connect(cfg config.DatabaseConfig, log *slog.Logger) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Debug {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}
	dsn := cfg.DSN()
	log.Info("connecting to database", "driver", cfg.Driver, "dsn", MaskDSN(dsn))

	var (
		conn *gorm.DB
		err  error
	)
	switch cfg.Driver {
	case "postgres":
		for i := 0; i < 10; i++ {
			conn, err = gorm.Open(postgres.Open(dsn), gcfg)
			if err == nil {
				break
			}
			log.Warn("retrying database connection", "attempt", i+1, "error", err)
			time.Sleep(2 * time.Second)
		}
	case "sqlite":
		conn, err = gorm.Open(sqlite.Open(dsn), gcfg)
	default:
		return nil, fmt.Errorf("unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	// Basic connectivity test
	if pingErr := conn.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	return conn, nil
}

// Migrate creates the sessions table. With postgres and MIGRATIONS enabled
// the embedded SQL files run through golang-migrate; otherwise gorm's
// AutoMigrate is used.
func Migrate(conn *gorm.DB, cfg config.DatabaseConfig) error {
	if cfg.Driver == "postgres" && cfg.Migrations {
		url, err := cfg.MigrationURL()
		if err != nil {
			return err
		}
		if err := runSQLMigrations(url); err != nil {
			return fmt.Errorf("sql migrations failed: %w", err)
		}
	} else if err := conn.AutoMigrate(&session.Record{}); err != nil {
		return fmt.Errorf("automigrate %T: %w", session.Record{}, err)
	}

	if !conn.Migrator().HasTable(session.Record{}.TableName()) {
		return errors.New("missing table after migration: " + session.Record{}.TableName())
	}
	return nil
}

func runSQLMigrations(url string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return err
	}
	defer m.Close()
	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
