// Package migrations embeds the schema for every supported database and
// applies it through golang-migrate.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql mysql/*.sql sqlite3/*.sql
var files embed.FS

// Migrator applies the embedded migrations for one driver. It owns its own
// connection; Close releases it.
type Migrator struct {
	m *migrate.Migrate
}

// New opens dsn with driverName ("postgres", "mysql" or "sqlite3") and
// prepares the matching migration set. logger may be nil.
func New(driverName, dsn string, logger *slog.Logger) (*Migrator, error) {
	conn, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("migrations: open: %w", err)
	}

	var target database.Driver
	switch driverName {
	case "postgres":
		target, err = postgres.WithInstance(conn, &postgres.Config{})
	case "mysql":
		target, err = migratemysql.WithInstance(conn, &migratemysql.Config{})
	case "sqlite3":
		target, err = sqlite3.WithInstance(conn, &sqlite3.Config{})
	default:
		err = fmt.Errorf("unsupported driver %q", driverName)
	}
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("migrations: %s: %w", driverName, err)
	}

	src, err := iofs.New(files, driverName)
	if err != nil {
		_ = target.Close()
		return nil, fmt.Errorf("migrations: source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driverName, target)
	if err != nil {
		_ = src.Close()
		_ = target.Close()
		return nil, fmt.Errorf("migrations: init: %w", err)
	}
	if logger != nil {
		m.Log = &migrateLogger{logger: logger}
	}
	return &Migrator{m: m}, nil
}

// Up applies all pending migrations. Being already up to date is not an
// error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: up: %w", err)
	}
	return nil
}

// Down rolls back steps migrations.
func (mg *Migrator) Down(steps int) error {
	if steps < 1 {
		return fmt.Errorf("migrations: down: steps must be positive, got %d", steps)
	}
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrations: down: %w", err)
	}
	return nil
}

// Version reports the applied version. A database with no migrations
// applied reports version 0.
func (mg *Migrator) Version() (version uint, dirty bool, err error) {
	version, dirty, err = mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migrations: version: %w", err)
	}
	return version, dirty, nil
}

// Force sets the recorded version without running migrations, clearing a
// dirty state.
func (mg *Migrator) Force(version int) error {
	if err := mg.m.Force(version); err != nil {
		return fmt.Errorf("migrations: force: %w", err)
	}
	return nil
}

// Drop removes every table in the database.
func (mg *Migrator) Drop() error {
	if err := mg.m.Drop(); err != nil {
		return fmt.Errorf("migrations: drop: %w", err)
	}
	return nil
}

// Close releases the migration source and the database connection.
func (mg *Migrator) Close() error {
	srcErr, dbErr := mg.m.Close()
	return errors.Join(srcErr, dbErr)
}

// Up is a shortcut that applies every pending migration and closes.
func Up(driverName, dsn string, logger *slog.Logger) error {
	mg, err := New(driverName, dsn, logger)
	if err != nil {
		return err
	}
	upErr := mg.Up()
	return errors.Join(upErr, mg.Close())
}

// migrateLogger adapts slog to migrate.Logger.
type migrateLogger struct {
	logger *slog.Logger
}

func (l *migrateLogger) Printf(format string, v ...any) {
	l.logger.Info(fmt.Sprintf(format, v...), "component", "migrate")
}

func (l *migrateLogger) Verbose() bool { return false }
