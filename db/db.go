// Package db is the SQL layer underneath the relational content store. It
// is not an ORM: every statement lives in the repo package as plain SQL, and
// db only adds placeholder rebinding, hook dispatch, driver-independent
// errors and transactions on top of database/sql.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Config
// ─────────────────────────────────────────────────────────────────────────────

// Config describes one connection pool.
type Config struct {
	// DriverName is the database/sql driver: "postgres", "mysql" or "sqlite3".
	DriverName string
	DSN        string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration

	// DefaultTimeout bounds Exec, QueryRow and Ping when ctx carries no
	// deadline. Zero disables it.
	DefaultTimeout time.Duration

	// Hooks run around every statement; nil entries are ignored.
	Hooks []Hook

	// ErrorMapper replaces DefaultErrorMapper when set.
	ErrorMapper ErrorMapper
}

// ─────────────────────────────────────────────────────────────────────────────
// DB
// ─────────────────────────────────────────────────────────────────────────────

// DB is a pool plus the rules for talking to it. It is safe for concurrent
// use; Exec, Query and QueryRow come from the embedded runner.
type DB struct {
	runner
	sqldb *sql.DB
}

// Open opens and pings the database described by cfg. The caller closes it.
func Open(cfg Config) (*DB, error) {
	switch {
	case cfg.DriverName == "":
		return nil, errors.New("indosup/db: DriverName must not be empty")
	case cfg.DSN == "":
		return nil, errors.New("indosup/db: DSN must not be empty")
	}

	sqldb, err := sql.Open(cfg.DriverName, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("indosup/db: open %s: %w", cfg.DriverName, err)
	}
	configurePool(sqldb, cfg)

	mapper := cfg.ErrorMapper
	if mapper == nil {
		mapper = DefaultErrorMapper()
	}
	d := &DB{
		sqldb: sqldb,
		runner: runner{
			conn:    sqldb,
			dialect: DialectFor(cfg.DriverName),
			hooks:   newHookList(cfg.Hooks),
			errMap:  mapper,
			timeout: cfg.DefaultTimeout,
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqldb.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		return nil, fmt.Errorf("indosup/db: ping %s: %w", cfg.DriverName, d.mapErr(err))
	}
	return d, nil
}

func configurePool(sqldb *sql.DB, cfg Config) {
	if cfg.MaxOpenConns > 0 {
		sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		sqldb.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}
}

// Raw exposes the pool for code that needs database/sql directly.
func (d *DB) Raw() *sql.DB { return d.sqldb }

// Close closes the pool.
func (d *DB) Close() error { return d.sqldb.Close() }

// Ping checks the database is still reachable.
func (d *DB) Ping(ctx context.Context) error {
	ctx, cancel := d.bound(ctx)
	defer cancel()
	return d.mapErr(d.sqldb.PingContext(ctx))
}

// ─────────────────────────────────────────────────────────────────────────────
// Querier
// ─────────────────────────────────────────────────────────────────────────────

// Querier is what repositories depend on. *DB and *Tx both satisfy it, so a
// repository built on a Tx joins that transaction.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (sql.Result, error)
	Query(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) *Row
	Dialect() Dialect
}

var (
	_ Querier = (*DB)(nil)
	_ Querier = (*Tx)(nil)
)
