package db

import (
	"context"
	"database/sql"
	"time"
)

// conn is the part of *sql.DB and *sql.Tx a runner drives.
type conn interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// runner executes statements against a pool or a transaction: it rebinds
// placeholders, applies the default timeout, runs hooks and maps errors.
type runner struct {
	conn    conn
	dialect Dialect
	hooks   hookList
	errMap  ErrorMapper
	timeout time.Duration // zero inside transactions
}

// Dialect reports the placeholder and RETURNING rules of the driver.
func (r *runner) Dialect() Dialect { return r.dialect }

// Exec runs a statement that returns no rows.
func (r *runner) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	ctx, cancel := r.bound(ctx)
	defer cancel()

	var res sql.Result
	err := r.observe(ctx, query, args, func(q string) (err error) {
		res, err = r.conn.ExecContext(ctx, q, args...)
		return err
	})
	return res, err
}

// Query runs a statement returning rows. The caller closes the rows.
//
// No default timeout is applied: cancelling it would close the rows before
// the caller reads them.
func (r *runner) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	var rows *sql.Rows
	err := r.observe(ctx, query, args, func(q string) (err error) {
		rows, err = r.conn.QueryContext(ctx, q, args...)
		return err
	})
	return rows, err
}

// QueryRow runs a statement returning at most one row. Errors, including
// ErrNotFound, surface from Row.Scan, which also releases the default
// timeout.
func (r *runner) QueryRow(ctx context.Context, query string, args ...any) *Row {
	ctx, cancel := r.bound(ctx)
	row := &Row{errMap: r.errMap, cancel: cancel}
	_ = r.observe(ctx, query, args, func(q string) error {
		row.raw = r.conn.QueryRowContext(ctx, q, args...)
		return nil
	})
	return row
}

func (r *runner) observe(ctx context.Context, query string, args []any, call func(string) error) error {
	query = r.dialect.Rebind(query)
	start := time.Now()
	r.hooks.before(ctx, query, args)
	err := r.mapErr(call(query))
	r.hooks.after(ctx, query, args, time.Since(start), err)
	return err
}

// bound applies the default timeout unless ctx already has a deadline.
func (r *runner) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.timeout <= 0 {
		return ctx, func() {}
	}
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.timeout)
}

func (r *runner) mapErr(err error) error {
	if err == nil {
		return nil
	}
	return r.errMap.Map(err)
}

// Row wraps *sql.Row so Scan returns mapped errors.
type Row struct {
	raw    *sql.Row
	errMap ErrorMapper
	cancel context.CancelFunc
}

// Scan copies the row into dest. ErrNotFound means no row matched.
func (r *Row) Scan(dest ...any) error {
	defer r.cancel()
	if err := r.raw.Scan(dest...); err != nil {
		return r.errMap.Map(err)
	}
	return nil
}
