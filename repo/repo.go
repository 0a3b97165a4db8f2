// Package repo is the relational implementation of storage.Storage. Every
// statement is written out by hand with `?` placeholders; the db layer
// rebinds them for PostgreSQL.
package repo

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

// ─────────────────────────────────────────────────────────────────────────────
// Storage: every repository behind one value
// ─────────────────────────────────────────────────────────────────────────────

// Storage satisfies storage.Storage by composing one repository per entity.
type Storage struct {
	storage.Users
	storage.AdminUsers
	storage.ContactSubmissions
	storage.Jobs
	storage.JobApplications
	storage.Catalogues
	storage.Products
	storage.MediaContent
	storage.SiteSettings
}

// NewStorage returns a Storage backed by q.
// q is a *db.DB, or a *db.Tx when the caller needs one transaction.
func NewStorage(q db.Querier) *Storage {
	return &Storage{
		Users:              NewUserRepo(q),
		AdminUsers:         NewAdminUserRepo(q),
		ContactSubmissions: NewContactRepo(q),
		Jobs:               NewJobRepo(q),
		JobApplications:    NewApplicationRepo(q),
		Catalogues:         NewCatalogueRepo(q),
		Products:           NewProductRepo(q),
		MediaContent:       NewMediaRepo(q),
		SiteSettings:       NewSettingRepo(q),
	}
}

var _ storage.Storage = (*Storage)(nil)

// Seed creates the default admin inside a single transaction so concurrent
// replicas starting together cannot both insert it.
func Seed(ctx context.Context, database *db.DB, admin models.CreateAdminUserParams) (bool, error) {
	var created bool
	err := database.ExecTx(ctx, func(tx *db.Tx) error {
		var err error
		created, err = storage.Seed(ctx, NewAdminUserRepo(tx), admin)
		return err
	})
	if db.IsDuplicateKey(err) {
		// Another instance won the race.
		return false, nil
	}
	return created, err
}

// ─────────────────────────────────────────────────────────────────────────────
// Shared statement helpers
// ─────────────────────────────────────────────────────────────────────────────

// rowScanner is satisfied by *db.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

type scanFunc[T any] func(rowScanner) (*T, error)

// insertRow executes insertSQL and returns the stored row. Dialects with
// RETURNING get the row back from the same statement; MySQL reads it back
// through selectByID using the generated id.
func insertRow[T any](ctx context.Context, q db.Querier, insertSQL, columns, selectByID string, scan scanFunc[T], args ...any) (*T, error) {
	if q.Dialect().Returning {
		return scan(q.QueryRow(ctx, insertSQL+" RETURNING "+columns, args...))
	}
	res, err := q.Exec(ctx, insertSQL, args...)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return scan(q.QueryRow(ctx, selectByID, id))
}

// updateBuilder collects SET clauses for a partial update. Only fields with
// non-nil pointers in the params are added, so the SQL stays fully visible
// and no column is overwritten by accident.
type updateBuilder struct {
	sets []string
	args []any
}

func (b *updateBuilder) set(column string, v any) {
	b.sets = append(b.sets, column+" = ?")
	b.args = append(b.args, v)
}

// setExpr adds a clause whose right-hand side is an expression with a single
// placeholder, e.g. "COALESCE(published_at, ?)".
func (b *updateBuilder) setExpr(column, expr string, v any) {
	b.sets = append(b.sets, column+" = "+expr)
	b.args = append(b.args, v)
}

// setIf adds column = *v when v is non-nil. Pointer values for nullable
// columns are passed through as-is so the driver stores NULL for nil.
func setIf[T any](b *updateBuilder, column string, v *T) {
	if v != nil {
		b.set(column, *v)
	}
}

// updateRow runs UPDATE table SET ... WHERE keyColumn = key, always
// refreshing updated_at, and returns the row as stored afterwards.
// ErrNotFound is returned when no row matches key.
func updateRow[T any](ctx context.Context, q db.Querier, table, columns, keyColumn string, key any, b *updateBuilder, selectByKey string, scan scanFunc[T]) (*T, error) {
	b.set("updated_at", models.Now())
	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", table, strings.Join(b.sets, ", "), keyColumn)
	args := append(b.args, key)

	if q.Dialect().Returning {
		return scan(q.QueryRow(ctx, query+" RETURNING "+columns, args...))
	}
	// MySQL reports zero affected rows when values are unchanged, so
	// existence is decided by the read-back instead.
	if _, err := q.Exec(ctx, query, args...); err != nil {
		return nil, err
	}
	return scan(q.QueryRow(ctx, selectByKey, key))
}

// deleteRow executes deleteSQL and reports whether a row was removed.
func deleteRow(ctx context.Context, q db.Querier, deleteSQL string, key any) (bool, error) {
	res, err := q.Exec(ctx, deleteSQL, key)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// listRows runs query and scans every row.
func listRows[T any](ctx context.Context, q db.Querier, query string, scan scanFunc[T], args ...any) ([]*T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*T, 0)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ─────────────────────────────────────────────────────────────────────────────
// Null helpers
// ─────────────────────────────────────────────────────────────────────────────

// NullString converts *string to sql.NullString for optional columns.
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullTime converts *time.Time to sql.NullTime for optional columns.
func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// utc normalises scanned timestamps; drivers hand them back in the session
// zone.
func utc(ts ...*time.Time) {
	for _, t := range ts {
		*t = t.UTC()
	}
}
