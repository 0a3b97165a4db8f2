package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sentinels
// ─────────────────────────────────────────────────────────────────────────────

var (
	// ErrNotFound means a single-row lookup matched nothing.
	ErrNotFound = errors.New("indosup/db: record not found")
	// ErrDuplicateKey is a unique constraint violation, e.g. a second admin
	// with the same email or a repeated setting key.
	ErrDuplicateKey = errors.New("indosup/db: duplicate key")
	// ErrForeignKeyViolation is a foreign key constraint violation.
	ErrForeignKeyViolation = errors.New("indosup/db: foreign key violation")
	// ErrCheckViolation is a CHECK constraint violation, e.g. an unknown media
	// type reaching the table.
	ErrCheckViolation = errors.New("indosup/db: check constraint violation")
	// ErrDeadlock covers deadlocks and, for SQLite, a busy or locked file.
	ErrDeadlock = errors.New("indosup/db: deadlock detected")
	// ErrTimeout is a cancelled context or a server-side statement timeout.
	ErrTimeout = errors.New("indosup/db: query timeout")
	// ErrConnectionFailed means the server could not be reached.
	ErrConnectionFailed = errors.New("indosup/db: connection failed")
)

func IsNotFound(err error) bool            { return errors.Is(err, ErrNotFound) }
func IsDuplicateKey(err error) bool        { return errors.Is(err, ErrDuplicateKey) }
func IsForeignKeyViolation(err error) bool { return errors.Is(err, ErrForeignKeyViolation) }
func IsCheckViolation(err error) bool      { return errors.Is(err, ErrCheckViolation) }
func IsDeadlock(err error) bool            { return errors.Is(err, ErrDeadlock) }
func IsTimeout(err error) bool             { return errors.Is(err, ErrTimeout) }
func IsConnectionFailed(err error) bool    { return errors.Is(err, ErrConnectionFailed) }

// DBError pairs a sentinel with the driver error behind it. errors.Is
// matches the sentinel; errors.As and Unwrap reach the driver error.
type DBError struct {
	Sentinel error
	Cause    error
}

func (e *DBError) Error() string        { return fmt.Sprintf("%v: %v", e.Sentinel, e.Cause) }
func (e *DBError) Is(target error) bool { return e.Sentinel == target }
func (e *DBError) Unwrap() error        { return e.Cause }

func wrap(sentinel, cause error) error {
	if sentinel == nil {
		return nil
	}
	return &DBError{Sentinel: sentinel, Cause: cause}
}

// ─────────────────────────────────────────────────────────────────────────────
// ErrorMapper
// ─────────────────────────────────────────────────────────────────────────────

// ErrorMapper turns driver errors into the sentinels above. Errors it does
// not recognise come back unchanged.
type ErrorMapper interface {
	Map(err error) error
}

// ErrorMapperFunc adapts a function to ErrorMapper.
type ErrorMapperFunc func(error) error

func (f ErrorMapperFunc) Map(err error) error { return f(err) }

// DefaultErrorMapper understands lib/pq, go-sql-driver/mysql and
// mattn/go-sqlite3, whichever driver is in use.
func DefaultErrorMapper() ErrorMapper { return ErrorMapperFunc(mapError) }

func mapError(err error) error {
	var dbe *DBError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &dbe):
		return err
	case errors.Is(err, sql.ErrNoRows):
		return wrap(ErrNotFound, err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return wrap(ErrTimeout, err)
	}

	for _, m := range []func(error) error{postgresSentinel, mysqlSentinel, sqliteSentinel, networkSentinel} {
		if s := m(err); s != nil {
			return wrap(s, err)
		}
	}
	return err
}

// ─────────────────────────────────────────────────────────────────────────────
// PostgreSQL
// ─────────────────────────────────────────────────────────────────────────────

// SQLSTATE codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html.
var pgStates = map[string]error{
	"23505": ErrDuplicateKey,
	"23503": ErrForeignKeyViolation,
	"23514": ErrCheckViolation,
	"40P01": ErrDeadlock,
	"57014": ErrTimeout,
}

func postgresSentinel(err error) error {
	code := ""
	var pqe *pq.Error
	if errors.As(err, &pqe) {
		code = string(pqe.Code)
	} else {
		code = sqlStateInText(err.Error())
	}
	if strings.HasPrefix(code, "08") { // connection_exception class
		return ErrConnectionFailed
	}
	return pgStates[code]
}

// sqlStateInText recovers the code from messages that were flattened to text
// on the way up, formatted "... (SQLSTATE 23505)".
func sqlStateInText(s string) string {
	_, rest, ok := strings.Cut(s, "(SQLSTATE ")
	if !ok {
		return ""
	}
	code, _, _ := strings.Cut(rest, ")")
	return code
}

// ─────────────────────────────────────────────────────────────────────────────
// MySQL
// ─────────────────────────────────────────────────────────────────────────────

var mysqlCodes = map[uint16]error{
	1062: ErrDuplicateKey,        // ER_DUP_ENTRY
	1216: ErrForeignKeyViolation, // ER_NO_REFERENCED_ROW
	1217: ErrForeignKeyViolation, // ER_ROW_IS_REFERENCED
	1451: ErrForeignKeyViolation, // ER_ROW_IS_REFERENCED_2
	1452: ErrForeignKeyViolation, // ER_NO_REFERENCED_ROW_2
	3819: ErrCheckViolation,      // ER_CHECK_CONSTRAINT_VIOLATED
	1213: ErrDeadlock,            // ER_LOCK_DEADLOCK
	1205: ErrDeadlock,            // ER_LOCK_WAIT_TIMEOUT
	3024: ErrTimeout,             // ER_QUERY_TIMEOUT
	1045: ErrConnectionFailed,    // ER_ACCESS_DENIED_ERROR
	1040: ErrConnectionFailed,    // ER_CON_COUNT_ERROR
}

func mysqlSentinel(err error) error {
	var me *mysql.MySQLError
	if !errors.As(err, &me) {
		return nil
	}
	return mysqlCodes[me.Number]
}

// ─────────────────────────────────────────────────────────────────────────────
// SQLite
// ─────────────────────────────────────────────────────────────────────────────

var sqliteCodes = map[sqlite3.ErrNoExtended]error{
	sqlite3.ErrConstraintUnique:     ErrDuplicateKey,
	sqlite3.ErrConstraintPrimaryKey: ErrDuplicateKey,
	sqlite3.ErrConstraintForeignKey: ErrForeignKeyViolation,
	sqlite3.ErrConstraintCheck:      ErrCheckViolation,
}

// sqliteMessages match errors that lost their sqlite3.Error type, such as
// those re-wrapped by golang-migrate.
var sqliteMessages = []struct {
	text     string
	sentinel error
}{
	{"UNIQUE constraint failed", ErrDuplicateKey},
	{"FOREIGN KEY constraint failed", ErrForeignKeyViolation},
	{"CHECK constraint failed", ErrCheckViolation},
	{"database is locked", ErrDeadlock},
}

func sqliteSentinel(err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) {
		if s, ok := sqliteCodes[se.ExtendedCode]; ok {
			return s
		}
		if se.Code == sqlite3.ErrBusy || se.Code == sqlite3.ErrLocked {
			return ErrDeadlock
		}
	}
	msg := err.Error()
	for _, m := range sqliteMessages {
		if strings.Contains(msg, m.text) {
			return m.sentinel
		}
	}
	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Network
// ─────────────────────────────────────────────────────────────────────────────

func networkSentinel(err error) error {
	var opErr *net.OpError
	if errors.As(err, &opErr) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return ErrConnectionFailed
	}
	return nil
}
