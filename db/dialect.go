package db

import (
	"strconv"
	"strings"
)

// ─────────────────────────────────────────────────────────────────────────────
// Dialect: syntax differences repositories must handle
// ─────────────────────────────────────────────────────────────────────────────

// Dialect describes how a driver expects bind parameters and whether it can
// return the affected row from INSERT/UPDATE.
//
// Repositories always write queries with '?' placeholders; DB and Tx rebind
// them before the statement reaches the driver.
type Dialect struct {
	// Name is the database/sql driver name the dialect was resolved from.
	Name string
	// DollarPlaceholders is true for drivers that use $1, $2, ... (PostgreSQL).
	DollarPlaceholders bool
	// Returning is true when INSERT/UPDATE ... RETURNING is supported.
	Returning bool
}

// DialectFor resolves the dialect for a database/sql driver name.
// Unknown drivers get '?' placeholders without RETURNING, the most
// conservative combination.
func DialectFor(driverName string) Dialect {
	switch driverName {
	case "postgres", "pgx":
		return Dialect{Name: driverName, DollarPlaceholders: true, Returning: true}
	case "sqlite3", "sqlite":
		return Dialect{Name: driverName, Returning: true}
	default:
		return Dialect{Name: driverName}
	}
}

// Rebind rewrites '?' placeholders for the dialect. Question marks inside
// single-quoted string literals are left alone.
func (d Dialect) Rebind(query string) string {
	if !d.DollarPlaceholders || !strings.Contains(query, "?") {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
