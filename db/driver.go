package db

import (
	"cmp"
	"fmt"
	"maps"
	"net/url"
	"slices"
	"strings"
)

// DriverOptions are connection settings in driver-neutral form.
type DriverOptions struct {
	Host     string
	Port     int
	User     string
	Password string
	// Database is the database name, or the file path for sqlite3.
	Database string
	// SSLMode is passed to PostgreSQL; "disable" when empty.
	SSLMode string
	// Extra holds driver-specific parameters appended to the DSN.
	Extra map[string]string
}

// dsnBuilders maps a database/sql driver name to its DSN format. The drivers
// themselves register with database/sql when imported.
var dsnBuilders = map[string]func(DriverOptions) (string, error){
	"postgres": postgresDSN,
	"mysql":    mysqlDSN,
	"sqlite3":  sqliteDSN,
}

// BuildDSN renders opts as a DSN for driverName.
func BuildDSN(driverName string, opts DriverOptions) (string, error) {
	build, ok := dsnBuilders[driverName]
	if !ok {
		return "", fmt.Errorf("indosup/db: no DSN format for driver %q", driverName)
	}
	dsn, err := build(opts)
	if err != nil {
		return "", fmt.Errorf("indosup/db: %s DSN: %w", driverName, err)
	}
	return dsn, nil
}

// OpenWithDriver builds the DSN for driverName and opens it with cfg. Any
// DriverName or DSN already in cfg is overwritten.
//
//	database, err := db.OpenWithDriver("postgres", db.DriverOptions{
//	    Host: "localhost", User: "indosup", Password: "secret", Database: "indosup",
//	}, db.Config{MaxOpenConns: 25})
func OpenWithDriver(driverName string, opts DriverOptions, cfg Config) (*DB, error) {
	dsn, err := BuildDSN(driverName, opts)
	if err != nil {
		return nil, err
	}
	cfg.DriverName = driverName
	cfg.DSN = dsn
	return Open(cfg)
}

func postgresDSN(o DriverOptions) (string, error) {
	if o.Host == "" || o.Database == "" {
		return "", fmt.Errorf("host and database are required")
	}
	pairs := []string{
		"host=" + o.Host,
		fmt.Sprintf("port=%d", cmp.Or(o.Port, 5432)),
		"user=" + o.User,
		"password=" + o.Password,
		"dbname=" + o.Database,
		"sslmode=" + cmp.Or(o.SSLMode, "disable"),
	}
	for _, k := range slices.Sorted(maps.Keys(o.Extra)) {
		pairs = append(pairs, k+"="+o.Extra[k])
	}
	return strings.Join(pairs, " "), nil
}

// mysqlDSN always sets parseTime so DATETIME scans into time.Time, loc=UTC
// to match the stored timestamps, and multiStatements for migration files.
func mysqlDSN(o DriverOptions) (string, error) {
	if o.Host == "" || o.Database == "" {
		return "", fmt.Errorf("host and database are required")
	}
	params := url.Values{
		"parseTime":       {"true"},
		"loc":             {"UTC"},
		"multiStatements": {"true"},
	}
	for k, v := range o.Extra {
		params.Set(k, v)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		o.User, o.Password, o.Host, cmp.Or(o.Port, 3306), o.Database, params.Encode()), nil
}

func sqliteDSN(o DriverOptions) (string, error) {
	if o.Database == "" {
		return "", fmt.Errorf("database file path is required")
	}
	if len(o.Extra) == 0 {
		return o.Database, nil
	}
	params := make([]string, 0, len(o.Extra))
	for _, k := range slices.Sorted(maps.Keys(o.Extra)) {
		params = append(params, k+"="+o.Extra[k])
	}
	return "file:" + o.Database + "?" + strings.Join(params, "&"), nil
}
