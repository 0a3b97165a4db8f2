package migrations_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/migrations"
	_ "github.com/mattn/go-sqlite3"
)

var tables = []string{
	"users", "admin_users", "contact_submissions", "jobs", "job_applications",
	"catalogues", "products", "media_content", "site_settings",
}

func tableCount(t *testing.T, dsn string) int {
	t.Helper()
	database, err := db.Open(db.Config{DSN: dsn, DriverName: "sqlite3"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer database.Close()

	n := 0
	for _, name := range tables {
		var found string
		err := database.QueryRow(context.Background(),
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&found)
		switch {
		case err == nil:
			n++
		case db.IsNotFound(err):
		default:
			t.Fatalf("lookup %s: %v", name, err)
		}
	}
	return n
}

func TestMigrator_UpDownSQLite(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "migrate.db")

	mg, err := migrations.New("sqlite3", dsn, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer mg.Close()

	v, dirty, err := mg.Version()
	if err != nil || v != 0 || dirty {
		t.Fatalf("fresh version = %d, %v, %v; want 0, false, nil", v, dirty, err)
	}

	if err := mg.Up(); err != nil {
		t.Fatalf("up: %v", err)
	}
	if n := tableCount(t, dsn); n != len(tables) {
		t.Fatalf("after up: %d of %d tables exist", n, len(tables))
	}

	// Re-running is a no-op.
	if err := mg.Up(); err != nil {
		t.Fatalf("second up: %v", err)
	}

	v, dirty, err = mg.Version()
	if err != nil || v != 1 || dirty {
		t.Fatalf("version = %d, %v, %v; want 1, false, nil", v, dirty, err)
	}

	if err := mg.Down(1); err != nil {
		t.Fatalf("down: %v", err)
	}
	if n := tableCount(t, dsn); n != 0 {
		t.Fatalf("after down: %d tables remain", n)
	}
}

func TestMigrator_DownRejectsZeroSteps(t *testing.T) {
	mg, err := migrations.New("sqlite3", filepath.Join(t.TempDir(), "m.db"), nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	defer mg.Close()

	if err := mg.Down(0); err == nil {
		t.Fatal("expected error for zero steps")
	}
}

func TestNew_UnsupportedDriver(t *testing.T) {
	if _, err := migrations.New("oracle", "whatever", nil); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestUp_Shortcut(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "shortcut.db")
	if err := migrations.Up("sqlite3", dsn, nil); err != nil {
		t.Fatalf("up: %v", err)
	}
	if n := tableCount(t, dsn); n != len(tables) {
		t.Fatalf("%d of %d tables exist", n, len(tables))
	}
}
