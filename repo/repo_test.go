package repo_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/migrations"
	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/repo"
	"github.com/HasanApplore/IndoSup-sub000/storage"
	"github.com/HasanApplore/IndoSup-sub000/storage/storagetest"
	sqlite3 "github.com/mattn/go-sqlite3"
)

// sqlite3_plain is SQLite registered under a name the dialect table does not
// know, so statements run without RETURNING. That is the MySQL code path:
// inserts read back by LastInsertId and updates by a follow-up select.
const plainDriver = "sqlite3_plain"

var registerPlain sync.Once

// ─────────────────────────────────────────────────────────────────────────────
// Test fixture
// ─────────────────────────────────────────────────────────────────────────────

func openMigrated(t *testing.T, driverName string) *db.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "repo.db")
	if err := migrations.Up("sqlite3", dsn, nil); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	database, err := db.Open(db.Config{DSN: dsn, DriverName: driverName})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func newTestStorage(t *testing.T) (*repo.Storage, *db.DB) {
	t.Helper()
	database := openMigrated(t, "sqlite3")
	return repo.NewStorage(database), database
}

func newPlainStorage(t *testing.T) *repo.Storage {
	t.Helper()
	registerPlain.Do(func() { sql.Register(plainDriver, &sqlite3.SQLiteDriver{}) })
	database := openMigrated(t, plainDriver)
	if database.Dialect().Returning {
		t.Fatalf("%s should not use RETURNING", plainDriver)
	}
	return repo.NewStorage(database)
}

// ─────────────────────────────────────────────────────────────────────────────
// Contract
// ─────────────────────────────────────────────────────────────────────────────

func TestStorage_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		s, _ := newTestStorage(t)
		return s
	})
}

func TestStorage_Contract_WithoutReturning(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		return newPlainStorage(t)
	})
}

// ─────────────────────────────────────────────────────────────────────────────
// Transactions
// ─────────────────────────────────────────────────────────────────────────────

func TestStorage_InsideTx_Rollback(t *testing.T) {
	_, database := newTestStorage(t)
	ctx := context.Background()

	errAbort := errors.New("abort")
	err := database.ExecTx(ctx, func(tx *db.Tx) error {
		s := repo.NewStorage(tx)
		if _, err := s.CreateJob(ctx, models.CreateJobParams{
			Title: "Buyer", Department: "Ops", Location: "Jakarta", Type: models.JobTypeFullTime,
			Description: "d", Requirements: "r",
		}); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("expected abort error, got %v", err)
	}

	jobs, err := repo.NewStorage(database).ListJobs(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(jobs) != 0 {
		t.Fatalf("rolled-back job is visible: %+v", jobs)
	}
}

func TestSeed_Idempotent(t *testing.T) {
	s, database := newTestStorage(t)
	ctx := context.Background()
	admin := models.CreateAdminUserParams{Email: "admin@indosup.com", Password: "hash", Name: "Admin"}

	created, err := repo.Seed(ctx, database, admin)
	if err != nil || !created {
		t.Fatalf("first seed = %v, %v; want true, nil", created, err)
	}
	created, err = repo.Seed(ctx, database, admin)
	if err != nil || created {
		t.Fatalf("second seed = %v, %v; want false, nil", created, err)
	}

	got, err := s.GetAdminUserByEmail(ctx, admin.Email)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Role != models.AdminRole {
		t.Fatalf("role = %q", got.Role)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Column mapping
// ─────────────────────────────────────────────────────────────────────────────

func TestProduct_TagsRoundTrip(t *testing.T) {
	s, database := newTestStorage(t)
	ctx := context.Background()

	p, err := s.CreateProduct(ctx, models.CreateProductParams{
		Name: "Ready-mix", Description: "K-300", Category: "concrete",
		Tags: models.StringList{"wet", "bulk"},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	var raw string
	if err := database.QueryRow(ctx, `SELECT tags FROM products WHERE id = ?`, p.ID).Scan(&raw); err != nil {
		t.Fatalf("raw select: %v", err)
	}
	if raw != `["wet","bulk"]` {
		t.Fatalf("tags stored as %q", raw)
	}
}

func TestMedia_CheckConstraint(t *testing.T) {
	s, _ := newTestStorage(t)
	_, err := s.CreateMediaContent(context.Background(), models.CreateMediaContentParams{
		Title: "x", Type: "podcast",
	})
	if !db.IsCheckViolation(err) {
		t.Fatalf("expected check violation, got %v", err)
	}
}

func TestSetting_DuplicateKey(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	params := models.CreateSiteSettingParams{Key: "hero_title", Value: "Build better"}
	if _, err := s.CreateSiteSetting(ctx, params); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := s.CreateSiteSetting(ctx, params)
	if !db.IsDuplicateKey(err) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestNullString(t *testing.T) {
	if ns := repo.NullString(nil); ns.Valid {
		t.Fatal("nil should map to NULL")
	}
	v := "x"
	if ns := repo.NullString(&v); !ns.Valid || ns.String != "x" {
		t.Fatalf("got %+v", ns)
	}
}
