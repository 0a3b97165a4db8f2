package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HasanApplore/IndoSup-sub000/migrations"
)

func newMigrator(t *testing.T) *migrations.Migrator {
	t.Helper()
	m, err := migrations.New("sqlite3", filepath.Join(t.TempDir(), "cli.db"), nil)
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func TestRun_UpVersionDown(t *testing.T) {
	m := newMigrator(t)
	var out bytes.Buffer

	if err := run(m, []string{"up"}, nil, &out); err != nil {
		t.Fatalf("up: %v", err)
	}
	if err := run(m, []string{"version"}, nil, &out); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := out.String(); got != "version 1 (dirty=false)\n" {
		t.Fatalf("version output = %q", got)
	}

	if err := run(m, []string{"down"}, nil, &out); err != nil {
		t.Fatalf("down: %v", err)
	}
	out.Reset()
	_ = run(m, []string{"version"}, nil, &out)
	if got := out.String(); got != "version 0 (dirty=false)\n" {
		t.Fatalf("version after down = %q", got)
	}
}

func TestRun_DropNeedsConfirmation(t *testing.T) {
	m := newMigrator(t)
	var out bytes.Buffer
	if err := run(m, []string{"up"}, nil, &out); err != nil {
		t.Fatal(err)
	}

	if err := run(m, []string{"drop"}, strings.NewReader("no\n"), &out); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if !strings.Contains(out.String(), "aborted") {
		t.Fatalf("drop did not abort: %q", out.String())
	}
}

func TestRun_BadArguments(t *testing.T) {
	m := newMigrator(t)
	for _, args := range [][]string{
		{"sideways"},
		{"force"},
		{"force", "x"},
		{"down", "-1"},
	} {
		if err := run(m, args, nil, &bytes.Buffer{}); !errors.Is(err, errUsage) {
			t.Errorf("run(%v) = %v, want usage error", args, err)
		}
	}
}
