// Command migrate manages the relational schema outside the server process.
// It reads the same environment as the server (STORAGE_DRIVER, DB_*).
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/HasanApplore/IndoSup-sub000/config"
	"github.com/HasanApplore/IndoSup-sub000/db"
	"github.com/HasanApplore/IndoSup-sub000/migrations"
)

var errUsage = errors.New("usage")

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fatalf("%v", err)
	}
	if !cfg.Relational() {
		fatalf("STORAGE_DRIVER must be postgres, mysql or sqlite3, got %q", cfg.Storage)
	}
	dsn, err := db.BuildDSN(cfg.Storage, cfg.DriverOptions())
	if err != nil {
		fatalf("%v", err)
	}

	m, err := migrations.New(cfg.Storage, dsn, slog.Default())
	if err != nil {
		fatalf("%v", err)
	}
	err = run(m, flag.Args(), os.Stdin, os.Stdout)
	closeErr := m.Close()

	switch {
	case errors.Is(err, errUsage):
		usage()
		os.Exit(2)
	case err != nil:
		fatalf("%s: %v", flag.Arg(0), err)
	case closeErr != nil:
		fatalf("close: %v", closeErr)
	}
}

func run(m *migrations.Migrator, args []string, in io.Reader, out io.Writer) error {
	switch args[0] {
	case "up":
		if err := m.Up(); err != nil {
			return err
		}
		slog.Info("schema is up to date")

	case "down":
		steps, err := intArg(args, 1)
		if err != nil {
			return err
		}
		if err := m.Down(steps); err != nil {
			return err
		}
		slog.Info("rolled back", "steps", steps)

	case "version":
		v, dirty, err := m.Version()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "version %d (dirty=%t)\n", v, dirty)

	case "force":
		if len(args) < 2 {
			return fmt.Errorf("%w: force needs a version", errUsage)
		}
		v, err := intArg(args, 0)
		if err != nil {
			return err
		}
		if err := m.Force(v); err != nil {
			return err
		}
		slog.Info("version forced", "version", v)

	case "drop":
		fmt.Fprint(out, "This drops every IndoSup table. Type 'yes' to continue: ")
		answer, _ := bufio.NewReader(in).ReadString('\n')
		if strings.TrimSpace(answer) != "yes" {
			fmt.Fprintln(out, "aborted")
			return nil
		}
		if err := m.Drop(); err != nil {
			return err
		}
		slog.Info("all tables dropped")

	default:
		return errUsage
	}
	return nil
}

// intArg parses args[1], returning def when it is absent.
func intArg(args []string, def int) (int, error) {
	if len(args) < 2 {
		return def, nil
	}
	n, err := strconv.Atoi(args[1])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q is not a non-negative number", errUsage, args[1])
	}
	return n, nil
}

func usage() {
	fmt.Fprint(os.Stderr, `usage: migrate <command> [arg]

commands:
  up          apply every pending migration
  down [N]    roll back N migrations (default 1)
  version     print the applied version and dirty flag
  force V     record version V without running it, clearing a dirty state
  drop        drop every table (development only)

environment:
  STORAGE_DRIVER   postgres, mysql or sqlite3
  DB_HOST DB_PORT DB_USER DB_PASSWORD DB_NAME DB_SSLMODE
                   DB_NAME is the database file for sqlite3
`)
}

func fatalf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...))
	os.Exit(1)
}
