package db

import (
	"context"
	"log/slog"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Hook
// ─────────────────────────────────────────────────────────────────────────────

// Hook observes every statement. query is the rebound SQL actually sent to
// the driver and err the mapped error (always nil for QueryRow, whose error
// is only known at Scan).
//
// Hooks must be safe for concurrent use. A panicking hook is logged and
// skipped; it never fails the statement.
type Hook interface {
	BeforeQuery(ctx context.Context, query string, args []any)
	AfterQuery(ctx context.Context, query string, args []any, elapsed time.Duration, err error)
}

type hookList []Hook

func newHookList(hooks []Hook) hookList {
	var l hookList
	for _, h := range hooks {
		if h != nil {
			l = append(l, h)
		}
	}
	return l
}

func (l hookList) before(ctx context.Context, query string, args []any) {
	for _, h := range l {
		guard("BeforeQuery", func() { h.BeforeQuery(ctx, query, args) })
	}
}

func (l hookList) after(ctx context.Context, query string, args []any, elapsed time.Duration, err error) {
	for _, h := range l {
		guard("AfterQuery", func() { h.AfterQuery(ctx, query, args, elapsed, err) })
	}
}

func guard(phase string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("indosup/db: hook panicked", "phase", phase, "panic", r)
		}
	}()
	fn()
}

// ─────────────────────────────────────────────────────────────────────────────
// Log hook
// ─────────────────────────────────────────────────────────────────────────────

// LogHookConfig configures NewLogHook.
type LogHookConfig struct {
	// Logger defaults to slog.Default().
	Logger *slog.Logger
	// SlowQueryThreshold promotes statements slower than this to WARN.
	// Zero disables it.
	SlowQueryThreshold time.Duration
	// LogArgs adds bound parameters. Applicant and contact rows carry
	// personal data, so leave it off outside development.
	LogArgs bool
}

// NewLogHook logs every statement through slog: failures at ERROR, slow
// statements at WARN and the rest at DEBUG.
func NewLogHook(cfg LogHookConfig) Hook {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return logHook(cfg)
}

type logHook LogHookConfig

func (logHook) BeforeQuery(context.Context, string, []any) {}

func (h logHook) AfterQuery(ctx context.Context, query string, args []any, elapsed time.Duration, err error) {
	level, msg := slog.LevelDebug, "indosup/db: query"
	switch {
	case err != nil:
		level, msg = slog.LevelError, "indosup/db: query failed"
	case h.SlowQueryThreshold > 0 && elapsed > h.SlowQueryThreshold:
		level, msg = slog.LevelWarn, "indosup/db: slow query"
	}
	if !h.Logger.Enabled(ctx, level) {
		return
	}

	attrs := []slog.Attr{
		slog.String("op", statementVerb(query)),
		slog.String("query", compact(query, 400)),
		slog.Duration("elapsed", elapsed),
	}
	if h.LogArgs && len(args) > 0 {
		attrs = append(attrs, slog.Any("args", args))
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	h.Logger.LogAttrs(ctx, level, msg, attrs...)
}

// statementVerb is the first keyword of query, upper-cased.
func statementVerb(query string) string {
	verb, _, _ := strings.Cut(strings.TrimSpace(query), " ")
	return strings.ToUpper(strings.TrimSpace(verb))
}

// compact folds the whitespace of multi-line SQL and truncates it to max
// bytes.
func compact(query string, max int) string {
	q := strings.Join(strings.Fields(query), " ")
	if len(q) > max {
		return q[:max] + "…"
	}
	return q
}
