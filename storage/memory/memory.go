// Package memory is a volatile, map-backed implementation of storage.Storage.
// It is the default store for local development and for the HTTP tests.
package memory

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/HasanApplore/IndoSup-sub000/models"
	"github.com/HasanApplore/IndoSup-sub000/storage"
)

// Store keeps every entity in its own map. Each entity has an independent
// identity sequence starting at 1. Records handed out are copies; mutating
// them never changes stored state.
type Store struct {
	mu sync.RWMutex

	users        table[models.User]
	adminUsers   table[models.AdminUser]
	contacts     table[models.ContactSubmission]
	jobs         table[models.Job]
	applications table[models.JobApplication]
	catalogues   table[models.Catalogue]
	products     table[models.Product]
	media        table[models.MediaContent]
	settings     table[models.SiteSetting]

	// now stamps new rows; touch derives updatedAt from it.
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces the clock used for createdAt and updatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		users:        newTable[models.User](),
		adminUsers:   newTable[models.AdminUser](),
		contacts:     newTable[models.ContactSubmission](),
		jobs:         newTable[models.Job](),
		applications: newTable[models.JobApplication](),
		catalogues:   newTable[models.Catalogue](),
		products:     newTable[models.Product](),
		media:        newTable[models.MediaContent](),
		settings:     newTable[models.SiteSetting](),
		now:          models.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// touch returns the updatedAt for a row last written at prev. It is always
// later than prev, even when the clock has not moved.
func (s *Store) touch(prev time.Time) time.Time {
	return models.After(s.now(), prev)
}

var _ storage.Storage = (*Store)(nil)

// ─────────────────────────────────────────────────────────────────────────────
// table: one map plus its identity sequence
// ─────────────────────────────────────────────────────────────────────────────

type table[T any] struct {
	seq  int64
	rows map[int64]*T
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[int64]*T)}
}

func (t *table[T]) nextID() int64 {
	t.seq++
	return t.seq
}

// find returns the first row matching pred.
func (t *table[T]) find(pred func(*T) bool) (*T, bool) {
	for _, r := range t.rows {
		if pred(r) {
			return r, true
		}
	}
	return nil, false
}

// collect copies every row accepted by keep (all rows when keep is nil).
func collect[T any](t *table[T], keep func(*T) bool, clone func(*T) *T) []*T {
	out := make([]*T, 0, len(t.rows))
	for _, r := range t.rows {
		if keep == nil || keep(r) {
			out = append(out, clone(r))
		}
	}
	return out
}

func (t *table[T]) remove(id int64) bool {
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// sortNewest orders rows by creation time, newest first, breaking ties on
// the higher id.
func sortNewest[T any](rows []*T, key func(*T) (time.Time, int64)) {
	slices.SortFunc(rows, func(a, b *T) int {
		ta, ia := key(a)
		tb, ib := key(b)
		if c := tb.Compare(ta); c != 0 {
			return c
		}
		return cmp.Compare(ib, ia)
	})
}

func sortByID[T any](rows []*T, id func(*T) int64) {
	slices.SortFunc(rows, func(a, b *T) int { return cmp.Compare(id(a), id(b)) })
}

// ─────────────────────────────────────────────────────────────────────────────
// Copy helpers
// ─────────────────────────────────────────────────────────────────────────────

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
