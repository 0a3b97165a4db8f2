// Package models holds the row types persisted by the content store and the
// parameter types used to create and update them.
//
// Row types map 1-to-1 with table columns; nullable columns are pointers.
// Create params carry the request contract (json + binding tags). Update
// params use pointers throughout so callers only set what needs changing; a
// nil field is left untouched by every storage implementation.
package models

import (
	"sync/atomic"
	"time"
)

// BoolOr dereferences b, falling back to def when b is nil.
func BoolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// StringOr dereferences s, falling back to def when s is nil or empty.
func StringOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

// lastStamp is the most recent Now result, in Unix microseconds.
var lastStamp atomic.Int64

// Now returns the timestamp stores stamp on created/updated rows. UTC with
// microsecond precision survives a round trip through every supported
// database unchanged. Successive calls within the process never return the
// same instant twice, so an update is always stamped later than the write
// before it.
func Now() time.Time {
	for {
		last := lastStamp.Load()
		next := max(time.Now().UnixMicro(), last+1)
		if lastStamp.CompareAndSwap(last, next) {
			return time.UnixMicro(next).UTC()
		}
	}
}

// After returns now when it is later than prev, and otherwise the first
// microsecond after prev.
func After(now, prev time.Time) time.Time {
	if now.After(prev) {
		return now
	}
	return prev.Add(time.Microsecond)
}
