package repo

import "github.com/hamed0406/sitewatch/internal/domain"

// Registry holds the latest observed state per target URL.
// Implementations serialize access themselves; callers never see the
// backing map.
type Registry interface {
	// Upsert replaces the entry for url as a whole.
	Upsert(url string, st domain.ObservedState)
	// Snapshot returns a point-in-time copy of all entries.
	Snapshot() map[string]domain.ObservedState
	// Keys returns the URLs registered at call time.
	Keys() []string
	Len() int
}
