package store

import (
	"github.com/samber/lo"

	"github.com/boombafm/boombafm/internal/domain"
)

// RecentPlays is the bounded ring of recently played paths, most recent
// first. Playing a path already in the ring moves it back to the front
// rather than duplicating it.
type RecentPlays struct {
	limit int
	paths []string
}

// NewRecentPlays creates an empty ring with the standard limit.
func NewRecentPlays() *RecentPlays {
	return &RecentPlays{limit: domain.RecentPlaysLimit, paths: []string{}}
}

// Push records a play of path.
func (r *RecentPlays) Push(path string) {
	r.paths = append([]string{path}, lo.Without(r.paths, path)...)
	if len(r.paths) > r.limit {
		r.paths = r.paths[:r.limit]
	}
}

// Paths returns the ring contents, most recent first.
func (r *RecentPlays) Paths() []string {
	out := make([]string, len(r.paths))
	copy(out, r.paths)
	return out
}

// Restore replaces the ring from persisted state, deduplicating and
// enforcing the limit.
func (r *RecentPlays) Restore(paths []string) {
	r.paths = lo.Uniq(paths)
	if len(r.paths) > r.limit {
		r.paths = r.paths[:r.limit]
	}
}
