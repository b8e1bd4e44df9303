package store

import (
	"github.com/samber/lo"

	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/ports"
)

// Favorites is a set of song paths. Insertion order is kept for display;
// membership is the operative semantic.
type Favorites struct {
	bus   ports.EventBus
	paths []string
}

// NewFavorites creates an empty favorites set.
func NewFavorites(bus ports.EventBus) *Favorites {
	return &Favorites{bus: bus, paths: []string{}}
}

// Toggle adds the path when absent and removes it when present.
// Returns the resulting membership. Toggling twice restores the original set.
func (f *Favorites) Toggle(path string) bool {
	if f.Contains(path) {
		f.paths = lo.Without(f.paths, path)
		f.publish()
		return false
	}
	f.paths = append(f.paths, path)
	f.publish()
	return true
}

// Contains reports favorite membership.
func (f *Favorites) Contains(path string) bool {
	return lo.Contains(f.paths, path)
}

// Clear empties the set.
func (f *Favorites) Clear() {
	f.paths = []string{}
	f.publish()
}

// Paths returns the favorites in insertion order.
func (f *Favorites) Paths() []string {
	out := make([]string, len(f.paths))
	copy(out, f.paths)
	return out
}

// Restore replaces the set from persisted state, dropping duplicates.
func (f *Favorites) Restore(paths []string) {
	f.paths = lo.Uniq(paths)
	f.publish()
}

func (f *Favorites) publish() {
	if f.bus != nil {
		f.bus.Publish(domain.NewFavoritesUpdatedEvent(f.Paths()))
	}
}
