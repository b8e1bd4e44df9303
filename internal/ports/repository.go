// Package ports defines the persistence interface for the library state.
package ports

import (
	"github.com/boombafm/boombafm/internal/domain"
)

// LibraryState is everything the persistence layer round-trips:
// the playlist store plus the settings blob.
type LibraryState struct {
	Playlists []domain.Playlist
	Settings  domain.Settings
}

// StateRepository loads and saves the durable library state.
//
// Load must never block startup: a missing file yields empty defaults and a
// nil error, a malformed file yields empty defaults after logging. Save must
// be atomic (write-then-rename or equivalent) so a crash mid-write cannot
// leave a half-written file behind.
//
// Thread-safety: implementations must tolerate interleaved periodic and
// explicit saves.
type StateRepository interface {
	// Load reads the persisted state. The returned state is always usable:
	// on a missing file it is the empty default with a nil error, on a
	// malformed file it is the empty default with a wrapped
	// domain.ErrCorruptState. Callers use the error only to decide whether
	// subsequent saves should be held back until the user mutates state.
	Load() (LibraryState, error)

	// Save persists the state atomically.
	Save(state LibraryState) error
}
