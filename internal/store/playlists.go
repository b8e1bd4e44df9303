// Package store holds the user's collections: named playlists, favorites,
// the play queue, and the recent-plays ring. All of them reference songs by
// path only and resolve through the catalog at use time, so catalog metadata
// never diverges from a stale copy.
//
// Stores are single-threaded by contract; all calls happen on the
// application control loop.
package store

import (
	"sort"

	"github.com/samber/lo"

	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/ports"
)

// PlaylistStore owns the named, ordered song collections.
type PlaylistStore struct {
	bus    ports.EventBus
	lists  map[string]*domain.Playlist
	active string // name of the selected playlist, "" when none
}

// NewPlaylistStore creates an empty playlist store.
func NewPlaylistStore(bus ports.EventBus) *PlaylistStore {
	return &PlaylistStore{
		bus:   bus,
		lists: make(map[string]*domain.Playlist),
	}
}

// Create adds an empty playlist.
// Returns ErrDuplicateName when the name is already taken.
func (s *PlaylistStore) Create(name string) error {
	if _, exists := s.lists[name]; exists {
		return domain.ErrDuplicateName
	}
	s.lists[name] = &domain.Playlist{Name: name, Entries: []domain.PlaylistEntry{}}
	s.publish()
	return nil
}

// Rename moves a playlist to a new name, preserving its contents and order.
// Returns ErrPlaylistNotFound when old does not exist and ErrDuplicateName
// when new is already taken.
func (s *PlaylistStore) Rename(oldName, newName string) error {
	list, ok := s.lists[oldName]
	if !ok {
		return domain.ErrPlaylistNotFound
	}
	if oldName == newName {
		return nil
	}
	if _, exists := s.lists[newName]; exists {
		return domain.ErrDuplicateName
	}

	delete(s.lists, oldName)
	list.Name = newName
	s.lists[newName] = list
	if s.active == oldName {
		s.active = newName
	}
	s.publish()
	return nil
}

// Delete removes a playlist. When it was the active playlist, the active
// selection clears.
func (s *PlaylistStore) Delete(name string) error {
	if _, ok := s.lists[name]; !ok {
		return domain.ErrPlaylistNotFound
	}
	delete(s.lists, name)
	if s.active == name {
		s.active = ""
	}
	s.publish()
	return nil
}

// AddSong appends an entry to a playlist.
// Re-adding a path already present is reported as ErrAlreadyPresent and
// leaves the playlist unchanged.
func (s *PlaylistStore) AddSong(name string, entry domain.PlaylistEntry) error {
	list, ok := s.lists[name]
	if !ok {
		return domain.ErrPlaylistNotFound
	}
	present := lo.ContainsBy(list.Entries, func(e domain.PlaylistEntry) bool {
		return e.Path == entry.Path
	})
	if present {
		return domain.ErrAlreadyPresent
	}
	list.Entries = append(list.Entries, entry)
	s.publish()
	return nil
}

// RemoveAt deletes the entry at index from a playlist.
func (s *PlaylistStore) RemoveAt(name string, index int) error {
	list, ok := s.lists[name]
	if !ok {
		return domain.ErrPlaylistNotFound
	}
	if index < 0 || index >= len(list.Entries) {
		return domain.ErrIndexOutOfRange
	}
	list.Entries = append(list.Entries[:index], list.Entries[index+1:]...)
	s.publish()
	return nil
}

// Get returns a playlist by name.
func (s *PlaylistStore) Get(name string) (*domain.Playlist, bool) {
	list, ok := s.lists[name]
	return list, ok
}

// Names returns all playlist names, sorted for display.
func (s *PlaylistStore) Names() []string {
	names := lo.Keys(s.lists)
	sort.Strings(names)
	return names
}

// SetActive selects a playlist. Selecting an unknown name clears the selection.
func (s *PlaylistStore) SetActive(name string) {
	if _, ok := s.lists[name]; ok {
		s.active = name
	} else {
		s.active = ""
	}
}

// Active returns the selected playlist name, "" when none.
func (s *PlaylistStore) Active() string { return s.active }

// Snapshot returns the playlists in name order for persistence.
func (s *PlaylistStore) Snapshot() []domain.Playlist {
	out := make([]domain.Playlist, 0, len(s.lists))
	for _, name := range s.Names() {
		list := s.lists[name]
		copied := domain.Playlist{Name: list.Name, Entries: make([]domain.PlaylistEntry, len(list.Entries))}
		copy(copied.Entries, list.Entries)
		out = append(out, copied)
	}
	return out
}

// Restore replaces the store contents from persisted state.
// Duplicate names keep the first occurrence.
func (s *PlaylistStore) Restore(lists []domain.Playlist) {
	s.lists = make(map[string]*domain.Playlist, len(lists))
	s.active = ""
	for i := range lists {
		list := lists[i]
		if _, dup := s.lists[list.Name]; dup {
			continue
		}
		s.lists[list.Name] = &list
	}
	s.publish()
}

func (s *PlaylistStore) publish() {
	if s.bus != nil {
		s.bus.Publish(domain.NewPlaylistsUpdatedEvent(s.Names()))
	}
}
