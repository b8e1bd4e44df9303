// Package persist implements the StateRepository port as a single JSON file.
//
// The format is versioned, human-readable, and tolerant: unknown keys are
// ignored on load, missing keys fall back to explicit defaults, and a file
// that cannot be parsed degrades to the empty default state instead of
// blocking startup. Saves go through a temp file and an atomic rename so a
// crash mid-write can never leave a half-written state file.
package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/ports"
)

// schemaVersion is bumped on incompatible layout changes.
const schemaVersion = 1

// stateFile is the on-disk layout.
type stateFile struct {
	Version   int            `json:"version"`
	Playlists []playlistFile `json:"playlists"`
	Settings  settingsFile   `json:"settings"`
}

type playlistFile struct {
	Name  string     `json:"name"`
	Songs []songFile `json:"songs"`
}

// songFile duplicates display metadata next to the path so playlists whose
// files are temporarily missing still render after a reload. The catalog
// wins whenever the path resolves.
type songFile struct {
	File   string `json:"file"`
	Title  string `json:"title,omitempty"`
	Artist string `json:"artist,omitempty"`
	Album  string `json:"album,omitempty"`
	Genre  string `json:"genre,omitempty"`
}

type settingsFile struct {
	Favorites   []string       `json:"favorites"`
	RecentPlays []string       `json:"recent_plays"`
	PlayCounts  map[string]int `json:"play_counts,omitempty"`
	Volume      *int           `json:"volume,omitempty"`
}

// FileStore reads and writes the library state file.
//
// Thread-safe: periodic saves and the shutdown save may interleave.
type FileStore struct {
	logger *slog.Logger
	path   string
	mu     sync.Mutex
}

// NewFileStore creates a store for the given file path.
func NewFileStore(logger *slog.Logger, path string) *FileStore {
	return &FileStore{logger: logger, path: path}
}

// Load reads the state file.
//
// A missing file is the normal first run: empty defaults, nil error.
// A malformed file is logged and degrades to empty defaults with a wrapped
// domain.ErrCorruptState, so the caller can hold back saves until the user
// mutates something.
func (s *FileStore) Load() (ports.LibraryState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultState(), nil
	}
	if err != nil {
		s.logger.Warn("cannot read state file, starting empty",
			slog.String("path", s.path), slog.Any("error", err))
		return defaultState(), domain.NewStateError("load", s.path, err)
	}

	var file stateFile
	if err := json.Unmarshal(raw, &file); err != nil {
		s.logger.Warn("state file is corrupt, starting empty",
			slog.String("path", s.path), slog.Any("error", err))
		return defaultState(), domain.NewStateError("load", s.path,
			fmt.Errorf("%w: %w", domain.ErrCorruptState, err))
	}

	return fromFile(file), nil
}

// Save writes the state atomically: temp file in the target directory,
// fsync, rename.
func (s *FileStore) Save(state ports.LibraryState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(toFile(state), "", "  ")
	if err != nil {
		return domain.NewStateError("save", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return domain.NewStateError("save", s.path, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return domain.NewStateError("save", s.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.NewStateError("save", s.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return domain.NewStateError("save", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return domain.NewStateError("save", s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return domain.NewStateError("save", s.path, err)
	}

	s.logger.Debug("state saved", slog.String("path", s.path), slog.Int("bytes", len(data)))
	return nil
}

func defaultState() ports.LibraryState {
	return ports.LibraryState{
		Playlists: []domain.Playlist{},
		Settings:  domain.DefaultSettings(),
	}
}

func fromFile(file stateFile) ports.LibraryState {
	state := defaultState()

	for _, pl := range file.Playlists {
		list := domain.Playlist{Name: pl.Name, Entries: make([]domain.PlaylistEntry, 0, len(pl.Songs))}
		for _, sf := range pl.Songs {
			if sf.File == "" {
				continue
			}
			list.Entries = append(list.Entries, domain.PlaylistEntry{
				Path:   sf.File,
				Title:  sf.Title,
				Artist: sf.Artist,
				Album:  sf.Album,
				Genre:  sf.Genre,
			})
		}
		state.Playlists = append(state.Playlists, list)
	}

	if file.Settings.Favorites != nil {
		state.Settings.Favorites = file.Settings.Favorites
	}
	if file.Settings.RecentPlays != nil {
		state.Settings.RecentPlays = file.Settings.RecentPlays
		if len(state.Settings.RecentPlays) > domain.RecentPlaysLimit {
			state.Settings.RecentPlays = state.Settings.RecentPlays[:domain.RecentPlaysLimit]
		}
	}
	if file.Settings.PlayCounts != nil {
		state.Settings.PlayCounts = file.Settings.PlayCounts
	}
	if file.Settings.Volume != nil && *file.Settings.Volume >= 0 && *file.Settings.Volume <= 100 {
		state.Settings.Volume = *file.Settings.Volume
	}

	return state
}

func toFile(state ports.LibraryState) stateFile {
	file := stateFile{
		Version:   schemaVersion,
		Playlists: make([]playlistFile, 0, len(state.Playlists)),
		Settings: settingsFile{
			Favorites:   state.Settings.Favorites,
			RecentPlays: state.Settings.RecentPlays,
			PlayCounts:  state.Settings.PlayCounts,
			Volume:      &state.Settings.Volume,
		},
	}
	if file.Settings.Favorites == nil {
		file.Settings.Favorites = []string{}
	}
	if file.Settings.RecentPlays == nil {
		file.Settings.RecentPlays = []string{}
	}

	for _, list := range state.Playlists {
		pl := playlistFile{Name: list.Name, Songs: make([]songFile, 0, len(list.Entries))}
		for _, entry := range list.Entries {
			pl.Songs = append(pl.Songs, songFile{
				File:   entry.Path,
				Title:  entry.Title,
				Artist: entry.Artist,
				Album:  entry.Album,
				Genre:  entry.Genre,
			})
		}
		file.Playlists = append(file.Playlists, pl)
	}
	return file
}

// Verify interface implementation
var _ ports.StateRepository = (*FileStore)(nil)
