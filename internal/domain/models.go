// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the BoombaFM music library.
package domain

import (
	"time"
)

// Placeholder values used when tag extraction yields nothing for a field.
// The title placeholder is always the filename stem, so it has no constant here.
const (
	UnknownArtist = "Unknown Artist"
	UnknownAlbum  = "Unknown Album"
	UnknownGenre  = "Unknown Genre"
)

// NoIndex marks the absence of a current position in the view.
const NoIndex = -1

// RecentPlaysLimit bounds the recent-plays ring persisted in Settings.
const RecentPlaysLimit = 50

// Song represents a single audio file in the catalog.
// A song's identity is its absolute file path; that key stays stable across
// rescans so play counts and playlist references can be reconciled.
type Song struct {
	// Path is the absolute path to the audio file on the filesystem
	Path string

	// Title is the song title (from metadata, or the filename stem)
	Title string

	// Artist is the performing artist name
	Artist string

	// Album is the album name
	Album string

	// Genre is the music genre
	Genre string

	// Duration is the total track length. Zero until backfilled by the
	// playback engine the first time the song is loaded.
	Duration time.Duration

	// PlayCount is incremented every time the song is played.
	// It is carried forward across rescans for paths that still exist.
	PlayCount int

	// Artwork is the embedded album art as raw bytes (nil if none)
	Artwork []byte
}

// DisplayTitle returns "Title - Artist" for now-playing style labels.
func (s *Song) DisplayTitle() string {
	return s.Title + " - " + s.Artist
}

// SortKey selects the ordering applied to the view after filtering.
type SortKey int

const (
	// SortDefault keeps catalog insertion order
	SortDefault SortKey = iota

	// SortTitle orders by title
	SortTitle

	// SortArtist orders by artist
	SortArtist

	// SortAlbum orders by album
	SortAlbum

	// SortPlayCount orders by play count, most played first
	SortPlayCount
)

// String returns a human-readable representation of the sort key.
func (k SortKey) String() string {
	switch k {
	case SortDefault:
		return "default"
	case SortTitle:
		return "title"
	case SortArtist:
		return "artist"
	case SortAlbum:
		return "album"
	case SortPlayCount:
		return "plays"
	default:
		return "unknown"
	}
}

// RepeatMode controls what happens at the edges of the view and on track end.
type RepeatMode int

const (
	// RepeatOff stops at the end of the view
	RepeatOff RepeatMode = iota

	// RepeatAll wraps around the view in both directions
	RepeatAll

	// RepeatOne replays the current track when it ends
	RepeatOne
)

// Next cycles off -> all -> one -> off.
func (m RepeatMode) Next() RepeatMode {
	switch m {
	case RepeatOff:
		return RepeatAll
	case RepeatAll:
		return RepeatOne
	default:
		return RepeatOff
	}
}

// String returns a human-readable representation of the repeat mode.
func (m RepeatMode) String() string {
	switch m {
	case RepeatOff:
		return "off"
	case RepeatAll:
		return "all"
	case RepeatOne:
		return "one"
	default:
		return "unknown"
	}
}

// PlayerStatus represents the playback controller state.
type PlayerStatus int

const (
	// StatusIdle indicates no current song
	StatusIdle PlayerStatus = iota

	// StatusPlaying indicates playback is active
	StatusPlaying

	// StatusPaused indicates playback is paused
	StatusPaused
)

// String returns a human-readable representation of the player status.
func (s PlayerStatus) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	default:
		return "unknown"
	}
}

// PlaylistEntry is a reference to a song held by a playlist.
//
// Only the path is authoritative: when the path resolves against the live
// catalog, catalog metadata wins. The duplicated text fields exist purely so
// that an entry whose file is currently missing (unplugged drive, moved
// folder) can still be displayed and survives a save/load round-trip.
type PlaylistEntry struct {
	Path   string
	Title  string
	Artist string
	Album  string
	Genre  string

	// Missing is true when the path did not resolve against the catalog
	// at load time. Inert entries are kept, not dropped.
	Missing bool
}

// Playlist is a named, ordered collection of song references.
type Playlist struct {
	// Name is unique within the playlist store (mutable via rename)
	Name string

	// Entries is the ordered list of song references.
	// A path appears at most once per playlist.
	Entries []PlaylistEntry
}

// Settings is the persisted scalar/collection state outside the playlists.
type Settings struct {
	// Favorites is the insertion-ordered set of favorite song paths
	Favorites []string

	// RecentPlays is the bounded ring of recently played paths,
	// most recent first, at most RecentPlaysLimit distinct entries
	RecentPlays []string

	// PlayCounts maps song paths to lifetime play counts
	PlayCounts map[string]int

	// Volume is the last used volume level (0..100)
	Volume int
}

// DefaultSettings returns the state used when nothing has been persisted yet.
func DefaultSettings() Settings {
	return Settings{
		Favorites:   []string{},
		RecentPlays: []string{},
		PlayCounts:  map[string]int{},
		Volume:      70,
	}
}
