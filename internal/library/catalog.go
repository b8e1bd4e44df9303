package library

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/ports"
)

// Catalog is the authoritative set of songs, keyed by path, plus the derived
// view (filter then stable sort) that playback and display run against.
//
// The catalog is single-threaded by contract: all calls happen on the
// application control loop. It is the single source of truth for song
// attributes; playlists, favorites and the queue hold paths only and resolve
// through here at use time.
type Catalog struct {
	logger *slog.Logger
	bus    ports.EventBus

	songs map[string]*domain.Song
	order []*domain.Song // insertion order, backs SortDefault

	query string
	key   domain.SortKey
	view  []*domain.Song

	// generation increments on every view rebuild so the playback
	// controller can detect that its indices went stale.
	generation uint64
}

// NewCatalog creates an empty catalog.
func NewCatalog(logger *slog.Logger, bus ports.EventBus) *Catalog {
	return &Catalog{
		logger: logger,
		bus:    bus,
		songs:  make(map[string]*domain.Song),
	}
}

// Rescan replaces the song set with the result of a fresh scan.
//
// Play counts and backfilled durations are carried forward for paths that
// still exist; counts for vanished paths are dropped with them. The current
// filter and sort survive the rescan, the view is rebuilt.
func (c *Catalog) Rescan(scanned []domain.Song) {
	previous := c.songs
	c.songs = make(map[string]*domain.Song, len(scanned))
	c.order = make([]*domain.Song, 0, len(scanned))

	for i := range scanned {
		song := scanned[i]
		if _, dup := c.songs[song.Path]; dup {
			continue // one Song per path, first wins
		}
		if old, ok := previous[song.Path]; ok {
			song.PlayCount = old.PlayCount
			if song.Duration == 0 {
				song.Duration = old.Duration
			}
		}
		c.songs[song.Path] = &song
		c.order = append(c.order, &song)
	}

	c.logger.Info("catalog rebuilt",
		slog.Int("songs", len(c.order)),
		slog.Int("dropped", len(previous)-len(c.order)))
	c.rebuildView()
}

// SetFilter applies a case-insensitive substring filter across title, artist,
// album and genre. An empty query matches everything.
func (c *Catalog) SetFilter(query string) {
	if c.query == query {
		return
	}
	c.query = query
	c.rebuildView()
}

// SetSort applies a sort key to the view.
func (c *Catalog) SetSort(key domain.SortKey) {
	if c.key == key {
		return
	}
	c.key = key
	c.rebuildView()
}

// Query returns the active filter query.
func (c *Catalog) Query() string { return c.query }

// SortKey returns the active sort key.
func (c *Catalog) SortKey() domain.SortKey { return c.key }

// View returns the current filtered, sorted song order.
// The returned slice is shared; callers must not mutate it.
func (c *Catalog) View() []*domain.Song { return c.view }

// ViewLen returns the number of songs in the view.
func (c *Catalog) ViewLen() int { return len(c.view) }

// Len returns the total number of songs in the catalog.
func (c *Catalog) Len() int { return len(c.order) }

// Generation returns the view generation counter.
func (c *Catalog) Generation() uint64 { return c.generation }

// Song resolves a path against the catalog.
func (c *Catalog) Song(path string) (*domain.Song, bool) {
	song, ok := c.songs[path]
	return song, ok
}

// IndexOf returns the view index of a path, or domain.NoIndex when the path
// is filtered out or unknown.
func (c *Catalog) IndexOf(path string) int {
	for i, song := range c.view {
		if song.Path == path {
			return i
		}
	}
	return domain.NoIndex
}

// RecordPlay increments the play count for a path.
// Unknown paths are a silent no-op.
func (c *Catalog) RecordPlay(path string) {
	if song, ok := c.songs[path]; ok {
		song.PlayCount++
	}
}

// SetDuration backfills a song's duration once the engine has loaded it.
// Unknown paths are a silent no-op.
func (c *Catalog) SetDuration(path string, d time.Duration) {
	if song, ok := c.songs[path]; ok && d > 0 {
		song.Duration = d
	}
}

// PlayCounts snapshots the nonzero play counters for persistence.
func (c *Catalog) PlayCounts() map[string]int {
	counts := make(map[string]int)
	for path, song := range c.songs {
		if song.PlayCount > 0 {
			counts[path] = song.PlayCount
		}
	}
	return counts
}

// ApplyPlayCounts restores persisted counters for paths present in the
// catalog. Counters for unknown paths are ignored.
func (c *Catalog) ApplyPlayCounts(counts map[string]int) {
	for path, n := range counts {
		if song, ok := c.songs[path]; ok && n > song.PlayCount {
			song.PlayCount = n
		}
	}
}

// rebuildView recomputes the derived view: filter, then stable sort.
// Every rebuild bumps the generation and publishes a ViewUpdated event.
func (c *Catalog) rebuildView() {
	needle := strings.ToLower(c.query)

	view := make([]*domain.Song, 0, len(c.order))
	for _, song := range c.order {
		if needle == "" || matches(song, needle) {
			view = append(view, song)
		}
	}

	// Stable sort keeps prior relative order for ties; SortDefault keeps
	// insertion order untouched.
	switch c.key {
	case domain.SortTitle:
		sort.SliceStable(view, func(i, j int) bool {
			return strings.ToLower(view[i].Title) < strings.ToLower(view[j].Title)
		})
	case domain.SortArtist:
		sort.SliceStable(view, func(i, j int) bool {
			return strings.ToLower(view[i].Artist) < strings.ToLower(view[j].Artist)
		})
	case domain.SortAlbum:
		sort.SliceStable(view, func(i, j int) bool {
			return strings.ToLower(view[i].Album) < strings.ToLower(view[j].Album)
		})
	case domain.SortPlayCount:
		sort.SliceStable(view, func(i, j int) bool {
			return view[i].PlayCount > view[j].PlayCount
		})
	}

	c.view = view
	c.generation++

	if c.bus != nil {
		c.bus.Publish(domain.NewViewUpdatedEvent(len(view), c.query, c.key, c.generation))
	}
}

// matches reports whether the lowercase needle occurs in any text field.
func matches(song *domain.Song, needle string) bool {
	return strings.Contains(strings.ToLower(song.Title), needle) ||
		strings.Contains(strings.ToLower(song.Artist), needle) ||
		strings.Contains(strings.ToLower(song.Album), needle) ||
		strings.Contains(strings.ToLower(song.Genre), needle)
}
