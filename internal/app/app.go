// Package app wires the core together and runs the control loop.
//
// Every mutation of the catalog, the stores, and the playback controller
// happens on one goroutine, fed by a command channel. Frontends and the
// engine bridge only ever dispatch commands and listen on the event bus,
// which keeps the core free of locks.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/library"
	"github.com/boombafm/boombafm/internal/playback"
	"github.com/boombafm/boombafm/internal/ports"
	"github.com/boombafm/boombafm/internal/store"
)

// commandBuffer sizes the command channel. Dispatchers (keyboard frontend,
// engine bridge, watcher) must never block behind a busy loop iteration.
const commandBuffer = 64

// Config holds the application configuration.
type Config struct {
	// MusicDir is the library root; created when missing.
	MusicDir string

	// StateFile is the JSON file holding playlists and settings.
	StateFile string

	// WatchDir enables the filesystem watcher that triggers rescans.
	WatchDir bool

	// ProgressInterval is the playback position poll period.
	ProgressInterval time.Duration

	// SaveInterval is the periodic state save period.
	SaveInterval time.Duration

	// DebounceInterval coalesces filesystem churn before a rescan.
	DebounceInterval time.Duration
}

// DefaultConfig returns the standard configuration rooted in the user's home.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		MusicDir:         filepath.Join(home, "Music"),
		StateFile:        filepath.Join(home, ".config", "boombafm", "state.json"),
		WatchDir:         true,
		ProgressInterval: 500 * time.Millisecond,
		SaveInterval:     30 * time.Second,
		DebounceInterval: 2 * time.Second,
	}
}

// App owns the assembled core and its control loop.
type App struct {
	logger *slog.Logger
	cfg    Config

	bus        ports.EventBus
	engine     ports.PlaybackEngine
	repo       ports.StateRepository
	scanner    *library.Scanner
	catalog    *library.Catalog
	queue      *store.Queue
	recent     *store.RecentPlays
	favorites  *store.Favorites
	playlists  *store.PlaylistStore
	controller *playback.Controller
	watcher    *library.Watcher

	commands chan domain.Command
	stopped  chan struct{}

	// holdSaves is set when the state file failed to load. Writing then
	// would clobber whatever the user might still recover by hand, so
	// saves wait for the first real mutation.
	holdSaves bool
}

// New assembles the application core around the given adapters.
// The engine and repository are injected so the command-line frontend and the
// tests can swap in mock audio or a throwaway state file.
func New(
	logger *slog.Logger,
	cfg Config,
	bus ports.EventBus,
	engine ports.PlaybackEngine,
	repo ports.StateRepository,
	tags ports.TagReader,
) *App {
	catalog := library.NewCatalog(logger.With(slog.String("component", "catalog")), bus)
	queue := store.NewQueue(bus)
	recent := store.NewRecentPlays()
	controller := playback.NewController(
		logger.With(slog.String("component", "playback")),
		engine, catalog, queue, recent, bus, nil)

	return &App{
		logger:     logger.With(slog.String("component", "app")),
		cfg:        cfg,
		bus:        bus,
		engine:     engine,
		repo:       repo,
		scanner:    library.NewScanner(logger.With(slog.String("component", "scanner")), tags),
		catalog:    catalog,
		queue:      queue,
		recent:     recent,
		favorites:  store.NewFavorites(bus),
		playlists:  store.NewPlaylistStore(bus),
		controller: controller,
		commands:   make(chan domain.Command, commandBuffer),
		stopped:    make(chan struct{}),
	}
}

// Dispatch hands a command to the control loop. Safe from any goroutine.
// After shutdown the command is dropped.
func (a *App) Dispatch(cmd domain.Command) {
	select {
	case a.commands <- cmd:
	case <-a.stopped:
	}
}

// Run scans the library, restores persisted state, and drives the control
// loop until a Quit command arrives. It blocks; callers run it on the main
// goroutine and dispatch from others.
func (a *App) Run() error {
	if err := a.rescan(); err != nil {
		return fmt.Errorf("initial scan: %w", err)
	}
	a.restoreState()

	a.engine.SetTrackEndCallback(func() {
		a.Dispatch(domain.TrackEnded{})
	})

	if a.cfg.WatchDir {
		w, err := library.NewWatcher(a.logger, a.cfg.MusicDir, a.cfg.DebounceInterval, func() {
			a.Dispatch(domain.Rescan{})
		})
		if err != nil {
			a.logger.Warn("directory watcher unavailable", slog.Any("error", err))
		} else {
			a.watcher = w
		}
	}

	a.loop()
	return nil
}

// loop is the single owner of all core state.
func (a *App) loop() {
	progress := time.NewTicker(a.cfg.ProgressInterval)
	defer progress.Stop()
	save := time.NewTicker(a.cfg.SaveInterval)
	defer save.Stop()

	defer close(a.stopped)

	for {
		select {
		case cmd := <-a.commands:
			if _, quit := cmd.(domain.Quit); quit {
				a.shutdown()
				return
			}
			a.handle(cmd)

		case <-progress.C:
			a.publishProgress()

		case <-save.C:
			a.saveState(false)
		}
	}
}

// handle executes one command on the loop goroutine.
func (a *App) handle(cmd domain.Command) {
	switch c := cmd.(type) {
	case domain.PlayIndex:
		a.controller.Play(c.Index)
		a.markMutated()
	case domain.TogglePlayPause:
		a.controller.TogglePlayPause()
		a.markMutated()
	case domain.NextTrack:
		a.controller.Next()
		a.markMutated()
	case domain.PrevTrack:
		a.controller.Previous()
		a.markMutated()
	case domain.TrackEnded:
		a.controller.OnTrackEnd()
		a.markMutated()
	case domain.SeekTo:
		a.controller.Seek(c.Fraction)
	case domain.SetVolume:
		a.controller.SetVolume(c.Percent)
		a.markMutated()
	case domain.ToggleShuffle:
		a.controller.SetShuffle(!a.controller.Shuffle())
	case domain.CycleRepeat:
		a.controller.CycleRepeat()
	case domain.SetFilter:
		a.catalog.SetFilter(c.Query)
	case domain.SetSort:
		a.catalog.SetSort(c.Key)
	case domain.EnqueueIndex:
		a.enqueue(c.Index)
	case domain.ClearQueue:
		a.queue.Clear()
	case domain.AddToPlaylist:
		a.addToPlaylist(c.Playlist, c.Index)
	case domain.ToggleFavorite:
		a.toggleFavorite(c.Index)
	case domain.Rescan:
		if err := a.rescan(); err != nil {
			a.logger.Error("rescan failed", slog.Any("error", err))
		}
	case domain.SaveState:
		a.saveState(true)
	default:
		a.logger.Warn("unhandled command", slog.String("type", fmt.Sprintf("%T", cmd)))
	}
}

// enqueue pushes the song at a view index onto the play queue.
// Out-of-range indices are a silent no-op.
func (a *App) enqueue(index int) {
	view := a.catalog.View()
	if index < 0 || index >= len(view) {
		return
	}
	a.queue.Push(view[index].Path)
}

// addToPlaylist appends the song at a view index to a named playlist,
// creating the playlist on first use. Duplicate adds are logged and dropped.
func (a *App) addToPlaylist(name string, index int) {
	view := a.catalog.View()
	if name == "" || index < 0 || index >= len(view) {
		return
	}
	song := view[index]

	if _, ok := a.playlists.Get(name); !ok {
		if err := a.playlists.Create(name); err != nil {
			a.logger.Warn("cannot create playlist", slog.String("name", name), slog.Any("error", err))
			return
		}
	}

	entry := domain.PlaylistEntry{
		Path:   song.Path,
		Title:  song.Title,
		Artist: song.Artist,
		Album:  song.Album,
		Genre:  song.Genre,
	}
	if err := a.playlists.AddSong(name, entry); err != nil {
		a.logger.Debug("song not added to playlist",
			slog.String("name", name), slog.String("path", song.Path), slog.Any("error", err))
		return
	}
	a.markMutated()
}

// toggleFavorite flips favorite membership for the song at a view index.
func (a *App) toggleFavorite(index int) {
	view := a.catalog.View()
	if index < 0 || index >= len(view) {
		return
	}
	a.favorites.Toggle(view[index].Path)
	a.markMutated()
}

// rescan rebuilds the catalog from disk and re-reconciles playlist entries
// against it.
func (a *App) rescan() error {
	songs, err := a.scanner.Scan(a.cfg.MusicDir)
	if err != nil {
		return err
	}
	a.catalog.Rescan(songs)
	a.reconcilePlaylists()
	a.bus.Publish(domain.NewScanCompletedEvent(a.cfg.MusicDir, a.catalog.Len()))
	return nil
}

// reconcilePlaylists marks entries whose media is gone and refreshes the
// metadata of entries the catalog can resolve. Missing entries stay in the
// playlist, inert, so a remounted drive brings them back untouched.
func (a *App) reconcilePlaylists() {
	for _, name := range a.playlists.Names() {
		list, ok := a.playlists.Get(name)
		if !ok {
			continue
		}
		for i := range list.Entries {
			entry := &list.Entries[i]
			song, found := a.catalog.Song(entry.Path)
			entry.Missing = !found
			if found {
				entry.Title = song.Title
				entry.Artist = song.Artist
				entry.Album = song.Album
				entry.Genre = song.Genre
			}
		}
	}
}

// restoreState loads the persisted state and applies it to the stores.
// A failed load degrades to defaults and holds saves back until the user
// mutates something, so a readable-but-corrupt file is not overwritten by
// an empty one at the next tick.
func (a *App) restoreState() {
	state, err := a.repo.Load()
	if err != nil {
		a.holdSaves = true
	}

	a.playlists.Restore(state.Playlists)
	a.reconcilePlaylists()
	a.favorites.Restore(state.Settings.Favorites)
	a.recent.Restore(state.Settings.RecentPlays)
	a.catalog.ApplyPlayCounts(state.Settings.PlayCounts)
	a.controller.SetVolume(state.Settings.Volume)

	a.logger.Info("state restored",
		slog.Int("playlists", len(state.Playlists)),
		slog.Int("favorites", len(state.Settings.Favorites)),
		slog.Bool("degraded", err != nil))
}

// markMutated releases a post-corruption save hold.
func (a *App) markMutated() {
	a.holdSaves = false
}

// saveState persists the current state. Periodic saves respect the
// post-corruption hold; forced saves (explicit command, shutdown) go through
// once any mutation happened.
func (a *App) saveState(forced bool) {
	if a.holdSaves {
		if !forced {
			return
		}
		a.logger.Warn("saving over a state file that failed to load")
	}

	state := ports.LibraryState{
		Playlists: a.playlists.Snapshot(),
		Settings: domain.Settings{
			Favorites:   a.favorites.Paths(),
			RecentPlays: a.recent.Paths(),
			PlayCounts:  a.catalog.PlayCounts(),
			Volume:      a.controller.Volume(),
		},
	}
	if err := a.repo.Save(state); err != nil {
		a.logger.Error("state save failed", slog.Any("error", err))
	}
}

// publishProgress emits a progress event while a song plays.
// Suppressed while the engine reports an unknown length.
func (a *App) publishProgress() {
	if a.controller.Status() != domain.StatusPlaying {
		return
	}
	length := a.engine.Length()
	if length <= 0 {
		return
	}
	a.bus.Publish(domain.NewTrackProgressEvent(a.engine.Time(), length))
}

// shutdown saves state and releases the adapters. Runs on the loop goroutine
// as the response to Quit.
func (a *App) shutdown() {
	if !a.holdSaves {
		a.saveState(true)
	}
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			a.logger.Warn("watcher close failed", slog.Any("error", err))
		}
	}
	if err := a.engine.Close(); err != nil {
		a.logger.Warn("engine close failed", slog.Any("error", err))
	}
	if err := a.bus.Close(); err != nil {
		a.logger.Warn("event bus close failed", slog.Any("error", err))
	}
	a.logger.Info("shut down")
}

// Catalog exposes the song catalog for read-only frontend rendering.
// Frontends must not mutate through it off the control loop.
func (a *App) Catalog() *library.Catalog { return a.catalog }

// Controller exposes playback state for read-only frontend rendering.
func (a *App) Controller() *playback.Controller { return a.controller }

// Bus exposes the event bus for frontend subscriptions.
func (a *App) Bus() ports.EventBus { return a.bus }

// Playlists exposes the playlist store for read-only frontend rendering.
func (a *App) Playlists() *store.PlaylistStore { return a.playlists }

// Favorites exposes the favorites set for read-only frontend rendering.
func (a *App) Favorites() *store.Favorites { return a.favorites }

// Queue exposes the play queue for read-only frontend rendering.
func (a *App) Queue() *store.Queue { return a.queue }

// Recent exposes the recent-plays ring for read-only frontend rendering.
func (a *App) Recent() *store.RecentPlays { return a.recent }
