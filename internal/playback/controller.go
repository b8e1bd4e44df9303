// Package playback implements the sequencing state machine: which song is
// active, how shuffle and repeat pick the next one, and how the queue takes
// precedence over both.
package playback

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/library"
	"github.com/boombafm/boombafm/internal/ports"
	"github.com/boombafm/boombafm/internal/store"
)

// restartThreshold is how far into a track Previous restarts it instead of
// stepping back.
const restartThreshold = 3 * time.Second

// Controller drives the playback engine against the catalog view.
//
// Single-threaded by contract: every method runs on the application control
// loop, including the end-of-track notification, which the app bridges from
// the engine callback onto the loop as a command.
//
// Error policy: operations referencing an empty view or an out-of-range
// index are silent no-ops. Such calls happen in normal operation (the view
// changed between selection and action) and must never crash the session.
type Controller struct {
	logger  *slog.Logger
	engine  ports.PlaybackEngine
	catalog *library.Catalog
	queue   *store.Queue
	recent  *store.RecentPlays
	bus     ports.EventBus
	rng     *rand.Rand

	status  domain.PlayerStatus
	current *domain.Song // frozen playing reference, survives view changes
	index   int          // view index of current, NoIndex when detached

	shuffle bool
	history map[int]struct{} // view indices played since shuffle enable/exhaustion
	repeat  domain.RepeatMode

	viewGen uint64 // catalog generation index/history refer to
	volume  int
}

// NewController creates a controller in the idle state.
// rng may be nil, in which case a time-seeded source is used; tests inject a
// fixed seed for deterministic shuffle assertions.
func NewController(
	logger *slog.Logger,
	engine ports.PlaybackEngine,
	catalog *library.Catalog,
	queue *store.Queue,
	recent *store.RecentPlays,
	bus ports.EventBus,
	rng *rand.Rand,
) *Controller {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Controller{
		logger:  logger,
		engine:  engine,
		catalog: catalog,
		queue:   queue,
		recent:  recent,
		bus:     bus,
		rng:     rng,
		status:  domain.StatusIdle,
		index:   domain.NoIndex,
		history: make(map[int]struct{}),
		volume:  70,
	}
}

// syncView notices view rebuilds since the last operation. The frozen
// playing reference keeps playing; its index is re-resolved against the new
// view (NoIndex when filtered out) and the shuffle history resets because
// its indices no longer mean anything.
func (c *Controller) syncView() {
	gen := c.catalog.Generation()
	if gen == c.viewGen {
		return
	}
	c.viewGen = gen
	c.history = make(map[int]struct{})
	if c.current != nil {
		c.index = c.catalog.IndexOf(c.current.Path)
		if c.shuffle && c.index != domain.NoIndex {
			c.history[c.index] = struct{}{}
		}
	} else {
		c.index = domain.NoIndex
	}
}

// Play starts the song at the given view index.
// Out-of-range indices are a no-op.
func (c *Controller) Play(index int) {
	c.syncView()
	view := c.catalog.View()
	if index < 0 || index >= len(view) {
		return
	}
	c.start(view[index], index)
}

// start loads and plays one song, records the play, and maintains the
// shuffle history. A load failure (typically missing media) drops the
// controller back to idle.
func (c *Controller) start(song *domain.Song, index int) {
	if err := c.engine.Load(song.Path); err != nil {
		c.logger.Warn("failed to load song",
			slog.String("path", song.Path), slog.Any("error", err))
		c.current = nil
		c.index = domain.NoIndex
		c.status = domain.StatusIdle
		c.bus.Publish(domain.NewPlayerStoppedEvent())
		return
	}
	if err := c.engine.Play(); err != nil {
		c.logger.Warn("engine refused to play",
			slog.String("path", song.Path), slog.Any("error", err))
		return
	}

	c.current = song
	c.index = index
	c.status = domain.StatusPlaying

	c.catalog.RecordPlay(song.Path)
	c.recent.Push(song.Path)
	if length := c.engine.Length(); length > 0 {
		c.catalog.SetDuration(song.Path, length)
	}
	if c.shuffle && index != domain.NoIndex {
		c.history[index] = struct{}{}
	}

	c.bus.Publish(domain.NewTrackStartedEvent(*song, index))
}

// TogglePlayPause pauses when playing and resumes when paused.
// When idle with a non-empty view it starts the first song.
func (c *Controller) TogglePlayPause() {
	c.syncView()
	switch c.status {
	case domain.StatusPlaying:
		if err := c.engine.Pause(); err != nil {
			c.logger.Warn("pause failed", slog.Any("error", err))
			return
		}
		c.status = domain.StatusPaused
		if c.current != nil {
			c.bus.Publish(domain.NewTrackPausedEvent(*c.current, c.engine.Time()))
		}
	case domain.StatusPaused:
		if err := c.engine.Play(); err != nil {
			c.logger.Warn("resume failed", slog.Any("error", err))
			return
		}
		c.status = domain.StatusPlaying
		if c.current != nil {
			c.bus.Publish(domain.NewTrackStartedEvent(*c.current, c.index))
		}
	case domain.StatusIdle:
		if c.catalog.ViewLen() > 0 {
			c.Play(0)
		}
	}
}

// Next advances to the next song.
//
// Queue precedence: a non-empty queue always gives up its head first. A head
// that does not resolve into the current view is skipped silently and normal
// sequencing applies. With shuffle on, the pick is uniform over view indices
// not yet in the shuffle history; when the history covers the view it is
// cleared and the pick is uniform over everything. With shuffle off the index
// increments, wrapping to 0 past the end only in repeat-all mode.
func (c *Controller) Next() {
	c.syncView()

	if path, ok := c.queue.Pop(); ok {
		if index := c.catalog.IndexOf(path); index != domain.NoIndex {
			c.Play(index)
			return
		}
		// Head pointed outside the current view: fall through.
	}

	n := c.catalog.ViewLen()
	if n == 0 {
		return
	}

	if c.shuffle {
		c.Play(c.pickUnvisited(n))
		return
	}

	next := c.index + 1
	if next >= n {
		if c.repeat != domain.RepeatAll {
			return // remain stopped at the end
		}
		next = 0
	}
	c.Play(next)
}

// pickUnvisited returns a uniformly random view index outside the shuffle
// history, clearing the history first when it already covers the view.
func (c *Controller) pickUnvisited(n int) int {
	unvisited := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if _, seen := c.history[i]; !seen {
			unvisited = append(unvisited, i)
		}
	}
	if len(unvisited) == 0 {
		c.history = make(map[int]struct{})
		return c.rng.Intn(n)
	}
	return unvisited[c.rng.Intn(len(unvisited))]
}

// Previous restarts the current song when more than the restart threshold
// has elapsed; otherwise it steps back, wrapping to the last index only in
// repeat-all mode.
func (c *Controller) Previous() {
	c.syncView()

	if c.current != nil && c.engine.Time() > restartThreshold {
		if err := c.engine.SetTime(0); err != nil {
			c.logger.Warn("restart seek failed", slog.Any("error", err))
		}
		return
	}

	n := c.catalog.ViewLen()
	if n == 0 {
		return
	}

	prev := c.index - 1
	if prev < 0 {
		if c.repeat != domain.RepeatAll {
			return
		}
		prev = n - 1
	}
	c.Play(prev)
}

// OnTrackEnd consumes the engine's end-of-track notification.
// Repeat-one replays what just ended, even when the view change detached it;
// anything else behaves like Next.
func (c *Controller) OnTrackEnd() {
	c.syncView()

	if c.repeat == domain.RepeatOne && c.current != nil {
		if c.index != domain.NoIndex {
			c.Play(c.index)
		} else {
			c.start(c.current, domain.NoIndex)
		}
		return
	}

	wasLast := !c.shuffle && c.queue.Len() == 0 &&
		c.index >= c.catalog.ViewLen()-1 && c.repeat != domain.RepeatAll
	c.Next()
	if wasLast {
		c.status = domain.StatusIdle
		c.bus.Publish(domain.NewPlayerStoppedEvent())
	}
}

// Seek jumps to a fraction in [0,1] of the current track.
// No-op while the engine reports an unknown length.
func (c *Controller) Seek(fraction float64) {
	if c.current == nil || fraction < 0 || fraction > 1 {
		return
	}
	length := c.engine.Length()
	if length <= 0 {
		return
	}
	target := time.Duration(fraction * float64(length))
	if err := c.engine.SetTime(target); err != nil {
		c.logger.Warn("seek failed", slog.Any("error", err))
	}
}

// SetVolume clamps to 0..100 and applies the volume to the engine.
func (c *Controller) SetVolume(percent int) {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	if err := c.engine.SetVolume(percent); err != nil {
		c.logger.Warn("volume change failed", slog.Any("error", err))
		return
	}
	c.volume = percent
	c.bus.Publish(domain.NewVolumeChangedEvent(percent))
}

// Volume returns the last applied volume.
func (c *Controller) Volume() int { return c.volume }

// SetShuffle switches shuffle mode. Enabling clears the history so the
// no-repeat-until-exhausted round starts fresh; disabling leaves the
// history inert.
func (c *Controller) SetShuffle(enabled bool) {
	if enabled && !c.shuffle {
		c.history = make(map[int]struct{})
		if c.index != domain.NoIndex {
			c.history[c.index] = struct{}{}
		}
	}
	c.shuffle = enabled
	c.bus.Publish(domain.NewShuffleToggledEvent(enabled))
}

// Shuffle reports whether shuffle mode is on.
func (c *Controller) Shuffle() bool { return c.shuffle }

// CycleRepeat advances off -> all -> one -> off.
func (c *Controller) CycleRepeat() {
	c.repeat = c.repeat.Next()
	c.bus.Publish(domain.NewRepeatChangedEvent(c.repeat))
}

// Repeat returns the active repeat mode.
func (c *Controller) Repeat() domain.RepeatMode { return c.repeat }

// Status returns the player status.
func (c *Controller) Status() domain.PlayerStatus { return c.status }

// Current returns the frozen playing reference and its view index
// (NoIndex when detached or idle).
func (c *Controller) Current() (*domain.Song, int) {
	return c.current, c.index
}
