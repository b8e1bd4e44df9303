// Package mock provides a scriptable PlaybackEngine for tests.
// No audio is rendered; playback state is simulated and fully inspectable.
package mock

import (
	"sync"
	"time"

	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/ports"
)

// defaultLength is reported for tracks without a scripted length.
const defaultLength = 3 * time.Minute

// Engine simulates a playback backend.
//
// Tests script per-path lengths and load failures, move the position by
// hand, and trigger end-of-track with FinishTrack. Thread-safe like the
// real adapters.
type Engine struct {
	mu       sync.Mutex
	loaded   string
	playing  bool
	position time.Duration
	volume   int
	onEnd    func()
	loads    []string

	// Lengths scripts per-path track lengths. Paths absent from the map
	// report defaultLength; a scripted zero means "length unknown".
	Lengths map[string]time.Duration

	// FailLoad scripts per-path load errors.
	FailLoad map[string]error
}

// NewEngine creates a mock engine with nothing loaded.
func NewEngine() *Engine {
	return &Engine{
		Lengths:  make(map[string]time.Duration),
		FailLoad: make(map[string]error),
		volume:   70,
	}
}

// Load replaces the current track.
func (e *Engine) Load(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.loads = append(e.loads, path)
	if err := e.FailLoad[path]; err != nil {
		return domain.NewEngineError("load", path, err)
	}
	e.loaded = path
	e.playing = false
	e.position = 0
	return nil
}

// Play starts or resumes the loaded track.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded == "" {
		return domain.NewEngineError("play", "", domain.ErrMissingMedia)
	}
	e.playing = true
	return nil
}

// Pause pauses playback.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.playing = false
	return nil
}

// IsPlaying reports the simulated playback flag.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.playing
}

// SetTime moves the simulated position.
func (e *Engine) SetTime(position time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.position = position
	return nil
}

// Time returns the simulated position.
func (e *Engine) Time() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.position
}

// Length returns the scripted length for the loaded track.
func (e *Engine) Length() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded == "" {
		return 0
	}
	if length, ok := e.Lengths[e.loaded]; ok {
		return length
	}
	return defaultLength
}

// SetVolume records the volume.
func (e *Engine) SetVolume(percent int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volume = percent
	return nil
}

// SetTrackEndCallback registers the end-of-track callback.
func (e *Engine) SetTrackEndCallback(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onEnd = fn
}

// Close drops the loaded track.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.loaded = ""
	e.playing = false
	return nil
}

// Test inspection and scripting helpers

// FinishTrack simulates the current track ending naturally and invokes the
// registered callback synchronously.
func (e *Engine) FinishTrack() {
	e.mu.Lock()
	e.playing = false
	fn := e.onEnd
	e.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// CurrentPath returns the loaded track path, "" when nothing is loaded.
func (e *Engine) CurrentPath() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loaded
}

// Volume returns the last applied volume.
func (e *Engine) Volume() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.volume
}

// Loads returns the history of Load calls in order.
func (e *Engine) Loads() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.loads))
	copy(out, e.loads)
	return out
}

// Verify that Engine implements the PlaybackEngine interface
var _ ports.PlaybackEngine = (*Engine)(nil)
