// Package beep implements the PlaybackEngine port on top of gopxl/beep and
// the system speaker.
package beep

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/ports"
)

// mixerRate is the fixed speaker sample rate; tracks with a different
// native rate are resampled onto it.
const mixerRate = beep.SampleRate(44100)

// Engine renders audio through the system speaker.
//
// Only one track is active at a time: Load clears the mixer and replaces the
// stream. Position and length are derived from the decoder's sample counter
// in the track's native rate, so they stay exact across resampling.
type Engine struct {
	logger *slog.Logger

	mu          sync.Mutex
	initialized bool
	file        *os.File
	streamer    beep.StreamSeekCloser
	format      beep.Format
	ctrl        *beep.Ctrl
	volume      *effects.Volume
	volumePct   int

	// The end callback runs on the speaker goroutine with the speaker
	// lock held, so its state must not touch mu: Load holds mu while
	// taking the speaker lock, and the reverse order would deadlock.
	cbMu  sync.Mutex
	onEnd func()

	// generation invalidates end callbacks from replaced tracks: the
	// speaker fires the callback of a cleared stream asynchronously, and
	// a stale one must not advance the controller.
	generation atomic.Uint64
}

// NewEngine creates an engine; the speaker is initialized on first Load.
func NewEngine(logger *slog.Logger) *Engine {
	return &Engine{logger: logger, volumePct: 70}
}

// Load decodes the file at path and stages it paused on the speaker.
func (e *Engine) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return domain.NewEngineError("load", path, err)
	}

	streamer, format, err := decode(f, path)
	if err != nil {
		f.Close()
		return domain.NewEngineError("load", path, err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		if err := speaker.Init(mixerRate, mixerRate.N(time.Second/10)); err != nil {
			streamer.Close()
			f.Close()
			return domain.NewEngineError("load", path, err)
		}
		e.initialized = true
	}

	// Replace whatever is playing.
	speaker.Clear()
	e.closeCurrentLocked()
	gen := e.generation.Add(1)

	e.file = f
	e.streamer = streamer
	e.format = format

	var stream beep.Streamer = streamer
	if format.SampleRate != mixerRate {
		stream = beep.Resample(4, format.SampleRate, mixerRate, streamer)
	}

	e.ctrl = &beep.Ctrl{Streamer: stream, Paused: true}
	e.volume = &effects.Volume{Streamer: e.ctrl, Base: 2}
	applyVolume(e.volume, e.volumePct)

	speaker.Play(beep.Seq(e.volume, beep.Callback(func() {
		e.trackEnded(gen)
	})))

	e.logger.Debug("track staged",
		slog.String("path", path),
		slog.Int("sample_rate", int(format.SampleRate)))
	return nil
}

// decode picks a decoder by file extension.
func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".wav":
		return wav.Decode(f)
	case ".flac":
		return flac.Decode(f)
	case ".ogg", ".oga":
		return vorbis.Decode(f)
	default:
		return nil, beep.Format{}, fmt.Errorf("no decoder for %q", filepath.Ext(path))
	}
}

// Play resumes the staged track.
func (e *Engine) Play() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctrl == nil {
		return domain.NewEngineError("play", "", domain.ErrMissingMedia)
	}
	speaker.Lock()
	e.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

// Pause pauses playback, preserving position.
func (e *Engine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctrl == nil {
		return nil
	}
	speaker.Lock()
	e.ctrl.Paused = true
	speaker.Unlock()
	return nil
}

// IsPlaying reports whether audio is being rendered.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctrl == nil {
		return false
	}
	speaker.Lock()
	paused := e.ctrl.Paused
	speaker.Unlock()
	return !paused
}

// SetTime seeks within the current track.
func (e *Engine) SetTime(position time.Duration) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return nil
	}
	speaker.Lock()
	err := e.streamer.Seek(e.format.SampleRate.N(position))
	speaker.Unlock()
	if err != nil {
		return domain.NewEngineError("seek", "", err)
	}
	return nil
}

// Time returns the elapsed position of the current track.
func (e *Engine) Time() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := e.streamer.Position()
	speaker.Unlock()
	return e.format.SampleRate.D(pos)
}

// Length returns the total track length, 0 when nothing is loaded.
func (e *Engine) Length() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.streamer == nil {
		return 0
	}
	return e.format.SampleRate.D(e.streamer.Len())
}

// SetVolume maps percent (0..100) onto the logarithmic volume effect.
func (e *Engine) SetVolume(percent int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.volumePct = percent
	if e.volume == nil {
		return nil
	}
	speaker.Lock()
	applyVolume(e.volume, percent)
	speaker.Unlock()
	return nil
}

// applyVolume converts a linear percent to the effect's log scale.
// Zero percent is full silence, not just a very low gain.
func applyVolume(v *effects.Volume, percent int) {
	if percent <= 0 {
		v.Silent = true
		return
	}
	v.Silent = false
	v.Volume = math.Log2(float64(percent) / 100)
}

// SetTrackEndCallback registers the end-of-track callback.
// It fires on the speaker goroutine; the app bridges it to the control loop.
func (e *Engine) SetTrackEndCallback(fn func()) {
	e.cbMu.Lock()
	defer e.cbMu.Unlock()
	e.onEnd = fn
}

func (e *Engine) trackEnded(gen uint64) {
	if gen != e.generation.Load() {
		return
	}
	e.cbMu.Lock()
	fn := e.onEnd
	e.cbMu.Unlock()

	if fn != nil {
		fn()
	}
}

// Close stops output and releases the current track.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.initialized {
		speaker.Clear()
	}
	e.generation.Add(1)
	e.closeCurrentLocked()
	return nil
}

func (e *Engine) closeCurrentLocked() {
	if e.streamer != nil {
		e.streamer.Close()
		e.streamer = nil
	}
	if e.file != nil {
		e.file.Close()
		e.file = nil
	}
	e.ctrl = nil
	e.volume = nil
}

// Verify that Engine implements the PlaybackEngine interface
var _ ports.PlaybackEngine = (*Engine)(nil)
