// Package ports defines interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"time"
)

// PlaybackEngine is the interface for audio playback backends.
// It mirrors the primitive surface of a media library: load/play/pause/seek/
// volume plus two polled values (position, length) and one asynchronous
// end-of-track notification.
//
// Only one track is ever active: Load implicitly stops whatever was playing.
// Implementations must be thread-safe; the control loop commands the engine
// while the engine's own output may run on a decoder goroutine.
type PlaybackEngine interface {
	// Load prepares the file at path for playback, replacing any current track.
	//
	// Returns an error if the file cannot be opened or decoded.
	Load(path string) error

	// Play starts or resumes playback of the loaded track.
	Play() error

	// Pause pauses playback, preserving the position.
	Pause() error

	// IsPlaying reports whether audio is currently being rendered.
	IsPlaying() bool

	// SetTime seeks to an absolute position within the current track.
	SetTime(position time.Duration) error

	// Time returns the elapsed position of the current track,
	// or zero when nothing is loaded.
	Time() time.Duration

	// Length returns the total length of the current track.
	// A value <= 0 means the length is unknown; callers must suppress
	// derived computations (progress fractions, seeks) in that case.
	Length() time.Duration

	// SetVolume sets the output volume in percent (0..100).
	SetVolume(percent int) error

	// SetTrackEndCallback registers the function invoked when a track
	// finishes naturally (not when stopped or replaced by Load).
	// The callback may fire on an engine-owned goroutine; the caller is
	// responsible for marshalling it onto its control thread.
	SetTrackEndCallback(fn func())

	// Close releases all engine resources.
	Close() error
}
