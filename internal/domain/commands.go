// Package domain defines the command set consumed by the application control loop.
//
// Commands replace the index-capturing UI closures of a conventional GUI
// player: every user intent is an explicit value dispatched to the single
// control goroutine, so no widget lifetime can leak into core state.
package domain

// Command is a single instruction for the control loop.
// All mutations of catalog, stores, and playback state travel as Commands.
type Command interface {
	isCommand()
}

// PlayIndex plays the song at the given view index.
type PlayIndex struct{ Index int }

// TogglePlayPause pauses when playing, resumes when paused,
// and starts the first view song when idle.
type TogglePlayPause struct{}

// NextTrack advances: queue head first, then shuffle/sequence/repeat logic.
type NextTrack struct{}

// PrevTrack restarts the current song when more than the restart threshold
// has elapsed, otherwise steps back.
type PrevTrack struct{}

// TrackEnded is injected by the engine bridge when a song finishes naturally.
type TrackEnded struct{}

// SeekTo seeks to a fraction in [0,1] of the current track length.
type SeekTo struct{ Fraction float64 }

// SetVolume sets the engine volume (0..100).
type SetVolume struct{ Percent int }

// ToggleShuffle flips shuffle mode.
type ToggleShuffle struct{}

// CycleRepeat advances the repeat mode off -> all -> one -> off.
type CycleRepeat struct{}

// SetFilter applies a substring filter to the catalog view.
type SetFilter struct{ Query string }

// SetSort applies a sort key to the catalog view.
type SetSort struct{ Key SortKey }

// EnqueueIndex appends the song at the given view index to the play queue.
type EnqueueIndex struct{ Index int }

// ClearQueue empties the play queue.
type ClearQueue struct{}

// AddToPlaylist appends the song at the given view index to a named playlist.
type AddToPlaylist struct {
	Playlist string
	Index    int
}

// ToggleFavorite flips favorite membership for the song at the view index.
type ToggleFavorite struct{ Index int }

// Rescan rebuilds the catalog from the music directory.
type Rescan struct{}

// SaveState persists playlists and settings now.
type SaveState struct{}

// Quit shuts the control loop down.
type Quit struct{}

func (PlayIndex) isCommand()       {}
func (TogglePlayPause) isCommand() {}
func (NextTrack) isCommand()       {}
func (PrevTrack) isCommand()       {}
func (TrackEnded) isCommand()      {}
func (SeekTo) isCommand()          {}
func (SetVolume) isCommand()       {}
func (ToggleShuffle) isCommand()   {}
func (CycleRepeat) isCommand()     {}
func (SetFilter) isCommand()       {}
func (SetSort) isCommand()         {}
func (EnqueueIndex) isCommand()    {}
func (ClearQueue) isCommand()      {}
func (AddToPlaylist) isCommand()   {}
func (ToggleFavorite) isCommand()  {}
func (Rescan) isCommand()          {}
func (SaveState) isCommand()       {}
func (Quit) isCommand()            {}
