// Package domain defines domain-specific errors.
// These errors represent business logic failures and are independent of infrastructure.
package domain

import (
	"errors"
	"fmt"
)

// Common errors that stores and the persistence layer can return.
//
// Playback and view operations never return these: per the error policy,
// an out-of-range index or an empty view makes the operation a silent no-op,
// because such calls are reachable through ordinary UI races and must not
// kill the session.
var (
	// ErrDuplicateName is returned when creating or renaming a playlist
	// to a name that already exists.
	ErrDuplicateName = errors.New("playlist name already exists")

	// ErrAlreadyPresent is returned when adding a song to a playlist that
	// already contains it. Non-fatal: the playlist is left unchanged.
	ErrAlreadyPresent = errors.New("song already in playlist")

	// ErrPlaylistNotFound is returned when a named playlist does not exist.
	ErrPlaylistNotFound = errors.New("playlist not found")

	// ErrIndexOutOfRange is returned by playlist element operations with
	// an invalid position.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrMissingMedia is returned when a referenced path no longer exists on disk.
	ErrMissingMedia = errors.New("media file missing")

	// ErrCorruptState is wrapped by the persistence layer when the state
	// file cannot be parsed. Load degrades to defaults instead of
	// propagating it, but the sentinel is kept for log inspection.
	ErrCorruptState = errors.New("corrupt persisted state")
)

// StateError wraps persistence layer failures with operation context.
type StateError struct {
	Op   string // Operation that failed ("load", "save")
	Path string // State file path
	Err  error  // Underlying error
}

// Error implements the error interface.
func (e *StateError) Error() string {
	return fmt.Sprintf("state %s failed for %q: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *StateError) Unwrap() error {
	return e.Err
}

// NewStateError creates a new StateError.
func NewStateError(op, path string, err error) *StateError {
	return &StateError{Op: op, Path: path, Err: err}
}

// EngineError wraps a playback engine failure with the operation and file.
type EngineError struct {
	Op   string
	Path string
	Err  error
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("engine %s failed for %q: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("engine %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *EngineError) Unwrap() error {
	return e.Err
}

// NewEngineError creates a new EngineError.
func NewEngineError(op, path string, err error) *EngineError {
	return &EngineError{Op: op, Path: path, Err: err}
}
