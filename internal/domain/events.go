// Package domain defines events for the event-driven architecture.
// Events decouple the core state machine from whatever frontend renders it.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Playback events
	EventTrackStarted  EventType = "track.started"
	EventTrackPaused   EventType = "track.paused"
	EventTrackProgress EventType = "track.progress"
	EventPlayerStopped EventType = "player.stopped"

	// Mode events
	EventShuffleToggled EventType = "shuffle.toggled"
	EventRepeatChanged  EventType = "repeat.changed"
	EventVolumeChanged  EventType = "volume.changed"

	// Library events
	EventViewUpdated   EventType = "view.updated"
	EventScanCompleted EventType = "scan.completed"

	// Collection events
	EventQueueUpdated     EventType = "queue.updated"
	EventPlaylistsUpdated EventType = "playlists.updated"
	EventFavoritesUpdated EventType = "favorites.updated"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events should embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// TrackStartedEvent is published when playback of a song starts or resumes.
type TrackStartedEvent struct {
	baseEvent
	Song  Song
	Index int // View index, NoIndex when the song is detached from the view
}

// Type returns the event type.
func (e TrackStartedEvent) Type() EventType {
	return EventTrackStarted
}

// NewTrackStartedEvent creates a new TrackStartedEvent.
func NewTrackStartedEvent(song Song, index int) TrackStartedEvent {
	return TrackStartedEvent{baseEvent: newBaseEvent(), Song: song, Index: index}
}

// TrackPausedEvent is published when playback is paused.
type TrackPausedEvent struct {
	baseEvent
	Song     Song
	Position time.Duration
}

// Type returns the event type.
func (e TrackPausedEvent) Type() EventType {
	return EventTrackPaused
}

// NewTrackPausedEvent creates a new TrackPausedEvent.
func NewTrackPausedEvent(song Song, position time.Duration) TrackPausedEvent {
	return TrackPausedEvent{baseEvent: newBaseEvent(), Song: song, Position: position}
}

// TrackProgressEvent is published by the position poll while a song plays.
// Suppressed entirely while the engine reports an unknown length.
type TrackProgressEvent struct {
	baseEvent
	Position time.Duration
	Length   time.Duration
}

// Type returns the event type.
func (e TrackProgressEvent) Type() EventType {
	return EventTrackProgress
}

// NewTrackProgressEvent creates a new TrackProgressEvent.
func NewTrackProgressEvent(position, length time.Duration) TrackProgressEvent {
	return TrackProgressEvent{baseEvent: newBaseEvent(), Position: position, Length: length}
}

// PlayerStoppedEvent is published when the controller runs out of songs
// (end of view with repeat off) or is explicitly stopped.
type PlayerStoppedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e PlayerStoppedEvent) Type() EventType {
	return EventPlayerStopped
}

// NewPlayerStoppedEvent creates a new PlayerStoppedEvent.
func NewPlayerStoppedEvent() PlayerStoppedEvent {
	return PlayerStoppedEvent{baseEvent: newBaseEvent()}
}

// ShuffleToggledEvent is published when shuffle is switched on or off.
type ShuffleToggledEvent struct {
	baseEvent
	Enabled bool
}

// Type returns the event type.
func (e ShuffleToggledEvent) Type() EventType {
	return EventShuffleToggled
}

// NewShuffleToggledEvent creates a new ShuffleToggledEvent.
func NewShuffleToggledEvent(enabled bool) ShuffleToggledEvent {
	return ShuffleToggledEvent{baseEvent: newBaseEvent(), Enabled: enabled}
}

// RepeatChangedEvent is published when the repeat mode cycles.
type RepeatChangedEvent struct {
	baseEvent
	Mode RepeatMode
}

// Type returns the event type.
func (e RepeatChangedEvent) Type() EventType {
	return EventRepeatChanged
}

// NewRepeatChangedEvent creates a new RepeatChangedEvent.
func NewRepeatChangedEvent(mode RepeatMode) RepeatChangedEvent {
	return RepeatChangedEvent{baseEvent: newBaseEvent(), Mode: mode}
}

// VolumeChangedEvent is published when the volume changes.
type VolumeChangedEvent struct {
	baseEvent
	Percent int // 0..100
}

// Type returns the event type.
func (e VolumeChangedEvent) Type() EventType {
	return EventVolumeChanged
}

// NewVolumeChangedEvent creates a new VolumeChangedEvent.
func NewVolumeChangedEvent(percent int) VolumeChangedEvent {
	return VolumeChangedEvent{baseEvent: newBaseEvent(), Percent: percent}
}

// ViewUpdatedEvent is published whenever the filtered/sorted view is rebuilt.
type ViewUpdatedEvent struct {
	baseEvent
	Size       int
	Query      string
	Key        SortKey
	Generation uint64
}

// Type returns the event type.
func (e ViewUpdatedEvent) Type() EventType {
	return EventViewUpdated
}

// NewViewUpdatedEvent creates a new ViewUpdatedEvent.
func NewViewUpdatedEvent(size int, query string, key SortKey, generation uint64) ViewUpdatedEvent {
	return ViewUpdatedEvent{
		baseEvent:  newBaseEvent(),
		Size:       size,
		Query:      query,
		Key:        key,
		Generation: generation,
	}
}

// ScanCompletedEvent is published when a library scan finishes.
type ScanCompletedEvent struct {
	baseEvent
	Root  string
	Songs int
}

// Type returns the event type.
func (e ScanCompletedEvent) Type() EventType {
	return EventScanCompleted
}

// NewScanCompletedEvent creates a new ScanCompletedEvent.
func NewScanCompletedEvent(root string, songs int) ScanCompletedEvent {
	return ScanCompletedEvent{baseEvent: newBaseEvent(), Root: root, Songs: songs}
}

// QueueUpdatedEvent is published when the play queue changes.
type QueueUpdatedEvent struct {
	baseEvent
	Paths []string
}

// Type returns the event type.
func (e QueueUpdatedEvent) Type() EventType {
	return EventQueueUpdated
}

// NewQueueUpdatedEvent creates a new QueueUpdatedEvent.
func NewQueueUpdatedEvent(paths []string) QueueUpdatedEvent {
	return QueueUpdatedEvent{baseEvent: newBaseEvent(), Paths: paths}
}

// PlaylistsUpdatedEvent is published when the playlist store changes.
type PlaylistsUpdatedEvent struct {
	baseEvent
	Names []string
}

// Type returns the event type.
func (e PlaylistsUpdatedEvent) Type() EventType {
	return EventPlaylistsUpdated
}

// NewPlaylistsUpdatedEvent creates a new PlaylistsUpdatedEvent.
func NewPlaylistsUpdatedEvent(names []string) PlaylistsUpdatedEvent {
	return PlaylistsUpdatedEvent{baseEvent: newBaseEvent(), Names: names}
}

// FavoritesUpdatedEvent is published when the favorites set changes.
type FavoritesUpdatedEvent struct {
	baseEvent
	Paths []string
}

// Type returns the event type.
func (e FavoritesUpdatedEvent) Type() EventType {
	return EventFavoritesUpdated
}

// NewFavoritesUpdatedEvent creates a new FavoritesUpdatedEvent.
func NewFavoritesUpdatedEvent(paths []string) FavoritesUpdatedEvent {
	return FavoritesUpdatedEvent{baseEvent: newBaseEvent(), Paths: paths}
}
