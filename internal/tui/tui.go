// Package tui is the terminal frontend: a keyboard-driven view over the
// application core. It renders from event bus notifications and talks back
// exclusively through dispatched commands.
package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/eiannone/keyboard"

	"github.com/boombafm/boombafm/internal/app"
	"github.com/boombafm/boombafm/internal/domain"
)

// UI reads keystrokes and prints player state lines to stdout.
type UI struct {
	logger *slog.Logger
	app    *app.App

	subs []domain.SubscriptionID
}

// New creates the terminal frontend over an assembled application.
func New(logger *slog.Logger, application *app.App) *UI {
	return &UI{logger: logger, app: application}
}

// Run subscribes to the bus, prints the key reference, and consumes
// keystrokes until q or Esc. It blocks; the caller runs the app loop on
// another goroutine.
func (u *UI) Run() error {
	if err := keyboard.Open(); err != nil {
		return fmt.Errorf("keyboard: %w", err)
	}
	defer keyboard.Close()
	defer u.unsubscribe()

	u.subscribe()
	u.printHelp()
	u.printView()

	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return fmt.Errorf("keyboard: %w", err)
		}
		if key == keyboard.KeyEsc || char == 'q' {
			return nil
		}
		u.handleKey(char, key)
	}
}

// handleKey maps one keystroke to a command.
func (u *UI) handleKey(char rune, key keyboard.Key) {
	switch {
	case key == keyboard.KeySpace:
		u.app.Dispatch(domain.TogglePlayPause{})
	case char == 'n':
		u.app.Dispatch(domain.NextTrack{})
	case char == 'b':
		u.app.Dispatch(domain.PrevTrack{})
	case char == 's':
		u.app.Dispatch(domain.ToggleShuffle{})
	case char == 'r':
		u.app.Dispatch(domain.CycleRepeat{})
	case char == 'f':
		_, index := u.app.Controller().Current()
		u.app.Dispatch(domain.ToggleFavorite{Index: index})
	case char == 'e':
		_, index := u.app.Controller().Current()
		u.app.Dispatch(domain.EnqueueIndex{Index: index})
	case char == 'c':
		u.app.Dispatch(domain.ClearQueue{})
	case char == '+' || char == '=':
		u.app.Dispatch(domain.SetVolume{Percent: u.app.Controller().Volume() + 5})
	case char == '-':
		u.app.Dispatch(domain.SetVolume{Percent: u.app.Controller().Volume() - 5})
	case char >= '1' && char <= '9':
		u.app.Dispatch(domain.PlayIndex{Index: int(char - '1')})
	case char == 'x':
		u.app.Dispatch(domain.Rescan{})
	case char == 'w':
		u.app.Dispatch(domain.SaveState{})
	case char == '?':
		u.printHelp()
	case char == 'l':
		u.printView()
	}
}

// subscribe wires the bus events this frontend renders.
func (u *UI) subscribe() {
	bus := u.app.Bus()
	u.subs = append(u.subs,
		bus.Subscribe(domain.EventTrackStarted, func(event domain.Event) {
			e := event.(domain.TrackStartedEvent)
			fmt.Printf("\r▶ %s | %s\n", e.Song.DisplayTitle(), e.Song.Album)
		}),
		bus.Subscribe(domain.EventTrackPaused, func(event domain.Event) {
			e := event.(domain.TrackPausedEvent)
			fmt.Printf("\r⏸ %s at %s\n", e.Song.DisplayTitle(), formatDuration(e.Position))
		}),
		bus.Subscribe(domain.EventPlayerStopped, func(domain.Event) {
			fmt.Print("\r⏹ stopped\n")
		}),
		bus.Subscribe(domain.EventTrackProgress, func(event domain.Event) {
			e := event.(domain.TrackProgressEvent)
			fmt.Printf("\r  %s / %s ", formatDuration(e.Position), formatDuration(e.Length))
		}),
		bus.Subscribe(domain.EventShuffleToggled, func(event domain.Event) {
			e := event.(domain.ShuffleToggledEvent)
			fmt.Printf("\rshuffle %s\n", onOff(e.Enabled))
		}),
		bus.Subscribe(domain.EventRepeatChanged, func(event domain.Event) {
			e := event.(domain.RepeatChangedEvent)
			fmt.Printf("\rrepeat %s\n", e.Mode)
		}),
		bus.Subscribe(domain.EventVolumeChanged, func(event domain.Event) {
			e := event.(domain.VolumeChangedEvent)
			fmt.Printf("\rvolume %d%%\n", e.Percent)
		}),
		bus.Subscribe(domain.EventScanCompleted, func(event domain.Event) {
			e := event.(domain.ScanCompletedEvent)
			fmt.Printf("\rlibrary: %d songs in %s\n", e.Songs, e.Root)
		}),
		bus.Subscribe(domain.EventQueueUpdated, func(event domain.Event) {
			e := event.(domain.QueueUpdatedEvent)
			fmt.Printf("\rqueue: %d\n", len(e.Paths))
		}),
		bus.Subscribe(domain.EventFavoritesUpdated, func(event domain.Event) {
			e := event.(domain.FavoritesUpdatedEvent)
			fmt.Printf("\rfavorites: %d\n", len(e.Paths))
		}),
	)
}

func (u *UI) unsubscribe() {
	bus := u.app.Bus()
	for _, id := range u.subs {
		bus.Unsubscribe(id)
	}
	u.subs = nil
}

// printView lists the first songs of the current view.
func (u *UI) printView() {
	view := u.app.Catalog().View()
	fmt.Printf("\r%d songs:\n", len(view))
	for i, song := range view {
		if i >= 9 {
			fmt.Printf("  ... and %d more\n", len(view)-i)
			break
		}
		marker := " "
		if u.app.Favorites().Contains(song.Path) {
			marker = "*"
		}
		fmt.Printf("  %d%s %s\n", i+1, marker, song.DisplayTitle())
	}
}

func (u *UI) printHelp() {
	fmt.Print(strings.Join([]string{
		"BoombaFM",
		"  space  play/pause      n/b  next/previous",
		"  1-9    play song       s    shuffle",
		"  r      repeat mode     f    favorite current",
		"  e      enqueue current c    clear queue",
		"  +/-    volume          x    rescan",
		"  l      list view       w    save now",
		"  q/Esc  quit",
		"",
	}, "\n"))
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", m, s)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
