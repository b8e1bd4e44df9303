package app

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boombafm/boombafm/internal/audio/mock"
	"github.com/boombafm/boombafm/internal/domain"
	"github.com/boombafm/boombafm/internal/eventbus"
	"github.com/boombafm/boombafm/internal/logger"
	"github.com/boombafm/boombafm/internal/persist"
	"github.com/boombafm/boombafm/internal/tagreader"
	"github.com/boombafm/boombafm/internal/testutil"
)

// harness runs a full application over a temp library with mock audio.
type harness struct {
	app    *App
	engine *mock.Engine
	state  string
	events chan domain.Event
	done   chan error
}

func newHarness(t *testing.T, musicDir, stateFile string) *harness {
	t.Helper()
	log := logger.NewTestLogger()
	bus := eventbus.NewSyncBus(log)
	engine := mock.NewEngine()

	cfg := Config{
		MusicDir:         musicDir,
		StateFile:        stateFile,
		WatchDir:         false,
		ProgressInterval: 10 * time.Millisecond,
		SaveInterval:     time.Hour, // only explicit saves in tests
		DebounceInterval: time.Hour,
	}

	h := &harness{
		engine: engine,
		state:  stateFile,
		events: make(chan domain.Event, 256),
		done:   make(chan error, 1),
	}
	bus.SubscribeAll(func(event domain.Event) {
		select {
		case h.events <- event:
		default:
		}
	})

	h.app = New(log, cfg, bus, engine, persist.NewFileStore(log, stateFile), tagreader.New())
	return h
}

func (h *harness) start(t *testing.T) {
	t.Helper()
	go func() { h.done <- h.app.Run() }()
	h.waitEvent(t, domain.EventScanCompleted)
}

func (h *harness) stop(t *testing.T) {
	t.Helper()
	h.app.Dispatch(domain.Quit{})
	select {
	case err := <-h.done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("application did not shut down")
	}
}

func (h *harness) waitEvent(t *testing.T, et domain.EventType) domain.Event {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case e := <-h.events:
			if e.Type() == et {
				return e
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s", et)
			return nil
		}
	}
}

func makeLibrary(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("fake audio"), 0o644))
	}
	return dir
}

func TestScanPlaySaveQuit(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	music := makeLibrary(t, "one.mp3", "two.mp3")
	state := filepath.Join(t.TempDir(), "state.json")
	h := newHarness(t, music, state)
	h.start(t)

	h.app.Dispatch(domain.PlayIndex{Index: 0})
	started := h.waitEvent(t, domain.EventTrackStarted).(domain.TrackStartedEvent)
	assert.Equal(t, "one", started.Song.Title) // filename stem, tags unreadable

	h.app.Dispatch(domain.ToggleFavorite{Index: 0})
	h.waitEvent(t, domain.EventFavoritesUpdated)

	h.stop(t)

	// Shutdown persisted everything.
	raw, err := os.ReadFile(state)
	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	settings := decoded["settings"].(map[string]any)
	assert.Len(t, settings["favorites"], 1)
	assert.Len(t, settings["play_counts"], 1)
}

func TestTrackEndBridgeAdvancesPlayback(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	music := makeLibrary(t, "a.mp3", "b.mp3")
	h := newHarness(t, music, filepath.Join(t.TempDir(), "state.json"))
	h.start(t)

	h.app.Dispatch(domain.PlayIndex{Index: 0})
	h.waitEvent(t, domain.EventTrackStarted)

	// The engine callback becomes a command on the control loop.
	h.engine.FinishTrack()
	next := h.waitEvent(t, domain.EventTrackStarted).(domain.TrackStartedEvent)
	assert.Equal(t, 1, next.Index)

	h.stop(t)
}

func TestProgressEventsWhilePlaying(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	music := makeLibrary(t, "a.mp3")
	h := newHarness(t, music, filepath.Join(t.TempDir(), "state.json"))
	h.start(t)

	h.app.Dispatch(domain.PlayIndex{Index: 0})
	h.waitEvent(t, domain.EventTrackStarted)

	progress := h.waitEvent(t, domain.EventTrackProgress).(domain.TrackProgressEvent)
	assert.Greater(t, progress.Length, time.Duration(0))

	h.stop(t)
}

func TestStateRestoredAcrossRuns(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	music := makeLibrary(t, "a.mp3", "b.mp3")
	state := filepath.Join(t.TempDir(), "state.json")

	first := newHarness(t, music, state)
	first.start(t)
	first.app.Dispatch(domain.ToggleFavorite{Index: 1})
	first.waitEvent(t, domain.EventFavoritesUpdated)
	first.app.Dispatch(domain.SetVolume{Percent: 35})
	first.waitEvent(t, domain.EventVolumeChanged)
	first.stop(t)

	second := newHarness(t, music, state)
	go func() { second.done <- second.app.Run() }()

	// Restore replays the persisted settings as events before the loop runs.
	favs := second.waitEvent(t, domain.EventFavoritesUpdated).(domain.FavoritesUpdatedEvent)
	assert.Len(t, favs.Paths, 1)
	vol := second.waitEvent(t, domain.EventVolumeChanged).(domain.VolumeChangedEvent)
	assert.Equal(t, 35, vol.Percent)

	second.stop(t)
}

func TestCorruptStateFileIsNotClobberedWithoutMutation(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	music := makeLibrary(t, "a.mp3")
	state := filepath.Join(t.TempDir(), "state.json")
	corrupt := []byte(`{"playlists": [`)
	require.NoError(t, os.WriteFile(state, corrupt, 0o644))

	h := newHarness(t, music, state)
	h.start(t)
	h.stop(t) // no mutation happened

	raw, err := os.ReadFile(state)
	require.NoError(t, err)
	assert.Equal(t, corrupt, raw, "shutdown must not overwrite an unparsed state file")
}

func TestCorruptStateFileIsReplacedAfterMutation(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	music := makeLibrary(t, "a.mp3")
	state := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(state, []byte(`not json at all`), 0o644))

	h := newHarness(t, music, state)
	h.start(t)
	h.app.Dispatch(domain.ToggleFavorite{Index: 0})
	h.waitEvent(t, domain.EventFavoritesUpdated)
	h.stop(t)

	raw, err := os.ReadFile(state)
	require.NoError(t, err)
	var decoded map[string]any
	assert.NoError(t, json.Unmarshal(raw, &decoded))
}

func TestRescanCommandRebuildsCatalog(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	music := makeLibrary(t, "a.mp3")
	h := newHarness(t, music, filepath.Join(t.TempDir(), "state.json"))
	h.start(t)

	require.NoError(t, os.WriteFile(filepath.Join(music, "b.mp3"), []byte("fake audio"), 0o644))
	h.app.Dispatch(domain.Rescan{})

	scanned := h.waitEvent(t, domain.EventScanCompleted).(domain.ScanCompletedEvent)
	assert.Equal(t, 2, scanned.Songs)

	h.stop(t)
}

func TestPlaylistCreatedOnFirstAdd(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	music := makeLibrary(t, "a.mp3", "b.mp3")
	state := filepath.Join(t.TempDir(), "state.json")
	h := newHarness(t, music, state)
	h.start(t)

	h.app.Dispatch(domain.AddToPlaylist{Playlist: "mix", Index: 0})
	updated := h.waitEvent(t, domain.EventPlaylistsUpdated).(domain.PlaylistsUpdatedEvent)
	assert.Equal(t, []string{"mix"}, updated.Names)

	h.stop(t)

	raw, err := os.ReadFile(state)
	require.NoError(t, err)
	var decoded struct {
		Playlists []struct {
			Name  string `json:"name"`
			Songs []struct {
				File string `json:"file"`
			} `json:"songs"`
		} `json:"playlists"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Playlists, 1)
	assert.Len(t, decoded.Playlists[0].Songs, 1)
}

func TestMissingPlaylistEntriesAreKeptInert(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	music := makeLibrary(t, "a.mp3")
	state := filepath.Join(t.TempDir(), "state.json")

	persisted := `{
		"version": 1,
		"playlists": [{"name": "mix", "songs": [
			{"file": "` + filepath.Join(music, "a.mp3") + `", "title": "stale"},
			{"file": "/unplugged/drive/b.mp3", "title": "Gone For Now"}
		]}],
		"settings": {}
	}`
	require.NoError(t, os.WriteFile(state, []byte(persisted), 0o644))

	h := newHarness(t, music, state)
	h.start(t)
	h.waitEvent(t, domain.EventPlaylistsUpdated)
	h.stop(t)

	// The missing entry survived the run and the final save.
	raw, err := os.ReadFile(state)
	require.NoError(t, err)
	var decoded struct {
		Playlists []struct {
			Songs []struct {
				File  string `json:"file"`
				Title string `json:"title"`
			} `json:"songs"`
		} `json:"playlists"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Playlists, 1)
	require.Len(t, decoded.Playlists[0].Songs, 2)
	assert.Equal(t, "a", decoded.Playlists[0].Songs[0].Title) // refreshed from catalog
	assert.Equal(t, "Gone For Now", decoded.Playlists[0].Songs[1].Title)
}
