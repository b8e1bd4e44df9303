package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boombafm/boombafm/internal/domain"
)

func entry(path string) domain.PlaylistEntry {
	return domain.PlaylistEntry{Path: path, Title: path}
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	s := NewPlaylistStore(nil)
	require.NoError(t, s.Create("road trip"))
	assert.ErrorIs(t, s.Create("road trip"), domain.ErrDuplicateName)
	assert.Equal(t, []string{"road trip"}, s.Names())
}

func TestAddSongIsIdempotentPerPath(t *testing.T) {
	s := NewPlaylistStore(nil)
	require.NoError(t, s.Create("mix"))

	require.NoError(t, s.AddSong("mix", entry("/m/a.mp3")))
	err := s.AddSong("mix", entry("/m/a.mp3"))
	assert.ErrorIs(t, err, domain.ErrAlreadyPresent)

	list, ok := s.Get("mix")
	require.True(t, ok)
	assert.Len(t, list.Entries, 1)
}

func TestAddSongToUnknownPlaylist(t *testing.T) {
	s := NewPlaylistStore(nil)
	assert.ErrorIs(t, s.AddSong("nope", entry("/m/a.mp3")), domain.ErrPlaylistNotFound)
}

func TestAddSongKeepsOrder(t *testing.T) {
	s := NewPlaylistStore(nil)
	require.NoError(t, s.Create("mix"))
	require.NoError(t, s.AddSong("mix", entry("/m/c.mp3")))
	require.NoError(t, s.AddSong("mix", entry("/m/a.mp3")))
	require.NoError(t, s.AddSong("mix", entry("/m/b.mp3")))

	list, _ := s.Get("mix")
	paths := make([]string, len(list.Entries))
	for i, e := range list.Entries {
		paths[i] = e.Path
	}
	assert.Equal(t, []string{"/m/c.mp3", "/m/a.mp3", "/m/b.mp3"}, paths)
}

func TestRemoveAt(t *testing.T) {
	s := NewPlaylistStore(nil)
	require.NoError(t, s.Create("mix"))
	require.NoError(t, s.AddSong("mix", entry("/m/a.mp3")))
	require.NoError(t, s.AddSong("mix", entry("/m/b.mp3")))

	assert.ErrorIs(t, s.RemoveAt("mix", 5), domain.ErrIndexOutOfRange)
	assert.ErrorIs(t, s.RemoveAt("mix", -1), domain.ErrIndexOutOfRange)
	require.NoError(t, s.RemoveAt("mix", 0))

	list, _ := s.Get("mix")
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "/m/b.mp3", list.Entries[0].Path)
}

func TestRenamePreservesContentsAndActive(t *testing.T) {
	s := NewPlaylistStore(nil)
	require.NoError(t, s.Create("old"))
	require.NoError(t, s.AddSong("old", entry("/m/a.mp3")))
	s.SetActive("old")

	require.NoError(t, s.Rename("old", "new"))

	_, gone := s.Get("old")
	assert.False(t, gone)
	list, ok := s.Get("new")
	require.True(t, ok)
	assert.Len(t, list.Entries, 1)
	assert.Equal(t, "new", s.Active())
}

func TestRenameErrors(t *testing.T) {
	s := NewPlaylistStore(nil)
	require.NoError(t, s.Create("a"))
	require.NoError(t, s.Create("b"))

	assert.ErrorIs(t, s.Rename("missing", "c"), domain.ErrPlaylistNotFound)
	assert.ErrorIs(t, s.Rename("a", "b"), domain.ErrDuplicateName)
	assert.NoError(t, s.Rename("a", "a")) // rename to self is fine
}

func TestDeleteClearsActiveSelection(t *testing.T) {
	s := NewPlaylistStore(nil)
	require.NoError(t, s.Create("gone"))
	s.SetActive("gone")

	require.NoError(t, s.Delete("gone"))
	assert.Empty(t, s.Active())
	assert.ErrorIs(t, s.Delete("gone"), domain.ErrPlaylistNotFound)
}

func TestSetActiveUnknownClears(t *testing.T) {
	s := NewPlaylistStore(nil)
	require.NoError(t, s.Create("a"))
	s.SetActive("a")
	s.SetActive("nope")
	assert.Empty(t, s.Active())
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s := NewPlaylistStore(nil)
	require.NoError(t, s.Create("beta"))
	require.NoError(t, s.Create("alpha"))
	require.NoError(t, s.AddSong("beta", entry("/m/a.mp3")))

	snap := s.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "alpha", snap[0].Name) // name order

	restored := NewPlaylistStore(nil)
	restored.Restore(snap)
	assert.Equal(t, []string{"alpha", "beta"}, restored.Names())
	list, ok := restored.Get("beta")
	require.True(t, ok)
	assert.Len(t, list.Entries, 1)
}

func TestSnapshotIsDetached(t *testing.T) {
	s := NewPlaylistStore(nil)
	require.NoError(t, s.Create("mix"))
	require.NoError(t, s.AddSong("mix", entry("/m/a.mp3")))

	snap := s.Snapshot()
	snap[0].Entries[0].Path = "/mutated"

	list, _ := s.Get("mix")
	assert.Equal(t, "/m/a.mp3", list.Entries[0].Path)
}

func TestRestoreDropsDuplicateNames(t *testing.T) {
	s := NewPlaylistStore(nil)
	s.Restore([]domain.Playlist{
		{Name: "mix", Entries: []domain.PlaylistEntry{entry("/m/first.mp3")}},
		{Name: "mix", Entries: []domain.PlaylistEntry{entry("/m/second.mp3")}},
	})

	list, ok := s.Get("mix")
	require.True(t, ok)
	require.Len(t, list.Entries, 1)
	assert.Equal(t, "/m/first.mp3", list.Entries[0].Path)
}
