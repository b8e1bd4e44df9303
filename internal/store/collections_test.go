package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boombafm/boombafm/internal/domain"
)

func TestFavoriteToggleIsAnInvolution(t *testing.T) {
	f := NewFavorites(nil)

	assert.True(t, f.Toggle("/m/a.mp3"))
	assert.True(t, f.Contains("/m/a.mp3"))

	assert.False(t, f.Toggle("/m/a.mp3"))
	assert.False(t, f.Contains("/m/a.mp3"))
	assert.Empty(t, f.Paths())
}

func TestFavoritesKeepInsertionOrder(t *testing.T) {
	f := NewFavorites(nil)
	f.Toggle("/m/c.mp3")
	f.Toggle("/m/a.mp3")
	f.Toggle("/m/b.mp3")
	assert.Equal(t, []string{"/m/c.mp3", "/m/a.mp3", "/m/b.mp3"}, f.Paths())
}

func TestFavoritesRestoreDeduplicates(t *testing.T) {
	f := NewFavorites(nil)
	f.Restore([]string{"/m/a.mp3", "/m/b.mp3", "/m/a.mp3"})
	assert.Equal(t, []string{"/m/a.mp3", "/m/b.mp3"}, f.Paths())
}

func TestFavoritesClear(t *testing.T) {
	f := NewFavorites(nil)
	f.Toggle("/m/a.mp3")
	f.Clear()
	assert.Empty(t, f.Paths())
}

func TestQueueIsFIFO(t *testing.T) {
	q := NewQueue(nil)
	q.Push("/m/a.mp3")
	q.Push("/m/b.mp3")

	head, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, "/m/a.mp3", head)

	head, ok = q.Pop()
	require.True(t, ok)
	assert.Equal(t, "/m/b.mp3", head)

	_, ok = q.Pop()
	assert.False(t, ok)
}

func TestQueueAllowsDuplicates(t *testing.T) {
	q := NewQueue(nil)
	q.Push("/m/a.mp3")
	q.Push("/m/a.mp3")
	assert.Equal(t, 2, q.Len())
}

func TestQueueClear(t *testing.T) {
	q := NewQueue(nil)
	q.Push("/m/a.mp3")
	q.Clear()
	assert.Zero(t, q.Len())
	_, ok := q.Pop()
	assert.False(t, ok)
}

func TestRecentPlaysAreMostRecentFirst(t *testing.T) {
	r := NewRecentPlays()
	r.Push("/m/a.mp3")
	r.Push("/m/b.mp3")
	r.Push("/m/c.mp3")
	assert.Equal(t, []string{"/m/c.mp3", "/m/b.mp3", "/m/a.mp3"}, r.Paths())
}

func TestRecentPlaysReplayMovesToFront(t *testing.T) {
	r := NewRecentPlays()
	r.Push("/m/a.mp3")
	r.Push("/m/b.mp3")
	r.Push("/m/a.mp3")
	assert.Equal(t, []string{"/m/a.mp3", "/m/b.mp3"}, r.Paths())
}

func TestRecentPlaysEnforceTheLimit(t *testing.T) {
	r := NewRecentPlays()
	for i := 0; i < domain.RecentPlaysLimit+10; i++ {
		r.Push(fmt.Sprintf("/m/%03d.mp3", i))
	}

	paths := r.Paths()
	assert.Len(t, paths, domain.RecentPlaysLimit)
	// Newest survives, oldest fell off.
	assert.Equal(t, fmt.Sprintf("/m/%03d.mp3", domain.RecentPlaysLimit+9), paths[0])
	assert.NotContains(t, paths, "/m/000.mp3")
}

func TestRecentPlaysRestoreTrimsAndDeduplicates(t *testing.T) {
	r := NewRecentPlays()

	input := make([]string, 0, domain.RecentPlaysLimit+20)
	for i := 0; i < domain.RecentPlaysLimit+10; i++ {
		input = append(input, fmt.Sprintf("/m/%03d.mp3", i))
	}
	input = append(input, "/m/000.mp3") // duplicate

	r.Restore(input)
	assert.Len(t, r.Paths(), domain.RecentPlaysLimit)
}
