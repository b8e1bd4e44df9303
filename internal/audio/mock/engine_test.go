package mock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boombafm/boombafm/internal/domain"
)

func TestLoadPlayPauseCycle(t *testing.T) {
	e := NewEngine()

	require.NoError(t, e.Load("/m/a.mp3"))
	assert.False(t, e.IsPlaying())

	require.NoError(t, e.Play())
	assert.True(t, e.IsPlaying())

	require.NoError(t, e.Pause())
	assert.False(t, e.IsPlaying())
}

func TestPlayWithoutLoadFails(t *testing.T) {
	e := NewEngine()
	assert.ErrorIs(t, e.Play(), domain.ErrMissingMedia)
}

func TestScriptedLoadFailure(t *testing.T) {
	e := NewEngine()
	e.FailLoad["/m/bad.mp3"] = domain.ErrMissingMedia

	err := e.Load("/m/bad.mp3")
	assert.ErrorIs(t, err, domain.ErrMissingMedia)
	assert.Empty(t, e.CurrentPath())
	assert.Equal(t, []string{"/m/bad.mp3"}, e.Loads()) // attempt is still recorded
}

func TestScriptedLengths(t *testing.T) {
	e := NewEngine()
	e.Lengths["/m/long.mp3"] = 10 * time.Minute
	e.Lengths["/m/unknown.mp3"] = 0

	assert.Zero(t, e.Length()) // nothing loaded

	require.NoError(t, e.Load("/m/long.mp3"))
	assert.Equal(t, 10*time.Minute, e.Length())

	require.NoError(t, e.Load("/m/unknown.mp3"))
	assert.Zero(t, e.Length())

	require.NoError(t, e.Load("/m/other.mp3"))
	assert.Equal(t, defaultLength, e.Length())
}

func TestLoadResetsPosition(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Load("/m/a.mp3"))
	require.NoError(t, e.SetTime(time.Minute))
	require.NoError(t, e.Load("/m/b.mp3"))
	assert.Zero(t, e.Time())
}

func TestFinishTrackInvokesCallback(t *testing.T) {
	e := NewEngine()
	require.NoError(t, e.Load("/m/a.mp3"))
	require.NoError(t, e.Play())

	var fired bool
	e.SetTrackEndCallback(func() { fired = true })
	e.FinishTrack()

	assert.True(t, fired)
	assert.False(t, e.IsPlaying())
}

func TestFinishTrackWithoutCallbackIsSafe(t *testing.T) {
	e := NewEngine()
	assert.NotPanics(t, e.FinishTrack)
}
