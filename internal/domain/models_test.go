package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepeatModeCycle(t *testing.T) {
	assert.Equal(t, RepeatAll, RepeatOff.Next())
	assert.Equal(t, RepeatOne, RepeatAll.Next())
	assert.Equal(t, RepeatOff, RepeatOne.Next())
}

func TestRepeatModeString(t *testing.T) {
	tests := []struct {
		mode RepeatMode
		want string
	}{
		{RepeatOff, "off"},
		{RepeatAll, "all"},
		{RepeatOne, "one"},
		{RepeatMode(42), "unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mode.String())
	}
}

func TestDisplayTitle(t *testing.T) {
	song := Song{Title: "Jammin", Artist: "Bob Marley"}
	assert.Equal(t, "Jammin - Bob Marley", song.DisplayTitle())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 70, s.Volume)
	assert.NotNil(t, s.Favorites)
	assert.NotNil(t, s.RecentPlays)
	assert.NotNil(t, s.PlayCounts)
	assert.Empty(t, s.Favorites)
}
