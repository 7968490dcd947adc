package tile_test

import (
	"testing"

	"riichiengine/tile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	cases := []string{"1m", "5m", "0m", "9p", "0s", "E", "S", "W", "N", "P", "F", "C", "?"}
	for _, s := range cases {
		tl, err := tile.Parse(s)
		require.NoError(t, err, s)
		assert.Equal(t, s, tl.String(), "round trip for %s", s)
	}
}

func TestParseErrors(t *testing.T) {
	for _, s := range []string{"", "5x", "10m", "EE", "5"} {
		_, err := tile.Parse(s)
		assert.Error(t, err, s)
	}
}

func TestDoraSuccessor(t *testing.T) {
	assert.Equal(t, tile.Man2, tile.Man1.Next())
	assert.Equal(t, tile.Man1, tile.Man9.Next())
	assert.Equal(t, tile.South, tile.East.Next())
	assert.Equal(t, tile.East, tile.North.Next())
	assert.Equal(t, tile.Green, tile.White.Next())
	assert.Equal(t, tile.White, tile.Red.Next())
}

func TestAkaDeaka(t *testing.T) {
	red5m := tile.MustParse("0m")
	assert.True(t, red5m.Aka)
	assert.Equal(t, tile.Man5, red5m.Deaka())
}

func TestIsTerminalOrHonor(t *testing.T) {
	assert.True(t, tile.Man1.IsTerminalOrHonor())
	assert.True(t, tile.East.IsTerminalOrHonor())
	assert.False(t, tile.Man5.IsTerminalOrHonor())
}
