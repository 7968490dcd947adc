package agari_test

import (
	"testing"

	"riichiengine/agari"
	"riichiengine/hand"
	"riichiengine/tile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tilesOf(s ...string) []tile.Tile {
	out := make([]tile.Tile, 0, len(s))
	for _, x := range s {
		out = append(out, tile.MustParse(x))
	}
	return out
}

func TestPinfuRonThirtyFu(t *testing.T) {
	h, akas := hand.FromTiles(tilesOf(
		"2m", "3m", "4m",
		"4p", "5p", "6p",
		"2s", "3s", "4s",
		"5s", "6s", "7s",
		"9m", "9m",
	))
	ctx := agari.Context{
		Hand: h, Akas: akas,
		WinTile: tile.Man2, // completed the 2m-3m-4m run via ryanmen
		Ron:     true,
		Bakaze:  tile.East, Jikaze: tile.South,
		Rules: agari.DefaultRuleSet(),
	}
	res, err := agari.ScoreAgari(ctx)
	require.NoError(t, err)
	assert.Equal(t, 30, res.Fu)
	assert.Equal(t, 1, res.Han) // pinfu alone; 9m9m pair blocks tanyao
}

func TestPinfuTsumoTwentyFu(t *testing.T) {
	h, akas := hand.FromTiles(tilesOf(
		"2m", "3m", "4m",
		"4p", "5p", "6p",
		"2s", "3s", "4s",
		"5s", "6s", "7s",
		"2p", "2p",
	))
	ctx := agari.Context{
		Hand: h, Akas: akas,
		WinTile: tile.Man2,
		Tsumo:   true,
		Bakaze:  tile.East, Jikaze: tile.South,
		Rules: agari.DefaultRuleSet(),
	}
	res, err := agari.ScoreAgari(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, res.Fu)
}

func TestChiitoitsuTwentyFiveFu(t *testing.T) {
	h, akas := hand.FromTiles(tilesOf(
		"1m", "1m", "3m", "3m", "5m", "5m",
		"7p", "7p", "2s", "2s", "4s", "4s", "6s", "6s",
	))
	ctx := agari.Context{
		Hand: h, Akas: akas,
		WinTile: tile.Sou6,
		Ron:     true,
		Rules:   agari.DefaultRuleSet(),
	}
	res, err := agari.ScoreAgari(ctx)
	require.NoError(t, err)
	assert.Equal(t, 25, res.Fu)
	assert.Equal(t, 2, res.Han)
}

func TestNoYakuErrors(t *testing.T) {
	// All-sequence hand with a yakuhai pair and no menzen tsumo/riichi/
	// pinfu/tanyao: 1m, 9s and E break tanyao, no riichi declared, ron on a
	// kanchan wait so pinfu is impossible — no yaku should apply.
	h, akas := hand.FromTiles(tilesOf(
		"1m", "2m", "3m",
		"4p", "5p", "6p",
		"2s", "3s", "4s",
		"7s", "8s", "9s",
		"E", "E",
	))
	ctx := agari.Context{
		Hand: h, Akas: akas,
		WinTile: tile.Sou8,
		Ron:     true,
		Bakaze:  tile.East, Jikaze: tile.South,
		Rules: agari.DefaultRuleSet(),
	}
	_, err := agari.ScoreAgari(ctx)
	assert.ErrorIs(t, err, agari.ErrNoYaku)
}

func TestKokushiYakuman(t *testing.T) {
	h, akas := hand.FromTiles(tilesOf(
		"1m", "9m", "1p", "9p", "1s", "9s",
		"E", "S", "W", "N", "P", "F", "C", "C",
	))
	ctx := agari.Context{
		Hand: h, Akas: akas,
		WinTile: tile.Red,
		Ron:     true,
		Rules:   agari.DefaultRuleSet(),
	}
	res, err := agari.ScoreAgari(ctx)
	require.NoError(t, err)
	assert.Equal(t, 32000, res.Points.Ron)
}
