package shanten_test

import (
	"testing"

	"riichiengine/hand"
	"riichiengine/shanten"
	"riichiengine/tile"

	"github.com/stretchr/testify/assert"
)

func tilesOf(s ...string) []tile.Tile {
	out := make([]tile.Tile, 0, len(s))
	for _, x := range s {
		out = append(out, tile.MustParse(x))
	}
	return out
}

func waitSet(w [34]bool) map[tile.ID]bool {
	m := map[tile.ID]bool{}
	for i, v := range w {
		if v {
			m[tile.ID(i)] = true
		}
	}
	return m
}

func TestStandardWaits(t *testing.T) {
	h, _ := hand.FromTiles(tilesOf(
		"4m", "5m", "6m",
		"7p", "8p", "9p", "9p", "9p",
		"7s", "8s", "9s",
		"C", "C",
	))
	assert.Equal(t, 0, shanten.Standard(h, 0))

	got := waitSet(shanten.Waits(h, 0))
	want := map[tile.ID]bool{tile.Pin6: true, tile.Pin9: true, tile.Red: true}
	assert.Equal(t, want, got)
}

func TestNineGatesLikeWaits(t *testing.T) {
	h, _ := hand.FromTiles(tilesOf(
		"2s", "3s", "4s", "4s", "4s", "4s", "5s", "6s", "6s", "6s", "6s", "7s", "8s",
	))
	got := waitSet(shanten.Waits(h, 0))
	for _, w := range []tile.ID{tile.Sou1, tile.Sou2, tile.Sou3, tile.Sou5, tile.Sou7, tile.Sou8, tile.Sou9} {
		assert.True(t, got[w], "expected wait on %v", w)
	}
}

func TestShanponWaits(t *testing.T) {
	h, _ := hand.FromTiles(tilesOf(
		"1m", "2m", "3m",
		"4m", "5m", "6m",
		"7m", "8m", "9m",
		"1p", "1p", "2p", "2p",
	))
	assert.Equal(t, 0, shanten.Standard(h, 0))

	got := waitSet(shanten.Waits(h, 0))
	assert.Equal(t, map[tile.ID]bool{tile.Pin1: true, tile.Pin2: true}, got)
}

func TestKokushiShanten(t *testing.T) {
	h, _ := hand.FromTiles(tilesOf(
		"1m", "9m", "1p", "9p", "1s", "9s",
		"E", "S", "W", "N", "P", "F", "C",
	))
	assert.Equal(t, 0, shanten.All(h, 0))

	h[tile.Man1]++
	assert.True(t, shanten.IsAgari(h, 0))
}

func TestChiitoiShanten(t *testing.T) {
	h, _ := hand.FromTiles(tilesOf(
		"1m", "1m", "2m", "2m", "3m", "3m",
		"1p", "1p", "2p", "2p", "1s", "1s", "E",
	))
	assert.Equal(t, 0, shanten.All(h, 0))

	got := waitSet(shanten.Waits(h, 0))
	assert.Equal(t, map[tile.ID]bool{tile.East: true}, got)

	h[tile.East]++
	assert.True(t, shanten.IsAgari(h, 0))
}

func TestCalledMeldsExcludesSpecialHands(t *testing.T) {
	h, _ := hand.FromTiles(tilesOf(
		"1m", "9m", "1p", "9p", "1s", "9s",
		"E", "S", "W", "N", "P", "F", "C",
	))
	// With one meld already called, kokushi/chiitoi are off the table;
	// shanten must come from the standard kernel alone.
	assert.NotEqual(t, 0, shanten.All(h, 1))
}
