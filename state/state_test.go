package state_test

import (
	"testing"

	"riichiengine/agari"
	"riichiengine/mjai"
	"riichiengine/state"
	"riichiengine/tile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHand(t *testing.T, toks []string) [13]tile.Tile {
	t.Helper()
	require.Len(t, toks, 13)
	var out [13]tile.Tile
	for i, s := range toks {
		out[i] = tile.MustParse(s)
	}
	return out
}

func blankHand() [13]tile.Tile {
	var out [13]tile.Tile
	for i := range out {
		out[i] = tile.Tile{ID: tile.Unknown}
	}
	return out
}

func startKyokuFor(t *testing.T, s *state.PlayerState, selfAbsSeat int, oyaAbsSeat int, selfHand [13]tile.Tile, doraMarker string) {
	t.Helper()
	ev := mjai.Event{
		Type: mjai.TypeStartKyoku,
		StartKyoku: &mjai.StartKyoku{
			Bakaze:     tile.East,
			Oya:        oyaAbsSeat,
			Scores:     [4]int{25000, 25000, 25000, 25000},
			DoraMarker: tile.MustParse(doraMarker),
		},
	}
	for seat := 0; seat < 4; seat++ {
		if seat == selfAbsSeat {
			ev.StartKyoku.Tehais[seat] = selfHand
		} else {
			ev.StartKyoku.Tehais[seat] = blankHand()
		}
	}
	s.Update(ev)
}

// TestFuritenTransitions walks spec.md §8 scenario 2: a three-sided
// wait opens, a missed ron converts into temporary furiten, and the
// seat's own next draw clears it.
func TestFuritenTransitions(t *testing.T) {
	s := state.New(0, agari.DefaultRuleSet())
	hand := mustHand(t, []string{
		"2m", "3m", "4m", "0m", "6m",
		"4p", "5p", "6p", "7p", "8p", "9p",
		"5s", "8s",
	})
	startKyokuFor(t, s, 0, 0, hand, "1s")

	s.Update(mjai.Event{Type: mjai.TypeTsumo, Tsumo: &mjai.Tsumo{Actor: 0, Pai: tile.MustParse("8s")}})
	s.Update(mjai.Event{Type: mjai.TypeDahai, Dahai: &mjai.Dahai{Actor: 0, Pai: tile.MustParse("5s")}})

	require.Equal(t, 0, s.Shanten)
	waits := s.WaitTiles()
	assert.Contains(t, waits, tile.Man1)
	assert.Contains(t, waits, tile.Man4)
	assert.Contains(t, waits, tile.Man7)
	assert.False(t, s.AtFuriten)

	cans := s.Update(mjai.Event{Type: mjai.TypeDahai, Dahai: &mjai.Dahai{Actor: 1, Pai: tile.MustParse("1m")}})
	assert.True(t, cans.CanRonAgari)
	assert.False(t, s.AtFuriten)

	s.Update(mjai.Event{Type: mjai.TypeTsumo, Tsumo: &mjai.Tsumo{Actor: 2, Pai: tile.MustParse("9m")}})
	assert.True(t, s.AtFuriten)

	s.Update(mjai.Event{Type: mjai.TypeDahai, Dahai: &mjai.Dahai{Actor: 2, Pai: tile.MustParse("9m")}})
	s.Update(mjai.Event{Type: mjai.TypeTsumo, Tsumo: &mjai.Tsumo{Actor: 3, Pai: tile.MustParse("9p")}})
	s.Update(mjai.Event{Type: mjai.TypeDahai, Dahai: &mjai.Dahai{Actor: 3, Pai: tile.MustParse("9p")}})
	s.Update(mjai.Event{Type: mjai.TypeTsumo, Tsumo: &mjai.Tsumo{Actor: 0, Pai: tile.MustParse("3s")}})
	assert.False(t, s.AtFuriten)
}

// TestPermanentRiichiFuritenViaMinogashi walks scenario 3: declining a
// tsumo-legal win after riichi latches furiten for the rest of the hand.
func TestPermanentRiichiFuritenViaMinogashi(t *testing.T) {
	s := state.New(0, agari.DefaultRuleSet())
	hand := mustHand(t, []string{
		"2m", "3m", "4m", "0m", "6m",
		"4p", "5p", "6p", "7p", "8p", "9p",
		"8s", "8s",
	})
	startKyokuFor(t, s, 0, 0, hand, "9p")

	s.Update(mjai.Event{Type: mjai.TypeTsumo, Tsumo: &mjai.Tsumo{Actor: 0, Pai: tile.MustParse("9s")}})
	s.Update(mjai.Event{Type: mjai.TypeReach, Reach: &mjai.Reach{Actor: 0}})
	s.Update(mjai.Event{Type: mjai.TypeDahai, Dahai: &mjai.Dahai{Actor: 0, Pai: tile.MustParse("9s"), Tsumogiri: true}})
	s.Update(mjai.Event{Type: mjai.TypeReachAccepted, Reach: &mjai.Reach{Actor: 0, Accepted: true}})

	require.Equal(t, 0, s.Shanten)
	waits := s.WaitTiles()
	assert.Contains(t, waits, tile.Man1)
	assert.Contains(t, waits, tile.Man4)
	assert.Contains(t, waits, tile.Man7)

	s.Update(mjai.Event{Type: mjai.TypeDahai, Dahai: &mjai.Dahai{Actor: 1, Pai: tile.MustParse("2m")}})
	s.Update(mjai.Event{Type: mjai.TypeDahai, Dahai: &mjai.Dahai{Actor: 2, Pai: tile.MustParse("2m")}})

	cans := s.Update(mjai.Event{Type: mjai.TypeTsumo, Tsumo: &mjai.Tsumo{Actor: 0, Pai: tile.MustParse("1m")}})
	assert.True(t, cans.CanTsumoAgari)

	s.Update(mjai.Event{Type: mjai.TypeDahai, Dahai: &mjai.Dahai{Actor: 0, Pai: tile.MustParse("1m"), Tsumogiri: true}})
	assert.True(t, s.AtFuriten)

	cans = s.Update(mjai.Event{Type: mjai.TypeDahai, Dahai: &mjai.Dahai{Actor: 1, Pai: tile.MustParse("4m")}})
	assert.False(t, cans.CanRonAgari)
	assert.True(t, s.AtFuriten)
}

// TestKakanOpensChankanRon walks scenario 5: a kakan by another seat
// opens a one-event chankan window for a tanki-wait hand.
func TestKakanOpensChankanRon(t *testing.T) {
	s := state.New(2, agari.DefaultRuleSet())
	hand := mustHand(t, []string{
		"3m", "4m", "5m",
		"3p", "4p", "5p",
		"3s", "4s", "5s", "6s", "7s", "8s",
		"2m",
	})
	startKyokuFor(t, s, 2, 0, hand, "9p")
	require.Equal(t, 0, s.Shanten)

	cans := s.Update(mjai.Event{
		Type: mjai.TypeKakan,
		Kakan: &mjai.Kakan{
			Actor:    3,
			Pai:      tile.MustParse("2m"),
			Consumed: [3]tile.Tile{tile.MustParse("2m"), tile.MustParse("2m"), tile.MustParse("2m")},
		},
	})
	assert.True(t, cans.CanRonAgari)

	res, err := s.AgariPoints(true, nil)
	require.NoError(t, err)
	assert.Greater(t, res.Points.Ron, 0)
}

// TestRankTieBreaks walks scenario 6's four tie-break cases directly
// against the rotated-score rank formula.
func TestRankTieBreaks(t *testing.T) {
	s := state.New(0, agari.DefaultRuleSet())
	startKyokuFor(t, s, 0, 0, blankHand(), "1m")
	s.Scores = [4]int{20000, 25000, 25000, 30000}
	assert.Equal(t, 3, s.Rank())

	s2 := state.New(3, agari.DefaultRuleSet())
	startKyokuFor(t, s2, 3, 0, blankHand(), "1m")
	s2.Scores = [4]int{25000, 25000, 25000, 25000}
	assert.Equal(t, 3, s2.Rank())

	s3 := state.New(1, agari.DefaultRuleSet())
	startKyokuFor(t, s3, 1, 0, blankHand(), "1m")
	s3.Scores = [4]int{32000, 32000, 18000, 18000}
	assert.Equal(t, 0, s3.Rank())

	s4 := state.New(2, agari.DefaultRuleSet())
	startKyokuFor(t, s4, 2, 0, blankHand(), "1m")
	s4.Scores = [4]int{32000, 18000, 18000, 32000}
	assert.Equal(t, 1, s4.Rank())
}
