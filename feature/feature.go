// Package feature encodes a reconstructed PlayerState into a flat
// float32 observation vector suitable for a machine-learning training
// pipeline, in the spirit of Mortal's obs encoder: one fixed-width
// vector per decision point, channels grouped by concern (hand, visible
// tiles, round state, legal actions) rather than one sparse one-hot per
// tile-suit-number combination.
package feature

import (
	"riichiengine/state"
	"riichiengine/tile"
)

const (
	tehaiOffset     = 0
	doraFactorOff   = tehaiOffset + tile.NumTiles
	waitsOff        = doraFactorOff + tile.NumTiles
	discardedOff    = waitsOff + tile.NumTiles
	forbiddenOff    = discardedOff + tile.NumTiles
	scalarOff       = forbiddenOff + tile.NumTiles
	scalarCount     = 13 // see Encode's scalar block below
	candidatesOff   = scalarOff + scalarCount
	candidateCount  = 11

	// Dim is the fixed width of every vector Encode returns.
	Dim = candidatesOff + candidateCount
)

// Encode flattens the tracked seat's current derived state into a
// Dim-length vector. It never allocates beyond the one returned slice.
func Encode(s *state.PlayerState) []float32 {
	v := make([]float32, Dim)

	tehai := s.Tehai
	for t := 0; t < tile.NumTiles; t++ {
		v[tehaiOffset+t] = float32(tehai[t])
		v[doraFactorOff+t] = float32(s.DoraFactor[t])
		if s.Waits[t] {
			v[waitsOff+t] = 1
		}
		if s.DiscardedTiles[t] {
			v[discardedOff+t] = 1
		}
		if s.ForbiddenTiles[t] {
			v[forbiddenOff+t] = 1
		}
	}

	permanent, temporary, riichi, any := s.Furiten()
	scalars := [scalarCount]float32{
		float32(s.Shanten),
		boolF(permanent),
		boolF(temporary),
		boolF(riichi),
		boolF(any),
		boolF(s.IsMenzen),
		boolF(s.AtIppatsu),
		boolF(s.AtRinshan),
		boolF(s.Seats[0].RiichiAccepted),
		float32(s.Kyoku),
		float32(s.Honba),
		float32(s.Kyotaku),
		float32(s.TilesLeft),
	}
	copy(v[scalarOff:], scalars[:])

	c := s.LastCans
	cands := [candidateCount]float32{
		boolF(c.CanDiscard), boolF(c.CanChiLow), boolF(c.CanChiMid), boolF(c.CanChiHigh),
		boolF(c.CanPon), boolF(c.CanDaiminkan), boolF(c.CanAnkan), boolF(c.CanKakan),
		boolF(c.CanRiichi), boolF(c.CanTsumoAgari), boolF(c.CanRonAgari),
	}
	copy(v[candidatesOff:], cands[:])

	return v
}

func boolF(b bool) float32 {
	if b {
		return 1
	}
	return 0
}
