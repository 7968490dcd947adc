package state

import (
	"errors"

	"riichiengine/agari"
	"riichiengine/hand"
	"riichiengine/shanten"
	"riichiengine/tile"
)

// ErrNotTenpai is returned by AgariPoints when there is no tile to win
// on: no pending discard or chankan tile for a ron, or no self draw for
// a tsumo. A hand that does not complete on the tile fails in
// agari.ScoreAgari instead.
var ErrNotTenpai = errors.New("state: hand is not complete on this tile")

// DiscardLegal reports whether discarding t right now is legal: the
// seat must be awaiting a discard, hold at least one copy, and t must
// not be in ForbiddenTiles (kuikae, or the lock after a reach).
func (s *PlayerState) DiscardLegal(t tile.ID) bool {
	return s.awaitingDiscard && s.Tehai[t] > 0 && !s.ForbiddenTiles[t]
}

// WaitTiles returns the tile ids that complete the tracked seat's hand
// at the current shanten (empty unless Shanten == 0).
func (s *PlayerState) WaitTiles() []tile.ID {
	var out []tile.ID
	for t := 0; t < tile.NumTiles; t++ {
		if s.Waits[t] {
			out = append(out, tile.ID(t))
		}
	}
	return out
}

// KanCandidates returns the tile ids an ankan or kakan is currently
// legal against (disjoint from LastCans.CanDaiminkan, which targets a
// specific called discard rather than the seat's own hand).
func (s *PlayerState) KanCandidates() (ankan, kakan []tile.ID) {
	if !s.awaitingDiscard {
		return nil, nil
	}
	for t := 0; t < tile.NumTiles; t++ {
		if s.Tehai[t] < 4 {
			continue
		}
		if s.Seats[0].RiichiAccepted {
			// same restriction as ankanOptions: the just-drawn 4th copy,
			// and waits unchanged by the kan
			if !s.HasLastSelfTsumo || s.LastSelfTsumo.ID != tile.ID(t) {
				continue
			}
			preDraw, afterKan := s.Tehai, s.Tehai
			preDraw[t]--
			afterKan[t] -= 4
			if shanten.Waits(preDraw, s.calledMelds()) != shanten.Waits(afterKan, s.calledMelds()+1) {
				continue
			}
		}
		ankan = append(ankan, tile.ID(t))
	}
	for _, m := range s.Seats[0].Fuuro {
		if m.Kind == hand.Pon && s.Tehai[m.TripletTile()] > 0 {
			kakan = append(kakan, m.TripletTile())
		}
	}
	return ankan, kakan
}

// Furiten reports the three furiten components plus the combined flag.
func (s *PlayerState) Furiten() (permanent, temporary, riichi, any bool) {
	permanent = false
	for t := 0; t < tile.NumTiles; t++ {
		if s.Waits[t] && s.DiscardedTiles[t] {
			permanent = true
			break
		}
	}
	return permanent, s.tempFuritenActive, s.riichiFuritenLatched, s.AtFuriten
}

// AgariPoints scores the tracked seat's current hand as a win, either
// tsumo (winTile is the last self draw) or ron (winTile is the pending
// call/chankan tile). uraMarkers is supplied by the caller only when
// riichi was accepted, matching spec.md §4.4 — the engine never derives
// them itself since they are secret until revealed at a riichi win.
func (s *PlayerState) AgariPoints(ron bool, uraMarkers []tile.ID) (agari.Result, error) {
	var winTile tile.ID
	var winAka bool
	var chankan bool

	if ron {
		t, _, aka, ok := s.ronOpportunity()
		if !ok {
			return agari.Result{}, ErrNotTenpai
		}
		winTile, winAka, chankan = t, aka, s.chankanOpen
	} else {
		if !s.HasLastSelfTsumo {
			return agari.Result{}, ErrNotTenpai
		}
		winTile, winAka = s.LastSelfTsumo.ID, s.LastSelfTsumo.Aka
	}

	ctx := s.buildAgariContext(!ron, winTile, chankan)
	ctx.WinTileAka = winAka
	if s.Seats[0].RiichiAccepted {
		ctx.UraIndicators = uraMarkers
	}
	return agari.ScoreAgari(ctx)
}
