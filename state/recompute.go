package state

import (
	"riichiengine/hand"
	"riichiengine/mjai"
	"riichiengine/shanten"
	"riichiengine/tile"
)

// calledMelds is the "m" input shanten.All and shanten.Waits expect:
// every self meld group that sits outside the closed 34-count hand,
// chi/pon/daiminkan/kakan and concealed ankan alike.
func (s *PlayerState) calledMelds() int {
	return s.openMeldsCount + len(s.Seats[0].Ankan)
}

// recompute runs the fixed four-step pipeline spec.md §4.3 mandates
// after every event's structural effect has been applied.
func (s *PlayerState) recompute(ev mjai.Event) {
	s.updateShanten()
	s.updateWaitsAndFuriten()
	s.updateDiscardCandidates()
	s.updateActionCandidates(ev)
}

func (s *PlayerState) updateShanten() {
	s.Shanten = shanten.All(s.Tehai, s.calledMelds())
}

func (s *PlayerState) updateWaitsAndFuriten() {
	if s.Shanten == 0 {
		s.Waits = shanten.Waits(s.Tehai, s.calledMelds())
	} else {
		for i := range s.Waits {
			s.Waits[i] = false
		}
	}

	permanent := false
	for t := 0; t < tile.NumTiles; t++ {
		if s.Waits[t] && s.DiscardedTiles[t] {
			permanent = true
			break
		}
	}
	s.AtFuriten = permanent || s.tempFuritenActive || s.riichiFuritenLatched
}

// updateDiscardCandidates fills KeepShantenDiscards and
// NextShantenDiscards by simulating every possible discard. It only
// produces meaningful results while awaitingDiscard; otherwise every
// entry is left false, matching a hand that cannot discard right now.
func (s *PlayerState) updateDiscardCandidates() {
	for i := range s.KeepShantenDiscards {
		s.KeepShantenDiscards[i] = false
		s.NextShantenDiscards[i] = false
	}
	if !s.awaitingDiscard {
		return
	}

	melds := s.calledMelds()
	best := 8
	results := [tile.NumTiles]int{}
	for t := 0; t < tile.NumTiles; t++ {
		if s.Tehai[t] == 0 || s.ForbiddenTiles[t] {
			results[t] = -1
			continue
		}
		s.Tehai[t]--
		sh := shanten.All(s.Tehai, melds)
		s.Tehai[t]++
		results[t] = sh
		if sh < best {
			best = sh
		}
	}
	for t := 0; t < tile.NumTiles; t++ {
		if results[t] < 0 {
			continue
		}
		if results[t] == best {
			s.KeepShantenDiscards[t] = true
		}
		if results[t] == 0 {
			s.NextShantenDiscards[t] = true
		}
	}
}

func (s *PlayerState) recomputeDoraFactor() {
	for i := range s.DoraFactor {
		s.DoraFactor[i] = 0
	}
	for _, ind := range s.DoraIndicators {
		s.DoraFactor[ind.Next()]++
	}
}

func (s *PlayerState) recomputeDorasOwned() {
	for seat := range s.Seats {
		owned := 0
		for _, m := range s.Seats[seat].Fuuro {
			for _, id := range m.BaseIDs() {
				owned += s.DoraFactor[id]
			}
		}
		for _, id := range s.Seats[seat].Ankan {
			owned += 4 * s.DoraFactor[id]
		}
		if seat == 0 {
			for t := 0; t < tile.NumTiles; t++ {
				owned += int(s.Tehai[t]) * s.DoraFactor[t]
			}
			owned += s.Akas.Count()
		}
		s.Seats[seat].DorasOwned = owned
	}

	seen := 0
	for t := 0; t < tile.NumTiles; t++ {
		seen += s.TilesSeen[t] * s.DoraFactor[t]
	}
	s.DorasSeen = seen
}

// computeKuikaeForbidden fills ForbiddenTiles after self calls a chi,
// per spec.md §4.3: the called tile itself, and the other tile that
// would complete the identical run shape, may not be discarded
// immediately (swap-calling prohibition).
func (s *PlayerState) computeKuikaeForbidden(kind hand.MeldKind, ev *mjai.CallMeld) {
	for i := range s.ForbiddenTiles {
		s.ForbiddenTiles[i] = false
	}
	if kind != hand.Chi {
		return
	}
	called := ev.Pai.Deaka()
	if !called.IsNumbered() {
		return
	}
	ids := make([]tile.ID, 0, len(ev.Consumed)+1)
	ids = append(ids, called)
	for _, t := range ev.Consumed {
		ids = append(ids, t.Deaka())
	}
	low := ids[0]
	for _, id := range ids {
		if id < low {
			low = id
		}
	}
	n := called.Number()
	base := called - tile.ID(n-1)
	lowNum := low.Number()

	s.ForbiddenTiles[called] = true
	switch n - lowNum {
	case 0: // called the low end of the run: x,x+1,x+2 called on x -> also forbid x+3
		if lowNum+3 <= 9 {
			s.ForbiddenTiles[base+tile.ID(lowNum+2)] = true
		}
	case 2: // called the high end: x,x+1,x+2 called on x+2 -> also forbid x-1
		if lowNum-1 >= 1 {
			s.ForbiddenTiles[base+tile.ID(lowNum-2)] = true
		}
	}
}
