package state

import (
	"riichiengine/agari"
	"riichiengine/hand"
	"riichiengine/mjai"
	"riichiengine/shanten"
	"riichiengine/tile"
)

// updateActionCandidates is the last step of the fixed recompute
// pipeline (spec.md §4.3): it populates LastCans for the tracked seat
// from the state every earlier step just derived.
func (s *PlayerState) updateActionCandidates(ev mjai.Event) {
	var c ActionCandidate

	c.CanDiscard = s.awaitingDiscard

	if s.pendingCall && s.pendingCallActor == 3 {
		c.CanChiLow, c.CanChiMid, c.CanChiHigh = s.chiOptions(s.pendingCallTile)
	}

	if s.pendingCall && s.pendingCallActor != 0 && !s.Seats[0].RiichiAccepted {
		if s.Tehai[s.pendingCallTile] >= 2 {
			c.CanPon = true
		}
		if s.Tehai[s.pendingCallTile] >= 3 && s.daiminkanAllowed() {
			c.CanDaiminkan = true
		}
	}

	if s.awaitingDiscard {
		c.CanAnkan = s.ankanOptions()
		c.CanKakan = s.kakanOptions()
	}

	if s.awaitingDiscard && s.IsMenzen && !s.Seats[0].RiichiAccepted &&
		s.Scores[0] >= 1000 && s.TilesLeft >= 4 {
		for t := 0; t < tile.NumTiles; t++ {
			if s.NextShantenDiscards[t] {
				c.CanRiichi = true
				break
			}
		}
	}

	if s.awaitingDiscard && s.HasLastSelfTsumo && s.Shanten == -1 {
		if _, err := agari.ScoreAgari(s.buildAgariContext(true, s.LastSelfTsumo.ID, false)); err == nil {
			c.CanTsumoAgari = true
		}
	}

	ronTile, ronActor, ronAka, ronnable := s.ronOpportunity()
	if ronnable && !s.AtFuriten {
		work := s.Tehai
		work[ronTile]++
		if shanten.IsAgari(work, s.calledMelds()) {
			ctx := s.buildAgariContext(false, ronTile, s.chankanOpen)
			ctx.WinTileAka = ronAka
			if _, err := agari.ScoreAgari(ctx); err == nil {
				c.CanRonAgari = true
			}
		}
	}
	if c.CanRonAgari {
		s.ronMissed = true
		s.ronMissedTile = ronTile
		s.ronMissedActor = ronActor
	}

	s.LastCans = c
}

// ronOpportunity reports the tile, actor, and aka-ness a ron would
// currently be claimed against: either the pending one-event call
// window opened by a discard, or a chankan window opened by a kakan.
func (s *PlayerState) ronOpportunity() (t tile.ID, actor int, aka bool, ok bool) {
	if s.chankanOpen {
		return s.chankanTile, s.chankanActor, s.chankanTileAka, true
	}
	if s.pendingCall && s.pendingCallActor != 0 {
		return s.pendingCallTile, s.pendingCallActor, s.pendingCallTileAka, true
	}
	return tile.Unknown, -1, false, false
}

// chiOptions reports which of the three chi shapes are legal against a
// kamicha discard of t, after removing kuikae-forbidden results.
func (s *PlayerState) chiOptions(t tile.ID) (low, mid, high bool) {
	if s.Seats[0].RiichiAccepted || !t.IsNumbered() {
		return false, false, false
	}
	n := t.Number()
	base := t - tile.ID(n-1)

	has := func(num int) bool {
		if num < 1 || num > 9 {
			return false
		}
		return s.Tehai[base+tile.ID(num-1)] > 0
	}

	if has(n+1) && has(n+2) {
		low = !s.kuikaeWouldForbidAll(hand.Chi, t, []tile.ID{base + tile.ID(n), base + tile.ID(n + 1)})
	}
	if has(n-1) && has(n+1) {
		mid = !s.kuikaeWouldForbidAll(hand.Chi, t, []tile.ID{base + tile.ID(n - 2), base + tile.ID(n)})
	}
	if has(n-2) && has(n-1) {
		high = !s.kuikaeWouldForbidAll(hand.Chi, t, []tile.ID{base + tile.ID(n - 3), base + tile.ID(n - 2)})
	}
	return low, mid, high
}

// kuikaeWouldForbidAll reports whether every tile left in hand after
// taking this chi would itself be forbidden to discard, making the
// call pointless to offer as a candidate.
func (s *PlayerState) kuikaeWouldForbidAll(kind hand.MeldKind, called tile.ID, consumed []tile.ID) bool {
	tmp := *s
	tmp.Tehai = s.Tehai
	for _, id := range consumed {
		tmp.Tehai[id]--
	}
	ev := &mjai.CallMeld{Pai: tile.Tile{ID: called}, Consumed: []tile.Tile{{ID: consumed[0]}, {ID: consumed[1]}}}
	tmp.computeKuikaeForbidden(kind, ev)
	for t := 0; t < tile.NumTiles; t++ {
		if tmp.Tehai[t] > 0 && !tmp.ForbiddenTiles[t] {
			return false
		}
	}
	return true
}

// daiminkanAllowed implements the suukaikan exception: a fifth kan on
// the table is illegal unless all four already-declared kans belong to
// the very seat now calling it.
func (s *PlayerState) daiminkanAllowed() bool {
	if s.KansOnBoard < 4 {
		return true
	}
	actorKans := len(s.Seats[0].Ankan)
	for _, m := range s.Seats[0].Fuuro {
		if m.Kind == hand.Daiminkan || m.Kind == hand.Kakan {
			actorKans++
		}
	}
	return actorKans == s.KansOnBoard
}

// ankanOptions reports whether any tile held 4-of can legally be
// ankan'd, honoring the accepted-riichi waits-unchanged restriction.
func (s *PlayerState) ankanOptions() bool {
	for t := 0; t < tile.NumTiles; t++ {
		if s.Tehai[t] < 4 {
			continue
		}
		if !s.Seats[0].RiichiAccepted {
			return true
		}
		if !s.HasLastSelfTsumo || s.LastSelfTsumo.ID != tile.ID(t) {
			continue // riichi ankan requires the 4th copy to be the just-drawn tile
		}
		// the waits of the hand before this draw must equal the waits
		// once all four copies leave it as an ankan
		preDraw := s.Tehai
		preDraw[t]--
		afterKan := s.Tehai
		afterKan[t] -= 4
		if shanten.Waits(preDraw, s.calledMelds()) == shanten.Waits(afterKan, s.calledMelds()+1) {
			return true
		}
	}
	return false
}

func (s *PlayerState) kakanOptions() bool {
	for _, m := range s.Seats[0].Fuuro {
		if m.Kind == hand.Pon && s.Tehai[m.TripletTile()] > 0 {
			return true
		}
	}
	return false
}

// buildAgariContext assembles the situational input ScoreAgari needs
// from the tracked seat's current derived state. uraMarkers is left
// empty here: it is only known by the caller at the moment of an
// actual win query (see query.go's AgariPoints), never derived ahead
// of time.
func (s *PlayerState) buildAgariContext(tsumo bool, winTile tile.ID, chankan bool) agari.Context {
	melds := make([]hand.Meld, 0, len(s.Seats[0].Fuuro)+len(s.Seats[0].Ankan))
	melds = append(melds, s.Seats[0].Fuuro...)
	for _, id := range s.Seats[0].Ankan {
		melds = append(melds, hand.Meld{
			Kind:       hand.Ankan,
			Tiles:      []tile.Tile{{ID: id}, {ID: id}, {ID: id}, {ID: id}},
			CalledFrom: -1,
		})
	}

	closed := s.Tehai
	closedAkas := s.Akas
	winAka := false
	if tsumo {
		// the winning tile is already folded into Tehai by applyTsumo.
		winAka = s.Akas.Get(winTile) && s.HasLastSelfTsumo && s.LastSelfTsumo.ID == winTile && s.LastSelfTsumo.Aka
	} else {
		closed.Add(winTile)
	}

	return agari.Context{
		Hand:         closed,
		Akas:         closedAkas,
		WinTile:      winTile,
		WinTileAka:   winAka,
		Melds:        melds,
		Ron:          !tsumo,
		Tsumo:        tsumo,
		IsOya:        s.Oya == 0,
		Riichi:       s.Seats[0].RiichiAccepted,
		DoubleRiichi: s.IsWRiichi,
		Ippatsu:      s.AtIppatsu,
		Rinshan:      tsumo && s.AtRinshan,
		Chankan:      chankan,
		Haitei:       tsumo && s.TilesLeft == 0,
		Houtei:       !tsumo && s.TilesLeft == 0,
		Bakaze:       s.Bakaze,
		Jikaze:       s.Jikaze,
		DoraIndicators: s.DoraIndicators,
		Honba:        s.Honba,
		Rules:        s.Rules,
	}
}
