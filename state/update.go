package state

import (
	"riichiengine/hand"
	"riichiengine/mjai"
	"riichiengine/tile"
)

// Update applies one mjai event to the tracked seat's view, recomputes
// every derived table in the fixed order spec.md §4.3 requires, and
// returns the resulting action-candidate bitfield. The same set is
// stored in LastCans, replacing the previous event's set.
func (s *PlayerState) Update(ev mjai.Event) ActionCandidate {
	s.resolvePendingRon(ev)
	s.clearStalePendingCall(ev)
	s.closeChankanWindow(ev)

	switch ev.Type {
	case mjai.TypeStartKyoku:
		s.applyStartKyoku(ev.StartKyoku)
	case mjai.TypeTsumo:
		s.applyTsumo(ev.Tsumo)
	case mjai.TypeDahai:
		s.applyDahai(ev.Dahai)
	case mjai.TypeChi:
		s.applyCallMeld(ev.Chi, hand.Chi)
	case mjai.TypePon:
		s.applyCallMeld(ev.Pon, hand.Pon)
	case mjai.TypeDaiminkan:
		s.applyCallMeld(ev.Daiminkan, hand.Daiminkan)
	case mjai.TypeAnkan:
		s.applyAnkan(ev.Ankan)
	case mjai.TypeKakan:
		s.applyKakan(ev.Kakan)
	case mjai.TypeDora:
		s.applyDora(ev.Dora)
	case mjai.TypeReach, mjai.TypeReachAccepted:
		s.applyReach(ev.Reach)
	case mjai.TypeHora:
		s.applyHora(ev.Hora)
	case mjai.TypeRyukyoku:
		s.applyRyukyoku(ev.Ryukyoku)
	case mjai.TypeEndKyoku, mjai.TypeEndGame:
		// terminal; no derived state survives into the next kyoku beyond
		// what the following start_kyoku explicitly resets.
	}

	s.recompute(ev)
	return s.LastCans
}

// clearStalePendingCall drops the chi/pon/daiminkan/ron window unless
// this event is the one consuming it.
func (s *PlayerState) clearStalePendingCall(ev mjai.Event) {
	if !s.pendingCall {
		return
	}
	switch ev.Type {
	case mjai.TypeChi, mjai.TypePon, mjai.TypeDaiminkan, mjai.TypeHora:
		return // handler consumes pendingCall itself
	}
	s.pendingCall = false
}

// closeChankanWindow closes a kakan's single-event chankan window
// unless this event is the hora claiming it.
func (s *PlayerState) closeChankanWindow(ev mjai.Event) {
	if !s.chankanOpen {
		return
	}
	if ev.Type == mjai.TypeHora {
		return
	}
	s.chankanOpen = false
}

// resolvePendingRon converts an unclaimed ron opportunity into furiten
// unless this event is self claiming it.
func (s *PlayerState) resolvePendingRon(ev mjai.Event) {
	if !s.ronMissed {
		return
	}
	claimed := ev.Type == mjai.TypeHora && s.rel(ev.Hora.Actor) == 0 && ev.Hora.Pai.Deaka() == s.ronMissedTile
	if claimed {
		s.ronMissed = false
		return
	}
	if s.riichiDeclaredAccepted() {
		s.riichiFuritenLatched = true
	} else {
		s.tempFuritenActive = true
	}
	s.ronMissed = false
}

func (s *PlayerState) riichiDeclaredAccepted() bool { return s.Seats[0].RiichiAccepted }

func (s *PlayerState) applyStartKyoku(ev *mjai.StartKyoku) {
	s.Bakaze = ev.Bakaze
	s.Kyoku = ev.Kyoku
	s.Honba = ev.Honba
	s.Kyotaku = ev.Kyotaku

	for abs := 0; abs < 4; abs++ {
		s.Scores[s.rel(abs)] = ev.Scores[abs]
	}
	s.Oya = s.rel(ev.Oya)
	jikazeIdx := (s.PlayerID - ev.Oya + 4) % 4
	s.Jikaze = tile.East + tile.ID(jikazeIdx)

	for i := range s.Seats {
		if s.Seats[i].Fuuro == nil {
			s.Seats[i] = newSeatView()
		} else {
			resetSeatView(&s.Seats[i])
		}
		s.Seats[i].Score = s.Scores[i]
	}

	var tehai hand.Counts
	var akas hand.Akas
	for _, t := range ev.Tehais[s.PlayerID] {
		if t.ID == tile.Unknown {
			continue
		}
		tehai.Add(t.Deaka())
		if t.Aka {
			akas.Set(t.ID, true)
		}
	}
	s.Tehai = tehai
	s.Akas = akas

	s.DoraIndicators = s.DoraIndicators[:0]
	s.DoraIndicators = append(s.DoraIndicators, ev.DoraMarker.ID)
	for i := range s.TilesSeen {
		s.TilesSeen[i] = 0
	}
	for _, t := range ev.Tehais[s.PlayerID] {
		if t.ID != tile.Unknown {
			s.TilesSeen[t.Deaka()]++
		}
	}
	s.TilesSeen[ev.DoraMarker.ID]++
	s.recomputeDoraFactor()
	s.recomputeDorasOwned()

	s.TilesLeft = startingTilesLeft
	s.AtTurn = s.Oya
	s.AtIppatsu = false
	s.AtRinshan = false
	s.AtFuriten = false
	s.ToMarkSameCycleFuriten = false
	s.IsMenzen = true
	s.IsWRiichi = false
	s.CanWRiichi = jikazeIdx == 0
	s.KansOnBoard = 0
	s.openMeldsCount = 0
	s.IntermediateKan = s.IntermediateKan[:0]
	s.IntermediateChiPon = false
	s.HasLastSelfTsumo = false
	s.HasLastKawaTile = false
	s.pendingCall = false
	s.ronMissed = false
	s.chankanOpen = false
	s.hasDiscardedOnce = false
	s.ippatsuGraceUsed = false
	s.tempFuritenActive = false
	s.riichiFuritenLatched = false
	for i := range s.DiscardedTiles {
		s.DiscardedTiles[i] = false
		s.ForbiddenTiles[i] = false
	}
}

func (s *PlayerState) applyTsumo(ev *mjai.Tsumo) {
	s.TilesLeft--
	rel := s.rel(ev.Actor)
	s.AtTurn = rel

	if rel != 0 {
		return
	}

	if s.tempFuritenActive {
		s.tempFuritenActive = false // cleared at the start of self's own next turn
	}
	if s.AtIppatsu {
		if s.ippatsuGraceUsed {
			s.AtIppatsu = false
		} else {
			s.ippatsuGraceUsed = true
		}
	}

	s.Tehai.Add(ev.Pai.Deaka())
	if ev.Pai.Aka {
		s.Akas.Set(ev.Pai.ID, true)
	}
	s.LastSelfTsumo = ev.Pai
	s.HasLastSelfTsumo = true

	if s.pendingRinshanDraw {
		s.AtRinshan = true
		s.pendingRinshanDraw = false
	} else {
		s.AtRinshan = false
	}

	s.TilesSeen[ev.Pai.Deaka()]++
	s.awaitingDiscard = true
}

func (s *PlayerState) applyDahai(ev *mjai.Dahai) {
	rel := s.rel(ev.Actor)
	item := hand.KawaItem{Tile: ev.Pai, Tsumogiri: ev.Tsumogiri, CalledBy: -1}
	view := &s.Seats[rel]
	if len(view.Kawa) < maxKawa {
		view.Kawa = append(view.Kawa, item)
		view.KawaOverview = append(view.KawaOverview, ev.Pai)
	}
	s.TilesSeen[ev.Pai.Deaka()]++
	s.LastKawaTile = ev.Pai
	s.HasLastKawaTile = true

	if rel == 0 {
		s.Tehai.Remove(ev.Pai.Deaka())
		if ev.Pai.ID.IsFive() {
			s.Akas.Set(ev.Pai.ID, false)
		}
		s.DiscardedTiles[ev.Pai.Deaka()] = true
		for i := range s.ForbiddenTiles {
			s.ForbiddenTiles[i] = false // kuikae and riichi locks last for one discard
		}
		s.hasDiscardedOnce = true
		s.CanWRiichi = false // the double-riichi window only spans the seat's first discard
		s.awaitingDiscard = false
	} else {
		s.pendingCall = true
		s.pendingCallTile = ev.Pai.Deaka()
		s.pendingCallTileAka = ev.Pai.Aka
		s.pendingCallActor = rel
	}
}

func (s *PlayerState) applyCallMeld(ev *mjai.CallMeld, kind hand.MeldKind) {
	actor := s.rel(ev.Actor)
	tiles := make([]tile.Tile, 0, len(ev.Consumed)+1)
	tiles = append(tiles, ev.Consumed...)
	tiles = append(tiles, ev.Pai)
	meld := hand.Meld{Kind: kind, Tiles: tiles, CalledFrom: s.rel(ev.Target)}

	view := &s.Seats[actor]
	if len(view.Fuuro) < maxFuuro {
		view.Fuuro = append(view.Fuuro, meld)
	}
	for _, t := range ev.Consumed {
		s.TilesSeen[t.Deaka()]++
	}
	s.TilesSeen[ev.Pai.Deaka()]++

	if kind == hand.Daiminkan {
		s.KansOnBoard++
	}

	if actor == 0 {
		for _, t := range ev.Consumed {
			s.Tehai.Remove(t.Deaka())
			if t.ID.IsFive() {
				s.Akas.Set(t.ID, false)
			}
		}
		s.IsMenzen = false
		s.openMeldsCount++
		s.computeKuikaeForbidden(kind, ev)
		if kind == hand.Daiminkan {
			s.pendingRinshanDraw = true
		} else {
			s.awaitingDiscard = true
		}
	}

	s.AtIppatsu = false
	s.CanWRiichi = false
	s.pendingCall = false
}

func (s *PlayerState) applyAnkan(ev *mjai.Ankan) {
	actor := s.rel(ev.Actor)
	base := ev.Consumed[0].Deaka()

	view := &s.Seats[actor]
	if len(view.Ankan) < maxAnkan {
		view.Ankan = append(view.Ankan, base)
	}
	for _, t := range ev.Consumed {
		s.TilesSeen[t.Deaka()]++
	}
	s.KansOnBoard++

	if actor == 0 {
		for _, t := range ev.Consumed {
			s.Tehai.Remove(t.Deaka())
			if t.ID.IsFive() {
				s.Akas.Set(t.ID, false)
			}
		}
		// menzen is preserved by ankan; ankan count comes from
		// len(Seats[0].Ankan), not openMeldsCount.
		s.pendingRinshanDraw = true
		s.awaitingDiscard = false // the rinshan draw comes first
	}

	s.AtIppatsu = false
}

func (s *PlayerState) applyKakan(ev *mjai.Kakan) {
	actor := s.rel(ev.Actor)
	view := &s.Seats[actor]
	for i := range view.Fuuro {
		if view.Fuuro[i].Kind == hand.Pon && view.Fuuro[i].TripletTile() == ev.Pai.Deaka() {
			tiles := append(append([]tile.Tile{}, view.Fuuro[i].Tiles...), ev.Pai)
			view.Fuuro[i] = hand.Meld{Kind: hand.Kakan, Tiles: tiles, CalledFrom: view.Fuuro[i].CalledFrom}
			break
		}
	}
	s.TilesSeen[ev.Pai.Deaka()]++
	s.KansOnBoard++

	if actor == 0 {
		s.Tehai.Remove(ev.Pai.Deaka())
		if ev.Pai.ID.IsFive() {
			s.Akas.Set(ev.Pai.ID, false)
		}
		s.pendingRinshanDraw = true
		s.awaitingDiscard = false // the rinshan draw comes first
	} else {
		s.openChankanWindowIfRonnable(ev.Pai, actor)
	}

	s.AtIppatsu = false
}

// openChankanWindowIfRonnable opens the single-event chankan window on
// every opponent kakan; candidates.go's recompute step decides whether
// self's hand completes on the tile outside furiten and sets CanRonAgari.
func (s *PlayerState) openChankanWindowIfRonnable(t tile.Tile, actor int) {
	s.chankanOpen = true
	s.chankanTile = t.Deaka()
	s.chankanTileAka = t.Aka
	s.chankanActor = actor
}

func (s *PlayerState) applyDora(ev *mjai.Dora) {
	if len(s.DoraIndicators) < maxDoraIndicators {
		s.DoraIndicators = append(s.DoraIndicators, ev.DoraMarker.ID)
	}
	s.TilesSeen[ev.DoraMarker.Deaka()]++
	s.recomputeDoraFactor()
	s.recomputeDorasOwned()
}

func (s *PlayerState) applyReach(ev *mjai.Reach) {
	rel := s.rel(ev.Actor)
	if !ev.Accepted {
		s.Seats[rel].RiichiDeclared = true
		if rel == 0 {
			s.IsWRiichi = s.CanWRiichi
			s.lockForbiddenToDeclaredDiscard()
		}
		return
	}

	s.Seats[rel].Score -= 1000
	s.Scores[rel] = s.Seats[rel].Score
	s.Kyotaku++
	s.Seats[rel].RiichiAccepted = true
	if rel == 0 {
		s.AtIppatsu = true
		s.ippatsuGraceUsed = false
	}
}

func (s *PlayerState) applyHora(ev *mjai.Hora) {
	if ev.HasDeltas {
		for abs := 0; abs < 4; abs++ {
			s.Scores[s.rel(abs)] += ev.Deltas[abs]
		}
		for i := range s.Seats {
			s.Seats[i].Score = s.Scores[i]
		}
	}
}

func (s *PlayerState) applyRyukyoku(ev *mjai.Ryukyoku) {
	if ev.HasDeltas {
		for abs := 0; abs < 4; abs++ {
			s.Scores[s.rel(abs)] += ev.Deltas[abs]
		}
		for i := range s.Seats {
			s.Seats[i].Score = s.Scores[i]
		}
	}
}

// lockForbiddenToDeclaredDiscard restricts self's legal discards after
// a reach declaration to the tiles whose discard leaves the hand tenpai
// (NextShantenDiscards as of the draw); the declaring discard lifts it.
func (s *PlayerState) lockForbiddenToDeclaredDiscard() {
	for t := range s.ForbiddenTiles {
		s.ForbiddenTiles[t] = s.Tehai[t] > 0 && !s.NextShantenDiscards[t]
	}
}
