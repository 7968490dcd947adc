package agari

import "riichiengine/tile"

type groupKind int

const (
	groupRun groupKind = iota
	groupTriplet
	groupQuad
	groupPair
)

// group is one component of a decomposed winning hand: a run, triplet,
// quad or the pair. tile is the lowest tile id of a run, or the
// repeated tile id otherwise. concealed is false for anything called
// (chi/pon/daiminkan); ankan counts as concealed for fu purposes but
// is tagged kan so fu.go can tell it apart from ankou.
type group struct {
	kind      groupKind
	t         tile.ID
	concealed bool
	calledKan bool // true for any kan, open or closed
}

func (g group) tiles() [3]tile.ID {
	switch g.kind {
	case groupRun:
		return [3]tile.ID{g.t, g.t + 1, g.t + 2}
	default:
		return [3]tile.ID{g.t, g.t, g.t}
	}
}

func (g group) contains(id tile.ID) bool {
	if g.kind == groupRun {
		return id >= g.t && id <= g.t+2
	}
	return id == g.t
}

// meldGroups converts a seat's called melds into fixed groups.
func meldGroups(melds []meldLike) []group {
	out := make([]group, 0, len(melds))
	for _, m := range melds {
		g := group{calledKan: m.kind == meldKan}
		switch m.kind {
		case meldChi:
			g.kind = groupRun
			g.t = m.low
			g.concealed = false
		case meldPon:
			g.kind = groupTriplet
			g.t = m.low
			g.concealed = false
		case meldKan:
			g.kind = groupQuad
			g.t = m.low
			g.concealed = m.ankan
		}
		out = append(out, g)
	}
	return out
}

// meldLike is the minimal view of a hand.Meld decompose.go needs;
// agari.go adapts hand.Meld into this to avoid a dependency cycle on
// meld-call semantics that belong to the hand package.
type meldKind int

const (
	meldChi meldKind = iota
	meldPon
	meldKan
)

type meldLike struct {
	kind  meldKind
	low   tile.ID // lowest tile of a run, or the repeated tile otherwise
	ankan bool
}

// standardDecompositions enumerates every way to split h (a count
// vector holding exactly 3*groupsNeeded+2 tiles) into groupsNeeded
// runs/triplets plus one pair. Small hands (≤14 tiles, ≤4 groups)
// make exhaustive backtracking cheap.
func standardDecompositions(h [tile.NumTiles]uint8, groupsNeeded int) [][]group {
	var results [][]group
	var cur []group
	groupsTaken := 0
	var walk func(h *[tile.NumTiles]uint8, pairTaken bool)
	walk = func(h *[tile.NumTiles]uint8, pairTaken bool) {
		if groupsTaken == groupsNeeded && pairTaken {
			cp := make([]group, len(cur))
			copy(cp, cur)
			results = append(results, cp)
			return
		}
		i := -1
		for k := 0; k < len(h); k++ {
			if h[k] > 0 {
				i = k
				break
			}
		}
		if i == -1 {
			return
		}
		id := tile.ID(i)

		if !pairTaken && h[i] >= 2 {
			h[i] -= 2
			cur = append(cur, group{kind: groupPair, t: id, concealed: true})
			walk(h, true)
			cur = cur[:len(cur)-1]
			h[i] += 2
		}
		if groupsTaken < groupsNeeded && h[i] >= 3 {
			h[i] -= 3
			cur = append(cur, group{kind: groupTriplet, t: id, concealed: true})
			groupsTaken++
			walk(h, pairTaken)
			groupsTaken--
			cur = cur[:len(cur)-1]
			h[i] += 3
		}
		if groupsTaken < groupsNeeded && id.IsNumbered() && id.Number() <= 7 &&
			h[i] > 0 && h[i+1] > 0 && h[i+2] > 0 {
			h[i]--
			h[i+1]--
			h[i+2]--
			cur = append(cur, group{kind: groupRun, t: id, concealed: true})
			groupsTaken++
			walk(h, pairTaken)
			groupsTaken--
			cur = cur[:len(cur)-1]
			h[i]++
			h[i+1]++
			h[i+2]++
		}
	}
	walk(&h, false)
	return results
}

// isChuurenPoutou reports whether a concealed 14-tile single-suit hand
// is nine gates, and whether winTile completed it on the pure
// (junsei) nine-sided wait — the base pattern 3-1-1-1-1-1-1-1-3 was
// already complete before the winning draw.
func isChuurenPoutou(h [tile.NumTiles]uint8, winTile tile.ID) (ok bool, pure bool) {
	suit := -1
	for i, c := range h {
		if c == 0 {
			continue
		}
		id := tile.ID(i)
		if id.IsHonor() {
			return false, false
		}
		if suit == -1 {
			suit = id.Suit()
		} else if suit != id.Suit() {
			return false, false
		}
	}
	if suit == -1 {
		return false, false
	}
	base := tile.ID(suit * 9)
	counts := [9]int{}
	for i := 0; i < 9; i++ {
		counts[i] = int(h[base+tile.ID(i)])
	}
	if counts[0] < 3 || counts[8] < 3 {
		return false, false
	}
	extra := -1
	for i := 0; i < 9; i++ {
		want := 1
		if i == 0 || i == 8 {
			want = 3
		}
		if counts[i] < want {
			return false, false
		}
		if counts[i] > want {
			if extra != -1 {
				return false, false
			}
			extra = i
		}
	}
	if extra == -1 {
		return false, false
	}
	return true, winTile == base+tile.ID(extra)
}

func isChiitoi(h [tile.NumTiles]uint8) bool {
	pairs := 0
	for _, c := range h {
		if c == 2 {
			pairs++
		} else if c != 0 {
			return false
		}
	}
	return pairs == 7
}

// isKokushi reports whether a completed 14-tile hand is kokushi-musou,
// and whether it was won on the thirteen-sided wait (winTile itself
// formed the pair, meaning every one of the 13 types sat as a single
// before the winning draw).
func isKokushi(h [tile.NumTiles]uint8, winTile tile.ID) (ok bool, thirteenWait bool) {
	var ids = [13]tile.ID{
		tile.Man1, tile.Man9, tile.Pin1, tile.Pin9, tile.Sou1, tile.Sou9,
		tile.East, tile.South, tile.West, tile.North, tile.White, tile.Green, tile.Red,
	}
	unique, pair := 0, false
	for _, id := range ids {
		if h[id] > 0 {
			unique++
			if h[id] >= 2 {
				pair = true
			}
		}
	}
	for i := range h {
		switch tile.ID(i) {
		case tile.Man1, tile.Man9, tile.Pin1, tile.Pin9, tile.Sou1, tile.Sou9,
			tile.East, tile.South, tile.West, tile.North, tile.White, tile.Green, tile.Red:
		default:
			if h[i] > 0 {
				return false, false
			}
		}
	}
	if unique != 13 || !pair {
		return false, false
	}
	return true, h[winTile] == 2
}
