// Package shanten computes shanten distance (standard, seven-pairs,
// kokushi) from a 34-count hand vector. Every exported function here
// is pure and allocation-free: no maps, no slices, value receivers
// only, so it is safe to call on the per-event hot path.
package shanten

import "riichiengine/hand"

// Complete is the shanten value of a finished hand.
const Complete = -1

var kokushiIDs = [13]int{0, 8, 9, 17, 18, 26, 27, 28, 29, 30, 31, 32, 33}

func suitOf(i int) int {
	switch {
	case i <= 8:
		return 0
	case i <= 17:
		return 1
	case i <= 26:
		return 2
	default:
		return -1
	}
}

func isNumbered(i int) bool { return i <= 26 }

// All returns min(Standard, SevenPairs, Kokushi) when calledMelds is 0
// (both special hands require a fully concealed hand), else Standard
// alone, per spec.md §4.1.
func All(h hand.Counts, calledMelds int) int {
	best := Standard(h, calledMelds)
	if calledMelds == 0 {
		if v := SevenPairs(h); v < best {
			best = v
		}
		if v := Kokushi(h); v < best {
			best = v
		}
	}
	return best
}

// Kokushi returns the kokushi-musou shanten: 13 minus distinct
// terminal/honor tiles owned, minus one more if one of them is paired.
func Kokushi(h hand.Counts) int {
	unique := 0
	pair := false
	for _, idx := range kokushiIDs {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	sh := 13 - unique
	if pair {
		sh--
	}
	return sh
}

// SevenPairs returns the chiitoitsu shanten: 6 minus pairs owned, plus
// a penalty if fewer than 7 distinct tiles are held (a tile held three
// or four times counts as one pair, never two).
func SevenPairs(h hand.Counts) int {
	pairs := 0
	distinct := 0
	for i := 0; i < len(h); i++ {
		if h[i] > 0 {
			distinct++
		}
		if h[i] >= 2 {
			pairs++
		}
	}
	sh := 6 - pairs
	if distinct < 7 {
		sh += 7 - distinct
	}
	return sh
}

// Standard returns the standard-form (4 melds + pair) shanten given
// calledMelds groups already fixed outside the hand vector.
func Standard(h hand.Counts, calledMelds int) int {
	best := 8
	work := h
	dfsStandard(&work, calledMelds, 0, 0, &best)
	return best
}

// dfsStandard explores the decomposition tree: m groups formed so far
// (including calledMelds), p pair found (0/1), t partial (two-tile)
// shapes found. At each node it evaluates the standard shanten bound
// 8 - 2m - min(t, 4-m) - p and recurses by peeling a triplet, a run, a
// pair, or a partial off the lowest remaining tile.
func dfsStandard(h *hand.Counts, m, p, t int, best *int) {
	if m > 4 {
		return
	}

	capped := t
	if limit := 4 - m; capped > limit {
		capped = limit
	}
	if sh := 8 - 2*m - capped - p; sh < *best {
		*best = sh
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

	if !isNumbered(i) {
		if h[i] >= 3 {
			h[i] -= 3
			dfsStandard(h, m+1, p, t, best)
			h[i] += 3
		}
		if p == 0 && h[i] >= 2 {
			h[i] -= 2
			dfsStandard(h, m, 1, t, best)
			h[i] += 2
		}
		if h[i] >= 2 {
			h[i] -= 2
			dfsStandard(h, m, p, t+1, best)
			h[i] += 2
		}
		h[i]--
		dfsStandard(h, m, p, t, best)
		h[i]++
		return
	}

	if h[i] >= 3 {
		h[i] -= 3
		dfsStandard(h, m+1, p, t, best)
		h[i] += 3
	}
	if i+2 < len(h) && suitOf(i) == suitOf(i+1) && suitOf(i) == suitOf(i+2) {
		if h[i] > 0 && h[i+1] > 0 && h[i+2] > 0 {
			h[i]--
			h[i+1]--
			h[i+2]--
			dfsStandard(h, m+1, p, t, best)
			h[i]++
			h[i+1]++
			h[i+2]++
		}
	}
	if p == 0 && h[i] >= 2 {
		h[i] -= 2
		dfsStandard(h, m, 1, t, best)
		h[i] += 2
	}
	if h[i] >= 2 {
		h[i] -= 2
		dfsStandard(h, m, p, t+1, best)
		h[i] += 2
	}
	if i+1 < len(h) && suitOf(i) == suitOf(i+1) {
		if h[i] > 0 && h[i+1] > 0 {
			h[i]--
			h[i+1]--
			dfsStandard(h, m, p, t+1, best)
			h[i]++
			h[i+1]++
		}
	}
	if i+2 < len(h) && suitOf(i) == suitOf(i+2) {
		if h[i] > 0 && h[i+2] > 0 {
			h[i]--
			h[i+2]--
			dfsStandard(h, m, p, t+1, best)
			h[i]++
			h[i+2]++
		}
	}
	h[i]--
	dfsStandard(h, m, p, t, best)
	h[i]++
}

// IsAgari reports whether h (a complete closed-part hand, calledMelds
// groups already fixed) forms a winning hand under any of the three
// hand shapes, honoring the same concealed-hand restriction as All.
func IsAgari(h hand.Counts, calledMelds int) bool {
	if calledMelds > 0 {
		return isAgariStandard(h, calledMelds)
	}
	return isAgariStandard(h, 0) || isAgariChiitoi(h) || isAgariKokushi(h)
}

func isAgariStandard(h hand.Counts, calledMelds int) bool {
	need := 4 - calledMelds
	if need < 0 {
		return false
	}
	for j := 0; j < len(h); j++ {
		if h[j] < 2 {
			continue
		}
		work := h
		work[j] -= 2
		if canFormMelds(&work, need) {
			return true
		}
	}
	return false
}

func isAgariChiitoi(h hand.Counts) bool {
	pairs := 0
	for i := 0; i < len(h); i++ {
		if h[i] >= 2 {
			pairs++
		}
	}
	return pairs >= 7
}

func isAgariKokushi(h hand.Counts) bool {
	unique := 0
	pair := false
	for _, idx := range kokushiIDs {
		if h[idx] > 0 {
			unique++
			if h[idx] >= 2 {
				pair = true
			}
		}
	}
	return unique == 13 && pair
}

// Waits returns, for a tenpai (shanten == 0) closed-part hand h with
// calledMelds groups already fixed, the set of tile ids that complete
// it — ignoring any yaku requirement, per spec.md's waits[0..34].
func Waits(h hand.Counts, calledMelds int) [34]bool {
	var waits [34]bool
	for t := 0; t < len(h); t++ {
		if h[t] >= 4 {
			continue
		}
		work := h
		work[t]++
		if IsAgari(work, calledMelds) {
			waits[t] = true
		}
	}
	return waits
}

func canFormMelds(h *hand.Counts, need int) bool {
	if need == 0 {
		for i := 0; i < len(h); i++ {
			if h[i] != 0 {
				return false
			}
		}
		return true
	}

	i := -1
	for k := 0; k < len(h); k++ {
		if h[k] > 0 {
			i = k
			break
		}
	}
	if i == -1 {
		return false
	}

	if h[i] >= 3 {
		h[i] -= 3
		if canFormMelds(h, need-1) {
			h[i] += 3
			return true
		}
		h[i] += 3
	}
	if isNumbered(i) && i+2 < len(h) && suitOf(i) == suitOf(i+1) && suitOf(i) == suitOf(i+2) {
		if h[i] > 0 && h[i+1] > 0 && h[i+2] > 0 {
			h[i]--
			h[i+1]--
			h[i+2]--
			if canFormMelds(h, need-1) {
				h[i]++
				h[i+1]++
				h[i+2]++
				return true
			}
			h[i]++
			h[i+1]++
			h[i+2]++
		}
	}
	return false
}
