package agari

import "riichiengine/tile"

// waitFu returns the +2 bonus for kanchan/penchan/tanki waits, or 0 for
// ryanmen/shanpon, by inspecting the group winTile completed.
func waitFu(groups []group, winTile tile.ID) int {
	for _, g := range groups {
		if !g.contains(winTile) {
			continue
		}
		switch g.kind {
		case groupPair:
			return 2
		case groupRun:
			switch {
			case winTile == g.t+2 && g.t.Number() == 1:
				return 2 // penchan: 1-2 waiting on 3
			case winTile == g.t && g.t.Number() == 7:
				return 2 // penchan: 8-9 waiting on 7
			case winTile == g.t+1:
				return 2 // kanchan: x,x+2 waiting on x+1
			}
		}
	}
	return 0
}

func pairFu(groups []group, bakaze, jikaze tile.ID) int {
	for _, g := range groups {
		if g.kind != groupPair {
			continue
		}
		fu := 0
		if g.t == tile.White || g.t == tile.Green || g.t == tile.Red {
			fu += 2
		}
		if g.t == bakaze {
			fu += 2
		}
		if g.t == jikaze {
			fu += 2
		}
		return fu
	}
	return 0
}

func meldFu(groups []group) int {
	fu := 0
	for _, g := range groups {
		switch g.kind {
		case groupTriplet:
			termHonor := g.t.IsTerminalOrHonor()
			switch {
			case !g.concealed && termHonor:
				fu += 4
			case !g.concealed:
				fu += 2
			case termHonor:
				fu += 8
			default:
				fu += 4
			}
		case groupQuad:
			termHonor := g.t.IsTerminalOrHonor()
			switch {
			case !g.concealed && termHonor:
				fu += 16
			case !g.concealed:
				fu += 8
			case termHonor:
				fu += 32
			default:
				fu += 16
			}
		}
	}
	return fu
}

// isStandardPinfu reports whether groups (4 runs + a non-yakuhai pair)
// completed on a ryanmen wait form pinfu, per spec.md's edge cases for
// pinfu-tsumo/ron fu.
func isStandardPinfu(groups []group, winTile tile.ID, menzen bool, bakaze, jikaze tile.ID) bool {
	if !menzen {
		return false
	}
	for _, g := range groups {
		switch g.kind {
		case groupRun:
			continue
		case groupPair:
			if g.t == tile.White || g.t == tile.Green || g.t == tile.Red || g.t == bakaze || g.t == jikaze {
				return false
			}
		default:
			return false
		}
	}
	return waitFu(groups, winTile) == 0
}

// fuTotal computes the rounded fu for one candidate decomposition.
// Pinfu short-circuits to the fixed 20/30 values per spec.md.
func fuTotal(groups []group, winTile tile.ID, tsumo, menzen bool, bakaze, jikaze tile.ID) int {
	if isStandardPinfu(groups, winTile, menzen, bakaze, jikaze) {
		if tsumo {
			return 20
		}
		return 30
	}

	fu := 20
	if tsumo {
		fu += 2
	}
	if menzen && !tsumo {
		fu += 10
	}
	fu += pairFu(groups, bakaze, jikaze)
	fu += meldFu(groups)
	fu += waitFu(groups, winTile)

	rounded := ((fu + 9) / 10) * 10
	if rounded < 30 {
		rounded = 30
	}
	return rounded
}
