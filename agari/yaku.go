package agari

import "riichiengine/tile"

// YakuValue is one scored yaku (or yakuman) and its han contribution.
// Han is 0 for a yakuman entry; yakumanMult carries its strength instead.
type YakuValue struct {
	Name string
	Han  int
}

// evaluation is the result of scoring one candidate hand shape.
type evaluation struct {
	yaku        []YakuValue
	han         int
	yakumanMult int
	groups      []group // nil for chiitoi/kokushi
	isPinfu     bool
}

func windHanValue(pairOrTripletTile, bakaze, jikaze tile.ID) (name string, han int) {
	switch pairOrTripletTile {
	case tile.White:
		return "haku", 1
	case tile.Green:
		return "hatsu", 1
	case tile.Red:
		return "chun", 1
	}
	han = 0
	if pairOrTripletTile == bakaze {
		han++
	}
	if pairOrTripletTile == jikaze {
		han++
	}
	if han == 0 {
		return "", 0
	}
	if pairOrTripletTile == bakaze && pairOrTripletTile == jikaze {
		return "double wind", han
	}
	return "wind", han
}

// evaluateStandard scores a 4-groups-plus-pair decomposition (melds
// already folded into groups). winTile, menzen and the ambient flags on
// ctx drive wait-shape and situational yaku.
func evaluateStandard(groups []group, winTile tile.ID, ctx *scoringInput) evaluation {
	var yaku []YakuValue
	han := 0

	add := func(name string, h int) {
		yaku = append(yaku, YakuValue{Name: name, Han: h})
		han += h
	}

	// --- Yakuman checks first; a yakuman hand skips regular scoring. ---
	if mult, names := checkStandardYakuman(groups, winTile, ctx); mult > 0 {
		var yv []YakuValue
		for _, n := range names {
			yv = append(yv, YakuValue{Name: n})
		}
		return evaluation{yaku: yv, yakumanMult: mult, groups: groups}
	}

	tripletCount := 0
	for _, g := range groups {
		if g.kind == groupTriplet || g.kind == groupQuad {
			tripletCount++
		}
	}

	pinfu := isStandardPinfu(groups, winTile, ctx.menzen, ctx.bakaze, ctx.jikaze)

	if ctx.riichi {
		if ctx.doubleRiichi {
			add("double riichi", 2)
		} else {
			add("riichi", 1)
		}
		if ctx.ippatsu {
			add("ippatsu", 1)
		}
	}
	if ctx.tsumo && ctx.menzen {
		add("menzen tsumo", 1)
	}
	if pinfu {
		add("pinfu", 1)
	}
	if allSimples(groups) {
		add("tanyao", 1)
	}
	for _, g := range groups {
		if g.kind != groupTriplet && g.kind != groupQuad {
			continue
		}
		if name, h := windHanValue(g.t, ctx.bakaze, ctx.jikaze); h > 0 {
			add(name, h)
		}
	}
	if ctx.haitei && ctx.tsumo {
		add("haitei raoyue", 1)
	}
	if ctx.houtei && ctx.ron {
		add("houtei raoyui", 1)
	}
	if ctx.rinshan {
		add("rinshan kaihou", 1)
	}
	if ctx.chankan {
		add("chankan", 1)
	}

	if tripletCount == 4 {
		add("toitoi", 2)
	}
	if n := concealedTripletCount(groups, winTile, ctx.ron); n == 3 {
		add("sanankou", 2)
	}
	if sanshokuDoukou(groups) {
		add("sanshoku doukou", 2)
	}
	if shousangen(groups) {
		add("shousangen", 2)
	}
	if honroutou(groups) {
		add("honroutou", 2)
	}
	if sanKantsu(ctx.kanCount) {
		add("sankantsu", 2)
	}

	if h, ok := sanshokuDoujun(groups); ok {
		if ctx.menzen {
			h++
		}
		add("sanshoku doujun", h)
	}
	if ittsuu(groups) {
		if ctx.menzen {
			add("ittsuu", 2)
		} else {
			add("ittsuu", 1)
		}
	}
	if ctx.menzen {
		switch peikouKind(groups) {
		case 2:
			add("ryanpeikou", 3)
		case 1:
			add("iipeikou", 1)
		}
	}
	if junchan, chanta := chantaKind(groups); junchan {
		if ctx.menzen {
			add("junchan taiyao", 3)
		} else {
			add("junchan taiyao", 2)
		}
	} else if chanta {
		if ctx.menzen {
			add("chanta", 2)
		} else {
			add("chanta", 1)
		}
	}
	if suit, honors := flushSuit(groups); suit >= 0 {
		if honors {
			if ctx.menzen {
				add("honitsu", 3)
			} else {
				add("honitsu", 2)
			}
		} else {
			if ctx.menzen {
				add("chinitsu", 6)
			} else {
				add("chinitsu", 5)
			}
		}
	}

	return evaluation{yaku: yaku, han: han, groups: groups, isPinfu: pinfu}
}

func allSimples(groups []group) bool {
	for _, g := range groups {
		for _, t := range g.tiles() {
			if t.IsTerminalOrHonor() {
				return false
			}
		}
	}
	return true
}

// concealedTripletCount counts ankou/ankan, excluding a triplet the ron
// tile merely completed (that one is only a minkou for this purpose).
func concealedTripletCount(groups []group, winTile tile.ID, ron bool) int {
	n := 0
	for _, g := range groups {
		if g.kind != groupTriplet && g.kind != groupQuad {
			continue
		}
		if !g.concealed {
			continue
		}
		if ron && g.contains(winTile) && g.kind == groupTriplet {
			continue
		}
		n++
	}
	return n
}

func sanshokuDoukou(groups []group) bool {
	bySuitNumber := map[int]map[int]bool{}
	for _, g := range groups {
		if g.kind != groupTriplet && g.kind != groupQuad {
			continue
		}
		if !g.t.IsNumbered() {
			continue
		}
		n := g.t.Number()
		if bySuitNumber[n] == nil {
			bySuitNumber[n] = map[int]bool{}
		}
		bySuitNumber[n][g.t.Suit()] = true
	}
	for _, suits := range bySuitNumber {
		if len(suits) == 3 {
			return true
		}
	}
	return false
}

func shousangen(groups []group) bool {
	triplets, pair := 0, false
	for _, g := range groups {
		isDragon := g.t == tile.White || g.t == tile.Green || g.t == tile.Red
		if !isDragon {
			continue
		}
		switch g.kind {
		case groupTriplet, groupQuad:
			triplets++
		case groupPair:
			pair = true
		}
	}
	return triplets == 2 && pair
}

func honroutou(groups []group) bool {
	for _, g := range groups {
		if g.kind == groupRun {
			return false
		}
		if !g.t.IsTerminalOrHonor() {
			return false
		}
	}
	return true
}

func sanKantsu(kanCount int) bool { return kanCount == 3 }

func sanshokuDoujun(groups []group) (int, bool) {
	byNumber := map[int]map[int]bool{}
	for _, g := range groups {
		if g.kind != groupRun {
			continue
		}
		n := g.t.Number()
		if byNumber[n] == nil {
			byNumber[n] = map[int]bool{}
		}
		byNumber[n][g.t.Suit()] = true
	}
	for _, suits := range byNumber {
		if len(suits) == 3 {
			return 1, true
		}
	}
	return 0, false
}

func ittsuu(groups []group) bool {
	bySuit := map[int]map[int]bool{}
	for _, g := range groups {
		if g.kind != groupRun {
			continue
		}
		if bySuit[g.t.Suit()] == nil {
			bySuit[g.t.Suit()] = map[int]bool{}
		}
		bySuit[g.t.Suit()][g.t.Number()] = true
	}
	for _, nums := range bySuit {
		if nums[1] && nums[4] && nums[7] {
			return true
		}
	}
	return false
}

// peikouKind returns 2 for ryanpeikou (two distinct duplicated-run
// pairs), 1 for iipeikou (exactly one duplicated run), 0 otherwise.
func peikouKind(groups []group) int {
	counts := map[[2]int]int{}
	for _, g := range groups {
		if g.kind != groupRun {
			continue
		}
		counts[[2]int{g.t.Suit(), g.t.Number()}]++
	}
	dup := 0
	for _, c := range counts {
		if c >= 2 {
			dup++
		}
	}
	if dup >= 2 {
		return 2
	}
	if dup == 1 {
		return 1
	}
	return 0
}

// chantaKind reports (junchan, chanta): junchan requires every group to
// touch a terminal with no honors at all; chanta allows honors too.
func chantaKind(groups []group) (bool, bool) {
	sawHonor := false
	for _, g := range groups {
		ts := g.tiles()
		hasTerminal, hasHonor := false, false
		for _, t := range ts {
			if t.IsHonor() {
				hasHonor = true
			}
			if t.IsTerminal() {
				hasTerminal = true
			}
		}
		if !hasTerminal && !hasHonor {
			return false, false
		}
		if hasHonor {
			sawHonor = true
		}
	}
	return !sawHonor, true
}

// flushSuit returns the suit index (0/1/2) for a one-suit hand, and
// whether honors were mixed in (honitsu vs chinitsu); -1 if mixed suits.
func flushSuit(groups []group) (int, bool) {
	suit := -1
	honors := false
	for _, g := range groups {
		ts := g.tiles()
		for _, t := range ts {
			if t.IsHonor() {
				honors = true
				continue
			}
			if suit == -1 {
				suit = t.Suit()
			} else if suit != t.Suit() {
				return -1, false
			}
		}
	}
	if suit == -1 {
		return -1, false
	}
	return suit, honors
}

// checkStandardYakuman inspects groups for any structural yakuman. Luck
// yakuman (tenhou/chihou) and kokushi/chuuren live outside the standard
// group model and are handled by their own callers.
func checkStandardYakuman(groups []group, winTile tile.ID, ctx *scoringInput) (int, []string) {
	var names []string
	mult := 0
	addYakuman := func(n string, m int) {
		names = append(names, n)
		mult += m
	}

	concealedCount := concealedTripletCount(groups, winTile, ctx.ron)
	var pairTile tile.ID
	hasPair := false
	for _, g := range groups {
		if g.kind == groupPair {
			pairTile = g.t
			hasPair = true
		}
	}
	if concealedCount == 4 {
		if hasPair && pairTile == winTile {
			addYakuman("suuankou tanki", 2)
		} else {
			addYakuman("suuankou", 1)
		}
	}

	dragonTriplets := 0
	for _, g := range groups {
		if (g.kind == groupTriplet || g.kind == groupQuad) && (g.t == tile.White || g.t == tile.Green || g.t == tile.Red) {
			dragonTriplets++
		}
	}
	if dragonTriplets == 3 {
		addYakuman("daisangen", 1)
	}

	windTriplets, windPairs := 0, 0
	for _, g := range groups {
		if !(g.t >= tile.East && g.t <= tile.North) {
			continue
		}
		switch g.kind {
		case groupTriplet, groupQuad:
			windTriplets++
		case groupPair:
			windPairs++
		}
	}
	if windTriplets == 4 {
		addYakuman("daisuushii", 2)
	} else if windTriplets == 3 && windPairs == 1 {
		addYakuman("shousuushii", 1)
	}

	allHonor, allTerminal := true, true
	for _, g := range groups {
		ts := g.tiles()
		for _, t := range ts {
			if !t.IsHonor() {
				allHonor = false
			}
			if !t.IsTerminal() {
				allTerminal = false
			}
		}
	}
	if allHonor {
		addYakuman("tsuuiisou", 1)
	}
	if allTerminal {
		addYakuman("chinroutou", 1)
	}

	if ryuuiisou(groups) {
		addYakuman("ryuuiisou", 1)
	}
	if ctx.kanCount == 4 {
		addYakuman("suukantsu", 2)
	}

	return mult, names
}

func ryuuiisou(groups []group) bool {
	isGreen := func(id tile.ID) bool {
		switch id {
		case tile.Sou2, tile.Sou3, tile.Sou4, tile.Sou6, tile.Sou8, tile.Green:
			return true
		default:
			return false
		}
	}
	for _, g := range groups {
		for _, t := range g.tiles() {
			if !isGreen(t) {
				return false
			}
		}
	}
	return true
}
