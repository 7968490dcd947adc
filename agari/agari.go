// Package agari scores a completed hand: given the closed-part 34-count
// vector, the winning tile, the called melds, and the boolean situation
// context, it returns han, fu, the named yaku, and the point payment
// triple. It never decides whether a hand is complete — callers run
// shanten.IsAgari first — and it never mutates its inputs.
package agari

import (
	"errors"
	"fmt"

	"riichiengine/hand"
	"riichiengine/tile"
)

// ErrNoYaku is returned when a complete hand carries no yaku and so
// cannot be scored (dora/aka/ura alone never satisfy the requirement).
var ErrNoYaku = errors.New("agari: no yaku")

// ErrInvalidHand is returned when the tile counts do not form any
// recognized winning shape (standard, chiitoitsu, or kokushi).
var ErrInvalidHand = errors.New("agari: invalid hand")

// ErrDoubleRonUnresolved flags the historically-buggy double-chankan-ron
// case: two seats ron the same kakan tile. The engine does not referee
// turn order, so it cannot itself decide which ron "wins"; scoring for
// the second claimant is left to the caller's ruleset. No function in
// this module returns it.
// TODO: fix double chankan ron once multi-seat ron ordering is modeled.
var ErrDoubleRonUnresolved = errors.New("agari: double ron on same chankan tile unresolved")

// RuleSet carries the scoring decisions spec.md leaves open per-table.
type RuleSet struct {
	// KazoeYakumanCap caps a 13+ han regular hand at yakuman value
	// (kazoe yakuman) instead of scoring it off the sanbaiman table.
	KazoeYakumanCap bool
	// DoubleYakuman lets specific yakuman (daisuushii, suuankou tanki,
	// kokushi 13-wait, junsei chuuren poutou, suukantsu) pay double.
	DoubleYakuman bool
	// KokushiAnkanChankan names the table rule that allows chankan ron
	// for kokushi-musou on an ankan of the needed terminal/honor tile.
	// No package reads it: an opponent's ankan never opens a chankan
	// window in state, whatever its value.
	KokushiAnkanChankan bool
}

// DefaultRuleSet matches the conservative defaults spec.md §9 settles on.
func DefaultRuleSet() RuleSet {
	return RuleSet{KazoeYakumanCap: true, DoubleYakuman: false, KokushiAnkanChankan: false}
}

// Context is the full situational input to ScoreAgari.
type Context struct {
	Hand       hand.Counts // closed part only, including the winning tile
	Akas       hand.Akas
	WinTile    tile.ID
	WinTileAka bool
	Melds      []hand.Meld

	Ron   bool
	Tsumo bool

	IsOya        bool
	Riichi       bool
	DoubleRiichi bool
	Ippatsu      bool
	Rinshan      bool
	Chankan      bool
	Haitei       bool
	Houtei       bool

	Bakaze tile.ID
	Jikaze tile.ID

	DoraIndicators []tile.ID
	UraIndicators  []tile.ID // only non-empty when riichi was accepted

	Honba int
	Rules RuleSet
}

// Result is everything a caller needs to report or persist a win.
type Result struct {
	Han    int
	Fu     int
	Yaku   []YakuValue
	Points Points
}

// scoringInput is the subset of Context evaluateStandard/fu.go need,
// kept separate from Context so they don't reach back into hand.Meld.
type scoringInput struct {
	ron, tsumo           bool
	menzen               bool
	riichi, doubleRiichi bool
	ippatsu              bool
	haitei, houtei       bool
	rinshan, chankan     bool
	bakaze, jikaze       tile.ID
	kanCount             int
}

func toMeldLike(m hand.Meld) meldLike {
	switch m.Kind {
	case hand.Chi:
		ids := m.BaseIDs()
		low := ids[0]
		for _, id := range ids {
			if id < low {
				low = id
			}
		}
		return meldLike{kind: meldChi, low: low}
	case hand.Pon:
		return meldLike{kind: meldPon, low: m.TripletTile()}
	default: // Daiminkan, Ankan, Kakan
		return meldLike{kind: meldKan, low: m.TripletTile(), ankan: m.Kind == hand.Ankan}
	}
}

// ScoreAgari scores a complete hand. The caller is responsible for
// having already established shanten.IsAgari(...) == true; ScoreAgari
// re-derives the decomposition itself since fu/yaku depend on exactly
// which grouping was used, not merely on completeness.
func ScoreAgari(ctx Context) (Result, error) {
	if !ctx.Ron && !ctx.Tsumo {
		return Result{}, fmt.Errorf("agari: neither ron nor tsumo set")
	}

	menzen := true
	kanCount := 0
	var melds []meldLike
	for _, m := range ctx.Melds {
		if m.IsOpen() {
			menzen = false
		}
		if m.Kind == hand.Daiminkan || m.Kind == hand.Ankan || m.Kind == hand.Kakan {
			kanCount++
		}
		melds = append(melds, toMeldLike(m))
	}

	si := &scoringInput{
		ron: ctx.Ron, tsumo: ctx.Tsumo, menzen: menzen,
		riichi: ctx.Riichi, doubleRiichi: ctx.DoubleRiichi, ippatsu: ctx.Ippatsu,
		haitei: ctx.Haitei, houtei: ctx.Houtei, rinshan: ctx.Rinshan, chankan: ctx.Chankan,
		bakaze: ctx.Bakaze, jikaze: ctx.Jikaze, kanCount: kanCount,
	}

	best, err := bestEvaluation(ctx, si, melds)
	if err != nil {
		return Result{}, err
	}

	doraHan := countDora(ctx.Hand, ctx.DoraIndicators, ctx.Melds)
	doraHan += countDora(ctx.Hand, ctx.UraIndicators, ctx.Melds)
	akaHan := ctx.Akas.Count()
	for _, m := range ctx.Melds {
		for _, t := range m.Tiles {
			if t.Aka {
				akaHan++
			}
		}
	}

	if best.yakumanMult > 0 {
		mult := best.yakumanMult
		if !ctx.Rules.DoubleYakuman {
			// Without double-yakuman scoring, every yakuman entry counts
			// for exactly one multiple regardless of its normal strength.
			mult = len(best.yaku)
		}
		pts := addHonba(yakumanPoints(mult, ctx.IsOya), ctx.Honba)
		return Result{Han: 0, Fu: 0, Yaku: best.yaku, Points: pts}, nil
	}

	if doraHan > 0 {
		best.yaku = append(best.yaku, YakuValue{Name: "dora", Han: doraHan})
	}
	if akaHan > 0 {
		best.yaku = append(best.yaku, YakuValue{Name: "aka dora", Han: akaHan})
	}
	han := best.han + doraHan + akaHan

	if len(best.yaku) == 0 || best.han == 0 {
		return Result{}, ErrNoYaku
	}

	if ctx.Rules.KazoeYakumanCap && han >= 13 {
		pts := addHonba(yakumanPoints(1, ctx.IsOya), ctx.Honba)
		return Result{Han: han, Fu: 0, Yaku: best.yaku, Points: pts}, nil
	}

	if han >= 5 {
		capped := han
		if capped > 12 {
			capped = 12
		}
		pts := addHonba(fixedPoints(capped, ctx.IsOya), ctx.Honba)
		return Result{Han: han, Fu: 0, Yaku: best.yaku, Points: pts}, nil
	}

	fu := best.fu
	pts := addHonba(pointsFromBase(basePoints(han, fu), ctx.IsOya), ctx.Honba)
	return Result{Han: han, Fu: fu, Yaku: best.yaku, Points: pts}, nil
}

type evalWithFu struct {
	evaluation
	fu int
}

// bestEvaluation tries every candidate hand shape (standard across all
// decompositions, chiitoitsu, kokushi) and returns whichever scores the
// most points, per the standard rule that ambiguous decompositions
// resolve in the winner's favor.
func bestEvaluation(ctx Context, si *scoringInput, melds []meldLike) (evalWithFu, error) {
	fixed := meldGroups(melds)
	groupsNeeded := 4 - len(melds)

	var candidates []evalWithFu

	if ok, thirteen := isKokushi(ctx.Hand, ctx.WinTile); ok && len(melds) == 0 {
		name, mult := "kokushi musou", 1
		if thirteen {
			name, mult = "kokushi musou juusanmenmachi", 2
		}
		candidates = append(candidates, evalWithFu{
			evaluation: evaluation{yaku: []YakuValue{{Name: name}}, yakumanMult: mult},
			fu:         0,
		})
	}

	if ok, pure := isChuurenPoutou(ctx.Hand, ctx.WinTile); ok && len(melds) == 0 && si.menzen {
		name, mult := "chuuren poutou", 1
		if pure {
			name, mult = "junsei chuuren poutou", 2
		}
		candidates = append(candidates, evalWithFu{
			evaluation: evaluation{yaku: []YakuValue{{Name: name}}, yakumanMult: mult},
			fu:         0,
		})
	}

	if isChiitoi(ctx.Hand) && len(melds) == 0 {
		ev := evaluation{han: 2, yaku: []YakuValue{{Name: "chiitoitsu", Han: 2}}}
		if si.riichi {
			if si.doubleRiichi {
				ev.yaku = append(ev.yaku, YakuValue{Name: "double riichi", Han: 2})
				ev.han += 2
			} else {
				ev.yaku = append(ev.yaku, YakuValue{Name: "riichi", Han: 1})
				ev.han++
			}
			if si.ippatsu {
				ev.yaku = append(ev.yaku, YakuValue{Name: "ippatsu", Han: 1})
				ev.han++
			}
		}
		if si.tsumo && si.menzen {
			ev.yaku = append(ev.yaku, YakuValue{Name: "menzen tsumo", Han: 1})
			ev.han++
		}
		if si.haitei && si.tsumo {
			ev.yaku = append(ev.yaku, YakuValue{Name: "haitei raoyue", Han: 1})
			ev.han++
		}
		if si.houtei && si.ron {
			ev.yaku = append(ev.yaku, YakuValue{Name: "houtei raoyui", Han: 1})
			ev.han++
		}
		candidates = append(candidates, evalWithFu{evaluation: ev, fu: 25})
	}

	if groupsNeeded >= 0 {
		for _, closed := range standardDecompositions(ctx.Hand, groupsNeeded) {
			groups := append(append([]group{}, fixed...), closed...)
			ev := evaluateStandard(groups, ctx.WinTile, si)
			if ev.yakumanMult > 0 {
				candidates = append(candidates, evalWithFu{evaluation: ev, fu: 0})
				continue
			}
			fu := fuTotal(groups, ctx.WinTile, si.tsumo, si.menzen, si.bakaze, si.jikaze)
			candidates = append(candidates, evalWithFu{evaluation: ev, fu: fu})
		}
	}

	if len(candidates) == 0 {
		return evalWithFu{}, ErrInvalidHand
	}

	best := candidates[0]
	bestScore := scoreOf(best)
	for _, c := range candidates[1:] {
		if s := scoreOf(c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, nil
}

func scoreOf(e evalWithFu) int {
	if e.yakumanMult > 0 {
		return 1_000_000 * e.yakumanMult
	}
	if e.han == 0 {
		return -1
	}
	return e.han*1000 + e.fu
}

func countDora(h hand.Counts, indicators []tile.ID, rawMelds []hand.Meld) int {
	if len(indicators) == 0 {
		return 0
	}
	count := 0
	for _, ind := range indicators {
		dora := ind.Next()
		count += int(h[dora])
		for _, m := range rawMelds {
			for _, t := range m.Tiles {
				if t.Deaka() == dora {
					count++
				}
			}
		}
	}
	return count
}
