package agari

// roundUpTo100 rounds a payment up to the nearest multiple of 100, the
// standard payment rounding rule.
func roundUpTo100(base int) int {
	if base%100 == 0 {
		return base
	}
	return base + (100 - base%100)
}

// basePoints is fu * 2^(2+han), the pre-multiplier base score, capped
// at the mangan base of 2000. It is not rounded; pointsFromBase rounds
// each payment.
func basePoints(han, fu int) int {
	base := fu * (1 << uint(2+han))
	if base > 2000 {
		base = 2000
	}
	return base
}

// Points is the payment triple a scored hand resolves to.
type Points struct {
	Ron      int
	TsumoOya int
	TsumoKo  int
}

// pointsFromBase turns a han<5 base point value into the three-way
// payment split depending on who won and how, each rounded up to 100.
func pointsFromBase(base int, isDealer bool) Points {
	if isDealer {
		return Points{Ron: roundUpTo100(base * 6), TsumoOya: roundUpTo100(base * 2), TsumoKo: roundUpTo100(base * 2)}
	}
	return Points{Ron: roundUpTo100(base * 4), TsumoOya: roundUpTo100(base * 2), TsumoKo: roundUpTo100(base)}
}

// fixedPoints returns the mangan-and-above flat table (han 5..12),
// before honba. han must already be clamped to [5,12] by the caller.
func fixedPoints(han int, isDealer bool) Points {
	var ronNonDealer, ronDealer, tsumoNonDealer, tsumoDealer int
	switch {
	case han == 5:
		ronNonDealer, ronDealer, tsumoNonDealer, tsumoDealer = 8000, 12000, 2000, 4000
	case han >= 6 && han <= 7:
		ronNonDealer, ronDealer, tsumoNonDealer, tsumoDealer = 12000, 18000, 3000, 6000
	case han >= 8 && han <= 10:
		ronNonDealer, ronDealer, tsumoNonDealer, tsumoDealer = 16000, 24000, 4000, 8000
	default: // 11-12, sanbaiman
		ronNonDealer, ronDealer, tsumoNonDealer, tsumoDealer = 24000, 36000, 6000, 12000
	}
	if isDealer {
		return Points{Ron: ronDealer, TsumoOya: tsumoDealer, TsumoKo: tsumoDealer}
	}
	return Points{Ron: ronNonDealer, TsumoOya: tsumoDealer, TsumoKo: tsumoNonDealer}
}

// yakumanPoints returns the flat yakuman table for the given multiplier
// (1 = single yakuman, 2 = double, ...). Capping the multiplier is the
// caller's job (RuleSet.DoubleYakuman / KazoeYakumanCap).
func yakumanPoints(mult int, isDealer bool) Points {
	base := 8000 * mult
	if isDealer {
		return Points{Ron: base * 6, TsumoOya: base * 2, TsumoKo: base * 2}
	}
	return Points{Ron: base * 4, TsumoOya: base * 2, TsumoKo: base}
}

func addHonba(p Points, honba int) Points {
	p.Ron += 300 * honba
	p.TsumoOya += 100 * honba
	p.TsumoKo += 100 * honba
	return p
}
