package state

import (
	"fmt"
	"strings"

	"riichiengine/hand"
	"riichiengine/tile"
)

// Dump renders a fixed multi-line text snapshot of the tracked seat's
// state. The format is advisory — it exists for validator failure
// reports and manual debugging, not as a stable wire or storage
// format.
func (s *PlayerState) Dump() string {
	var b strings.Builder

	fmt.Fprintf(&b, "player=%d oya=%d kyoku=%d honba=%d kyotaku=%d turn=%d jikaze=%s bakaze=%s\n",
		s.PlayerID, s.Oya, s.Kyoku, s.Honba, s.Kyotaku, s.AtTurn, windString(s.Jikaze), windString(s.Bakaze))
	fmt.Fprintf(&b, "scores=%v tiles_left=%d shanten=%d\n", s.Scores, s.TilesLeft, s.Shanten)

	fmt.Fprintf(&b, "tehai=%s akas={m:%t p:%t s:%t}\n", dumpCounts(s.Tehai), s.Akas.Man5, s.Akas.Pin5, s.Akas.Sou5)
	fmt.Fprintf(&b, "fuuro=%s\n", dumpMelds(s.Seats[0].Fuuro))
	fmt.Fprintf(&b, "ankan=%s\n", dumpIDs(s.Seats[0].Ankan))

	permanent, temporary, riichi, any := s.Furiten()
	fmt.Fprintf(&b, "furiten={permanent:%t temporary:%t riichi:%t any:%t}\n", permanent, temporary, riichi, any)
	fmt.Fprintf(&b, "waits=%s\n", dumpIDs(s.WaitTiles()))

	fmt.Fprintf(&b, "dora_indicators=%s doras_owned=%d doras_seen=%d\n",
		dumpIDs(s.DoraIndicators), s.Seats[0].DorasOwned, s.DorasSeen)
	fmt.Fprintf(&b, "last_cans=%+v\n", s.LastCans)

	if s.HasLastSelfTsumo {
		fmt.Fprintf(&b, "last_self_tsumo=%s\n", s.LastSelfTsumo)
	} else {
		b.WriteString("last_self_tsumo=(none)\n")
	}
	if s.HasLastKawaTile {
		fmt.Fprintf(&b, "last_kawa_tile=%s\n", s.LastKawaTile)
	} else {
		b.WriteString("last_kawa_tile=(none)\n")
	}

	b.WriteString("kawa:\n")
	for seat := 0; seat < 4; seat++ {
		fmt.Fprintf(&b, "  seat%d: %s\n", seat, dumpTiles(s.Seats[seat].KawaOverview))
	}

	return b.String()
}

func windString(id tile.ID) string {
	return tile.Tile{ID: id}.String()
}

func dumpCounts(c hand.Counts) string {
	var parts []string
	for t := 0; t < tile.NumTiles; t++ {
		if c[t] > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", tile.Tile{ID: tile.ID(t)}, c[t]))
		}
	}
	return strings.Join(parts, " ")
}

func dumpIDs(ids []tile.ID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = tile.Tile{ID: id}.String()
	}
	return strings.Join(parts, " ")
}

func dumpTiles(ts []tile.Tile) string {
	parts := make([]string, len(ts))
	for i, t := range ts {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func dumpMelds(melds []hand.Meld) string {
	var parts []string
	for _, m := range melds {
		parts = append(parts, fmt.Sprintf("%s(%s)", m.Kind, dumpTiles(m.Tiles)))
	}
	return strings.Join(parts, " ")
}
