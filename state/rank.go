package state

// Rank returns the tracked seat's placement (0 = first place, 3 =
// last) given the current rotated Scores. Ties resolve by turn order
// starting at Oya: the seat earlier in turn order keeps the better
// rank, so the tracked seat being later in a tied group is ranked
// worse than an equally-scored seat ahead of it (spec.md §8 scenario 6).
func (s *PlayerState) Rank() int {
	pos := func(relSeat int) int { return (relSeat - s.Oya + 4) % 4 }
	selfPos := pos(0)

	rank := 0
	for seat := 1; seat < 4; seat++ {
		if s.Scores[seat] > s.Scores[0] {
			rank++
			continue
		}
		if s.Scores[seat] == s.Scores[0] && pos(seat) < selfPos {
			rank++
		}
	}
	return rank
}
