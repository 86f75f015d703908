package chess

// Perft counts leaf positions depth plies below b. A pawn reaching the back
// rank and its promotion choice count as a single ply, so totals line up
// with standard perft tables.
func (b *Board) Perft(depth int) int {
	if depth == 0 {
		return 1
	}
	n := 0
	for _, m := range b.GetPossibleMoves() {
		b.ApplyMove(m)
		if b.pending {
			for _, p := range b.legalMoves() {
				b.ApplyMove(p)
				n += b.Perft(depth - 1)
				b.UndoLastMove()
			}
		} else {
			n += b.Perft(depth - 1)
		}
		b.UndoLastMove()
	}
	return n
}
