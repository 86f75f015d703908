package chess

// updateStatus 在每次 ApplyMove / UndoLastMove 之后重算将军、将死、逼和
func (b *Board) updateStatus() {
	b.check, b.checkmate, b.stalemate = false, false, false
	player := b.CurrentPlayer()
	king := b.KingPosition(player)
	inCheck := king.InBounds() && threatenedBy(&b.grid, player.Opponent()).has(king)
	if len(b.legalMoves()) > 0 {
		b.check = inCheck
		return
	}
	if inCheck {
		b.checkmate = true
	} else {
		b.stalemate = true
	}
}
