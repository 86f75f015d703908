package chess

// Searchable is what a game-tree search needs from a position. The
// unexported method keeps *Board the only implementation, so a search can
// rely on exact undo.
type Searchable interface {
	CurrentPlayer() Player
	IsFinished() bool
	Weight() int
	GetPossibleMoves() []Move
	ApplyMove(Move)
	UndoLastMove()

	rulesEngine()
}

func (b *Board) rulesEngine() {}

var _ Searchable = (*Board)(nil)
