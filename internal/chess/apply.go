package chess

import "fmt"

// castleRookSquares 返回王车易位时车的起点与终点
func castleRookSquares(m Move) (from, to Square) {
	row := m.Start.Row
	if m.Kind == CastleKingSide {
		return Square{row, BoardSize - 1}, Square{row, m.End.Col - 1}
	}
	return Square{row, 0}, Square{row, m.End.Col + 1}
}

func enPassantVictim(m Move) Square {
	return Square{m.Start.Row, m.End.Col}
}

func (b *Board) markMoved(player Player, t PieceType, index int) {
	tr, ok := trackerFor(player, t)
	if ok && b.firstMove[tr] == notMoved {
		b.firstMove[tr] = index
	}
}

// ApplyMove plays m for the current player and appends it to the history.
// m must come from GetPossibleMoves; anything else corrupts the board.
func (b *Board) ApplyMove(m Move) {
	player := b.CurrentPlayer()
	index := len(b.history) + 1
	m.Captured = NoPiece
	if m.Kind != PawnPromote {
		m.Piece = b.grid.at(m.Start).decode()
		if m.Piece.Player != player {
			panic(fmt.Sprintf("chess: %v moves %v which it does not own", player, m))
		}
	}

	switch m.Kind {
	case Normal:
		m.Captured = b.grid.at(m.End).decode()
		b.grid.set(m.End, m.Piece)
		b.grid.clear(m.Start)
		switch m.Piece.Type {
		case Pawn:
			if m.End.Row == 0 || m.End.Row == BoardSize-1 {
				b.pending = true
			}
		case King, RookKingSide, RookQueenSide:
			b.markMoved(player, m.Piece.Type, index)
		case Knight, Bishop, Queen, RookFromPromotion:
		default:
			panic(fmt.Sprintf("chess: cannot move %v", m.Piece))
		}
	case CastleKingSide, CastleQueenSide:
		rookFrom, rookTo := castleRookSquares(m)
		rook := b.grid.at(rookFrom).decode()
		b.grid.set(m.End, m.Piece)
		b.grid.clear(m.Start)
		b.grid.set(rookTo, rook)
		b.grid.clear(rookFrom)
		b.markMoved(player, King, index)
		b.markMoved(player, rook.Type, index)
	case EnPassant:
		victim := enPassantVictim(m)
		m.Captured = b.grid.at(victim).decode()
		b.grid.set(m.End, m.Piece)
		b.grid.clear(m.Start)
		b.grid.clear(victim)
	case PawnPromote:
		if !b.pending {
			panic("chess: promotion without a pawn on the back rank")
		}
		promoted := Piece{m.Promotion(), player}
		b.grid.set(m.Start, promoted)
		m.Piece = promoted
		b.pending = false
		b.promotions++
	default:
		panic(fmt.Sprintf("chess: unknown move kind %v", m.Kind))
	}

	b.history = append(b.history, m)
	b.updateStatus()
}

// UndoLastMove restores the board to exactly the state before the last
// ApplyMove. Undoing a PawnPromote leaves the pawn on the back rank with its
// promotion pending again. Calling it on an empty history does nothing.
func (b *Board) UndoLastMove() {
	if len(b.history) == 0 {
		return
	}
	// 悬而未决的升变直接放弃，连同那步兵一起撤回
	b.pending = false

	index := len(b.history)
	m := b.history[index-1]
	b.history = b.history[:index-1]

	switch m.Kind {
	case PawnPromote:
		b.grid.set(m.Start, Piece{Pawn, m.Piece.Player})
		b.pending = true
		b.promotions--
	case Normal:
		b.grid.set(m.Start, m.Piece)
		if m.Captured.IsEmpty() {
			b.grid.clear(m.End)
		} else {
			b.grid.set(m.End, m.Captured)
		}
	case CastleKingSide, CastleQueenSide:
		rookFrom, rookTo := castleRookSquares(m)
		rook := b.grid.at(rookTo).decode()
		b.grid.set(m.Start, m.Piece)
		b.grid.clear(m.End)
		b.grid.set(rookFrom, rook)
		b.grid.clear(rookTo)
	case EnPassant:
		b.grid.set(m.Start, m.Piece)
		b.grid.clear(m.End)
		b.grid.set(enPassantVictim(m), m.Captured)
	default:
		panic(fmt.Sprintf("chess: unknown move kind %v", m.Kind))
	}

	for i, v := range b.firstMove {
		if v == index {
			b.firstMove[i] = notMoved
		}
	}
	b.updateStatus()
}

// Play checks m against the legal moves before applying it. Only the
// squares and, for promotions, the requested piece need to match.
func (b *Board) Play(m Move) (Move, error) {
	if b.IsFinished() {
		return Move{}, ErrGameOver
	}
	for _, legal := range b.GetPossibleMoves() {
		if legal.SameSquares(m) {
			b.ApplyMove(legal)
			applied, _ := b.LastMove()
			return applied, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %v", ErrIllegalMove, m)
}
