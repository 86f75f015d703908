package chess

import "fmt"

type MoveKind int8

const (
	Normal MoveKind = iota
	CastleKingSide
	CastleQueenSide
	EnPassant
	PawnPromote
)

func (k MoveKind) String() string {
	switch k {
	case Normal:
		return "Normal"
	case CastleKingSide:
		return "CastleKingSide"
	case CastleQueenSide:
		return "CastleQueenSide"
	case EnPassant:
		return "EnPassant"
	case PawnPromote:
		return "PawnPromote"
	default:
		return fmt.Sprintf("MoveKind(%d)", int8(k))
	}
}

// Move is one history entry. For a PawnPromote move End is not a square:
// End.Row is -1 and End.Col carries the PieceType ordinal being promoted to,
// while Start is the square of the pawn waiting on the back rank.
//
// Piece and Captured are filled in by ApplyMove; moves coming out of
// GetPossibleMoves leave them empty.
type Move struct {
	Start    Square
	End      Square
	Kind     MoveKind
	Piece    Piece
	Captured Piece
}

func NewMove(start, end Square) Move {
	return Move{Start: start, End: end, Kind: Normal}
}

func newKindMove(start, end Square, kind MoveKind) Move {
	return Move{Start: start, End: end, Kind: kind}
}

// NewPromotion builds the follow-up move that turns the pawn on at into to.
func NewPromotion(at Square, to PieceType) Move {
	return Move{Start: at, End: Square{Row: -1, Col: int(to)}, Kind: PawnPromote}
}

// Promotion returns the requested piece type of a PawnPromote move, Empty otherwise.
func (m Move) Promotion() PieceType {
	if m.Kind != PawnPromote {
		return Empty
	}
	return PieceType(m.End.Col)
}

// SameSquares reports structural equality on start and end, which is how
// moves are compared throughout the engine.
func (m Move) SameSquares(o Move) bool {
	return m.Start == o.Start && m.End == o.End
}

func (m Move) String() string {
	switch m.Kind {
	case PawnPromote:
		return fmt.Sprintf("%s=%c", m.Start, m.Promotion().Letter())
	case CastleKingSide:
		return "O-O"
	case CastleQueenSide:
		return "O-O-O"
	default:
		return m.Start.String() + m.End.String()
	}
}
