package chess

import (
	"fmt"
	"strings"
)

// Tracker names one of the six first-move records used for castling.
type Tracker int

const (
	WhiteKing Tracker = iota
	WhiteRookKingSide
	WhiteRookQueenSide
	BlackKing
	BlackRookKingSide
	BlackRookQueenSide

	numTrackers
)

const notMoved = -1

func trackerFor(player Player, t PieceType) (Tracker, bool) {
	base := WhiteKing
	if player == Player2 {
		base = BlackKing
	}
	switch t {
	case King:
		return base, true
	case RookKingSide:
		return base + 1, true
	case RookQueenSide:
		return base + 2, true
	default:
		return 0, false
	}
}

// Board is the full game state: the grid, the move history, the six
// first-move trackers, and the derived check flags.
//
// The zero value is not usable; use NewBoard or NewBoardFromPlacements.
type Board struct {
	grid       grid
	history    []Move
	promotions int // 历史中 PawnPromote 的数量
	pending    bool
	firstMove  [numTrackers]int

	check     bool
	checkmate bool
	stalemate bool
}

// Placement puts one piece on one square.
type Placement struct {
	Square Square
	Piece  Piece
}

var backRank = [BoardSize]PieceType{RookQueenSide, Knight, Bishop, Queen, King, Bishop, Knight, RookKingSide}

// NewBoard returns the standard starting position with player 1 to move.
func NewBoard() *Board {
	b := &Board{}
	for c := 0; c < BoardSize; c++ {
		b.grid.set(Square{0, c}, Piece{backRank[c], Player2})
		b.grid.set(Square{1, c}, Piece{Pawn, Player2})
		b.grid.set(Square{6, c}, Piece{Pawn, Player1})
		b.grid.set(Square{7, c}, Piece{backRank[c], Player1})
	}
	for i := range b.firstMove {
		b.firstMove[i] = notMoved
	}
	b.updateStatus()
	return b
}

// NewBoardFromPlacements builds a board from an explicit list of pieces with
// an empty history. Each player needs exactly one king. A king-side or
// queen-side rook that is missing is recorded as having moved before the
// history began, so it can never castle.
func NewBoardFromPlacements(placements []Placement) (*Board, error) {
	b := &Board{}
	var kings [3]int
	var rooks [numTrackers]bool
	for _, p := range placements {
		if !p.Square.InBounds() {
			return nil, fmt.Errorf("%w: square %v out of bounds", ErrInvalidPlacement, p.Square)
		}
		if p.Piece.IsEmpty() || !p.Piece.Type.valid() {
			return nil, fmt.Errorf("%w: bad piece type %d at %v", ErrInvalidPlacement, int8(p.Piece.Type), p.Square)
		}
		if p.Piece.Player != Player1 && p.Piece.Player != Player2 {
			return nil, fmt.Errorf("%w: piece at %v has no owner", ErrInvalidPlacement, p.Square)
		}
		if p.Piece.Type == Pawn && (p.Square.Row == 0 || p.Square.Row == BoardSize-1) {
			return nil, fmt.Errorf("%w: pawn on back rank %v", ErrInvalidPlacement, p.Square)
		}
		if b.grid.at(p.Square) != 0 {
			return nil, fmt.Errorf("%w: square %v placed twice", ErrInvalidPlacement, p.Square)
		}
		b.grid.set(p.Square, p.Piece)
		switch p.Piece.Type {
		case King:
			kings[p.Piece.Player]++
		case RookKingSide, RookQueenSide:
			t, _ := trackerFor(p.Piece.Player, p.Piece.Type)
			if rooks[t] {
				return nil, fmt.Errorf("%w: two %v rooks for %v", ErrInvalidPlacement, p.Piece.Type, p.Piece.Player)
			}
			rooks[t] = true
		}
	}
	for _, pl := range []Player{Player1, Player2} {
		if kings[pl] != 1 {
			return nil, fmt.Errorf("%w: %v has %d kings", ErrInvalidPlacement, pl, kings[pl])
		}
	}
	for i := range b.firstMove {
		b.firstMove[i] = notMoved
	}
	for _, t := range []Tracker{WhiteRookKingSide, WhiteRookQueenSide, BlackRookKingSide, BlackRookQueenSide} {
		if !rooks[t] {
			b.firstMove[t] = 0
		}
	}
	b.updateStatus()
	return b, nil
}

// GetPieceAtPosition returns the piece on sq, NoPiece if it is empty.
// sq must be on the board.
func (b *Board) GetPieceAtPosition(sq Square) Piece {
	mustInBounds(sq)
	return b.grid.at(sq).decode()
}

// GetPlayerAtPosition returns the owner of the piece on sq, NoPlayer if empty.
func (b *Board) GetPlayerAtPosition(sq Square) Player {
	mustInBounds(sq)
	return b.grid.at(sq).owner()
}

func mustInBounds(sq Square) {
	if !sq.InBounds() {
		panic(fmt.Sprintf("chess: square %d,%d is off the board", sq.Row, sq.Col))
	}
}

func (b *Board) PositionIsEmpty(sq Square) bool {
	return b.GetPieceAtPosition(sq).IsEmpty()
}

func (b *Board) PositionIsEnemy(sq Square, player Player) bool {
	owner := b.GetPlayerAtPosition(sq)
	return owner != NoPlayer && owner != player
}

// CurrentPlayer is derived from the history. A pawn move that reached the
// back rank does not pass the turn until the promotion is chosen.
func (b *Board) CurrentPlayer() Player {
	n := len(b.history) - b.promotions
	if b.pending {
		n--
	}
	if n%2 == 0 {
		return Player1
	}
	return Player2
}

func (b *Board) History() []Move {
	out := make([]Move, len(b.history))
	copy(out, b.history)
	return out
}

func (b *Board) MoveCount() int { return len(b.history) }

// LastMove returns the most recent history entry.
func (b *Board) LastMove() (Move, bool) {
	if len(b.history) == 0 {
		return Move{}, false
	}
	return b.history[len(b.history)-1], true
}

func (b *Board) IsCheck() bool     { return b.check }
func (b *Board) IsCheckmate() bool { return b.checkmate }
func (b *Board) IsStalemate() bool { return b.stalemate }
func (b *Board) IsFinished() bool  { return b.checkmate || b.stalemate }

// PendingPromotion reports whether a pawn sits on the back rank waiting for
// its promotion choice.
func (b *Board) PendingPromotion() bool { return b.pending }

// FirstMoveIndex returns the 1-based history index of the move that first
// moved the tracked piece, or -1 while it has never moved. Zero means it
// was gone before the history began.
func (b *Board) FirstMoveIndex(t Tracker) int {
	if t < 0 || t >= numTrackers {
		panic(fmt.Sprintf("chess: unknown tracker %d", t))
	}
	return b.firstMove[t]
}

// KingPosition returns where player's king stands, or NoSquare.
func (b *Board) KingPosition(player Player) Square {
	want := encodeCell(Piece{King, player})
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b.grid[r][c] == want {
				return Square{r, c}
			}
		}
	}
	return NoSquare
}

// GetPositionsOfPiece returns every square holding the given piece, in row-major order.
func (b *Board) GetPositionsOfPiece(t PieceType, player Player) []Square {
	want := encodeCell(Piece{t, player})
	var out []Square
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if b.grid[r][c] == want {
				out = append(out, Square{r, c})
			}
		}
	}
	return out
}

// String 打印棋盘，第 0 行在最上面
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < BoardSize; r++ {
		sb.WriteByte(byte('0' + BoardSize - r))
		sb.WriteByte(' ')
		for c := 0; c < BoardSize; c++ {
			sb.WriteByte(b.grid[r][c].decode().Letter())
			if c < BoardSize-1 {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	return sb.String()
}
