package chess

import "fmt"

// Player identifies who owns a piece. Player1 (white) moves toward row 0,
// Player2 (black) toward row 7.
type Player int8

const (
	NoPlayer Player = 0
	Player1  Player = 1
	Player2  Player = 2
)

func (p Player) String() string {
	switch p {
	case Player1:
		return "White"
	case Player2:
		return "Black"
	default:
		return "None"
	}
}

// Opponent returns the other player; NoPlayer has no opponent.
func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

// 兵的前进方向：白向上(-1)，黑向下(+1)
func (p Player) forward() int {
	if p == Player1 {
		return -1
	}
	return 1
}

func (p Player) homeRow() int {
	if p == Player1 {
		return BoardSize - 1
	}
	return 0
}

func (p Player) pawnRow() int {
	if p == Player1 {
		return BoardSize - 2
	}
	return 1
}

// PieceType is the kind of piece on a square. The three rook identities are
// kept apart because castling eligibility is tracked per rook.
type PieceType int8

const (
	Empty PieceType = iota
	Pawn
	RookQueenSide
	RookKingSide
	Knight
	Bishop
	Queen
	King
	RookFromPromotion

	numPieceTypes
)

var pieceTypeNames = [numPieceTypes]string{
	Empty:             "Empty",
	Pawn:              "Pawn",
	RookQueenSide:     "RookQueenSide",
	RookKingSide:      "RookKingSide",
	Knight:            "Knight",
	Bishop:            "Bishop",
	Queen:             "Queen",
	King:              "King",
	RookFromPromotion: "RookFromPromotion",
}

var pieceLetters = [numPieceTypes]byte{
	Empty:             '.',
	Pawn:              'P',
	RookQueenSide:     'R',
	RookKingSide:      'R',
	Knight:            'N',
	Bishop:            'B',
	Queen:             'Q',
	King:              'K',
	RookFromPromotion: 'R',
}

func (t PieceType) valid() bool { return t >= Empty && t < numPieceTypes }

func (t PieceType) String() string {
	if !t.valid() {
		return fmt.Sprintf("PieceType(%d)", int8(t))
	}
	return pieceTypeNames[t]
}

// Letter returns the uppercase letter for t. Every rook identity is 'R'.
func (t PieceType) Letter() byte {
	if !t.valid() {
		return '?'
	}
	return pieceLetters[t]
}

// IsRook reports whether t is any of the rook identities.
func (t PieceType) IsRook() bool {
	return t == RookQueenSide || t == RookKingSide || t == RookFromPromotion
}

func (t PieceType) slides() bool {
	return t.IsRook() || t == Bishop || t == Queen
}

// Piece is a piece type paired with its owner. The zero value is an empty square.
type Piece struct {
	Type   PieceType
	Player Player
}

// NoPiece is the empty square.
var NoPiece = Piece{}

func (p Piece) IsEmpty() bool { return p.Type == Empty }

// Letter returns the piece letter, uppercase for Player1 and lowercase for Player2.
func (p Piece) Letter() byte {
	l := p.Type.Letter()
	if p.Player == Player2 && l >= 'A' && l <= 'Z' {
		l += 'a' - 'A'
	}
	return l
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "Empty"
	}
	return p.Player.String() + " " + p.Type.String()
}
