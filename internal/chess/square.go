package chess

import (
	"fmt"
)

const BoardSize = 8

// Square is a (row, col) coordinate. Row 0 is black's back rank, col 0 is the a-file.
type Square struct {
	Row int
	Col int
}

// NoSquare 表示“没有这个格子”（例如棋盘上没有王）
var NoSquare = Square{Row: -1, Col: -1}

func Sq(row, col int) Square { return Square{Row: row, Col: col} }

func (s Square) InBounds() bool {
	return s.Row >= 0 && s.Row < BoardSize && s.Col >= 0 && s.Col < BoardSize
}

func (s Square) Translate(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

func (s Square) index() int { return s.Row*BoardSize + s.Col }

// String 返回代数记法（e2、h8），越界返回 "-"
func (s Square) String() string {
	if !s.InBounds() {
		return "-"
	}
	return string([]byte{byte('a' + s.Col), byte('0' + BoardSize - s.Row)})
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}
	return Square{Row: BoardSize - int(rank-'0'), Col: int(file - 'a')}, nil
}

// MustParseSquare is ParseSquare for literals; it panics on bad input.
func MustParseSquare(s string) Square {
	sq, err := ParseSquare(s)
	if err != nil {
		panic(err)
	}
	return sq
}

// squareSet 是 64 位的格子集合，bit = row*8+col
type squareSet uint64

const allSquares = ^squareSet(0)

func (s squareSet) has(sq Square) bool { return s&(1<<uint(sq.index())) != 0 }

func (s *squareSet) add(sq Square) { *s |= 1 << uint(sq.index()) }

func (s squareSet) squares() []Square {
	var out []Square
	for i := 0; i < BoardSize*BoardSize; i++ {
		if s&(1<<uint(i)) != 0 {
			out = append(out, Square{Row: i / BoardSize, Col: i % BoardSize})
		}
	}
	return out
}
