package chess

import (
	"fmt"
	"strings"
)

// StartPlacement is the placement string of NewBoard.
const StartPlacement = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

var letterTypes = map[byte]PieceType{
	'p': Pawn,
	'n': Knight,
	'b': Bishop,
	'r': RookQueenSide, // 具体是哪个车由位置决定
	'q': Queen,
	'k': King,
}

// Encode writes the grid as 8 rows separated by '/', row 0 first, with
// digits for runs of empty squares, followed by the side to move.
func (b *Board) Encode() string {
	var sb strings.Builder
	for r := 0; r < BoardSize; r++ {
		empty := 0
		for c := 0; c < BoardSize; c++ {
			cl := b.grid[r][c]
			if cl == 0 {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(cl.decode().Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if r < BoardSize-1 {
			sb.WriteByte('/')
		}
	}
	if b.CurrentPlayer() == Player1 {
		sb.WriteString(" w")
	} else {
		sb.WriteString(" b")
	}
	return sb.String()
}

// DecodePlacement parses a placement string into a placement list for
// NewBoardFromPlacements. The side field is optional and must be "w".
//
// Rooks get their identity from where they stand: the rook in column 0 of
// its home row is the queen-side rook and the one in column 7 the king-side
// rook. Any other rook takes the queen-side identity on columns 0-3 or the
// king-side identity on columns 4-7 if still free, and otherwise becomes a
// RookFromPromotion.
func DecodePlacement(s string) ([]Placement, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 || len(fields) > 2 {
		return nil, fmt.Errorf("%w: expected placement and optional side, got %q", ErrInvalidFEN, s)
	}
	if len(fields) == 2 && fields[1] != "w" {
		return nil, fmt.Errorf("%w: side %q not supported, a new board always starts with white", ErrInvalidFEN, fields[1])
	}
	rows := strings.Split(fields[0], "/")
	if len(rows) != BoardSize {
		return nil, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidFEN, BoardSize, len(rows))
	}

	var out []Placement
	var rooks []Placement
	for r, row := range rows {
		c := 0
		for i := 0; i < len(row); i++ {
			ch := row[i]
			if ch >= '1' && ch <= '8' {
				c += int(ch - '0')
				continue
			}
			player := Player1
			lower := ch
			if ch >= 'a' && ch <= 'z' {
				player = Player2
			} else {
				lower = ch + ('a' - 'A')
			}
			t, ok := letterTypes[lower]
			if !ok {
				return nil, fmt.Errorf("%w: bad piece %q in row %d", ErrInvalidFEN, ch, r)
			}
			if c >= BoardSize {
				return nil, fmt.Errorf("%w: row %d too long", ErrInvalidFEN, r)
			}
			p := Placement{Square: Square{r, c}, Piece: Piece{t, player}}
			if t == RookQueenSide {
				rooks = append(rooks, p)
			} else {
				out = append(out, p)
			}
			c++
		}
		if c != BoardSize {
			return nil, fmt.Errorf("%w: row %d has %d columns", ErrInvalidFEN, r, c)
		}
	}
	return append(out, assignRookIdentities(rooks)...), nil
}

func assignRookIdentities(rooks []Placement) []Placement {
	used := map[Piece]bool{}
	// 先给站在原始角落的车分配身份
	for i := range rooks {
		p := &rooks[i]
		if p.Square.Row != p.Piece.Player.homeRow() {
			p.Piece.Type = Empty
			continue
		}
		switch p.Square.Col {
		case 0:
			p.Piece.Type = RookQueenSide
		case BoardSize - 1:
			p.Piece.Type = RookKingSide
		default:
			p.Piece.Type = Empty
			continue
		}
		used[p.Piece] = true
	}
	for i := range rooks {
		p := &rooks[i]
		if p.Piece.Type != Empty {
			continue
		}
		want := RookKingSide
		if p.Square.Col < BoardSize/2 {
			want = RookQueenSide
		}
		if id := (Piece{want, p.Piece.Player}); !used[id] {
			p.Piece = id
			used[id] = true
		} else {
			p.Piece.Type = RookFromPromotion
		}
	}
	return rooks
}

// NewBoardFromPlacement decodes s and builds a board from it.
func NewBoardFromPlacement(s string) (*Board, error) {
	ps, err := DecodePlacement(s)
	if err != nil {
		return nil, err
	}
	return NewBoardFromPlacements(ps)
}
