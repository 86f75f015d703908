package chess

import "fmt"

// cell is one square of the grid: 0=空；>0 白；<0 黑；abs=PieceType
type cell int8

func encodeCell(p Piece) cell {
	if !p.Type.valid() {
		panic(fmt.Sprintf("chess: cannot encode piece type %d", int8(p.Type)))
	}
	if p.Type == Empty {
		return 0
	}
	switch p.Player {
	case Player1:
		return cell(p.Type)
	case Player2:
		return -cell(p.Type)
	default:
		panic(fmt.Sprintf("chess: %v has no owner", p.Type))
	}
}

func (c cell) kind() PieceType {
	if c < 0 {
		return PieceType(-c)
	}
	return PieceType(c)
}

func (c cell) owner() Player {
	switch {
	case c > 0:
		return Player1
	case c < 0:
		return Player2
	default:
		return NoPlayer
	}
}

func (c cell) decode() Piece {
	return Piece{Type: c.kind(), Player: c.owner()}
}

type grid [BoardSize][BoardSize]cell

func (g *grid) at(sq Square) cell { return g[sq.Row][sq.Col] }

func (g *grid) set(sq Square, p Piece) { g[sq.Row][sq.Col] = encodeCell(p) }

func (g *grid) clear(sq Square) { g[sq.Row][sq.Col] = 0 }
