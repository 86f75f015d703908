package chess

import (
	"fmt"
	"math"
)

// 子力价值
var pieceValue = map[PieceType]int{
	Empty:             0,
	Pawn:              1,
	Knight:            3,
	Bishop:            3,
	RookQueenSide:     5,
	RookKingSide:      5,
	RookFromPromotion: 5,
	Queen:             9,
	King:              0,
}

// threatBonus 是攻击到对方某个棋子时的加分
func threatBonus(t PieceType) int {
	switch t {
	case RookQueenSide, RookKingSide, RookFromPromotion:
		return 2
	case Knight, Bishop:
		return 1
	case Queen:
		return 5
	case King:
		return 4
	case Pawn:
		return 0
	default:
		panic(fmt.Sprintf("chess: no threat bonus for %v", t))
	}
}

// Value is the material balance from player 1's point of view, computed
// from the history: each capture is worth the captured piece, each
// promotion the new piece minus a pawn.
func (b *Board) Value() int {
	v := 0
	for _, m := range b.history {
		gain := 0
		if m.Kind == PawnPromote {
			gain = pieceValue[m.Piece.Type] - pieceValue[Pawn]
		} else {
			gain = pieceValue[m.Captured.Type]
		}
		if m.Piece.Player == Player1 {
			v += gain
		} else {
			v -= gain
		}
	}
	return v
}

// Weight is the heuristic score used by the search. Larger is better for
// player 1. A checkmate scores the extreme for the winner and a stalemate
// is zero.
func (b *Board) Weight() int {
	if b.checkmate {
		if b.CurrentPlayer() == Player2 {
			return math.MaxInt
		}
		return math.MinInt
	}
	if b.stalemate {
		return 0
	}

	var score [3]int
	// 兵的推进：历史里兵每一步走过的行数
	for _, m := range b.history {
		if m.Kind != PawnPromote && m.Piece.Type == Pawn {
			score[m.Piece.Player] += abs(m.Start.Row - m.End.Row)
		}
	}
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			cl := b.grid[r][c]
			if cl == 0 {
				continue
			}
			owner := cl.owner()
			score[owner] += pieceValue[cl.kind()]
			walkAttacks(&b.grid, Square{r, c}, func(to Square) {
				target := b.grid.at(to)
				switch {
				case target == 0:
				case target.owner() == owner:
					// 保护己方的马和象
					if k := target.kind(); k == Knight || k == Bishop {
						score[owner]++
					}
				default:
					score[owner] += threatBonus(target.kind())
				}
			})
		}
	}
	return score[Player1] - score[Player2]
}
