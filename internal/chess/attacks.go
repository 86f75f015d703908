package chess

import "fmt"

var (
	rookDirs   = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}
	bishopDirs = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	queenDirs  = [8][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}, {-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

	knightOffsets = [8][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
)

// walkAttacks calls visit for every square the piece on from attacks.
// Sliders stop at and include the first occupied square on each ray.
// Pawns only attack their two forward diagonals. An empty square attacks nothing.
func walkAttacks(g *grid, from Square, visit func(Square)) {
	c := g.at(from)
	switch c.kind() {
	case Empty:
	case Pawn:
		dir := c.owner().forward()
		for _, dc := range [2]int{-1, 1} {
			to := from.Translate(dir, dc)
			if to.InBounds() {
				visit(to)
			}
		}
	case Knight:
		for _, o := range knightOffsets {
			to := from.Translate(o[0], o[1])
			if to.InBounds() {
				visit(to)
			}
		}
	case King:
		for _, d := range queenDirs {
			to := from.Translate(d[0], d[1])
			if to.InBounds() {
				visit(to)
			}
		}
	case RookQueenSide, RookKingSide, RookFromPromotion:
		walkRays(g, from, rookDirs[:], visit)
	case Bishop:
		walkRays(g, from, bishopDirs[:], visit)
	case Queen:
		walkRays(g, from, queenDirs[:], visit)
	default:
		panic(fmt.Sprintf("chess: unknown piece type %v at %v", c.kind(), from))
	}
}

func walkRays(g *grid, from Square, dirs [][2]int, visit func(Square)) {
	for _, d := range dirs {
		to := from.Translate(d[0], d[1])
		for to.InBounds() {
			visit(to)
			if g.at(to) != 0 {
				break
			}
			to = to.Translate(d[0], d[1])
		}
	}
}

func attackSet(g *grid, from Square) squareSet {
	var s squareSet
	walkAttacks(g, from, s.add)
	return s
}

// threatenedBy 返回 player 所有棋子攻击到的格子（含己方棋子所在格）
func threatenedBy(g *grid, player Player) squareSet {
	var s squareSet
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if g[r][c] != 0 && g[r][c].owner() == player {
				walkAttacks(g, Square{r, c}, s.add)
			}
		}
	}
	return s
}

// attackersOf 返回 player 中攻击 target 的棋子位置集合
func attackersOf(g *grid, target Square, player Player) squareSet {
	var s squareSet
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			if g[r][c] == 0 || g[r][c].owner() != player {
				continue
			}
			from := Square{r, c}
			if attackSet(g, from).has(target) {
				s.add(from)
			}
		}
	}
	return s
}

// lineBetween 返回 from 与 to 之间（不含两端）的格子；不在一条直线上返回空集
func lineBetween(from, to Square) squareSet {
	dr, dc := sign(to.Row-from.Row), sign(to.Col-from.Col)
	if dr != 0 && dc != 0 && abs(to.Row-from.Row) != abs(to.Col-from.Col) {
		return 0
	}
	if dr == 0 && dc == 0 {
		return 0
	}
	var s squareSet
	for sq := from.Translate(dr, dc); sq != to; sq = sq.Translate(dr, dc) {
		s.add(sq)
	}
	return s
}

// reliefSquares 是能解除 attacker 对 king 威胁的落点：吃掉它，或者（滑子时）挡在中间
func reliefSquares(g *grid, attacker, king Square) squareSet {
	var s squareSet
	s.add(attacker)
	if g.at(attacker).kind().slides() {
		s |= lineBetween(attacker, king)
	}
	return s
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// AttacksFrom returns the squares the piece on sq attacks, in a fixed order.
// An empty square attacks nothing.
func (b *Board) AttacksFrom(sq Square) []Square {
	if !sq.InBounds() {
		return nil
	}
	var out []Square
	walkAttacks(&b.grid, sq, func(to Square) { out = append(out, to) })
	return out
}

// ThreatenedSquares returns every square attacked by player's pieces.
func (b *Board) ThreatenedSquares(player Player) []Square {
	return threatenedBy(&b.grid, player).squares()
}

// IsThreatened reports whether sq is attacked by any piece of player.
func (b *Board) IsThreatened(sq Square, player Player) bool {
	return sq.InBounds() && threatenedBy(&b.grid, player).has(sq)
}
