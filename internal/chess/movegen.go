package chess

import "fmt"

var promotionChoices = [4]PieceType{Queen, Knight, Bishop, RookFromPromotion}

// GetPossibleMoves returns every legal move for the current player. While a
// promotion is pending the only moves are the four promotion choices.
// A checkmated position has no moves.
func (b *Board) GetPossibleMoves() []Move {
	if b.checkmate {
		return nil
	}
	return b.legalMoves()
}

// legalMoves 不看 checkmate 标志；updateStatus 在标志过期时也要用它
func (b *Board) legalMoves() []Move {
	if b.pending {
		at := b.history[len(b.history)-1].End
		moves := make([]Move, 0, len(promotionChoices))
		for _, t := range promotionChoices {
			moves = append(moves, NewPromotion(at, t))
		}
		return moves
	}

	player := b.CurrentPlayer()
	opponent := player.Opponent()
	king := b.KingPosition(player)
	threatened := threatenedBy(&b.grid, opponent)

	// 被将军时的解将格；双将只能动王
	relief := allSquares
	var checkers squareSet
	inCheck, doubleCheck := false, false
	if king.InBounds() && threatened.has(king) {
		inCheck = true
		checkers = attackersOf(&b.grid, king, opponent)
		sqs := checkers.squares()
		if len(sqs) > 1 {
			doubleCheck = true
		} else {
			relief = reliefSquares(&b.grid, sqs[0], king)
		}
	}

	moves := make([]Move, 0, 48)
	for r := 0; r < BoardSize; r++ {
		for c := 0; c < BoardSize; c++ {
			cl := b.grid[r][c]
			if cl == 0 || cl.owner() != player {
				continue
			}
			from := Square{r, c}
			if cl.kind() == King {
				moves = b.appendKingMoves(moves, from, player, threatened, inCheck)
				continue
			}
			if doubleCheck {
				continue
			}
			allowed := relief
			if king.InBounds() && threatened.has(from) {
				if pin, ok := b.pinRelief(from, king, opponent, checkers); ok {
					allowed &= pin
				}
			}

			start := len(moves)
			switch cl.kind() {
			case Pawn:
				moves = b.appendPawnMoves(moves, from, player, king)
			case Knight, Bishop, Queen, RookQueenSide, RookKingSide, RookFromPromotion:
				walkAttacks(&b.grid, from, func(to Square) {
					if b.grid.at(to).owner() != player {
						moves = append(moves, NewMove(from, to))
					}
				})
			default:
				panic(fmt.Sprintf("chess: unknown piece %v at %v", cl.kind(), from))
			}
			if allowed != allSquares {
				moves = filterMoves(moves, start, allowed)
			}
		}
	}
	return moves
}

// filterMoves 只保留 moves[start:] 中落点在 allowed 里的着法。
// 吃过路兵已经在试走棋盘上验证过，原样保留。
func filterMoves(moves []Move, start int, allowed squareSet) []Move {
	kept := moves[:start]
	for _, m := range moves[start:] {
		if m.Kind == EnPassant || allowed.has(m.End) {
			kept = append(kept, m)
		}
	}
	return kept
}

// pinRelief 判断 from 上的棋子是否被牵制：拿掉它后出现新的攻王棋子。
// 被牵制时只能走到牵制线上（含吃掉牵制子）。
func (b *Board) pinRelief(from, king Square, opponent Player, checkers squareSet) (squareSet, bool) {
	saved := b.grid.at(from)
	b.grid.clear(from)
	after := attackersOf(&b.grid, king, opponent)
	var pinner Square
	found := false
	if fresh := after &^ checkers; fresh != 0 {
		pinner = fresh.squares()[0]
		found = true
	}
	b.grid[from.Row][from.Col] = saved
	if !found {
		return 0, false
	}
	return reliefSquares(&b.grid, pinner, king), true
}

func (b *Board) appendPawnMoves(moves []Move, from Square, player Player, king Square) []Move {
	dir := player.forward()
	one := from.Translate(dir, 0)
	if !one.InBounds() {
		return moves
	}
	if b.grid.at(one) == 0 {
		moves = append(moves, NewMove(from, one))
		if from.Row == player.pawnRow() {
			two := from.Translate(2*dir, 0)
			if b.grid.at(two) == 0 {
				moves = append(moves, NewMove(from, two))
			}
		}
	}
	for _, dc := range [2]int{-1, 1} {
		to := from.Translate(dir, dc)
		if to.InBounds() && b.grid.at(to).owner() == player.Opponent() {
			moves = append(moves, NewMove(from, to))
		}
	}
	if to, ok := b.enPassantTarget(from, player); ok && b.enPassantKeepsKingSafe(from, to, player, king) {
		moves = append(moves, newKindMove(from, to, EnPassant))
	}
	return moves
}

// enPassantTarget 上一步必须是对方的兵从起始行走两格，停在 from 的左右紧邻
func (b *Board) enPassantTarget(from Square, player Player) (Square, bool) {
	last, ok := b.LastMove()
	if !ok || last.Kind != Normal || last.Piece != (Piece{Pawn, player.Opponent()}) {
		return NoSquare, false
	}
	if abs(last.Start.Row-last.End.Row) != 2 || last.Start.Col != last.End.Col {
		return NoSquare, false
	}
	if last.End.Row != from.Row || abs(last.End.Col-from.Col) != 1 {
		return NoSquare, false
	}
	return Square{from.Row + player.forward(), last.End.Col}, true
}

// enPassantKeepsKingSafe 在棋盘上试走一次，看王是否仍被攻击
func (b *Board) enPassantKeepsKingSafe(from, to Square, player Player, king Square) bool {
	if !king.InBounds() {
		return true
	}
	victim := Square{from.Row, to.Col}
	savedFrom, savedVictim := b.grid.at(from), b.grid.at(victim)
	b.grid[to.Row][to.Col] = savedFrom
	b.grid.clear(from)
	b.grid.clear(victim)
	safe := !threatenedBy(&b.grid, player.Opponent()).has(king)
	b.grid.clear(to)
	b.grid[from.Row][from.Col] = savedFrom
	b.grid[victim.Row][victim.Col] = savedVictim
	return safe
}

func (b *Board) appendKingMoves(moves []Move, from Square, player Player, threatened squareSet, inCheck bool) []Move {
	// 被将军时把王拿掉重新算受攻击格，王不能沿着攻击线后退
	unsafe := threatened
	if inCheck {
		saved := b.grid.at(from)
		b.grid.clear(from)
		unsafe = threatenedBy(&b.grid, player.Opponent())
		b.grid[from.Row][from.Col] = saved
	}
	walkAttacks(&b.grid, from, func(to Square) {
		if b.grid.at(to).owner() != player && !unsafe.has(to) {
			moves = append(moves, NewMove(from, to))
		}
	})
	if !inCheck {
		moves = b.appendCastles(moves, from, player, threatened)
	}
	return moves
}

type castleRule struct {
	kind    MoveKind
	rook    PieceType
	rookCol int
	empty   []int // 王车之间必须为空的列
	path    []int // 王经过的列（含起点、终点），不能受攻击
}

var castleRules = [2]castleRule{
	{kind: CastleKingSide, rook: RookKingSide, rookCol: 7, empty: []int{5, 6}, path: []int{4, 5, 6}},
	{kind: CastleQueenSide, rook: RookQueenSide, rookCol: 0, empty: []int{1, 2, 3}, path: []int{4, 3, 2}},
}

func (b *Board) appendCastles(moves []Move, king Square, player Player, threatened squareSet) []Move {
	row := player.homeRow()
	if king != (Square{row, 4}) {
		return moves
	}
	kt, _ := trackerFor(player, King)
	if b.firstMove[kt] != notMoved {
		return moves
	}
next:
	for _, rule := range castleRules {
		rt, _ := trackerFor(player, rule.rook)
		if b.firstMove[rt] != notMoved {
			continue
		}
		if b.grid.at(Square{row, rule.rookCol}) != encodeCell(Piece{rule.rook, player}) {
			continue
		}
		for _, col := range rule.empty {
			if b.grid[row][col] != 0 {
				continue next
			}
		}
		for _, col := range rule.path {
			if threatened.has(Square{row, col}) {
				continue next
			}
		}
		moves = append(moves, newKindMove(king, Square{row, rule.path[len(rule.path)-1]}, rule.kind))
	}
	return moves
}
