package engine

import (
	"math"
	"sync/atomic"
	"time"

	"chessai/internal/chess"
)

// 正负无穷：与 Weight 的将死分一致
const (
	scoreMax = math.MaxInt
	scoreMin = math.MinInt
)

// 搜索配置
type SearchConfig struct {
	MaxDepth int // 固定搜索深度（ply），<=0 用默认值
}

// 搜索结果
type SearchResult struct {
	BestMove chess.Move    // 最佳着法，Found 为 false 时无意义
	Found    bool          // 是否有可走的着法
	Score    int           // 根节点的分数（正：白方好）
	Depth    int           // 搜索深度
	Nodes    int64         // 节点数
	TimeUsed time.Duration // 花费时间
}

type bestMove struct {
	weight int
	move   chess.Move
	found  bool
}

// FindBestMove runs a fixed-depth alpha-beta search from b's current
// position and returns the chosen move. ok is false when b is finished or
// depth is zero. b is restored before returning.
func FindBestMove(b chess.Searchable, depth int) (chess.Move, bool) {
	e := &Engine{}
	res := e.alphaBeta(b, depth, scoreMin, scoreMax)
	return res.move, res.found
}

// alphaBeta 是 fail-hard 的极小极大搜索。
// 白方（Player1）求极大，黑方求极小；每个节点都重新看轮到谁走，
// 所以升变未完成时同一方连走两步。
// 没有着法能改善窗口时，返回最后一个检查过的着法。
func (e *Engine) alphaBeta(b chess.Searchable, depthLeft int, alpha, beta int) bestMove {
	atomic.AddInt64(&e.nodes, 1)
	if depthLeft <= 0 || b.IsFinished() {
		return bestMove{weight: b.Weight()}
	}

	maximize := b.CurrentPlayer() == chess.Player1
	var best, last chess.Move
	improved, examined := false, false

	for _, mv := range b.GetPossibleMoves() {
		b.ApplyMove(mv)
		child := e.alphaBeta(b, depthLeft-1, alpha, beta)
		b.UndoLastMove()
		last, examined = mv, true

		if maximize {
			if child.weight >= beta {
				return bestMove{weight: beta, move: mv, found: true}
			}
			if child.weight > alpha {
				alpha = child.weight
				best, improved = mv, true
			}
		} else {
			if child.weight <= alpha {
				return bestMove{weight: alpha, move: mv, found: true}
			}
			if child.weight < beta {
				beta = child.weight
				best, improved = mv, true
			}
		}
	}

	if !improved {
		best = last
	}
	if maximize {
		return bestMove{weight: alpha, move: best, found: examined}
	}
	return bestMove{weight: beta, move: best, found: examined}
}
