package engine

import (
	"sync/atomic"
	"time"

	"chessai/internal/chess"
)

const defaultDepth = 3

type Engine struct {
	cfg   SearchConfig
	nodes int64
}

func NewEngine(cfg SearchConfig) *Engine {
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = defaultDepth
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() SearchConfig { return e.cfg }

// Search 以引擎默认深度搜索 b 的最佳着法；b 在返回时恢复原状
func (e *Engine) Search(b chess.Searchable) SearchResult {
	return e.SearchDepth(b, e.cfg.MaxDepth)
}

func (e *Engine) SearchDepth(b chess.Searchable, depth int) SearchResult {
	if depth <= 0 {
		depth = e.cfg.MaxDepth
	}
	start := time.Now()
	atomic.StoreInt64(&e.nodes, 0)

	res := e.alphaBeta(b, depth, scoreMin, scoreMax)
	return SearchResult{
		BestMove: res.move,
		Found:    res.found,
		Score:    res.weight,
		Depth:    depth,
		Nodes:    atomic.LoadInt64(&e.nodes),
		TimeUsed: time.Since(start),
	}
}
