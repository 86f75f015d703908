package main

import (
	"context"
	"math/rand"

	"chessai/internal/chess"
	"chessai/internal/engine"
	"chessai/internal/storage"
)

type PlayerConfig struct {
	Name  string
	Depth int
}

type GameOutcome struct {
	Outcome storage.Outcome
	Reason  string // checkmate / stalemate / move limit
	Plies   int
}

// playGame 下一整盘：先随机走 opening 步，再由两边的引擎轮流搜索
func playGame(ctx context.Context, white, black PlayerConfig, maxMoves, opening int, seed int64) (GameOutcome, error) {
	b := chess.NewBoard()
	rng := rand.New(rand.NewSource(seed))
	engines := map[chess.Player]*engine.Engine{
		chess.Player1: engine.NewEngine(engine.SearchConfig{MaxDepth: white.Depth}),
		chess.Player2: engine.NewEngine(engine.SearchConfig{MaxDepth: black.Depth}),
	}

	for ply := 0; ply < maxMoves && !b.IsFinished(); ply++ {
		if err := ctx.Err(); err != nil {
			return GameOutcome{}, err
		}
		if ply < opening {
			moves := b.GetPossibleMoves()
			b.ApplyMove(moves[rng.Intn(len(moves))])
			continue
		}
		res := engines[b.CurrentPlayer()].Search(b)
		if !res.Found {
			break
		}
		b.ApplyMove(res.BestMove)
	}

	out := GameOutcome{Plies: b.MoveCount()}
	switch {
	case b.IsCheckmate():
		out.Reason = "checkmate"
		out.Outcome = storage.OutcomeWhiteWins
		if b.CurrentPlayer() == chess.Player1 {
			out.Outcome = storage.OutcomeBlackWins
		}
	case b.IsStalemate():
		out.Reason = "stalemate"
		out.Outcome = storage.OutcomeDraw
	default:
		out.Reason = "move limit"
		out.Outcome = storage.OutcomeDraw
	}
	return out, nil
}
