package engine

import (
	"math"
	"testing"

	"chessai/internal/chess"

	"github.com/google/go-cmp/cmp"
)

func mustBoard(t *testing.T, placement string) *chess.Board {
	t.Helper()
	b, err := chess.NewBoardFromPlacement(placement)
	if err != nil {
		t.Fatalf("NewBoardFromPlacement(%q): %v", placement, err)
	}
	return b
}

func play(t *testing.T, b *chess.Board, moves ...string) {
	t.Helper()
	for _, text := range moves {
		found := false
		for _, m := range b.GetPossibleMoves() {
			if m.String() == text {
				b.ApplyMove(m)
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("move %s not legal\n%s", text, b)
		}
	}
}

// minimax 是不剪枝的参考实现，比较规则与 alphaBeta 相同：严格更好才替换，全都不行就取最后一个
func minimax(b *chess.Board, depth int) (int, chess.Move, bool) {
	if depth == 0 || b.IsFinished() {
		return b.Weight(), chess.Move{}, false
	}
	maximize := b.CurrentPlayer() == chess.Player1
	bestScore := math.MinInt
	if !maximize {
		bestScore = math.MaxInt
	}
	var best, last chess.Move
	improved, examined := false, false
	for _, m := range b.GetPossibleMoves() {
		b.ApplyMove(m)
		score, _, _ := minimax(b, depth-1)
		b.UndoLastMove()
		last, examined = m, true
		if (maximize && score > bestScore) || (!maximize && score < bestScore) {
			bestScore, best, improved = score, m, true
		}
	}
	if !improved {
		best = last
	}
	return bestScore, best, examined
}

func TestFindBestMoveMatchesMinimax(t *testing.T) {
	cases := []struct {
		name      string
		placement string
		setup     []string
		depth     int
	}{
		{"start", chess.StartPlacement, nil, 2},
		{"start black to move", chess.StartPlacement, []string{"e2e4"}, 2},
		{"kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w", nil, 2},
		{"rook endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w", nil, 3},
		{"promotion", "8/P6k/8/8/8/8/8/K7 w", nil, 3},
		{"hanging queen", "7k/8/8/3q4/8/8/8/K2R4 w", nil, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.placement)
			play(t, b, tc.setup...)
			wantScore, wantMove, wantOK := minimax(b, tc.depth)
			gotMove, gotOK := FindBestMove(b, tc.depth)
			if gotOK != wantOK || !gotMove.SameSquares(wantMove) {
				t.Fatalf("FindBestMove = %v (%v), minimax = %v (%v)", gotMove, gotOK, wantMove, wantOK)
			}
			res := NewEngine(SearchConfig{}).SearchDepth(b, tc.depth)
			if res.Score != wantScore || !res.BestMove.SameSquares(wantMove) {
				t.Fatalf("Search = %v score %d, minimax = %v score %d", res.BestMove, res.Score, wantMove, wantScore)
			}
		})
	}
}

func TestFindBestMoveCapturesHangingQueen(t *testing.T) {
	for depth := 1; depth <= 3; depth++ {
		b := mustBoard(t, "7k/8/8/3q4/8/8/8/K2R4 w")
		m, ok := FindBestMove(b, depth)
		if !ok || m.String() != "d1d5" {
			t.Fatalf("depth %d: got %v (%v), want d1d5", depth, m, ok)
		}
	}
}

func TestFindBestMoveMateInOne(t *testing.T) {
	b := mustBoard(t, "6k1/5ppp/8/8/8/8/8/R5K1 w")
	m, ok := FindBestMove(b, 1)
	if !ok || m.String() != "a1a8" {
		t.Fatalf("got %v (%v), want a1a8", m, ok)
	}
	b.ApplyMove(m)
	if !b.IsCheckmate() {
		t.Fatal("a1a8 should mate")
	}
}

func TestFindBestMoveChoosesQueenPromotion(t *testing.T) {
	b := mustBoard(t, "8/P6k/8/8/8/8/8/K7 w")
	play(t, b, "a7a8")
	m, ok := FindBestMove(b, 1)
	if !ok || m.Kind != chess.PawnPromote || m.Promotion() != chess.Queen {
		t.Fatalf("got %v (%v), want queen promotion", m, ok)
	}
}

func TestFindBestMoveLeavesBoardUntouched(t *testing.T) {
	b := chess.NewBoard()
	play(t, b, "e2e4", "e7e5")
	before, hist := b.Encode(), b.History()

	first, _ := FindBestMove(b, 3)
	second, _ := FindBestMove(b, 3)
	if !first.SameSquares(second) {
		t.Fatalf("search not deterministic: %v then %v", first, second)
	}
	if b.Encode() != before {
		t.Fatalf("board changed: %s", b.Encode())
	}
	if diff := cmp.Diff(hist, b.History()); diff != "" {
		t.Fatalf("history changed (-before +after):\n%s", diff)
	}
}

func TestFindBestMoveNoMove(t *testing.T) {
	b := chess.NewBoard()
	if _, ok := FindBestMove(b, 0); ok {
		t.Fatal("depth 0 returned a move")
	}
	play(t, b, "f2f3", "e7e5", "g2g4", "d8h4")
	if _, ok := FindBestMove(b, 3); ok {
		t.Fatal("finished game returned a move")
	}
}

func TestEngineSearchReportsStats(t *testing.T) {
	e := NewEngine(SearchConfig{})
	if e.Config().MaxDepth != defaultDepth {
		t.Fatalf("default depth = %d", e.Config().MaxDepth)
	}
	b := mustBoard(t, "7k/8/8/3q4/8/8/8/K2R4 w")
	res := e.SearchDepth(b, 2)
	if !res.Found || res.BestMove.String() != "d1d5" {
		t.Fatalf("BestMove = %v (%v)", res.BestMove, res.Found)
	}
	if res.Depth != 2 || res.Nodes <= 1 {
		t.Fatalf("Depth=%d Nodes=%d", res.Depth, res.Nodes)
	}
	t.Logf("score=%d nodes=%d time=%v", res.Score, res.Nodes, res.TimeUsed)
}
