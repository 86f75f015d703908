package chess

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const (
	kiwipete  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w"
	endgame3  = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w"
	promoteUp = "8/P6k/8/8/8/8/8/K7 w"
)

var boardOpts = []cmp.Option{cmp.AllowUnexported(Board{}), cmpopts.EquateEmpty()}

func mustBoard(t *testing.T, placement string) *Board {
	t.Helper()
	b, err := NewBoardFromPlacement(placement)
	if err != nil {
		t.Fatalf("NewBoardFromPlacement(%q): %v", placement, err)
	}
	return b
}

func cloneBoard(b *Board) *Board {
	c := *b
	c.history = append([]Move(nil), b.history...)
	return &c
}

// findMove 按 "e2e4" 或 "=Q" 查找合法着法
func findMove(t *testing.T, b *Board, text string) (Move, bool) {
	t.Helper()
	for _, m := range b.GetPossibleMoves() {
		if m.Kind == PawnPromote {
			if len(text) == 2 && text[0] == '=' && m.Promotion().Letter() == text[1] {
				return m, true
			}
			continue
		}
		if m.Start.String()+m.End.String() == text {
			return m, true
		}
	}
	return Move{}, false
}

func play(t *testing.T, b *Board, moves ...string) {
	t.Helper()
	for _, text := range moves {
		m, ok := findMove(t, b, text)
		if !ok {
			t.Fatalf("move %s not legal in\n%s(legal: %v)", text, b, moveStrings(b.GetPossibleMoves()))
		}
		b.ApplyMove(m)
	}
}

func moveStrings(moves []Move) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func movesFrom(b *Board, from Square) []string {
	var out []Move
	for _, m := range b.GetPossibleMoves() {
		if m.Start == from {
			out = append(out, m)
		}
	}
	return moveStrings(out)
}
