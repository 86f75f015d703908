package chess

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestFoolsMate(t *testing.T) {
	b := NewBoard()
	play(t, b, "f2f3", "e7e5", "g2g4", "d8h4")
	if !b.IsCheckmate() || b.IsStalemate() || !b.IsFinished() {
		t.Fatalf("checkmate=%v stalemate=%v", b.IsCheckmate(), b.IsStalemate())
	}
	if b.IsCheck() {
		t.Error("IsCheck should be false once checkmate is set")
	}
	if moves := b.GetPossibleMoves(); len(moves) != 0 {
		t.Errorf("moves after mate: %v", moveStrings(moves))
	}
	if b.Weight() != math.MinInt {
		t.Errorf("Weight() = %d, want MinInt", b.Weight())
	}
	b.UndoLastMove()
	if b.IsCheckmate() || b.IsFinished() {
		t.Fatal("undo did not clear checkmate")
	}
}

func TestScholarsMateWeight(t *testing.T) {
	b := NewBoard()
	play(t, b, "e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7")
	if !b.IsCheckmate() {
		t.Fatalf("expected checkmate\n%s", b)
	}
	if b.Weight() != math.MaxInt {
		t.Errorf("Weight() = %d, want MaxInt", b.Weight())
	}
}

func TestStalemate(t *testing.T) {
	b := mustBoard(t, "7k/5K2/8/6Q1/8/8/8/8 w")
	play(t, b, "g5g6")
	if !b.IsStalemate() || b.IsCheckmate() || b.IsCheck() {
		t.Fatalf("stalemate=%v checkmate=%v check=%v", b.IsStalemate(), b.IsCheckmate(), b.IsCheck())
	}
	if len(b.GetPossibleMoves()) != 0 {
		t.Fatal("stalemated side has moves")
	}
	if b.Weight() != 0 {
		t.Errorf("Weight() = %d, want 0", b.Weight())
	}
}

func TestEnPassantWindow(t *testing.T) {
	b := NewBoard()
	play(t, b, "e2e4", "a7a6", "e4e5", "d7d5")
	m, ok := findMove(t, b, "e5d6")
	if !ok || m.Kind != EnPassant {
		t.Fatalf("en passant not offered: %v", movesFrom(b, MustParseSquare("e5")))
	}
	b.ApplyMove(m)
	if !b.PositionIsEmpty(MustParseSquare("d5")) {
		t.Error("captured pawn still on d5")
	}
	last, _ := b.LastMove()
	if last.Captured != (Piece{Pawn, Player2}) {
		t.Errorf("Captured = %v", last.Captured)
	}
	if b.Value() != 1 {
		t.Errorf("Value() = %d, want 1", b.Value())
	}
	b.UndoLastMove()
	if b.GetPieceAtPosition(MustParseSquare("d5")) != (Piece{Pawn, Player2}) {
		t.Fatal("undo did not restore the captured pawn")
	}

	// 隔一步之后就不能再吃过路兵
	play(t, b, "a2a3", "a6a5")
	if _, ok := findMove(t, b, "e5d6"); ok {
		t.Fatal("en passant offered after the window closed")
	}
}

func TestEnPassantNotOfferedAfterRookSlide(t *testing.T) {
	// 车走两格停在兵旁边，不是吃过路兵的条件
	b := mustBoard(t, "4k3/r7/8/1P6/8/8/8/4K3 w")
	play(t, b, "e1e2", "a7a5")
	for _, m := range b.GetPossibleMoves() {
		if m.Kind == EnPassant {
			t.Fatalf("unexpected en passant %v", m)
		}
	}
}

func TestEnPassantDiscoveredCheckRejected(t *testing.T) {
	b := mustBoard(t, "4k3/2p5/8/KP5r/8/8/8/7N w")
	play(t, b, "h1g3", "c7c5")
	for _, m := range b.GetPossibleMoves() {
		if m.Kind == EnPassant {
			t.Fatalf("en passant %v exposes the king along the rank", m)
		}
	}
	if got := movesFrom(b, MustParseSquare("b5")); !cmp.Equal(got, []string{"b5b6"}) {
		t.Fatalf("b5 moves = %v", got)
	}
}

func TestEnPassantRemovesCheckingPawn(t *testing.T) {
	// d7d5 将军，吃过路兵是解将的方式之一
	b := mustBoard(t, "4k3/3p4/8/4P3/8/4K3/8/8 w")
	play(t, b, "e3e4", "d7d5")
	if !b.IsCheck() {
		t.Fatalf("d5 pawn should check the king on e4\n%s", b)
	}
	m, ok := findMove(t, b, "e5d6")
	if !ok || m.Kind != EnPassant {
		t.Fatalf("en passant capture of the checking pawn not offered: %v", moveStrings(b.GetPossibleMoves()))
	}
}

func TestCastlingConditions(t *testing.T) {
	cases := []struct {
		name      string
		placement string
		setup     []string
		want      []string
	}{
		{"both sides", "r3k2r/8/8/8/8/8/8/R3K2R w", nil, []string{"O-O", "O-O-O"}},
		{"pass-through attacked", "r3k2r/8/8/8/2b5/8/8/R3K2R w", nil, []string{"O-O-O"}},
		{"pass-through attacked by pawn", "r3k2r/8/8/8/8/8/6p1/R3K2R w", nil, []string{"O-O-O"}},
		{"destination attacked", "r3k2r/8/8/8/8/7n/8/R3K2R w", nil, []string{"O-O-O"}},
		{"in check", "r3k2r/8/8/8/4r3/8/8/R3K2R w", nil, nil},
		{"blocked", "r3k2r/8/8/8/8/8/8/RN2K1NR w", nil, nil},
		{"b-file attacked is fine", "r3k2r/8/8/8/8/8/b7/R3K2R w", nil, []string{"O-O", "O-O-O"}},
		{"rook moved and came back", "r3k2r/8/8/8/8/8/8/R3K2R w", []string{"h1h2", "a8a7", "h2h1", "a7a8"}, []string{"O-O-O"}},
		{"king moved and came back", "r3k2r/8/8/8/8/8/8/R3K2R w", []string{"e1e2", "a8a7", "e2e1", "a7a8"}, nil},
		{"king off home square", "r3k2r/8/8/8/8/8/8/R2K3R w", nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := mustBoard(t, tc.placement)
			play(t, b, tc.setup...)
			if diff := cmp.Diff(tc.want, moveStrings(castles(b)), cmpopts.EquateEmpty()); diff != "" {
				t.Fatalf("castles (-want +got):\n%s", diff)
			}
		})
	}
}

func castles(b *Board) []Move {
	var out []Move
	for _, m := range b.GetPossibleMoves() {
		if m.Kind == CastleKingSide || m.Kind == CastleQueenSide {
			out = append(out, m)
		}
	}
	return out
}

func TestDoubleCheckAllowsOnlyKingMoves(t *testing.T) {
	b := mustBoard(t, "4r2k/8/8/8/8/3n4/8/3QK3 w")
	if !b.IsCheck() {
		t.Fatal("expected check")
	}
	king := MustParseSquare("e1")
	for _, m := range b.GetPossibleMoves() {
		if m.Start != king {
			t.Fatalf("non-king move %v offered in double check", m)
		}
	}
}

func TestSingleCheckReliefSquares(t *testing.T) {
	// 车 e8 将军：可以挡在 e 线上，或者吃掉车
	b := mustBoard(t, "4r2k/8/8/8/8/8/1B6/R3K3 w")
	got := moveStrings(b.GetPossibleMoves())
	for _, m := range []string{"b2e5", "e1d1", "e1d2", "e1f1", "e1f2"} {
		if !contains(got, m) {
			t.Errorf("missing %s in %v", m, got)
		}
	}
	for _, m := range []string{"e1e2", "b2c3", "a1a8", "a1b1"} {
		if contains(got, m) {
			t.Errorf("%s does not answer the check", m)
		}
	}
}

func TestKingCannotRetreatAlongCheckRay(t *testing.T) {
	b := mustBoard(t, "7k/8/8/8/r3K3/8/8/8 w")
	if contains(moveStrings(b.GetPossibleMoves()), "e4f4") {
		t.Fatal("king stepped back along the checking rank")
	}
}

func TestPinnedPieceStaysOnLine(t *testing.T) {
	b := mustBoard(t, "4r2k/8/8/8/4R3/8/8/4K3 w")
	want := []string{"e4e2", "e4e3", "e4e5", "e4e6", "e4e7", "e4e8"}
	if diff := cmp.Diff(want, movesFrom(b, MustParseSquare("e4"))); diff != "" {
		t.Fatalf("pinned rook moves (-want +got):\n%s", diff)
	}
}

func TestPinnedPieceCannotBlockOtherCheck(t *testing.T) {
	b := mustBoard(t, "7k/8/8/8/1b6/8/3N4/4K2r w")
	if !b.IsCheck() {
		t.Fatal("expected check from h1")
	}
	if got := movesFrom(b, MustParseSquare("d2")); len(got) != 0 {
		t.Fatalf("pinned knight moves offered while in check: %v", got)
	}
}

func TestPinnedPawnCapturesPinner(t *testing.T) {
	b := mustBoard(t, "7k/8/8/8/8/2b5/3P4/4K3 w")
	want := []string{"d2c3"}
	if diff := cmp.Diff(want, movesFrom(b, MustParseSquare("d2"))); diff != "" {
		t.Fatalf("pinned pawn moves (-want +got):\n%s", diff)
	}
}

func TestPromotionFlow(t *testing.T) {
	b := mustBoard(t, promoteUp)
	play(t, b, "a7a8")
	if !b.PendingPromotion() || b.CurrentPlayer() != Player1 {
		t.Fatalf("pending=%v player=%v", b.PendingPromotion(), b.CurrentPlayer())
	}
	var got []PieceType
	for _, m := range b.GetPossibleMoves() {
		if m.Kind != PawnPromote || m.Start != MustParseSquare("a8") {
			t.Fatalf("unexpected move %v while promotion pending", m)
		}
		got = append(got, m.Promotion())
	}
	if diff := cmp.Diff([]PieceType{Queen, Knight, Bishop, RookFromPromotion}, got); diff != "" {
		t.Fatalf("promotion choices (-want +got):\n%s", diff)
	}
	play(t, b, "=Q")
	if b.PendingPromotion() || b.CurrentPlayer() != Player2 {
		t.Fatalf("pending=%v player=%v", b.PendingPromotion(), b.CurrentPlayer())
	}
	if b.Value() != 8 {
		t.Errorf("Value() = %d, want 8", b.Value())
	}
	if b.MoveCount() != 2 {
		t.Errorf("MoveCount() = %d, want 2", b.MoveCount())
	}
}

func TestPromotedRookCannotCastle(t *testing.T) {
	b := mustBoard(t, "7k/P7/8/8/8/8/8/4K3 w")
	play(t, b, "a7a8", "=R", "h8h7", "a8a1", "h7h8")
	if got := b.GetPieceAtPosition(MustParseSquare("a1")); got != (Piece{RookFromPromotion, Player1}) {
		t.Fatalf("a1 = %v", got)
	}
	if len(castles(b)) != 0 {
		t.Fatalf("castling with a promoted rook: %v", moveStrings(castles(b)))
	}
}

func TestThreatenedSquaresIncludeBlockers(t *testing.T) {
	b := NewBoard()
	got := b.AttacksFrom(MustParseSquare("a1"))
	want := []Square{MustParseSquare("a2"), MustParseSquare("b1")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("AttacksFrom(a1) (-want +got):\n%s", diff)
	}
	if got := b.AttacksFrom(MustParseSquare("e4")); len(got) != 0 {
		t.Fatalf("empty square attacks %v", got)
	}
	threatened := b.ThreatenedSquares(Player1)
	if len(threatened) != 22 {
		t.Fatalf("white threatens %d squares, want 22", len(threatened))
	}
}
