package board

import (
	"testing"

	"github.com/eightfile/mailbox/position"
)

func TestMakeUnmakeMoveRestoresState(t *testing.T) {
	t.Parallel()

	fens := []string{
		DefaultStartingPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	}

	for _, fen := range fens {
		fen := fen
		t.Run(fen, func(t *testing.T) {
			t.Parallel()

			b, err := NewBoard(WithFEN(fen))
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			before := *b
			beforeHash := b.hash

			for _, mv := range b.LegalMoves() {
				b.MakeMove(mv)
				if err := b.Validate(); err != nil {
					t.Errorf("move %s produced invalid board: %v", mv.UCI(), err)
				}
				b.UnmakeMove()

				if b.hash != beforeHash {
					t.Fatalf("move %s: hash not restored: got=%016x want=%016x", mv.UCI(), b.hash, beforeHash)
				}
				if b.cells != before.cells {
					t.Fatalf("move %s: cells not restored", mv.UCI())
				}
				if b.castleRights != before.castleRights || b.enPassant != before.enPassant {
					t.Fatalf("move %s: castle rights or en-passant not restored", mv.UCI())
				}
			}
		})
	}
}

func TestCastleRightsClearedOnRookCapture(t *testing.T) {
	t.Parallel()

	// A black bishop on d4 can capture the white rook still sitting on
	// its home square a1; white's queenside castling right must vanish
	// even though the moving piece (the bishop) never touched a1.
	b, err := NewBoard(WithFEN("4k3/8/8/8/3b4/8/8/R3K3 b Q - 0 1"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if !b.castleRights.IsAllowed(CastleDirectionWhiteLong) {
		t.Fatal("fixture must start with white long castling available")
	}

	a1, err := position.FromNotation("a1")
	if err != nil {
		t.Fatal(err)
	}
	var capture Move
	found := false
	for _, mv := range b.LegalMoves() {
		if mv.To == a1 {
			capture = mv
			found = true
			break
		}
	}
	if !found {
		t.Fatal("expected a legal capture of the rook on a1")
	}

	b.MakeMove(capture)
	if b.castleRights.IsAllowed(CastleDirectionWhiteLong) {
		t.Error("white long castling right should be cleared once its rook is captured")
	}
	b.UnmakeMove()
	if !b.castleRights.IsAllowed(CastleDirectionWhiteLong) {
		t.Error("unmake should restore the castling right")
	}
}

func TestLegalMovesExcludeSelfCheck(t *testing.T) {
	t.Parallel()

	// The white rook on e2 is pinned to the king on e1 by the black rook
	// on e8: any move off the e-file must be filtered out.
	b, err := NewBoard(WithFEN("4r1k1/8/8/8/8/8/4R3/4K3 w - - 0 1"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	e2, _ := position.FromNotation("e2")

	for _, mv := range b.LegalMoves() {
		if mv.From != e2 {
			continue
		}
		if mv.To.File() != e2.File() {
			t.Errorf("rook move %s should have been filtered: it exposes the king to check", mv.UCI())
		}
	}
}

func TestPseudoLegalSupersetsLegal(t *testing.T) {
	t.Parallel()

	b, err := NewBoard(WithFEN("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}

	pseudo := make(map[Move]bool)
	for _, mv := range b.PseudoLegalMoves() {
		pseudo[mv] = true
	}
	for _, mv := range b.LegalMoves() {
		if !pseudo[mv] {
			t.Errorf("legal move %s is not present in pseudo-legal moves", mv.UCI())
		}
	}
}

func TestStateCheckmate(t *testing.T) {
	t.Parallel()

	// Fool's mate.
	b, err := NewBoard(WithFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := b.State(); got != StateCheckmateWhite {
		t.Errorf("expected checkmate for white, got %s", got)
	}
}

func TestStateStalemate(t *testing.T) {
	t.Parallel()

	b, err := NewBoard(WithFEN("k7/8/1Q6/8/8/8/8/7K b - - 0 1"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := b.State(); got != StateStalemate {
		t.Errorf("expected stalemate, got %s", got)
	}
}

func TestClonesAreIndependent(t *testing.T) {
	t.Parallel()

	b, err := NewBoard()
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	clone := b.Clone()
	for _, mv := range clone.LegalMoves() {
		clone.MakeMove(mv)
		break
	}
	if b.hash == 0 {
		t.Fatal("sanity check: starting hash should not be zero")
	}
	if b.FEN() != DefaultStartingPositionFEN {
		t.Error("mutating a clone must not affect the original board")
	}
}

func TestPseudoLegalMovesEmptyPastFiftyMoveThreshold(t *testing.T) {
	t.Parallel()

	b, err := NewBoard(WithFEN("4k3/8/8/8/8/8/8/4K3 w - - 76 40"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if moves := b.PseudoLegalMoves(); len(moves) != 0 {
		t.Errorf("expected no moves past the fifty-move threshold, got %d", len(moves))
	}
	if got := b.State(); got != StateFiftyMoveViolated {
		t.Errorf("State() = %s, want StateFiftyMoveViolated", got)
	}
}

func TestPseudoLegalMovesEmptyPastMaxPly(t *testing.T) {
	t.Parallel()

	b, err := NewBoard(WithFEN("4k3/8/8/8/8/8/8/4K3 w - - 0 502"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if moves := b.PseudoLegalMoves(); len(moves) != 0 {
		t.Errorf("expected no moves past the max-ply threshold, got %d", len(moves))
	}
	if got := b.State(); got != StateFiftyMoveViolated {
		t.Errorf("State() = %s, want StateFiftyMoveViolated", got)
	}
}
