package board

import "testing"

func TestFEN(t *testing.T) {
	t.Parallel()
	tests := []struct {
		fen     string
		wantErr bool
	}{
		{fen: DefaultStartingPositionFEN, wantErr: false},
		{fen: "r3k2r/1bppqppp/p1n2n2/2b1p3/B3P3/2NP1N2/1PP2PPP/R1BQ1RK1 b kq - 2 10", wantErr: false},
		{fen: "r4rk1/1bpp1ppp/p2q4/2bPp3/8/1BPP1Q2/1P3PPP/R1B2RK1 b - - 2 15", wantErr: false},
		{fen: "8/5kBp/3p3P/5pb1/8/5P2/4R2K/3r4 b - - 8 52", wantErr: false},
		{fen: "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", wantErr: false},
		{fen: "r4rk1/5ppp/p2p4/1bb1p3/BPp5/2PP4/5PPP/R1B1R1K1 b - b3 0 20", wantErr: false},
		{fen: "8/7R/5B2/5P1k/p6p/P6P/6P1/7K b - - 2 58", wantErr: false},
		{fen: "r7/p4k2/4p2p/2B4N/4Pn2/2P2P2/PP2r1qP/R5K1 w - - 6 39", wantErr: false},
		{fen: "5k2/R7/4NN1p/p7/5P2/8/P1P3PP/3B2K1 b - - 7 30", wantErr: false},
		{fen: "3r1b1r/5pp1/7p/3P3k/3B2Q1/7N/P3BPK1/1R6 b - - 0 34", wantErr: false},
		{fen: "8/5k2/4N3/8/8/3K4/8/8 w - - 0 71", wantErr: false},
		{fen: "6k1/1p3p2/1P6/p6p/Pq5P/K4n2/3r4/8 w - - 4 56", wantErr: false},
		{fen: "1r3b1r/6pp/8/1p1pN3/3P1PQk/2P5/P7/qN3RK1 b - - 5 26", wantErr: false},
		{fen: "R4k1r/1pNQ3p/4ppp1/8/3Pb1q1/5N2/5PPP/4KB1R b K - 5 22", wantErr: false},
		{fen: "8/7Q/p7/3p4/5K1k/8/p3R3/8 b - - 9 79", wantErr: false},
		{fen: "1n2k2r/4pp1p/6p1/8/3b3P/8/5q2/r1K5 w k - 2 31", wantErr: false},
		{fen: "1rb1B2Q/pp3k2/3Q4/3p3p/1P6/8/P1P2PPP/R1B1K2R b KQ - 1 22", wantErr: false},
		{fen: "", wantErr: true},
		{fen: "invalid fen", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K badside - - 1 38", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K b badcastlingrights - 1 38", wantErr: true},
		{fen: "8/3Rn3/5Q2/p5kp/2B1P3/2P3bP/PP3R2/7K b badcastlingrights - -100 -100", wantErr: true},
		{fen: "8/3Rn3/badboard/p5kp/2B1P3/2P3bP/PP3R2/7K b - - 1 38", wantErr: true},
		{fen: "8/8/8/8/8/8/8/8 w - - 1 0", wantErr: true},
		{fen: "7k/8/8/8/8/1/8/7K w - - 1 0", wantErr: true},
		{fen: "7k/8/8/8/8//8/7K w - - 1 0", wantErr: true},
		{fen: "7k/8/8/8/8/8/7K w - - 1 0", wantErr: true},
		{fen: "7k/8/8/8/8/8/8/7K w - - 1 0 extrasegment", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.fen, func(t *testing.T) {
			t.Parallel()

			b, err := NewBoard(WithFEN(tt.fen))
			if tt.wantErr {
				if err == nil {
					t.Error("error expected: got=nil")
				}
				return
			}
			if err != nil {
				t.Fatal("unexpected error:", err)
			}

			if gotFEN := b.FEN(); gotFEN != tt.fen {
				t.Errorf("unexpected FEN: got=%s want=%s", gotFEN, tt.fen)
			}
			if err := b.Validate(); err != nil {
				t.Errorf("board failed validation: %v", err)
			}
		})
	}
}

func TestFENEnPassantElision(t *testing.T) {
	t.Parallel()
	// No white pawn stands beside d5 to capture onto d6, so the declared
	// en-passant square must be dropped and not echoed back out.
	b, err := NewBoard(WithFEN("rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq d6 0 2"))
	if err != nil {
		t.Fatal("unexpected error:", err)
	}
	if got := b.FEN(); got != "rnbqkbnr/ppp1pppp/8/8/3p4/8/PPPPPPPP/RNBQKBNR w KQkq - 0 2" {
		t.Errorf("expected en-passant square to be elided, got %s", got)
	}
}
