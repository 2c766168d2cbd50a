package board

import (
	"testing"

	"github.com/eightfile/mailbox/position"
)

func TestIsAttacked(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		fen    string
		target string
		by     Side
		want   bool
	}{
		{"pawn attacks diagonally", "4k3/8/8/8/3P4/8/8/4K3 w - - 0 1", "e5", SideWhite, true},
		{"pawn does not attack straight ahead", "4k3/8/8/4P3/8/8/8/4K3 w - - 0 1", "e6", SideWhite, false},
		{"knight L-shape", "4k3/8/8/3N4/8/8/8/4K3 w - - 0 1", "e7", SideWhite, true},
		{"rook along open file", "3k4/8/8/8/8/8/8/4R2K w - - 0 1", "e8", SideWhite, true},
		{"rook blocked by own piece", "4k3/8/4P3/8/8/8/8/4R2K w - - 0 1", "e8", SideWhite, false},
		{"bishop along diagonal", "7k/8/8/8/4B3/8/8/K7 w - - 0 1", "h7", SideWhite, true},
		{"king adjacency", "4k3/8/8/8/8/8/4K3/8 w - - 0 1", "e3", SideWhite, true},
		{"king not attacking two squares away", "4k3/8/8/8/8/8/8/4K3 w - - 0 1", "e3", SideWhite, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			b, err := NewBoard(WithFEN(tt.fen))
			if err != nil {
				t.Fatal("unexpected error:", err)
			}
			sq, err := position.FromNotation(tt.target)
			if err != nil {
				t.Fatal(err)
			}
			if got := b.IsAttacked(sq, tt.by); got != tt.want {
				t.Errorf("IsAttacked(%s, %s) = %v, want %v", tt.target, tt.by, got, tt.want)
			}
		})
	}
}
