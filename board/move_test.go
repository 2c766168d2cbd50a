package board

import (
	"testing"

	"github.com/eightfile/mailbox/position"
)

func TestMoveUCI(t *testing.T) {
	t.Parallel()

	e2, _ := position.FromNotation("e2")
	e4, _ := position.FromNotation("e4")
	e7, _ := position.FromNotation("e7")
	e8, _ := position.FromNotation("e8")

	tests := []struct {
		name string
		mv   Move
		want string
	}{
		{"quiet", Move{From: e2, To: e4, Moved: WhitePawn}, "e2e4"},
		{"promotion is always lower-case", Move{From: e7, To: e8, Moved: WhitePawn, Promoted: WhiteQueen}, "e7e8q"},
		{"black promotion also lower-case", Move{From: e2, To: e2, Moved: BlackPawn, Promoted: BlackKnight}, "e2e2n"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.mv.UCI(); got != tt.want {
				t.Errorf("UCI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMoveString(t *testing.T) {
	t.Parallel()

	e1, _ := position.FromNotation("e1")
	g1, _ := position.FromNotation("g1")

	mv := Move{From: e1, To: g1, Moved: WhiteKing, Flag: ShortCastle}
	if got := mv.String(); got != "O-O" {
		t.Errorf("String() = %q, want O-O", got)
	}
}
