package board

import "github.com/eightfile/mailbox/position"

// Zobrist tables (spec.md §4.2): process-wide, immutable once initialised,
// safe to share across boards/goroutines. pieceHash is indexed by every
// square 0..119 including the off-board ring, and by every Piece value
// 0..13 including Empty (0) and offBoard (13): the ring rows and the
// Empty and offBoard columns are left at their zero value, so a reference hash can be
// computed by XORing pieceHash[sq][cells[sq]] over all 120 cells with no
// validity branch (spec.md §3 invariant 7, §4.2).
var (
	pieceHash    [position.TotalCells][offBoard + 1]uint64
	castleHash   [16]uint64
	enpasHash    [position.TotalCells]uint64
	sideHash     uint64
)

func init() {
	initZobrist()
}

func initZobrist() {
	r := NewPseudoRand()
	r.Seed(0x5deece66d)
	for sq := position.Pos(0); int(sq) < position.TotalCells; sq++ {
		if !sq.IsValid() {
			continue // ring rows stay zero
		}
		for _, s := range []Side{SideWhite, SideBlack} {
			for k := Pawn; k < numKinds; k++ {
				pieceHash[sq][MakePiece(s, k)] = r.Uint64()
			}
		}
		enpasHash[sq] = r.Uint64()
	}
	for i := range castleHash {
		castleHash[i] = r.Uint64()
	}
	sideHash = r.Uint64()
}
