package board

import "github.com/eightfile/mailbox/position"

// IsAttacked reports whether target is attacked by any piece belonging to
// by, walking outward from target along each direction a slider, knight,
// king, or pawn could strike from — the reverse of pseudo move generation.
// This matches original_source's square_attacked in spirit but not its
// exact expression: that code checked get_side(m_pieces[sq]) == side,
// which folds a bool into an int and by chance still discriminates only
// two sides; we instead compare Piece.Side() directly against by.
func (b *Board) IsAttacked(target position.Pos, by Side) bool {
	for _, off := range position.DiagonalOffsets {
		if b.rayHits(target, off, by, func(p Piece) bool { return p.IsDiagonal() }) {
			return true
		}
	}
	for _, off := range position.OrthogonalOffsets {
		if b.rayHits(target, off, by, func(p Piece) bool { return p.IsOrthogonal() }) {
			return true
		}
	}
	for _, off := range position.KnightOffsets {
		if p := b.cells[target+off]; p.IsReal() && p.Side() == by && p.IsKnight() {
			return true
		}
	}
	for _, off := range position.KingOffsets {
		if p := b.cells[target+off]; p.IsReal() && p.Side() == by && p.IsKing() {
			return true
		}
	}
	// Pawn attacks: a by-side pawn attacks target if it stands one of the
	// two squares diagonally behind target from by's point of view, i.e.
	// the squares a by-pawn's own capture offsets would reach from there.
	pawnFrom := [2]position.Pos{position.SouthEast, position.SouthWest}
	if by == SideBlack {
		pawnFrom = [2]position.Pos{position.NorthEast, position.NorthWest}
	}
	for _, off := range pawnFrom {
		if p := b.cells[target+off]; p.IsReal() && p.Side() == by && p.IsPawn() {
			return true
		}
	}
	return false
}

// rayHits walks from target in direction off, stopping at the first
// occupied or off-board square, and reports whether that square holds a
// by-side piece matching want. An adjacent enemy king is caught by
// IsAttacked's own king loop, not here.
func (b *Board) rayHits(target, off position.Pos, by Side, want func(Piece) bool) bool {
	sq := target + off
	for {
		p := b.cells[sq]
		if p == offBoard {
			return false
		}
		if p == Empty {
			sq += off
			continue
		}
		return p.Side() == by && want(p)
	}
}
