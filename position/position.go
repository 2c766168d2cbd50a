// Package position implements the padded 10x12 mailbox square encoding:
// squares 0..119 where ranks 2..9 and files 1..8 hold the real 8x8 board
// and the surrounding ring is off-board. A1 is 21, H8 is 98.
package position

import "errors"

// Pos is a square index into the padded 10x12 mailbox, 0..119.
type Pos int8

const (
	// BoardFiles/BoardRanks describe the real 8x8 board embedded in the
	// padded mailbox.
	BoardFiles = 8
	BoardRanks = 8

	// padWidth is the mailbox row stride; files 1..8 are real, files 0
	// and 9 are the off-board ring.
	padWidth = 10
	// TotalCells is the size of the padded mailbox.
	TotalCells = padWidth * 12

	fileOrigin = 1 // real files start at column 1
	rankOrigin = 2 // real ranks start at row 2

	// None is the sentinel Pos meaning "no square", used for en-passant
	// targets and history bookkeeping. It sits on the off-board ring.
	None Pos = 0
)

// Offsets used by sliding, jumping, and pawn move generation. Adding one
// of these to a valid square either lands on another valid square or on
// the off-board ring; the ring is what lets slider loops terminate
// without a bounds check on every step.
const (
	North     Pos = padWidth
	South     Pos = -padWidth
	East      Pos = 1
	West      Pos = -1
	NorthEast Pos = padWidth + 1
	NorthWest Pos = padWidth - 1
	SouthEast Pos = -padWidth + 1
	SouthWest Pos = -padWidth - 1
)

// KnightOffsets are the eight L-shaped knight jumps.
var KnightOffsets = [8]Pos{-21, -19, -12, -8, 8, 12, 19, 21}

// DiagonalOffsets, OrthogonalOffsets, and KingOffsets are the ray/step
// directions used by sliding pieces, the king, and the attack query.
var (
	DiagonalOffsets   = [4]Pos{NorthEast, NorthWest, SouthEast, SouthWest}
	OrthogonalOffsets = [4]Pos{North, South, East, West}
	KingOffsets       = [8]Pos{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}
)

// Named squares used by castling and by tests.
const (
	A1 Pos = rankOrigin*padWidth + fileOrigin + 0
	B1 Pos = rankOrigin*padWidth + fileOrigin + 1
	C1 Pos = rankOrigin*padWidth + fileOrigin + 2
	D1 Pos = rankOrigin*padWidth + fileOrigin + 3
	E1 Pos = rankOrigin*padWidth + fileOrigin + 4
	F1 Pos = rankOrigin*padWidth + fileOrigin + 5
	G1 Pos = rankOrigin*padWidth + fileOrigin + 6
	H1 Pos = rankOrigin*padWidth + fileOrigin + 7

	A8 Pos = (rankOrigin+7)*padWidth + fileOrigin + 0
	B8 Pos = (rankOrigin+7)*padWidth + fileOrigin + 1
	C8 Pos = (rankOrigin+7)*padWidth + fileOrigin + 2
	D8 Pos = (rankOrigin+7)*padWidth + fileOrigin + 3
	E8 Pos = (rankOrigin+7)*padWidth + fileOrigin + 4
	F8 Pos = (rankOrigin+7)*padWidth + fileOrigin + 5
	G8 Pos = (rankOrigin+7)*padWidth + fileOrigin + 6
	H8 Pos = (rankOrigin+7)*padWidth + fileOrigin + 7
)

// ErrInvalidNotation is returned by FromNotation for a malformed square.
var ErrInvalidNotation = errors.New("invalid square notation")

// FromFileRank builds a Pos from 0-based file/rank (a=0..h=7, rank1=0..rank8=7).
func FromFileRank(file, rank int) Pos {
	return Pos((rank+rankOrigin)*padWidth + file + fileOrigin)
}

// FromNotation parses algebraic square notation such as "e4".
func FromNotation(n string) (Pos, error) {
	if len(n) != 2 {
		return None, ErrInvalidNotation
	}
	file := n[0] - 'a'
	rank := n[1] - '1'
	if file > 7 || rank > 7 { // unsigned wrap covers negative input too
		return None, ErrInvalidNotation
	}
	return FromFileRank(int(file), int(rank)), nil
}

// IsValid reports whether p addresses a real board square, i.e. is not on
// the off-board padding ring.
func (p Pos) IsValid() bool {
	file := int(p) % padWidth
	rank := int(p) / padWidth
	return file >= fileOrigin && file < fileOrigin+BoardFiles &&
		rank >= rankOrigin && rank < rankOrigin+BoardRanks
}

// File returns the 0-based file (a=0..h=7). Only meaningful for a valid Pos.
func (p Pos) File() int {
	return int(p)%padWidth - fileOrigin
}

// Rank returns the 0-based rank (rank1=0..rank8=7). Only meaningful for a
// valid Pos.
func (p Pos) Rank() int {
	return int(p)/padWidth - rankOrigin
}

// Notation renders the square in algebraic form, e.g. "e4". It returns ""
// for None or an off-board Pos.
func (p Pos) Notation() string {
	if p == None || !p.IsValid() {
		return ""
	}
	return string(rune('a'+p.File())) + string(rune('1'+p.Rank()))
}

func (p Pos) String() string {
	return p.Notation()
}
