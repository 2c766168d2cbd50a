package board

import "github.com/eightfile/mailbox/position"

// Flag classifies a Move the way spec.md §4.1 requires. Promotions are
// signalled by Promoted != Empty and carry Flag Quiet or Capture.
type Flag uint8

const (
	Quiet Flag = iota
	DoublePawn
	Capture
	EnPassant
	ShortCastle
	LongCastle
)

// Move is a fixed-width move token: (from, to, moved, captured, promoted,
// flag). Moved is always the piece that stood on From before the move —
// for a promotion that is the pawn, not the piece it becomes.
type Move struct {
	From, To position.Pos
	Moved    Piece
	Captured Piece
	Promoted Piece
	Flag     Flag
}

func (m Move) IsCapture() bool {
	return m.Captured != Empty
}

func (m Move) IsPromotion() bool {
	return m.Promoted != Empty
}

func (m Move) IsCastle() bool {
	return m.Flag == ShortCastle || m.Flag == LongCastle
}

func (m Move) IsEnPassant() bool {
	return m.Flag == EnPassant
}

// UCI renders the move in algebraic-coordinate form: <from><to>[<promo>],
// e.g. "e2e4", "e7e8q". Castling is represented by the king's move.
func (m Move) UCI() string {
	s := m.From.Notation() + m.To.Notation()
	if m.IsPromotion() {
		s += string(m.Promoted.Kind().symbolLetter() | 0x20) // always lower-case
	}
	return s
}

func (m Move) String() string {
	if m.IsCastle() {
		if m.Flag == ShortCastle {
			return "O-O"
		}
		return "O-O-O"
	}
	s := ""
	if !m.Moved.IsPawn() {
		s += m.Moved.SymbolFEN()
	}
	if m.IsCapture() {
		if m.Moved.IsPawn() {
			s += m.From.Notation()[:1]
		}
		s += "x"
	}
	s += m.To.Notation()
	if m.IsPromotion() {
		s += "=" + m.Promoted.SymbolFEN()
	}
	if m.IsEnPassant() {
		s += " e.p."
	}
	return s
}
