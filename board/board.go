package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/eightfile/mailbox/position"
)

// ErrInvalidBoard is returned by Validate when an invariant from the data
// model does not hold.
var ErrInvalidBoard = errors.New("invalid board")

// undoRecord is the information MakeMove cannot recompute from the move
// alone: whatever it clobbers that UnmakeMove must restore.
type undoRecord struct {
	move           Move
	castleRights   CastleRights
	enPassant      position.Pos
	halfmoveClock  int
	fullmoveNumber int
	hash           uint64
}

// Board is a padded 10x12 mailbox position: cells holds every square
// including the off-board ring, positions is a redundant per-piece list
// of occupied squares kept in sync with cells, and hash is a Zobrist hash
// maintained incrementally by every mutating operation.
type Board struct {
	cells [position.TotalCells]Piece

	positions [NumRealPieces][]position.Pos

	sideToMove     Side
	castleRights   CastleRights
	enPassant      position.Pos
	halfmoveClock  int
	fullmoveNumber int

	hash uint64

	history []undoRecord

	moveCache map[uint64][]Move
}

type boardConfig struct {
	fen string
}

// BoardOption configures NewBoard.
type BoardOption func(*boardConfig)

// WithFEN starts the board from the given FEN string instead of the
// standard starting position.
func WithFEN(fen string) BoardOption {
	return func(cfg *boardConfig) {
		cfg.fen = fen
	}
}

// NewBoard builds a Board, defaulting to the standard starting position.
func NewBoard(opts ...BoardOption) (*Board, error) {
	cfg := &boardConfig{fen: DefaultStartingPositionFEN}
	for _, opt := range opts {
		opt(cfg)
	}
	b := &Board{}
	if err := unmarshalFEN(cfg.fen, b); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFEN, err)
	}
	return b, nil
}

// Turn reports the side to move.
func (b *Board) Turn() Side {
	return b.sideToMove
}

// Hash returns the board's current Zobrist hash.
func (b *Board) Hash() uint64 {
	return b.hash
}

// PieceAt returns the piece occupying sq, Empty if the square is vacant.
// It is unspecified for an off-board sq.
func (b *Board) PieceAt(sq position.Pos) Piece {
	return b.cells[sq]
}

// put places p on the empty square sq, updating the hash and, if p is a
// real piece, its piece list. sq must be on-board and currently empty.
func (b *Board) put(sq position.Pos, p Piece) {
	b.cells[sq] = p
	b.hash ^= pieceHash[sq][p]
	if p.IsReal() {
		idx := p.listIndex()
		b.positions[idx] = append(b.positions[idx], sq)
	}
}

// remove clears sq, updating the hash and the piece list of whatever
// occupied it, and returns what was removed.
func (b *Board) remove(sq position.Pos) Piece {
	p := b.cells[sq]
	b.cells[sq] = Empty
	b.hash ^= pieceHash[sq][p]
	if p.IsReal() {
		idx := p.listIndex()
		list := b.positions[idx]
		for i, s := range list {
			if s == sq {
				list[i] = list[len(list)-1]
				b.positions[idx] = list[:len(list)-1]
				break
			}
		}
	}
	return p
}

// movePiece relocates whatever stands on from to the empty square to.
func (b *Board) movePiece(from, to position.Pos) {
	b.put(to, b.remove(from))
}

func (b *Board) setCastleRights(cr CastleRights) {
	b.hash ^= castleHash[b.castleRights]
	b.castleRights = cr
	b.hash ^= castleHash[cr]
}

func (b *Board) setEnPassant(sq position.Pos) {
	b.hash ^= enpasHash[b.enPassant]
	b.enPassant = sq
	b.hash ^= enpasHash[sq]
}

func (b *Board) switchSide() {
	b.sideToMove = b.sideToMove.Opposite()
	b.hash ^= sideHash
}

// updateCastleRightsForSquare drops whichever castling right depends on
// sq, whether it was vacated by its king or rook, or a rook was just
// captured there. Any other square is a no-op.
func (b *Board) updateCastleRightsForSquare(sq position.Pos) {
	cr := b.castleRights
	switch sq {
	case position.E1:
		cr.clearSide(SideWhite)
	case position.A1:
		cr.Set(CastleDirectionWhiteLong, false)
	case position.H1:
		cr.Set(CastleDirectionWhiteShort, false)
	case position.E8:
		cr.clearSide(SideBlack)
	case position.A8:
		cr.Set(CastleDirectionBlackLong, false)
	case position.H8:
		cr.Set(CastleDirectionBlackShort, false)
	}
	if cr != b.castleRights {
		b.setCastleRights(cr)
	}
}

func midpoint(from, to position.Pos) position.Pos {
	return position.Pos((int(from) + int(to)) / 2)
}

func castleRookSquares(f Flag, s Side) (from, to position.Pos) {
	switch {
	case f == ShortCastle && s == SideWhite:
		return position.H1, position.F1
	case f == LongCastle && s == SideWhite:
		return position.A1, position.D1
	case f == ShortCastle && s == SideBlack:
		return position.H8, position.F8
	default:
		return position.A8, position.D8
	}
}

// MakeMove applies m to the board and pushes enough state onto the
// history stack for UnmakeMove to reverse it exactly.
func (b *Board) MakeMove(m Move) {
	b.history = append(b.history, undoRecord{
		move:           m,
		castleRights:   b.castleRights,
		enPassant:      b.enPassant,
		halfmoveClock:  b.halfmoveClock,
		fullmoveNumber: b.fullmoveNumber,
		hash:           b.hash,
	})

	b.setEnPassant(position.None)

	switch {
	case m.IsCastle():
		rookFrom, rookTo := castleRookSquares(m.Flag, m.Moved.Side())
		b.movePiece(m.From, m.To)
		b.movePiece(rookFrom, rookTo)
	case m.IsEnPassant():
		capSq := position.FromFileRank(m.To.File(), m.From.Rank())
		b.remove(capSq)
		b.movePiece(m.From, m.To)
	case m.IsPromotion():
		if m.IsCapture() {
			b.remove(m.To)
		}
		b.remove(m.From)
		b.put(m.To, m.Promoted)
	case m.IsCapture():
		b.remove(m.To)
		b.movePiece(m.From, m.To)
	default:
		b.movePiece(m.From, m.To)
		if m.Flag == DoublePawn {
			b.setEnPassant(midpoint(m.From, m.To))
		}
	}

	// Only a king or rook vacating its home square, or a rook being
	// captured on its home square, can change castling rights; any other
	// move can't touch them, so skip the square switch entirely.
	if m.Moved.AffectsCastleRights() {
		b.updateCastleRightsForSquare(m.From)
	}
	if m.Captured.IsRook() {
		b.updateCastleRightsForSquare(m.To)
	}

	if m.IsCapture() || m.Moved.IsPawn() {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if b.sideToMove == SideBlack {
		b.fullmoveNumber++
	}
	b.switchSide()
}

// UnmakeMove reverses the most recent MakeMove call. It panics if called
// on a board with no history, or if the resulting hash does not match
// the one recorded before the move was made.
func (b *Board) UnmakeMove() {
	n := len(b.history)
	if n == 0 {
		panic("board: unmake with no move to undo")
	}
	rec := b.history[n-1]
	b.history = b.history[:n-1]
	m := rec.move

	b.switchSide()

	switch {
	case m.IsCastle():
		rookFrom, rookTo := castleRookSquares(m.Flag, m.Moved.Side())
		b.movePiece(rookTo, rookFrom)
		b.movePiece(m.To, m.From)
	case m.IsEnPassant():
		b.movePiece(m.To, m.From)
		capSq := position.FromFileRank(m.To.File(), m.From.Rank())
		b.put(capSq, m.Captured)
	case m.IsPromotion():
		b.remove(m.To)
		b.put(m.From, m.Moved)
		if m.IsCapture() {
			b.put(m.To, m.Captured)
		}
	case m.IsCapture():
		b.movePiece(m.To, m.From)
		b.put(m.To, m.Captured)
	default:
		b.movePiece(m.To, m.From)
	}

	b.setCastleRights(rec.castleRights)
	b.setEnPassant(rec.enPassant)
	b.halfmoveClock = rec.halfmoveClock
	b.fullmoveNumber = rec.fullmoveNumber

	if b.hash != rec.hash {
		panic("board: hash did not match history entry after unmake")
	}
}

func (b *Board) kingSquare(s Side) position.Pos {
	list := b.positions[MakePiece(s, King).listIndex()]
	return list[0]
}

// InCheck reports whether the side to move's king is attacked.
func (b *Board) InCheck() bool {
	return b.IsAttacked(b.kingSquare(b.sideToMove), b.sideToMove.Opposite())
}

// CanUnmakeMove reports whether UnmakeMove has a move to undo.
func (b *Board) CanUnmakeMove() bool {
	return len(b.history) > 0
}

// PseudoLegalMoves returns every move for the side to move that obeys
// piece movement rules, without checking whether it leaves its own king
// in check. Results are cached by hash, matching original_source's
// per-hash move cache.
func (b *Board) PseudoLegalMoves() []Move {
	if cached, ok := b.moveCache[b.hash]; ok {
		return cached
	}
	moves := b.generatePseudoLegalMoves()
	if b.moveCache == nil {
		b.moveCache = make(map[uint64][]Move, 8)
	}
	b.moveCache[b.hash] = moves
	return moves
}

// maxPly and maxFiftyMove bound the generator the way
// original_source/src/board.cpp:375 does: past either threshold the
// position is a forced draw, so there is no legal-move list worth
// building. maxPly counts plies (half-moves) since the game start,
// mirroring m_half_move there; maxFiftyMove mirrors m_fifty_move, the
// fifty-move-rule counter already tracked as Board.halfmoveClock.
const (
	maxPly       = 1000
	maxFiftyMove = 75
)

// ply is the half-move count since the game start, mirroring
// original_source's m_half_move: 2*(fullmove-1) + side to move.
func (b *Board) ply() int {
	return 2*(b.fullmoveNumber-1) + int(b.sideToMove)
}

// pastDrawThreshold reports whether the position is beyond the
// fifty-move/max-ply generator cutoff, in which case there is no legal
// move list worth building and the position is a forced draw.
func (b *Board) pastDrawThreshold() bool {
	return b.ply() > maxPly || b.halfmoveClock > maxFiftyMove
}

func (b *Board) generatePseudoLegalMoves() []Move {
	if b.pastDrawThreshold() {
		return nil
	}

	side := b.sideToMove
	moves := make([]Move, 0, 48)
	for kind := Pawn; kind < numKinds; kind++ {
		piece := MakePiece(side, kind)
		for _, sq := range b.positions[piece.listIndex()] {
			switch kind {
			case Pawn:
				b.genPawnMoves(sq, side, &moves)
			case Knight:
				b.genStepMoves(sq, piece, position.KnightOffsets[:], &moves)
			case Bishop:
				b.genSliderMoves(sq, piece, position.DiagonalOffsets[:], &moves)
			case Rook:
				b.genSliderMoves(sq, piece, position.OrthogonalOffsets[:], &moves)
			case Queen:
				b.genSliderMoves(sq, piece, position.DiagonalOffsets[:], &moves)
				b.genSliderMoves(sq, piece, position.OrthogonalOffsets[:], &moves)
			case King:
				b.genStepMoves(sq, piece, position.KingOffsets[:], &moves)
				b.genCastleMoves(side, &moves)
			}
		}
	}
	return moves
}

func (b *Board) genSliderMoves(from position.Pos, piece Piece, offsets []position.Pos, moves *[]Move) {
	for _, off := range offsets {
		for sq := from + off; ; sq += off {
			target := b.cells[sq]
			if target == offBoard {
				break
			}
			if target == Empty {
				*moves = append(*moves, Move{From: from, To: sq, Moved: piece})
				continue
			}
			if OppositeColours(piece, target) {
				*moves = append(*moves, Move{From: from, To: sq, Moved: piece, Captured: target, Flag: Capture})
			}
			break
		}
	}
}

func (b *Board) genStepMoves(from position.Pos, piece Piece, offsets []position.Pos, moves *[]Move) {
	for _, off := range offsets {
		sq := from + off
		target := b.cells[sq]
		if target == offBoard {
			continue
		}
		if target == Empty {
			*moves = append(*moves, Move{From: from, To: sq, Moved: piece})
		} else if OppositeColours(piece, target) {
			*moves = append(*moves, Move{From: from, To: sq, Moved: piece, Captured: target, Flag: Capture})
		}
	}
}

func (b *Board) genPawnMoves(from position.Pos, side Side, moves *[]Move) {
	piece := MakePiece(side, Pawn)
	forward := position.North
	startRank, promoteRank := 1, 7
	captureOffsets := [2]position.Pos{position.NorthEast, position.NorthWest}
	if side == SideBlack {
		forward = position.South
		startRank, promoteRank = 6, 0
		captureOffsets = [2]position.Pos{position.SouthEast, position.SouthWest}
	}

	one := from + forward
	if b.cells[one] == Empty {
		b.addPawnAdvance(from, one, piece, promoteRank, moves)
		if from.Rank() == startRank {
			two := one + forward
			if b.cells[two] == Empty {
				*moves = append(*moves, Move{From: from, To: two, Moved: piece, Flag: DoublePawn})
			}
		}
	}

	for _, off := range captureOffsets {
		to := from + off
		target := b.cells[to]
		if target == offBoard {
			continue
		}
		if target != Empty && OppositeColours(piece, target) {
			b.addPawnCapture(from, to, piece, target, promoteRank, moves)
		} else if target == Empty && to == b.enPassant {
			*moves = append(*moves, Move{From: from, To: to, Moved: piece, Captured: MakePiece(side.Opposite(), Pawn), Flag: EnPassant})
		}
	}
}

func (b *Board) addPawnAdvance(from, to position.Pos, piece Piece, promoteRank int, moves *[]Move) {
	if to.Rank() == promoteRank {
		for _, k := range PromoteKinds {
			*moves = append(*moves, Move{From: from, To: to, Moved: piece, Promoted: MakePiece(piece.Side(), k)})
		}
		return
	}
	*moves = append(*moves, Move{From: from, To: to, Moved: piece})
}

func (b *Board) addPawnCapture(from, to position.Pos, piece, captured Piece, promoteRank int, moves *[]Move) {
	if to.Rank() == promoteRank {
		for _, k := range PromoteKinds {
			*moves = append(*moves, Move{From: from, To: to, Moved: piece, Captured: captured, Promoted: MakePiece(piece.Side(), k), Flag: Capture})
		}
		return
	}
	*moves = append(*moves, Move{From: from, To: to, Moved: piece, Captured: captured, Flag: Capture})
}

func (b *Board) genCastleMoves(side Side, moves *[]Move) {
	if !b.castleRights.IsSideAllowed(side) {
		return
	}
	opp := side.Opposite()
	king := MakePiece(side, King)
	e, f, g, d, c, bb := position.E1, position.F1, position.G1, position.D1, position.C1, position.B1
	short, long := CastleDirectionWhiteShort, CastleDirectionWhiteLong
	if side == SideBlack {
		e, f, g, d, c, bb = position.E8, position.F8, position.G8, position.D8, position.C8, position.B8
		short, long = CastleDirectionBlackShort, CastleDirectionBlackLong
	}
	if b.castleRights.IsAllowed(short) &&
		b.cells[f] == Empty && b.cells[g] == Empty &&
		!b.IsAttacked(e, opp) && !b.IsAttacked(f, opp) && !b.IsAttacked(g, opp) {
		*moves = append(*moves, Move{From: e, To: g, Moved: king, Flag: ShortCastle})
	}
	if b.castleRights.IsAllowed(long) &&
		b.cells[d] == Empty && b.cells[c] == Empty && b.cells[bb] == Empty &&
		!b.IsAttacked(e, opp) && !b.IsAttacked(d, opp) && !b.IsAttacked(c, opp) {
		*moves = append(*moves, Move{From: e, To: c, Moved: king, Flag: LongCastle})
	}
}

// LegalMoves filters PseudoLegalMoves down to those that do not leave the
// mover's own king in check, by making, testing, and unmaking each one.
func (b *Board) LegalMoves() []Move {
	side := b.sideToMove
	pseudo := b.PseudoLegalMoves()
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		b.MakeMove(m)
		if !b.IsAttacked(b.kingSquare(side), side.Opposite()) {
			legal = append(legal, m)
		}
		b.UnmakeMove()
	}
	return legal
}

// State classifies the position: running, in check, checkmate, stalemate,
// or drawn by the fifty-move/max-ply thresholds. This must agree with
// generatePseudoLegalMoves's own short-circuit on the same thresholds,
// or a position past the cutoff would read back as stalemate/checkmate
// instead of a forced draw.
func (b *Board) State() State {
	if b.pastDrawThreshold() {
		return StateFiftyMoveViolated
	}
	inCheck := b.IsAttacked(b.kingSquare(b.sideToMove), b.sideToMove.Opposite())
	hasMoves := len(b.LegalMoves()) > 0
	switch {
	case inCheck && !hasMoves:
		if b.sideToMove == SideWhite {
			return StateCheckmateWhite
		}
		return StateCheckmateBlack
	case !inCheck && !hasMoves:
		return StateStalemate
	case inCheck:
		if b.sideToMove == SideWhite {
			return StateCheckWhite
		}
		return StateCheckBlack
	default:
		return StateRunning
	}
}

// Clone returns an independent copy sharing no mutable state, so it can
// be explored (e.g. by perft) without disturbing b.
func (b *Board) Clone() *Board {
	nb := &Board{
		cells:          b.cells,
		sideToMove:     b.sideToMove,
		castleRights:   b.castleRights,
		enPassant:      b.enPassant,
		halfmoveClock:  b.halfmoveClock,
		fullmoveNumber: b.fullmoveNumber,
		hash:           b.hash,
	}
	for i, list := range b.positions {
		nb.positions[i] = append([]position.Pos(nil), list...)
	}
	nb.history = append([]undoRecord(nil), b.history...)
	return nb
}

// Dump renders the board as a plain ASCII grid with FEN letters.
func (b *Board) Dump() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString("  +---+---+---+---+---+---+---+---+\n")
		sb.WriteString(fmt.Sprintf("%d |", rank+1))
		for file := 0; file < 8; file++ {
			sym := b.cells[position.FromFileRank(file, rank)].SymbolFEN()
			if sym == "" {
				sym = " "
			}
			sb.WriteString(fmt.Sprintf(" %s |", sym))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("  +---+---+---+---+---+---+---+---+\n    ")
	for file := 0; file < 8; file++ {
		sb.WriteString(fmt.Sprintf(" %c  ", 'a'+file))
	}
	return sb.String()
}

var (
	drawLight = color.New(color.BgHiWhite, color.FgBlack)
	drawDark  = color.New(color.BgGreen, color.FgBlack)
)

// Draw renders the board with colour-alternated squares and Unicode
// piece glyphs, for terminal display.
func (b *Board) Draw() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(fmt.Sprintf(" %d ", rank+1))
		for file := 0; file < 8; file++ {
			sym := b.cells[position.FromFileRank(file, rank)].SymbolUnicode()
			if sym == "" {
				sym = " "
			}
			cell := fmt.Sprintf(" %s ", sym)
			if (file+rank)%2 == 0 {
				sb.WriteString(drawDark.Sprint(cell))
			} else {
				sb.WriteString(drawLight.Sprint(cell))
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("   ")
	for file := 0; file < 8; file++ {
		sb.WriteString(fmt.Sprintf(" %c ", 'a'+file))
	}
	return sb.String()
}

// DebugString dumps the board plus every field not visible on the grid:
// side to move, castling rights, en-passant square, move clocks, hash,
// FEN, and game state.
func (b *Board) DebugString() string {
	var sb strings.Builder
	sb.WriteString(b.Dump())
	sb.WriteString(fmt.Sprintf(
		"\nturn:   %s\ncastle: %04b\nenpas:  %s\nhalf:   %d\nfull:   %d\nhash:   %016x\nfen:    %s\nstate:  %s",
		b.sideToMove, b.castleRights, b.enPassant.Notation(), b.halfmoveClock, b.fullmoveNumber, b.hash, b.FEN(), b.State(),
	))
	return sb.String()
}

func (b *Board) computeHash() uint64 {
	var h uint64
	for sq := position.Pos(0); int(sq) < position.TotalCells; sq++ {
		h ^= pieceHash[sq][b.cells[sq]]
	}
	h ^= castleHash[b.castleRights]
	h ^= enpasHash[b.enPassant]
	if b.sideToMove == SideBlack {
		h ^= sideHash
	}
	return h
}

// Validate checks every data-model invariant: mailbox/piece-list
// consistency in both directions, exactly one king per side, a
// plausible en-passant square, castling rights only where the king and
// rook stand on their home squares, a hash matching a from-scratch
// recomputation, and that the side not to move is not in check.
func (b *Board) Validate() error {
	var kingCount [2]int
	for sq := position.Pos(0); int(sq) < position.TotalCells; sq++ {
		p := b.cells[sq]
		if !sq.IsValid() {
			if p != offBoard {
				return fmt.Errorf("%w: off-board square %d is not marked offBoard", ErrInvalidBoard, sq)
			}
			continue
		}
		if p == offBoard {
			return fmt.Errorf("%w: on-board square %s marked offBoard", ErrInvalidBoard, sq.Notation())
		}
		if p.IsKing() {
			kingCount[p.Side()]++
		}
	}
	if kingCount[SideWhite] != 1 || kingCount[SideBlack] != 1 {
		return fmt.Errorf("%w: expected one king per side, got white=%d black=%d", ErrInvalidBoard, kingCount[SideWhite], kingCount[SideBlack])
	}

	seen := make(map[position.Pos]bool, 32)
	for i, list := range b.positions {
		p := Piece(i + 1)
		for _, sq := range list {
			if b.cells[sq] != p {
				return fmt.Errorf("%w: piece list for %s references %s which holds %s", ErrInvalidBoard, p, sq.Notation(), b.cells[sq])
			}
			if seen[sq] {
				return fmt.Errorf("%w: %s listed by more than one piece", ErrInvalidBoard, sq.Notation())
			}
			seen[sq] = true
		}
	}
	for sq := position.Pos(0); int(sq) < position.TotalCells; sq++ {
		if sq.IsValid() && b.cells[sq].IsReal() && !seen[sq] {
			return fmt.Errorf("%w: %s at %s missing from its piece list", ErrInvalidBoard, b.cells[sq], sq.Notation())
		}
	}

	if b.enPassant != position.None {
		wantRank := 5
		if b.sideToMove == SideBlack {
			wantRank = 2
		}
		if b.enPassant.Rank() != wantRank {
			return fmt.Errorf("%w: en-passant square %s is on the wrong rank for %s to move", ErrInvalidBoard, b.enPassant.Notation(), b.sideToMove)
		}
	}

	for _, c := range [...]struct {
		dir        CastleDirection
		king, rook position.Pos
		side       Side
	}{
		{CastleDirectionWhiteShort, position.E1, position.H1, SideWhite},
		{CastleDirectionWhiteLong, position.E1, position.A1, SideWhite},
		{CastleDirectionBlackShort, position.E8, position.H8, SideBlack},
		{CastleDirectionBlackLong, position.E8, position.A8, SideBlack},
	} {
		if b.castleRights.IsAllowed(c.dir) && (b.cells[c.king] != MakePiece(c.side, King) || b.cells[c.rook] != MakePiece(c.side, Rook)) {
			return fmt.Errorf("%w: %s castling right without king and rook on their home squares", ErrInvalidBoard, c.dir)
		}
	}

	if ref := b.computeHash(); ref != b.hash {
		return fmt.Errorf("%w: incremental hash %016x does not match recomputed hash %016x", ErrInvalidBoard, b.hash, ref)
	}

	if b.IsAttacked(b.kingSquare(b.sideToMove.Opposite()), b.sideToMove) {
		return fmt.Errorf("%w: side not to move is in check", ErrInvalidBoard)
	}

	return nil
}
