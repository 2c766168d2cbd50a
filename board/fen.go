package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/eightfile/mailbox/position"
)

// DefaultStartingPositionFEN is the standard chess starting position.
const DefaultStartingPositionFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrInvalidFEN is returned by NewBoard (via unmarshalFEN or Validate) for
// a malformed FEN string.
var ErrInvalidFEN = errors.New("invalid fen")

var fenPieces = map[rune]Piece{
	'P': WhitePawn, 'N': WhiteKnight, 'B': WhiteBishop, 'R': WhiteRook, 'Q': WhiteQueen, 'K': WhiteKing,
	'p': BlackPawn, 'n': BlackKnight, 'b': BlackBishop, 'r': BlackRook, 'q': BlackQueen, 'k': BlackKing,
}

// unmarshalFEN resets b entirely and repopulates it from fen. It mirrors
// original_source's Board constructor: board section first (rank 8 down
// to rank 1, files a to h), then side to move, castling rights,
// en-passant square, halfmove clock, and fullmove number.
func unmarshalFEN(fen string, b *Board) error {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return fmt.Errorf("%w: expected 6 space-separated fields, got %d", ErrInvalidFEN, len(fields))
	}

	*b = Board{}
	for i := range b.cells {
		b.cells[i] = offBoard
	}
	for sq := position.Pos(0); int(sq) < position.TotalCells; sq++ {
		if sq.IsValid() {
			b.cells[sq] = Empty
		}
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != position.BoardRanks {
		return fmt.Errorf("%w: expected 8 ranks, got %d", ErrInvalidFEN, len(rows))
	}
	for i, row := range rows {
		rank := position.BoardRanks - 1 - i
		file := 0
		for _, c := range row {
			if file >= position.BoardFiles {
				return fmt.Errorf("%w: rank %d overflows the board", ErrInvalidFEN, rank+1)
			}
			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}
			p, ok := fenPieces[c]
			if !ok {
				return fmt.Errorf("%w: unknown piece symbol %q", ErrInvalidFEN, c)
			}
			b.put(position.FromFileRank(file, rank), p)
			file++
		}
		if file != position.BoardFiles {
			return fmt.Errorf("%w: rank %d does not cover 8 files", ErrInvalidFEN, rank+1)
		}
	}

	switch fields[1] {
	case "w":
		b.sideToMove = SideWhite
	case "b":
		b.sideToMove = SideBlack
	default:
		return fmt.Errorf("%w: invalid side to move %q", ErrInvalidFEN, fields[1])
	}
	if b.sideToMove == SideBlack {
		b.hash ^= sideHash
	}

	if fields[2] != "-" {
		for _, c := range fields[2] {
			switch c {
			case 'K':
				b.castleRights.Set(CastleDirectionWhiteShort, true)
			case 'Q':
				b.castleRights.Set(CastleDirectionWhiteLong, true)
			case 'k':
				b.castleRights.Set(CastleDirectionBlackShort, true)
			case 'q':
				b.castleRights.Set(CastleDirectionBlackLong, true)
			default:
				return fmt.Errorf("%w: invalid castling availability %q", ErrInvalidFEN, fields[2])
			}
		}
	}
	b.hash ^= castleHash[b.castleRights]

	b.enPassant = position.None
	if fields[3] != "-" {
		sq, err := position.FromNotation(fields[3])
		if err != nil {
			return fmt.Errorf("%w: invalid en-passant square %q", ErrInvalidFEN, fields[3])
		}
		wantRank, behind := 5, position.South
		if b.sideToMove == SideBlack {
			wantRank, behind = 2, position.North
		}
		if sq.Rank() != wantRank {
			return fmt.Errorf("%w: en-passant square %q is not on the rank %s can capture on", ErrInvalidFEN, fields[3], b.sideToMove)
		}
		// Elide an en-passant square with no capturing pawn beside it: it
		// cannot affect move generation and would otherwise make two
		// FENs that reach the same legal position hash differently.
		capturer := MakePiece(b.sideToMove, Pawn)
		capturedPawn := sq + behind
		if b.cells[capturedPawn+position.West] == capturer || b.cells[capturedPawn+position.East] == capturer {
			b.enPassant = sq
		}
	}
	b.hash ^= enpasHash[b.enPassant]

	halfmove, err := strconv.Atoi(fields[4])
	if err != nil || halfmove < 0 {
		return fmt.Errorf("%w: invalid halfmove clock %q", ErrInvalidFEN, fields[4])
	}
	b.halfmoveClock = halfmove

	fullmove, err := strconv.Atoi(fields[5])
	if err != nil || fullmove < 1 {
		return fmt.Errorf("%w: invalid fullmove number %q", ErrInvalidFEN, fields[5])
	}
	b.fullmoveNumber = fullmove

	return nil
}

// FEN renders the board in Forsyth-Edwards notation.
func (b *Board) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			p := b.cells[position.FromFileRank(file, rank)]
			if p == Empty {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.SymbolFEN())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if b.sideToMove == SideWhite {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	rights := ""
	if b.castleRights.IsAllowed(CastleDirectionWhiteShort) {
		rights += "K"
	}
	if b.castleRights.IsAllowed(CastleDirectionWhiteLong) {
		rights += "Q"
	}
	if b.castleRights.IsAllowed(CastleDirectionBlackShort) {
		rights += "k"
	}
	if b.castleRights.IsAllowed(CastleDirectionBlackLong) {
		rights += "q"
	}
	if rights == "" {
		rights = "-"
	}
	sb.WriteString(rights)

	sb.WriteByte(' ')
	if b.enPassant == position.None {
		sb.WriteByte('-')
	} else {
		sb.WriteString(b.enPassant.Notation())
	}

	sb.WriteString(fmt.Sprintf(" %d %d", b.halfmoveClock, b.fullmoveNumber))

	return sb.String()
}
