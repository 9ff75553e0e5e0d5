package board

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// CastlingRights represents the available castling options.
type CastlingRights uint8

const (
	WhiteKingSideCastle  CastlingRights = 1 << iota // K
	WhiteQueenSideCastle                            // Q
	BlackKingSideCastle                             // k
	BlackQueenSideCastle                            // q
	NoCastling           CastlingRights = 0
	AllCastling          CastlingRights = WhiteKingSideCastle | WhiteQueenSideCastle | BlackKingSideCastle | BlackQueenSideCastle
)

// String returns the FEN castling rights string.
func (cr CastlingRights) String() string {
	if cr&AllCastling == NoCastling {
		return "-"
	}
	var sb strings.Builder
	for i, c := range "KQkq" {
		if cr&(1<<i) != 0 {
			sb.WriteRune(c)
		}
	}
	return sb.String()
}

// CanCastle returns true if the given side can castle in the given direction.
func (cr CastlingRights) CanCastle(c Color, kingSide bool) bool {
	return cr&castleRight(c, kingSide) != 0
}

func castleRight(c Color, kingSide bool) CastlingRights {
	right := WhiteQueenSideCastle
	if kingSide {
		right = WhiteKingSideCastle
	}
	if c == Black {
		right <<= 2
	}
	return right
}

// Bitboard slots 13 and 14 of Position.bb hold color occupancy.
const occupancySlot = 13

// Placement lists the piece on every square, indexed by Square.
type Placement [64]Piece

// Position is an immutable chess position.
//
// Every operation that changes the game state returns a new Position and
// leaves the receiver untouched, so a search can backtrack by holding on to
// the parent value.
type Position struct {
	// bb[1..12] are indexed by Piece, bb[13+c] is the occupancy of color c.
	// bb[0] is unused.
	bb [15]Bitboard

	side     Color
	castling CastlingRights
	ep       Square // NoSquare if none
	halfMove int
	fullMove int
	hash     uint64

	moves []Move
	gen   GenMode
}

// ErrInvalidPosition is the cause of every error returned by NewPosition.
var ErrInvalidPosition = errors.New("invalid position")

// NewPosition builds a position from its components and computes its hash
// from scratch. ep is NoSquare when there is no en passant target.
func NewPosition(pl Placement, side Color, castling CastlingRights, ep Square, halfMove, fullMove int) (Position, error) {
	p := Position{
		side:     side,
		castling: castling,
		ep:       ep,
		halfMove: halfMove,
		fullMove: fullMove,
	}
	for sq, pc := range pl {
		if pc == NoPiece {
			continue
		}
		if !pc.IsValid() {
			return Position{}, errors.Wrapf(ErrInvalidPosition, "bad piece code %d on %s", pc, Square(sq))
		}
		p.bb[pc] |= SquareBB(Square(sq))
		p.bb[occupancySlot+pc.Color()] |= SquareBB(Square(sq))
	}
	if err := p.validate(); err != nil {
		return Position{}, err
	}
	p.hash = p.computeHash()
	return p, nil
}

// validate checks the structural rules a reachable position must satisfy.
func (p *Position) validate() error {
	if p.side > Black {
		return errors.Wrapf(ErrInvalidPosition, "bad side to move %d", p.side)
	}
	if p.castling&^AllCastling != 0 {
		return errors.Wrapf(ErrInvalidPosition, "bad castling rights %#x", uint8(p.castling))
	}
	if p.bb[WhiteKing].PopCount() != 1 {
		return errors.Wrap(ErrInvalidPosition, "white must have exactly one king")
	}
	if p.bb[BlackKing].PopCount() != 1 {
		return errors.Wrap(ErrInvalidPosition, "black must have exactly one king")
	}
	if (p.bb[WhitePawn]|p.bb[BlackPawn])&(Rank1|Rank8) != 0 {
		return errors.Wrap(ErrInvalidPosition, "pawns cannot be on rank 1 or 8")
	}
	for c := White; c <= Black; c++ {
		if err := p.checkMaterial(c); err != nil {
			return err
		}
	}
	for _, c := range castles {
		if p.castling&c.right == 0 {
			continue
		}
		if !p.bb[NewPiece(King, c.color)].IsSet(c.kingFrom) || !p.bb[NewPiece(Rook, c.color)].IsSet(c.rookFrom) {
			return errors.Wrapf(ErrInvalidPosition, "castling right %s without king and rook on their home squares", c.right)
		}
	}
	if p.ep != NoSquare {
		if !p.ep.IsValid() {
			return errors.Wrapf(ErrInvalidPosition, "bad en passant square %d", p.ep)
		}
		// The pushed pawn sits one rank beyond the target, seen from the side
		// that just moved.
		want, pawn, behind := 5, p.ep-8, BlackPawn
		if p.side == Black {
			want, pawn, behind = 2, p.ep+8, WhitePawn
		}
		if p.ep.Rank() != want || !p.bb[behind].IsSet(pawn) || p.Occupied().IsSet(p.ep) {
			return errors.Wrapf(ErrInvalidPosition, "en passant square %s does not follow a double push", p.ep)
		}
	}
	if p.halfMove < 0 {
		return errors.Wrapf(ErrInvalidPosition, "negative halfmove clock %d", p.halfMove)
	}
	if p.fullMove < 1 {
		return errors.Wrapf(ErrInvalidPosition, "fullmove number must be positive, got %d", p.fullMove)
	}
	if p.IsSquareAttacked(p.KingSquare(p.side.Other()), p.side) {
		return errors.Wrapf(ErrInvalidPosition, "%s king can be captured", p.side.Other())
	}
	return nil
}

// checkMaterial rejects piece counts that no sequence of promotions can
// reach: at most 8 pawns, and every piece beyond the starting set costs one
// missing pawn. This keeps the pseudo-legal move count inside MoveList.
func (p *Position) checkMaterial(c Color) error {
	pawns := p.Pieces(c, Pawn).PopCount()
	if pawns > 8 {
		return errors.Wrapf(ErrInvalidPosition, "%s has %d pawns", c, pawns)
	}
	promoted := 0
	for _, pc := range []struct {
		pt    PieceType
		start int
	}{{Knight, 2}, {Bishop, 2}, {Rook, 2}, {Queen, 1}} {
		if extra := p.Pieces(c, pc.pt).PopCount() - pc.start; extra > 0 {
			promoted += extra
		}
	}
	if promoted > 8-pawns {
		return errors.Wrapf(ErrInvalidPosition, "%s has %d promoted pieces with %d pawns left", c, promoted, pawns)
	}
	return nil
}

// Bitboard returns the squares occupied by pc.
func (p Position) Bitboard(pc Piece) Bitboard {
	if !pc.IsValid() {
		return Empty
	}
	return p.bb[pc]
}

// Pieces returns the squares occupied by pieces of type pt and color c.
func (p Position) Pieces(c Color, pt PieceType) Bitboard {
	return p.Bitboard(NewPiece(pt, c))
}

// Occupancy returns the squares occupied by color c.
func (p Position) Occupancy(c Color) Bitboard {
	return p.bb[occupancySlot+c]
}

// Occupied returns every occupied square.
func (p Position) Occupied() Bitboard {
	return p.bb[occupancySlot] | p.bb[occupancySlot+1]
}

// SideToMove returns the color whose turn it is.
func (p Position) SideToMove() Color { return p.side }

// Castling returns the castling rights still held.
func (p Position) Castling() CastlingRights { return p.castling }

// EnPassant returns the en passant target square, or NoSquare.
func (p Position) EnPassant() Square { return p.ep }

// HalfMoveClock returns the number of plies since the last capture or pawn move.
func (p Position) HalfMoveClock() int { return p.halfMove }

// FullMoveNumber returns the move number, starting at 1.
func (p Position) FullMoveNumber() int { return p.fullMove }

// Hash returns the Zobrist hash of the position.
func (p Position) Hash() uint64 { return p.hash }

// PieceAt returns the piece at the given square, or NoPiece if empty.
func (p Position) PieceAt(sq Square) Piece {
	bb := SquareBB(sq)

	var first Piece
	switch {
	case p.bb[occupancySlot+White]&bb != 0:
		first = WhitePawn
	case p.bb[occupancySlot+Black]&bb != 0:
		first = BlackPawn
	default:
		return NoPiece
	}

	for pc := first; pc < first+6; pc++ {
		if p.bb[pc]&bb != 0 {
			return pc
		}
	}
	return NoPiece
}

// KingSquare returns the square of c's king.
func (p Position) KingSquare(c Color) Square {
	return p.bb[NewPiece(King, c)].LSB()
}

// AttackersByColor returns the pieces of color c attacking sq, given occupancy.
func (p Position) AttackersByColor(sq Square, c Color, occupied Bitboard) Bitboard {
	queens := p.bb[NewPiece(Queen, c)]
	return (pawnAttacks[c.Other()][sq] & p.bb[NewPiece(Pawn, c)]) |
		(knightAttacks[sq] & p.bb[NewPiece(Knight, c)]) |
		(kingAttacks[sq] & p.bb[NewPiece(King, c)]) |
		(getBishopAttacks(sq, occupied) & (p.bb[NewPiece(Bishop, c)] | queens)) |
		(getRookAttacks(sq, occupied) & (p.bb[NewPiece(Rook, c)] | queens))
}

// IsSquareAttacked returns true if the square is attacked by the given color.
func (p Position) IsSquareAttacked(sq Square, byColor Color) bool {
	if !sq.IsValid() {
		return false
	}
	return p.AttackersByColor(sq, byColor, p.Occupied()) != 0
}

// InCheck returns true if the side to move is in check.
func (p Position) InCheck() bool {
	return p.IsSquareAttacked(p.KingSquare(p.side), p.side.Other())
}

// Equal reports whether p and o describe the same game state. The attached
// move lists are ignored.
func (p Position) Equal(o Position) bool {
	return p.hash == o.hash &&
		p.side == o.side &&
		p.castling == o.castling &&
		p.ep == o.ep &&
		p.halfMove == o.halfMove &&
		p.fullMove == o.fullMove &&
		p.bb == o.bb
}

// IsInsufficientMaterial returns true if neither side can checkmate.
func (p Position) IsInsufficientMaterial() bool {
	heavy := p.bb[WhitePawn] | p.bb[BlackPawn] |
		p.bb[WhiteRook] | p.bb[BlackRook] |
		p.bb[WhiteQueen] | p.bb[BlackQueen]
	if heavy != 0 {
		return false
	}

	white := (p.bb[WhiteKnight] | p.bb[WhiteBishop]).PopCount()
	black := (p.bb[BlackKnight] | p.bb[BlackBishop]).PopCount()

	// K vs K, K+minor vs K
	return white+black <= 1
}

// String returns a visual representation of the position.
func (p Position) String() string {
	var sb strings.Builder
	sb.WriteByte('\n')
	for rank := 7; rank >= 0; rank-- {
		fmt.Fprintf(&sb, "%d  ", rank+1)
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				sb.WriteString(". ")
			} else {
				sb.WriteString(piece.String() + " ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("\n   a b c d e f g h\n\n")
	fmt.Fprintf(&sb, "Fen: %s\n", p.FEN())
	fmt.Fprintf(&sb, "Hash: %016x\n", p.hash)
	return sb.String()
}
