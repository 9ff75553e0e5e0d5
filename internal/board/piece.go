package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
	NoColor Color = 2
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoColor"
	}
}

// PieceType represents the kind of a chess piece, independent of color.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// PieceTypes lists every real piece type in generation order.
var PieceTypes = [6]PieceType{Pawn, Knight, Bishop, Rook, Queen, King}

var pieceTypeNames = [7]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King", "None"}

// String returns the piece type name.
func (pt PieceType) String() string {
	if pt > NoPieceType {
		return "None"
	}
	return pieceTypeNames[pt]
}

// Char returns the lowercase FEN character for the piece type.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return "pnbrqk"[pt]
}

// Piece combines PieceType and Color into a single tag.
//
// The encoding reserves zero for "no piece" so that a zero promotion field
// in a Move means no promotion:
//
//	NoPiece = 0, WhitePawn..WhiteKing = 1..6, BlackPawn..BlackKing = 7..12
//
// The same value indexes the position's bitboard array; slots 13 and 14 hold
// the white and black occupancy aggregates.
type Piece uint8

const (
	NoPiece Piece = iota
	WhitePawn
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
)

// NewPiece creates a Piece from PieceType and Color.
func NewPiece(pt PieceType, c Color) Piece {
	if pt >= NoPieceType || c >= NoColor {
		return NoPiece
	}
	return 1 + Piece(pt) + Piece(c)*6
}

// Type returns the PieceType of the piece.
func (p Piece) Type() PieceType {
	if p == NoPiece || p > BlackKing {
		return NoPieceType
	}
	return PieceType((p - 1) % 6)
}

// Color returns the Color of the piece.
func (p Piece) Color() Color {
	if p == NoPiece || p > BlackKing {
		return NoColor
	}
	return Color((p - 1) / 6)
}

// IsValid reports whether p names a real piece.
func (p Piece) IsValid() bool {
	return p >= WhitePawn && p <= BlackKing
}

// String returns the FEN character for the piece.
// Uppercase for white, lowercase for black.
func (p Piece) String() string {
	if !p.IsValid() {
		return " "
	}
	return string(" PNBRQKpnbrqk"[p])
}

// PieceFromChar converts a FEN character to a Piece.
func PieceFromChar(c byte) Piece {
	switch c {
	case 'P':
		return WhitePawn
	case 'N':
		return WhiteKnight
	case 'B':
		return WhiteBishop
	case 'R':
		return WhiteRook
	case 'Q':
		return WhiteQueen
	case 'K':
		return WhiteKing
	case 'p':
		return BlackPawn
	case 'n':
		return BlackKnight
	case 'b':
		return BlackBishop
	case 'r':
		return BlackRook
	case 'q':
		return BlackQueen
	case 'k':
		return BlackKing
	default:
		return NoPiece
	}
}
