package board

import (
	"github.com/pkg/errors"
)

// Move encodes a chess move in 16 bits:
// bits 0-5:   from square (0-63)
// bits 6-11:  to square (0-63)
// bits 12-15: promotion Piece, colored (0 = no promotion)
//
// Captures, en passant and castling carry no flag; ApplyMove derives them
// from the board.
type Move uint16

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a move without promotion.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move. promo carries the mover's color.
func NewPromotion(from, to Square, promo Piece) Move {
	return Move(from) | Move(to)<<6 | Move(promo)<<12
}

// From returns the origin square.
func (m Move) From() Square {
	return Square(m & 0x3F)
}

// To returns the destination square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Promotion returns the promoted piece, or NoPiece.
func (m Move) Promotion() Piece {
	return Piece(m >> 12)
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m>>12 != 0
}

// String returns the UCI format of the move (e.g., "e2e4", "e7e8q").
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Type().Char())
	}
	return s
}

// IsCapture returns true if m takes a piece in pos, en passant included.
func (m Move) IsCapture(pos Position) bool {
	if pos.Occupancy(pos.side.Other()).IsSet(m.To()) {
		return true
	}
	return m.To() == pos.ep && pos.PieceAt(m.From()).Type() == Pawn
}

// IsCastling returns true if m is a king moving two files in pos.
func (m Move) IsCastling(pos Position) bool {
	return pos.PieceAt(m.From()).Type() == King && abs(m.From().File()-m.To().File()) == 2
}

// ParseMove parses a UCI format move string and checks it against the legal
// moves of pos.
func ParseMove(s string, pos Position) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NoMove, errors.Errorf("invalid move string %q", s)
	}
	if _, err := ParseSquare(s[0:2]); err != nil {
		return NoMove, err
	}
	if _, err := ParseSquare(s[2:4]); err != nil {
		return NoMove, err
	}

	legal := pos.Generate(GenLegal)
	for _, m := range legal.Moves() {
		if m.String() == s {
			return m, nil
		}
	}
	return NoMove, errors.Errorf("illegal move %s in %s", s, pos.FEN())
}

// MoveList is a fixed-size move buffer used during generation. The most
// moves known in a legal position is 218, and NewPosition rejects material
// that promotions cannot produce, so 256 slots are never exhausted.
type MoveList struct {
	moves [256]Move
	count int
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
