package board

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ErrMalformedFEN is the cause of every error returned by ParseFEN.
var ErrMalformedFEN = errors.New("malformed FEN")

// ParseFEN parses a six-field FEN string and returns a Position. On error
// the returned Position is the zero value.
func ParseFEN(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) != 6 {
		return Position{}, errors.Wrapf(ErrMalformedFEN, "need 6 fields, got %d", len(parts))
	}
	return parseFields(parts)
}

// ParseFENLenient is like ParseFEN but also accepts the four-field EPD form
// and a missing fullmove number. Omitted clocks default to 0 and 1.
func ParseFENLenient(fen string) (Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 || len(parts) > 6 {
		return Position{}, errors.Wrapf(ErrMalformedFEN, "need 4 to 6 fields, got %d", len(parts))
	}
	return parseFields(parts)
}

func parseFields(parts []string) (Position, error) {
	pl, err := parsePiecePlacement(parts[0])
	if err != nil {
		return Position{}, err
	}

	var side Color
	switch parts[1] {
	case "w":
		side = White
	case "b":
		side = Black
	default:
		return Position{}, errors.Wrapf(ErrMalformedFEN, "invalid side to move %q", parts[1])
	}

	castling, err := parseCastlingRights(parts[2])
	if err != nil {
		return Position{}, err
	}

	ep := NoSquare
	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return Position{}, errors.Wrapf(ErrMalformedFEN, "invalid en passant square %q", parts[3])
		}
		ep = sq
	}

	halfMove, fullMove := 0, 1
	if len(parts) > 4 {
		if halfMove, err = strconv.Atoi(parts[4]); err != nil {
			return Position{}, errors.Wrapf(ErrMalformedFEN, "invalid half-move clock %q", parts[4])
		}
	}
	if len(parts) > 5 {
		if fullMove, err = strconv.Atoi(parts[5]); err != nil {
			return Position{}, errors.Wrapf(ErrMalformedFEN, "invalid full-move number %q", parts[5])
		}
	}

	pos, err := NewPosition(pl, side, castling, ep, halfMove, fullMove)
	if err != nil {
		return Position{}, errors.Wrapf(ErrMalformedFEN, "%v", err)
	}
	return pos, nil
}

// MustParseFEN is like ParseFEN but panics on error. It is meant for
// constants known to be valid.
func MustParseFEN(fen string) Position {
	pos, err := ParseFEN(fen)
	if err != nil {
		panic(err)
	}
	return pos
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(placement string) (Placement, error) {
	var pl Placement

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return pl, errors.Wrapf(ErrMalformedFEN, "need 8 ranks, got %d", len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i // FEN starts from rank 8
		file := 0

		for j := 0; j < len(rankStr); j++ {
			c := rankStr[j]
			if file > 7 {
				return pl, errors.Wrapf(ErrMalformedFEN, "too many squares in rank %d", rank+1)
			}

			if c >= '1' && c <= '8' {
				file += int(c - '0')
				continue
			}

			piece := PieceFromChar(c)
			if piece == NoPiece {
				return pl, errors.Wrapf(ErrMalformedFEN, "invalid piece character %q", c)
			}
			pl[NewSquare(file, rank)] = piece
			file++
		}

		if file != 8 {
			return pl, errors.Wrapf(ErrMalformedFEN, "rank %d has %d squares", rank+1, file)
		}
	}

	return pl, nil
}

// parseCastlingRights parses the castling rights section of a FEN string.
func parseCastlingRights(castling string) (CastlingRights, error) {
	if castling == "-" {
		return NoCastling, nil
	}

	var cr CastlingRights
	for _, c := range castling {
		idx := strings.IndexRune("KQkq", c)
		if idx < 0 || cr&(1<<idx) != 0 {
			return NoCastling, errors.Wrapf(ErrMalformedFEN, "invalid castling field %q", castling)
		}
		cr |= 1 << idx
	}
	return cr, nil
}

// FEN returns the FEN representation of the position.
func (p Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece := p.PieceAt(NewSquare(file, rank))
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.side == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castling.String())

	sb.WriteByte(' ')
	sb.WriteString(p.ep.String())

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.halfMove))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.fullMove))

	return sb.String()
}
