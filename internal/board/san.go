package board

import (
	"strings"

	"github.com/pkg/errors"
)

// SAN converts a legal move to Standard Algebraic Notation. p is only read.
func (p Position) SAN(m Move) string {
	if m == NoMove {
		return "-"
	}

	from := m.From()
	to := m.To()
	piece := p.PieceAt(from)
	if piece == NoPiece {
		return m.String() // Fallback to UCI
	}

	var sb strings.Builder

	pt := piece.Type()
	switch {
	case m.IsCastling(p):
		if to > from {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	case pt == Pawn:
		if m.IsCapture(p) {
			sb.WriteByte('a' + byte(from.File()))
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion().Type()])
		}
	default:
		sb.WriteByte("PNBRQK"[pt])
		sb.WriteString(p.disambiguation(piece, from, to))
		if m.IsCapture(p) {
			sb.WriteByte('x')
		}
		sb.WriteString(to.String())
	}

	next := p.ApplyMove(m)
	if next.InCheck() {
		if next.HasLegalMoves() {
			sb.WriteByte('+')
		} else {
			sb.WriteByte('#')
		}
	}

	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell a
// move apart from other legal moves of the same piece to the same square.
func (p Position) disambiguation(piece Piece, from, to Square) string {
	occupied := p.Occupied()
	others := p.bb[piece] &^ SquareBB(from)

	var reach Bitboard
	switch piece.Type() {
	case Knight:
		reach = knightAttacks[to] & others
	case Bishop, Rook, Queen:
		for bb := others; bb != 0; {
			sq := bb.PopLSB()
			var line Bitboard
			if piece.Type() != Bishop {
				line |= OrthogonalLine(sq, to)
			}
			if piece.Type() != Rook {
				line |= DiagonalLine(sq, to)
			}
			if line != 0 && Between(sq, to)&occupied == 0 {
				reach |= SquareBB(sq)
			}
		}
	}

	sameFile, sameRank, ambiguous := false, false, false
	for reach != 0 {
		sq := reach.PopLSB()
		if !p.IsLegal(NewMove(sq, to)) {
			continue
		}
		ambiguous = true
		if sq.File() == from.File() {
			sameFile = true
		}
		if sq.Rank() == from.Rank() {
			sameRank = true
		}
	}

	switch {
	case !ambiguous:
		return ""
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}

// ParseSAN parses a SAN string and returns the matching legal move of p.
func ParseSAN(s string, p Position) (Move, error) {
	orig := s
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "+#!?")

	legal := p.LegalMoves()

	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		kingSide := len(s) == 3
		for _, m := range legal {
			if m.IsCastling(p) && (m.To() > m.From()) == kingSide {
				return m, nil
			}
		}
		return NoMove, errors.Errorf("illegal castling %q", orig)
	}

	promo := NoPieceType
	if idx := strings.IndexByte(s, '='); idx >= 0 {
		if idx+1 >= len(s) {
			return NoMove, errors.Errorf("invalid SAN %q", orig)
		}
		promo = pieceTypeFromLetter(s[idx+1])
		if promo == NoPieceType || promo == Pawn || promo == King {
			return NoMove, errors.Errorf("invalid promotion in %q", orig)
		}
		s = s[:idx]
	}

	isCapture := strings.Contains(s, "x")
	s = strings.ReplaceAll(s, "x", "")

	pt := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		pt = pieceTypeFromLetter(s[0])
		if pt == NoPieceType || pt == Pawn {
			return NoMove, errors.Errorf("invalid piece letter in %q", orig)
		}
		s = s[1:]
	}

	if len(s) < 2 {
		return NoMove, errors.Errorf("invalid SAN %q", orig)
	}
	dest, err := ParseSquare(s[len(s)-2:])
	if err != nil {
		return NoMove, errors.Wrapf(err, "invalid SAN %q", orig)
	}
	s = s[:len(s)-2]

	file, rank := -1, -1
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'h':
			file = int(c - 'a')
		case c >= '1' && c <= '8':
			rank = int(c - '1')
		default:
			return NoMove, errors.Errorf("invalid SAN %q", orig)
		}
	}

	for _, m := range legal {
		from := m.From()
		switch {
		case m.To() != dest,
			p.PieceAt(from).Type() != pt,
			file >= 0 && from.File() != file,
			rank >= 0 && from.Rank() != rank,
			isCapture && !m.IsCapture(p):
			continue
		}
		if promo != NoPieceType && m.Promotion().Type() != promo {
			continue
		}
		if promo == NoPieceType && m.IsPromotion() {
			continue
		}
		return m, nil
	}

	return NoMove, errors.Errorf("no legal move matches %q", orig)
}

func pieceTypeFromLetter(c byte) PieceType {
	idx := strings.IndexByte("PNBRQK", c)
	if idx < 0 {
		return NoPieceType
	}
	return PieceType(idx)
}

// MovesToSAN converts a line of moves starting at p to SAN notation.
func MovesToSAN(p Position, moves []Move) []string {
	result := make([]string, len(moves))
	for i, m := range moves {
		result[i] = p.SAN(m)
		p = p.ApplyMove(m)
	}
	return result
}
