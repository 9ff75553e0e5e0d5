package board

import (
	"fmt"
	"slices"
)

// GenMode selects which moves Generate attaches to a position.
type GenMode uint8

const (
	GenNone        GenMode = iota // nothing generated
	GenPseudoLegal                // every move obeying piece movement rules
	GenLegal                      // pseudo-legal moves that keep the mover's king safe
	GenTactical                   // pseudo-legal captures and promotions only
)

func (g GenMode) String() string {
	switch g {
	case GenPseudoLegal:
		return "pseudo-legal"
	case GenLegal:
		return "legal"
	case GenTactical:
		return "tactical"
	default:
		return "none"
	}
}

// castle describes one castling move.
type castle struct {
	right            CastlingRights
	color            Color
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	empty            Bitboard // squares between king and rook
	path             Bitboard // squares the king crosses or lands on
}

var castles = [4]castle{
	{WhiteKingSideCastle, White, E1, G1, H1, F1, SquareBB(F1) | SquareBB(G1), SquareBB(F1) | SquareBB(G1)},
	{WhiteQueenSideCastle, White, E1, C1, A1, D1, SquareBB(B1) | SquareBB(C1) | SquareBB(D1), SquareBB(C1) | SquareBB(D1)},
	{BlackKingSideCastle, Black, E8, G8, H8, F8, SquareBB(F8) | SquareBB(G8), SquareBB(F8) | SquareBB(G8)},
	{BlackQueenSideCastle, Black, E8, C8, A8, D8, SquareBB(B8) | SquareBB(C8) | SquareBB(D8), SquareBB(C8) | SquareBB(D8)},
}

// Generate returns p with the moves of the given mode attached. The
// receiver is not modified. If p already carries moves of that mode it is
// returned as is.
func (p Position) Generate(mode GenMode) Position {
	if p.gen == mode {
		return p
	}
	p.moves = nil
	p.gen = mode
	if mode == GenNone {
		return p
	}

	var ml MoveList
	p.generate(&ml, mode == GenTactical)
	if mode == GenLegal {
		p.filterLegal(&ml)
	}
	p.moves = slices.Clone(ml.Slice())
	return p
}

// GenMode returns the kind of moves attached to p.
func (p Position) GenMode() GenMode {
	return p.gen
}

// Moves returns a copy of the attached moves.
func (p Position) Moves() []Move {
	return slices.Clone(p.moves)
}

// MoveCount returns the number of attached moves.
func (p Position) MoveCount() int {
	return len(p.moves)
}

// MoveAt returns the i-th attached move. It panics if no moves were
// generated or i is out of range; both are programming errors.
func (p Position) MoveAt(i int) Move {
	if p.gen == GenNone {
		panic("board: MoveAt on a position without generated moves")
	}
	if i < 0 || i >= len(p.moves) {
		panic(fmt.Sprintf("board: move index %d out of range [0,%d)", i, len(p.moves)))
	}
	return p.moves[i]
}

// LegalMoves returns the legal moves of p.
func (p Position) LegalMoves() []Move {
	return p.Generate(GenLegal).Moves()
}

// PseudoLegalMoves returns the pseudo-legal moves of p.
func (p Position) PseudoLegalMoves() []Move {
	return p.Generate(GenPseudoLegal).Moves()
}

// TacticalMoves returns the pseudo-legal captures and promotions of p.
func (p Position) TacticalMoves() []Move {
	return p.Generate(GenTactical).Moves()
}

// IsLegal reports whether the pseudo-legal move m keeps the mover's king safe.
func (p Position) IsLegal(m Move) bool {
	return !p.ApplyMove(m).LeftKingInCheck()
}

// LeftKingInCheck reports whether the side that just moved left its own king
// attacked.
func (p Position) LeftKingInCheck() bool {
	mover := p.side.Other()
	return p.IsSquareAttacked(p.KingSquare(mover), p.side)
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p Position) HasLegalMoves() bool {
	var ml MoveList
	p.generate(&ml, false)
	for _, m := range ml.Slice() {
		if p.IsLegal(m) {
			return true
		}
	}
	return false
}

// IsCheckmate returns true if the side to move is checkmated.
func (p Position) IsCheckmate() bool {
	return p.InCheck() && !p.HasLegalMoves()
}

// IsStalemate returns true if the side to move is stalemated.
func (p Position) IsStalemate() bool {
	return !p.InCheck() && !p.HasLegalMoves()
}

// filterLegal drops the moves that leave the mover's king attacked.
func (p Position) filterLegal(ml *MoveList) {
	n := 0
	for i := 0; i < ml.count; i++ {
		m := ml.moves[i]
		if p.IsLegal(m) {
			ml.moves[n] = m
			n++
		}
	}
	ml.count = n
}

// generate appends the pseudo-legal moves of the side to move in the order
// king, queen, rook, bishop, knight, pawn. With tactical set only captures
// and promotions are produced.
func (p Position) generate(ml *MoveList, tactical bool) {
	us := p.side
	own := p.Occupancy(us)
	enemies := p.Occupancy(us.Other())
	occupied := own | enemies

	targets := ^own
	if tactical {
		targets = enemies
	}

	for _, pt := range [5]PieceType{King, Queen, Rook, Bishop, Knight} {
		for pieces := p.bb[NewPiece(pt, us)]; pieces != 0; {
			from := pieces.PopLSB()
			addMoves(ml, from, pieceAttacks(pt, from, occupied)&targets)
		}
	}

	if !tactical {
		p.generateCastling(ml, us, occupied)
	}
	p.generatePawnMoves(ml, us, enemies, occupied, tactical)
}

// pieceAttacks dispatches to the attack table of a non-pawn piece type.
func pieceAttacks(pt PieceType, sq Square, occupied Bitboard) Bitboard {
	switch pt {
	case Knight:
		return knightAttacks[sq]
	case Bishop:
		return getBishopAttacks(sq, occupied)
	case Rook:
		return getRookAttacks(sq, occupied)
	case Queen:
		return getBishopAttacks(sq, occupied) | getRookAttacks(sq, occupied)
	case King:
		return kingAttacks[sq]
	}
	return Empty
}

func addMoves(ml *MoveList, from Square, targets Bitboard) {
	for targets != 0 {
		ml.Add(NewMove(from, targets.PopLSB()))
	}
}

func (p Position) generateCastling(ml *MoveList, us Color, occupied Bitboard) {
	if p.castling == NoCastling {
		return
	}
	them := us.Other()
	inCheck := false
	checked := false

	for i := range castles {
		c := &castles[i]
		if c.color != us || p.castling&c.right == 0 || occupied&c.empty != 0 {
			continue
		}
		if !checked {
			inCheck = p.IsSquareAttacked(c.kingFrom, them)
			checked = true
		}
		if inCheck {
			return
		}
		if p.pathAttacked(c.path, them) {
			continue
		}
		ml.Add(NewMove(c.kingFrom, c.kingTo))
	}
}

func (p Position) pathAttacked(path Bitboard, by Color) bool {
	for path != 0 {
		if p.IsSquareAttacked(path.PopLSB(), by) {
			return true
		}
	}
	return false
}

func (p Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard, tactical bool) {
	promoRank := Rank8
	if us == Black {
		promoRank = Rank1
	}

	captureTargets := enemies
	if p.ep != NoSquare {
		captureTargets |= SquareBB(p.ep)
	}

	for pawns := p.bb[NewPiece(Pawn, us)]; pawns != 0; {
		from := pawns.PopLSB()

		if push := pawnPushes[us][from] &^ occupied; push != 0 {
			if !tactical || push&promoRank != 0 {
				addPawnMove(ml, us, from, push.LSB(), promoRank)
			}
			if !tactical {
				if double := pawnDoublePushes[us][from] &^ occupied; double != 0 {
					ml.Add(NewMove(from, double.LSB()))
				}
			}
		}

		for caps := pawnAttacks[us][from] & captureTargets; caps != 0; {
			addPawnMove(ml, us, from, caps.PopLSB(), promoRank)
		}
	}
}

// addPawnMove adds a pawn move, expanded into the four promotions when it
// reaches the last rank.
func addPawnMove(ml *MoveList, us Color, from, to Square, promoRank Bitboard) {
	if !promoRank.IsSet(to) {
		ml.Add(NewMove(from, to))
		return
	}
	for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
		ml.Add(NewPromotion(from, to, NewPiece(pt, us)))
	}
}
