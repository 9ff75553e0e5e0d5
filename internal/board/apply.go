package board

// ApplyMove returns the position after m is played. The receiver is left
// untouched and the result carries no generated moves.
//
// m must be pseudo-legal in p. The result may leave the mover's king in
// check; callers filter that with LeftKingInCheck.
func (p Position) ApplyMove(m Move) Position {
	n := p
	n.moves = nil
	n.gen = GenNone

	us := p.side
	them := us.Other()
	from, to := m.From(), m.To()
	piece := p.PieceAt(from)

	if n.ep != NoSquare {
		n.hash ^= zobristEnPassant[n.ep.File()]
		n.ep = NoSquare
	}
	n.halfMove++

	if captured := p.PieceAt(to); captured != NoPiece {
		n.removePiece(captured, to)
		n.halfMove = 0
	}

	n.movePiece(piece, from, to)

	switch piece.Type() {
	case Pawn:
		n.halfMove = 0
		switch {
		case m.IsPromotion():
			n.removePiece(piece, to)
			n.putPiece(m.Promotion(), to)
		case to == p.ep:
			behind := to - 8
			if us == Black {
				behind = to + 8
			}
			n.removePiece(NewPiece(Pawn, them), behind)
		case abs(int(to)-int(from)) == 16:
			n.ep = (from + to) / 2
			n.hash ^= zobristEnPassant[n.ep.File()]
		}
	case King:
		if abs(from.File()-to.File()) == 2 {
			for i := range castles {
				if c := &castles[i]; c.kingFrom == from && c.kingTo == to {
					n.movePiece(NewPiece(Rook, us), c.rookFrom, c.rookTo)
				}
			}
		}
	}

	if rights := n.castling &^ revokedRights(from, to); rights != n.castling {
		n.hash ^= zobristCastling[n.castling] ^ zobristCastling[rights]
		n.castling = rights
	}

	if us == Black {
		n.fullMove++
	}
	n.side = them
	n.hash ^= zobristSideToMove
	return n
}

// revokedRights returns the castling rights lost when a piece leaves from or
// something lands on to: a king leaving its home square, a rook leaving its
// home square, or a rook captured on its home square.
func revokedRights(from, to Square) CastlingRights {
	var lost CastlingRights
	for i := range castles {
		c := &castles[i]
		if from == c.kingFrom || from == c.rookFrom || to == c.rookFrom {
			lost |= c.right
		}
	}
	return lost
}

func (p *Position) putPiece(pc Piece, sq Square) {
	bb := SquareBB(sq)
	p.bb[pc] |= bb
	p.bb[occupancySlot+pc.Color()] |= bb
	p.hash ^= zobristPiece[pc][sq]
}

func (p *Position) removePiece(pc Piece, sq Square) {
	bb := SquareBB(sq)
	p.bb[pc] &^= bb
	p.bb[occupancySlot+pc.Color()] &^= bb
	p.hash ^= zobristPiece[pc][sq]
}

func (p *Position) movePiece(pc Piece, from, to Square) {
	moveBB := SquareBB(from) | SquareBB(to)
	p.bb[pc] ^= moveBB
	p.bb[occupancySlot+pc.Color()] ^= moveBB
	p.hash ^= zobristPiece[pc][from] ^ zobristPiece[pc][to]
}
