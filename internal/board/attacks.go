package board

// Pre-computed attack tables for non-sliding pieces and ray geometry.
// All of them are filled once by init and only read afterwards.
var (
	knightAttacks    [64]Bitboard
	kingAttacks      [64]Bitboard
	pawnAttacks      [2][64]Bitboard // [Color][Square]
	pawnPushes       [2][64]Bitboard // [Color][Square] - single push targets
	pawnDoublePushes [2][64]Bitboard // [Color][Square] - only set on the start rank

	// Segments between two aligned squares
	betweenBB   [64][64]Bitboard // strictly between, endpoints excluded
	orthoLineBB [64][64]Bitboard // same rank or file, endpoints included
	diagLineBB  [64][64]Bitboard // same diagonal, endpoints included
)

func init() {
	initKnightAttacks()
	initKingAttacks()
	initPawnAttacks()
	initLines()
	initMagics()  // From magic.go
	initZobrist() // From zobrist.go
}

func initKnightAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := Empty

		// Up 2, left/right 1
		attacks |= (bb << 17) & NotFileA // NNE
		attacks |= (bb << 15) & NotFileH // NNW
		attacks |= (bb >> 17) & NotFileH // SSW
		attacks |= (bb >> 15) & NotFileA // SSE

		// Up 1, left/right 2
		attacks |= (bb << 10) & NotFileAB // ENE
		attacks |= (bb << 6) & NotFileGH  // WNW
		attacks |= (bb >> 10) & NotFileGH // WSW
		attacks |= (bb >> 6) & NotFileAB  // ESE

		knightAttacks[sq] = attacks
	}
}

func initKingAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		attacks := bb.North() | bb.South()
		attacks |= bb.East() | bb.West()
		attacks |= bb.NorthEast() | bb.NorthWest()
		attacks |= bb.SouthEast() | bb.SouthWest()

		kingAttacks[sq] = attacks
	}
}

func initPawnAttacks() {
	for sq := A1; sq <= H8; sq++ {
		bb := SquareBB(sq)

		pawnAttacks[White][sq] = bb.NorthEast() | bb.NorthWest()
		pawnAttacks[Black][sq] = bb.SouthEast() | bb.SouthWest()

		// Pawns never stand on their own back rank; leave those entries empty.
		if sq.Rank() != 0 {
			pawnPushes[White][sq] = bb.North()
		}
		if sq.Rank() != 7 {
			pawnPushes[Black][sq] = bb.South()
		}

		switch sq.Rank() {
		case 1:
			pawnDoublePushes[White][sq] = bb.North().North()
		case 6:
			pawnDoublePushes[Black][sq] = bb.South().South()
		}
	}
}

func initLines() {
	for sq1 := A1; sq1 <= H8; sq1++ {
		for sq2 := A1; sq2 <= H8; sq2++ {
			if sq1 == sq2 {
				continue
			}

			f1, r1 := sq1.File(), sq1.Rank()
			f2, r2 := sq2.File(), sq2.Rank()

			orthogonal := f1 == f2 || r1 == r2
			diagonal := abs(f2-f1) == abs(r2-r1)
			if !orthogonal && !diagonal {
				continue
			}

			df := sign(f2 - f1)
			dr := sign(r2 - r1)

			var between Bitboard
			for f, r := f1+df, r1+dr; f != f2 || r != r2; f, r = f+df, r+dr {
				between |= SquareBB(NewSquare(f, r))
			}
			betweenBB[sq1][sq2] = between

			segment := between | SquareBB(sq1) | SquareBB(sq2)
			if orthogonal {
				orthoLineBB[sq1][sq2] = segment
			} else {
				diagLineBB[sq1][sq2] = segment
			}
		}
	}
}

func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// KnightAttacks returns the knight attack bitboard for a square.
func KnightAttacks(sq Square) Bitboard {
	return knightAttacks[sq]
}

// KingAttacks returns the king attack bitboard for a square.
func KingAttacks(sq Square) Bitboard {
	return kingAttacks[sq]
}

// PawnAttacks returns the pawn capture bitboard for a square and color.
func PawnAttacks(sq Square, c Color) Bitboard {
	return pawnAttacks[c][sq]
}

// PawnPushes returns the single push target for a pawn of color c on sq.
func PawnPushes(sq Square, c Color) Bitboard {
	return pawnPushes[c][sq]
}

// PawnDoublePushes returns the double push target for a pawn of color c on
// sq, or Empty if sq is not on that color's start rank.
func PawnDoublePushes(sq Square, c Color) Bitboard {
	return pawnDoublePushes[c][sq]
}

// BishopAttacks returns the bishop attack bitboard for a square with given occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	return getBishopAttacks(sq, occupied)
}

// RookAttacks returns the rook attack bitboard for a square with given occupancy.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	return getRookAttacks(sq, occupied)
}

// QueenAttacks returns the queen attack bitboard for a square with given occupancy.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return getBishopAttacks(sq, occupied) | getRookAttacks(sq, occupied)
}

// Between returns the squares strictly between two squares.
// Returns Empty if the squares share no rank, file or diagonal.
func Between(sq1, sq2 Square) Bitboard {
	return betweenBB[sq1][sq2]
}

// OrthogonalLine returns the rank or file segment from sq1 to sq2, both
// endpoints included, or Empty if they share neither rank nor file.
func OrthogonalLine(sq1, sq2 Square) Bitboard {
	return orthoLineBB[sq1][sq2]
}

// DiagonalLine returns the diagonal segment from sq1 to sq2, both endpoints
// included, or Empty if they are not on a common diagonal.
func DiagonalLine(sq1, sq2 Square) Bitboard {
	return diagLineBB[sq1][sq2]
}
