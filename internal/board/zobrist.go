package board

// Zobrist hash keys for position hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [13][64]uint64 // [Piece][Square]; row 0 (NoPiece) stays zero
	zobristEnPassant  [8]uint64      // One per file
	zobristRight      [4]uint64      // One per castling right
	zobristCastling   [16]uint64     // XOR of zobristRight over each rights set
	zobristSideToMove uint64         // XOR when black to move
)

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// sparse returns a number with roughly an eighth of its bits set.
func (p *prng) sparse() uint64 {
	return p.next() & p.next() & p.next()
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234) // Fixed seed

	for pc := WhitePawn; pc <= BlackKing; pc++ {
		for sq := A1; sq <= H8; sq++ {
			zobristPiece[pc][sq] = rng.next()
		}
	}

	for file := 0; file < 8; file++ {
		zobristEnPassant[file] = rng.next()
	}

	for i := range zobristRight {
		zobristRight[i] = rng.next()
	}
	for cr := 0; cr < 16; cr++ {
		var key uint64
		for i := range zobristRight {
			if cr&(1<<i) != 0 {
				key ^= zobristRight[i]
			}
		}
		zobristCastling[cr] = key
	}

	zobristSideToMove = rng.next()
}

// ZobristPiece returns the Zobrist key for a piece on a square.
func ZobristPiece(pc Piece, sq Square) uint64 {
	return zobristPiece[pc][sq]
}

// ZobristEnPassant returns the Zobrist key for an en passant file.
func ZobristEnPassant(file int) uint64 {
	return zobristEnPassant[file]
}

// ZobristCastling returns the combined Zobrist key for a set of castling rights.
func ZobristCastling(cr CastlingRights) uint64 {
	return zobristCastling[cr&AllCastling]
}

// ZobristSideToMove returns the Zobrist key for side to move.
func ZobristSideToMove() uint64 {
	return zobristSideToMove
}

// computeHash derives the hash of p from scratch.
func (p *Position) computeHash() uint64 {
	var h uint64
	for pc := WhitePawn; pc <= BlackKing; pc++ {
		for bb := p.bb[pc]; bb != 0; {
			h ^= zobristPiece[pc][bb.PopLSB()]
		}
	}
	h ^= zobristCastling[p.castling]
	if p.ep != NoSquare {
		h ^= zobristEnPassant[p.ep.File()]
	}
	if p.side == Black {
		h ^= zobristSideToMove
	}
	return h
}
