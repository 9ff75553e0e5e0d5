package board

import "math/bits"

// Magic bitboards for sliding piece attacks.
//
// The multipliers are not hard-coded: initMagics searches for them with a
// fixed-seed generator, so the tables come out identical on every run, and
// each candidate is verified against ray casting for every subset of the
// relevant occupancy before it is accepted.

// Magic holds the magic bitboard data for a single square.
type Magic struct {
	Mask   Bitboard // Relevant occupancy mask (excludes edges)
	Magic  uint64   // Magic multiplier
	Shift  uint8    // Bits to shift right
	Offset uint32   // Index into attack table
}

var (
	bishopMagics [64]Magic
	rookMagics   [64]Magic

	// Attack tables (fancy magic bitboards)
	bishopTable [5248]Bitboard
	rookTable   [102400]Bitboard
)

const magicSeed = 0x6D2B79F5A3C1E417

type direction struct{ df, dr int }

var (
	bishopDirections = [4]direction{{1, 1}, {-1, 1}, {1, -1}, {-1, -1}}
	rookDirections   = [4]direction{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
)

func initMagics() {
	rng := newPRNG(magicSeed)

	var offset uint32
	for sq := A1; sq <= H8; sq++ {
		offset += fillMagic(&bishopMagics[sq], sq, bishopMask(sq), bishopAttacksSlow, bishopTable[offset:], offset, rng)
	}

	offset = 0
	for sq := A1; sq <= H8; sq++ {
		offset += fillMagic(&rookMagics[sq], sq, rookMask(sq), rookAttacksSlow, rookTable[offset:], offset, rng)
	}
}

// fillMagic finds a multiplier for sq that maps every relevant occupancy to
// a slot holding its exact attack set, writes the slots into table and
// returns the number of entries used.
func fillMagic(m *Magic, sq Square, mask Bitboard, slow func(Square, Bitboard) Bitboard, table []Bitboard, offset uint32, rng *prng) uint32 {
	n := mask.PopCount()
	size := 1 << n

	occupancies := make([]Bitboard, size)
	attacks := make([]Bitboard, size)
	for i := 0; i < size; i++ {
		occupancies[i] = indexToOccupancy(i, n, mask)
		attacks[i] = slow(sq, occupancies[i])
	}

	used := make([]Bitboard, size)
	epoch := make([]int, size)
	shift := uint8(64 - n)

	for attempt := 1; ; attempt++ {
		magic := rng.sparse()
		if bits.OnesCount64((uint64(mask)*magic)&0xFF00000000000000) < 6 {
			continue
		}

		ok := true
		for i := 0; i < size; i++ {
			idx := (uint64(occupancies[i]) * magic) >> shift
			if epoch[idx] != attempt {
				epoch[idx] = attempt
				used[idx] = attacks[i]
			} else if used[idx] != attacks[i] {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		*m = Magic{Mask: mask, Magic: magic, Shift: shift, Offset: offset}
		for i := 0; i < size; i++ {
			table[(uint64(occupancies[i])*magic)>>shift] = attacks[i]
		}
		return uint32(size)
	}
}

// bishopMask returns the relevant occupancy mask for bishop at square.
// Excludes edge squares since they don't affect the result.
func bishopMask(sq Square) Bitboard {
	return bishopAttacksSlow(sq, 0) &^ edges
}

// rookMask returns the relevant occupancy mask for rook at square.
// The far end of each ray is dropped; a rook on an edge keeps that edge.
func rookMask(sq Square) Bitboard {
	file := sq.File()
	rank := sq.Rank()

	var mask Bitboard
	for f := 1; f < 7; f++ {
		if f != file {
			mask |= SquareBB(NewSquare(f, rank))
		}
	}
	for r := 1; r < 7; r++ {
		if r != rank {
			mask |= SquareBB(NewSquare(file, r))
		}
	}
	return mask
}

// indexToOccupancy maps the low bits of index onto the set bits of mask.
func indexToOccupancy(index, n int, mask Bitboard) Bitboard {
	var occ Bitboard
	for i := 0; i < n; i++ {
		sq := mask.PopLSB()
		if index&(1<<i) != 0 {
			occ |= SquareBB(sq)
		}
	}
	return occ
}

func bishopAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, occupied, bishopDirections)
}

func rookAttacksSlow(sq Square, occupied Bitboard) Bitboard {
	return slidingAttacks(sq, occupied, rookDirections)
}

// slidingAttacks casts a ray in each direction, stopping on (and including)
// the first occupied square.
func slidingAttacks(sq Square, occupied Bitboard, dirs [4]direction) Bitboard {
	var attacks Bitboard
	file, rank := sq.File(), sq.Rank()

	for _, d := range dirs {
		for f, r := file+d.df, rank+d.dr; f >= 0 && f <= 7 && r >= 0 && r <= 7; f, r = f+d.df, r+d.dr {
			s := NewSquare(f, r)
			attacks |= SquareBB(s)
			if occupied.IsSet(s) {
				break
			}
		}
	}
	return attacks
}

// getBishopAttacks returns bishop attacks using magic bitboards.
func getBishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return bishopTable[m.Offset+uint32(idx)]
}

// getRookAttacks returns rook attacks using magic bitboards.
func getRookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	idx := ((uint64(occupied) & uint64(m.Mask)) * m.Magic) >> m.Shift
	return rookTable[m.Offset+uint32(idx)]
}
