package board

import (
	"math/rand"
	"testing"

	"github.com/dylhunn/dragontoothmg"
)

func TestSlidingAttacksMatchRayCasting(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for sq := A1; sq <= H8; sq++ {
		for i := 0; i < 200; i++ {
			occ := Bitboard(rng.Uint64() & rng.Uint64())
			if got, want := RookAttacks(sq, occ), rookAttacksSlow(sq, occ); got != want {
				t.Fatalf("RookAttacks(%s, %#x) = %#x, want %#x", sq, uint64(occ), uint64(got), uint64(want))
			}
			if got, want := BishopAttacks(sq, occ), bishopAttacksSlow(sq, occ); got != want {
				t.Fatalf("BishopAttacks(%s, %#x) = %#x, want %#x", sq, uint64(occ), uint64(got), uint64(want))
			}
			if got, want := QueenAttacks(sq, occ), rookAttacksSlow(sq, occ)|bishopAttacksSlow(sq, occ); got != want {
				t.Fatalf("QueenAttacks(%s, %#x) = %#x, want %#x", sq, uint64(occ), uint64(got), uint64(want))
			}
		}
	}
}

func TestSlidingAttacksEveryRelevantOccupancy(t *testing.T) {
	for _, sq := range []Square{A1, H8, D4, E5, B7, G2} {
		mask := rookMask(sq)
		n := mask.PopCount()
		for i := 0; i < 1<<n; i++ {
			occ := indexToOccupancy(i, n, mask)
			if got, want := RookAttacks(sq, occ), rookAttacksSlow(sq, occ); got != want {
				t.Fatalf("RookAttacks(%s) wrong for occupancy %#x", sq, uint64(occ))
			}
		}

		mask = bishopMask(sq)
		n = mask.PopCount()
		for i := 0; i < 1<<n; i++ {
			occ := indexToOccupancy(i, n, mask)
			if got, want := BishopAttacks(sq, occ), bishopAttacksSlow(sq, occ); got != want {
				t.Fatalf("BishopAttacks(%s) wrong for occupancy %#x", sq, uint64(occ))
			}
		}
	}
}

func TestSlidingAttacksMatchDragontooth(t *testing.T) {
	rng := rand.New(rand.NewSource(11))

	for sq := A1; sq <= H8; sq++ {
		for i := 0; i < 50; i++ {
			occ := rng.Uint64() & rng.Uint64() &^ (1 << sq)
			if got, want := uint64(RookAttacks(sq, Bitboard(occ))), dragontoothmg.CalculateRookMoveBitboard(uint8(sq), occ); got != want {
				t.Fatalf("RookAttacks(%s, %#x) = %#x, dragontoothmg says %#x", sq, occ, got, want)
			}
			if got, want := uint64(BishopAttacks(sq, Bitboard(occ))), dragontoothmg.CalculateBishopMoveBitboard(uint8(sq), occ); got != want {
				t.Fatalf("BishopAttacks(%s, %#x) = %#x, dragontoothmg says %#x", sq, occ, got, want)
			}
		}
	}
}

func TestLeaperAttacks(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want []Square
	}{
		{"knight a1", KnightAttacks(A1), []Square{C2, B3}},
		{"knight d4", KnightAttacks(D4), []Square{C2, E2, B3, F3, B5, F5, C6, E6}},
		{"king h8", KingAttacks(H8), []Square{G7, H7, G8}},
		{"white pawn a2", PawnAttacks(A2, White), []Square{B3}},
		{"black pawn e5", PawnAttacks(E5, Black), []Square{D4, F4}},
		{"white push e2", PawnPushes(E2, White), []Square{E3}},
		{"black push e7", PawnPushes(E7, Black), []Square{E6}},
		{"white double e2", PawnDoublePushes(E2, White), []Square{E4}},
		{"black double d7", PawnDoublePushes(D7, Black), []Square{D5}},
		{"white double e3", PawnDoublePushes(E3, White), nil},
		{"black double d2", PawnDoublePushes(D2, Black), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var want Bitboard
			for _, sq := range tc.want {
				want |= SquareBB(sq)
			}
			if tc.got != want {
				t.Errorf("got %v want %v", tc.got.Squares(), want.Squares())
			}
		})
	}
}

func TestLineTables(t *testing.T) {
	tests := []struct {
		name string
		got  Bitboard
		want []Square
	}{
		{"between a1 a4", Between(A1, A4), []Square{A2, A3}},
		{"between a4 a1", Between(A4, A1), []Square{A2, A3}},
		{"between b2 e5", Between(B2, E5), []Square{C3, D4}},
		{"between adjacent", Between(E4, E5), nil},
		{"between unaligned", Between(A1, B3), nil},
		{"orthogonal c3 f3", OrthogonalLine(C3, F3), []Square{C3, D3, E3, F3}},
		{"orthogonal on diagonal", OrthogonalLine(A1, C3), nil},
		{"diagonal h1 e4", DiagonalLine(H1, E4), []Square{H1, G2, F3, E4}},
		{"diagonal on file", DiagonalLine(A1, A8), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var want Bitboard
			for _, sq := range tc.want {
				want |= SquareBB(sq)
			}
			if tc.got != want {
				t.Errorf("got %v want %v", tc.got.Squares(), want.Squares())
			}
		})
	}
}

func TestBitboardOps(t *testing.T) {
	bb := SquareBB(A1) | SquareBB(E4) | SquareBB(H8)
	if bb.PopCount() != 3 {
		t.Errorf("PopCount = %d, want 3", bb.PopCount())
	}
	if bb.LSB() != A1 {
		t.Errorf("LSB = %s, want a1", bb.LSB())
	}
	if sq := bb.PopLSB(); sq != A1 || bb.PopCount() != 2 {
		t.Errorf("PopLSB = %s leaving %d bits", sq, bb.PopCount())
	}
	if Empty.LSB() != NoSquare {
		t.Errorf("Empty.LSB = %d, want NoSquare", Empty.LSB())
	}
	if got := SquareBB(H4).East(); got != Empty {
		t.Errorf("East from h-file wrapped to %v", got.Squares())
	}
	if got := SquareBB(A4).West(); got != Empty {
		t.Errorf("West from a-file wrapped to %v", got.Squares())
	}
}

func TestParseSquare(t *testing.T) {
	for sq := A1; sq <= H8; sq++ {
		got, err := ParseSquare(sq.String())
		if err != nil || got != sq {
			t.Errorf("ParseSquare(%q) = %v, %v", sq.String(), got, err)
		}
	}
	for _, s := range []string{"", "e", "i1", "a9", "a0", "e44"} {
		if _, err := ParseSquare(s); err == nil {
			t.Errorf("ParseSquare(%q) succeeded, want error", s)
		}
	}
}
