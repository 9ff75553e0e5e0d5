package board

import (
	"testing"

	"github.com/pkg/errors"
)

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"4k3/8/8/8/8/8/8/4K3 b - - 49 120",
	}

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			pos, err := ParseFEN(fen)
			if err != nil {
				t.Fatalf("ParseFEN: %v", err)
			}
			if got := pos.FEN(); got != fen {
				t.Errorf("FEN() = %q, want %q", got, fen)
			}
		})
	}
}

func TestParseFENFields(t *testing.T) {
	pos, err := ParseFEN("rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w Kq c6 3 17")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}

	if pos.SideToMove() != White {
		t.Errorf("side = %v", pos.SideToMove())
	}
	if pos.Castling() != WhiteKingSideCastle|BlackQueenSideCastle {
		t.Errorf("castling = %v", pos.Castling())
	}
	if pos.EnPassant() != C6 {
		t.Errorf("en passant = %v", pos.EnPassant())
	}
	if pos.HalfMoveClock() != 3 || pos.FullMoveNumber() != 17 {
		t.Errorf("clocks = %d %d", pos.HalfMoveClock(), pos.FullMoveNumber())
	}
	if pos.Occupied().PopCount() != 32 {
		t.Errorf("occupied = %d squares", pos.Occupied().PopCount())
	}
}

func TestParseFENLenient(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		half, full int
	}{
		{"four fields", "4k3/8/8/8/8/8/8/4K3 w - -", 0, 1},
		{"five fields", "4k3/8/8/8/8/8/8/4K3 w - - 7", 7, 1},
		{"six fields", "4k3/8/8/8/8/8/8/4K3 w - - 7 30", 7, 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFENLenient(tc.fen)
			if err != nil {
				t.Fatalf("ParseFENLenient: %v", err)
			}
			if pos.HalfMoveClock() != tc.half || pos.FullMoveNumber() != tc.full {
				t.Errorf("clocks = %d %d, want %d %d", pos.HalfMoveClock(), pos.FullMoveNumber(), tc.half, tc.full)
			}
		})
	}

	for _, fen := range []string{"4k3/8/8/8/8/8/8/4K3 w -", "4k3/8/8/8/8/8/8/4K3 w - - 0 1 extra"} {
		if _, err := ParseFENLenient(fen); !errors.Is(err, ErrMalformedFEN) {
			t.Errorf("ParseFENLenient(%q) error = %v", fen, err)
		}
	}
}

func TestParseFENMalformed(t *testing.T) {
	tests := []struct {
		name string
		fen  string
	}{
		{"short rank", "4k3/8/8/8/8/8/7/4K3 w - - 0 1"},
		{"long rank", "4k3/8/8/8/8/8/9/4K3 w - - 0 1"},
		{"overfull rank", "4k3/8/8/8/8/8/8p/4K3 w - - 0 1"},
		{"seven ranks", "4k3/8/8/8/8/8/4K3 w - - 0 1"},
		{"nine ranks", "4k3/8/8/8/8/8/8/8/4K3 w - - 0 1"},
		{"bad piece", "4k3/8/8/8/8/8/8/4K2X w - - 0 1"},
		{"bad side", "4k3/8/8/8/8/8/8/4K3 x - - 0 1"},
		{"bad castling", "4k3/8/8/8/8/8/8/4K3 w X - 0 1"},
		{"repeated castling", "r3k2r/8/8/8/8/8/8/R3K2R w KK - 0 1"},
		{"castling without rook", "4k3/8/8/8/8/8/8/4K3 w K - 0 1"},
		{"bad en passant", "4k3/8/8/8/8/8/8/4K3 w - e9 0 1"},
		{"en passant wrong rank", "4k3/8/8/8/4P3/8/8/4K3 w - e3 0 1"},
		{"bad halfmove", "4k3/8/8/8/8/8/8/4K3 w - - x 1"},
		{"bad fullmove", "4k3/8/8/8/8/8/8/4K3 w - - 0 y"},
		{"too few fields", "4k3/8/8/8/8/8/8/4K3 w -"},
		{"missing clocks", "4k3/8/8/8/8/8/8/4K3 w - -"},
		{"missing fullmove", "4k3/8/8/8/8/8/8/4K3 w - - 0"},
		{"too many fields", "4k3/8/8/8/8/8/8/4K3 w - - 0 1 extra"},
		{"empty", ""},
		{"no kings", "8/8/8/8/8/8/8/8 w - - 0 1"},
		{"opponent in check", "4k3/8/8/8/8/8/8/4R1K1 w - - 0 1"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos, err := ParseFEN(tc.fen)
			if err == nil {
				t.Fatalf("ParseFEN(%q) succeeded: %s", tc.fen, pos.FEN())
			}
			if !errors.Is(err, ErrMalformedFEN) {
				t.Errorf("error %v does not wrap ErrMalformedFEN", err)
			}
			if !pos.Equal(Position{}) {
				t.Error("partial position returned with error")
			}
		})
	}
}
