package board

import (
	"testing"
)

func TestCheckmate(t *testing.T) {
	// Back rank mate: white Ka1 Ra8, black Kh8 boxed in by g7 and h7.
	pos, err := ParseFEN("R6k/6pp/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	t.Log("Checkmate position:")
	t.Log(pos)

	if !pos.InCheck() {
		t.Error("expected black to be in check")
	}
	if n := len(pos.LegalMoves()); n != 0 {
		t.Errorf("black has %d legal moves, want 0: %v", n, pos.LegalMoves())
	}
	if !pos.IsCheckmate() {
		t.Error("Expected checkmate but got false")
	}
	if pos.IsStalemate() {
		t.Error("checkmate reported as stalemate")
	}
}

func TestNotCheckmate(t *testing.T) {
	// Black king on h8 can take the checking rook on g8.
	pos, err := ParseFEN("6Rk/8/8/8/8/8/8/K7 b - - 0 1")
	if err != nil {
		t.Fatal("Error parsing FEN:", err)
	}

	if !pos.InCheck() {
		t.Error("expected black to be in check")
	}
	if pos.IsCheckmate() {
		t.Error("Expected NOT checkmate but got true")
	}
	if !containsMove(pos.LegalMoves(), NewMove(H8, G8)) {
		t.Errorf("Kxg8 missing from %v", pos.LegalMoves())
	}
}

func TestStalemate(t *testing.T) {
	// Black Ka8 against white Kc7 and Qb6: every flight square is covered.
	pos := MustParseFEN("k7/2K5/1Q6/8/8/8/8/8 b - - 0 1")

	if pos.InCheck() {
		t.Fatal("stalemate position should not be check")
	}
	if !pos.IsStalemate() {
		t.Error("expected stalemate")
	}
	if pos.IsCheckmate() {
		t.Error("stalemate reported as checkmate")
	}
}

func TestInsufficientMaterial(t *testing.T) {
	tests := []struct {
		fen  string
		want bool
	}{
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/4KN2 w - - 0 1", true},
		{"4k3/8/8/8/8/8/8/4KB2 b - - 0 1", true},
		{"4kb2/8/8/8/8/8/8/4KB2 w - - 0 1", false},
		{"4k3/8/8/8/8/8/4P3/4K3 w - - 0 1", false},
		{"4k3/8/8/8/8/8/8/R3K3 w - - 0 1", false},
	}

	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			if got := pos.IsInsufficientMaterial(); got != tc.want {
				t.Errorf("IsInsufficientMaterial() = %v, want %v", got, tc.want)
			}
		})
	}
}
