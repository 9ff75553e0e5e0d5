package board

import (
	"math/rand"
	"testing"
)

func TestSAN(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		move string
		want string
	}{
		{"pawn push", StartFEN, "e2e4", "e4"},
		{"knight", StartFEN, "g1f3", "Nf3"},
		{"pawn capture", "rnbqkbnr/ppp1pppp/8/3p4/4P3/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 2", "e4d5", "exd5"},
		{"en passant", "rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3", "e5f6", "exf6"},
		{"file disambiguation", "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "b1d2", "Nbd2"},
		{"rank disambiguation", "4k3/8/8/6N1/8/8/8/4K1N1 w - - 0 1", "g1f3", "N1f3"},
		{"square disambiguation", "4k3/8/8/8/8/Q7/8/Q1Q1K3 w - - 0 1", "a1b2", "Qa1b2"},
		{"pinned twin ignored", "4k3/8/8/8/8/8/8/1N2KN1r w - - 0 1", "b1d2", "Nd2"},
		{"promotion", "1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7a8q", "a8=Q"},
		{"underpromotion capture check", "1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7b8q", "axb8=Q+"},
		{"knight underpromotion", "1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1", "a7b8n", "axb8=N"},
		{"king side castle", "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", "O-O"},
		{"queen side castle", "r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", "O-O-O"},
		{"check", "4k3/8/8/8/8/8/8/R3K3 w Q - 0 1", "a1a8", "Ra8+"},
		{"mate", "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4", "h5f7", "Qxf7#"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := MustParseFEN(tc.fen)
			m, err := ParseMove(tc.move, pos)
			if err != nil {
				t.Fatalf("ParseMove(%s): %v", tc.move, err)
			}
			before := pos.FEN()
			if got := pos.SAN(m); got != tc.want {
				t.Errorf("SAN(%s) = %q, want %q", tc.move, got, tc.want)
			}
			if pos.FEN() != before {
				t.Error("SAN modified the position")
			}

			back, err := ParseSAN(tc.want, pos)
			if err != nil {
				t.Fatalf("ParseSAN(%q): %v", tc.want, err)
			}
			if back != m {
				t.Errorf("ParseSAN(%q) = %v, want %v", tc.want, back, m)
			}
		})
	}
}

func TestParseSANErrors(t *testing.T) {
	pos := MustParseFEN(StartFEN)
	for _, s := range []string{"", "e5", "Ke2", "Zf3", "O-O", "e8=K", "Nf", "Nxf3"} {
		if m, err := ParseSAN(s, pos); err == nil {
			t.Errorf("ParseSAN(%q) = %v, want error", s, m)
		}
	}
}

func TestSANRoundTripRandomGames(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for game := 0; game < 10; game++ {
		pos := MustParseFEN(StartFEN)
		for ply := 0; ply < 60; ply++ {
			moves := pos.LegalMoves()
			if len(moves) == 0 {
				break
			}
			for _, m := range moves {
				san := pos.SAN(m)
				back, err := ParseSAN(san, pos)
				if err != nil || back != m {
					t.Fatalf("%s: SAN %q of %v parsed back as %v (%v)", pos.FEN(), san, m, back, err)
				}
			}
			pos = pos.ApplyMove(moves[rng.Intn(len(moves))])
		}
	}
}

func TestMovesToSAN(t *testing.T) {
	pos := MustParseFEN(StartFEN)
	var line []Move
	p := pos
	for _, s := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1b5"} {
		m, err := ParseMove(s, p)
		if err != nil {
			t.Fatalf("ParseMove(%s): %v", s, err)
		}
		line = append(line, m)
		p = p.ApplyMove(m)
	}

	got := MovesToSAN(pos, line)
	want := []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("move %d: got %q want %q", i, got[i], want[i])
		}
	}
}
