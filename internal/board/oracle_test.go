package board

import (
	"sort"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// Reference positions checked against independent move generators.
var oracleFENs = []string{
	StartFEN,
	"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
	"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
	"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	"r4rk1/1pp1qppp/p1np1n2/2b1p1B1/2B1P1b1/P1NP1N2/1PP1QPPP/R4RK1 w - - 0 10",
}

func TestLegalMovesMatchDragontooth(t *testing.T) {
	for _, fen := range oracleFENs {
		t.Run(fen, func(t *testing.T) {
			pos := MustParseFEN(fen)
			var got []string
			for _, m := range pos.LegalMoves() {
				got = append(got, m.String())
			}

			ref := dragontoothmg.ParseFen(fen)
			var want []string
			for _, m := range ref.GenerateLegalMoves() {
				want = append(want, m.String())
			}

			sort.Strings(got)
			sort.Strings(want)
			if len(got) != len(want) {
				t.Fatalf("got %d moves %v\nwant %d moves %v", len(got), got, len(want), want)
			}
			for i := range got {
				if got[i] != want[i] {
					t.Fatalf("move sets differ at %d: got %v want %v", i, got, want)
				}
			}
		})
	}
}

func TestPerftMatchesDragontooth(t *testing.T) {
	for _, fen := range oracleFENs {
		t.Run(fen, func(t *testing.T) {
			ref := dragontoothmg.ParseFen(fen)
			want := dragonPerft(&ref, 3)
			if got := Perft(MustParseFEN(fen), 3); got != want {
				t.Errorf("Perft(3) = %d, dragontoothmg says %d", got, want)
			}
		})
	}
}

func dragonPerft(b *dragontoothmg.Board, depth int) uint64 {
	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		undo := b.Apply(m)
		nodes += dragonPerft(b, depth-1)
		undo()
	}
	return nodes
}

func TestSANMatchesNotnil(t *testing.T) {
	fens := append([]string{
		"r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4",
		"4k3/8/8/8/8/Q7/8/Q1Q1K3 w - - 0 1",
		"1r2k3/P7/8/8/8/8/8/4K3 w - - 0 1",
	}, oracleFENs...)

	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			opt, err := chess.FEN(fen)
			if err != nil {
				t.Fatalf("notnil FEN: %v", err)
			}
			game := chess.NewGame(opt)
			ref := game.Position()

			want := make(map[string]string)
			for _, m := range game.ValidMoves() {
				want[chess.UCINotation{}.Encode(ref, m)] = chess.AlgebraicNotation{}.Encode(ref, m)
			}

			pos := MustParseFEN(fen)
			moves := pos.LegalMoves()
			if len(moves) != len(want) {
				t.Fatalf("%d legal moves, notnil has %d", len(moves), len(want))
			}
			for _, m := range moves {
				uci := m.String()
				if got := pos.SAN(m); got != want[uci] {
					t.Errorf("SAN(%s) = %q, notnil says %q", uci, got, want[uci])
				}
			}
		})
	}
}
