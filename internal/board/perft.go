package board

// Perft counts the leaf nodes reachable from p through legal moves in
// exactly depth plies.
func Perft(p Position, depth int) uint64 {
	if depth <= 0 {
		return 1
	}

	p = p.Generate(GenLegal)
	if depth == 1 {
		return uint64(p.MoveCount())
	}

	var nodes uint64
	for i := 0; i < p.MoveCount(); i++ {
		nodes += Perft(p.ApplyMove(p.MoveAt(i)), depth-1)
	}
	return nodes
}

// DivideEntry is the perft count below one root move.
type DivideEntry struct {
	Move  Move
	Nodes uint64
}

// Divide runs Perft below every legal root move, in generation order.
func Divide(p Position, depth int) []DivideEntry {
	if depth <= 0 {
		return nil
	}

	p = p.Generate(GenLegal)
	entries := make([]DivideEntry, 0, p.MoveCount())
	for i := 0; i < p.MoveCount(); i++ {
		m := p.MoveAt(i)
		entries = append(entries, DivideEntry{Move: m, Nodes: Perft(p.ApplyMove(m), depth-1)})
	}
	return entries
}
