package engine

import (
	"github.com/hailam/negachess/internal/board"
)

// Search constants
const (
	Infinity  = 30000
	MateScore = 29000
	MaxPly    = 128
)

// deltaMargin is the largest material swing a single capture can produce.
const deltaMargin = QueenValue

// RootInfo describes one searched root move.
type RootInfo struct {
	Move  board.Move
	Score int
	Nodes uint64
}

// Result is the outcome of a fixed-depth search.
type Result struct {
	Move   board.Move
	Score  int
	Nodes  uint64
	QNodes uint64
}

// Searcher performs a fixed-depth negamax search with alpha-beta pruning
// and a quiescence extension. A Searcher is not safe for concurrent use;
// every BestMove call gets its own counters.
type Searcher struct {
	eval Evaluator

	// OnRootMove, when set, is called after each legal root move is searched.
	OnRootMove func(RootInfo)
}

// NewSearcher creates a searcher scoring leaves with eval. A nil eval
// selects the classical evaluator.
func NewSearcher(eval Evaluator) *Searcher {
	if eval == nil {
		eval = Classical{}
	}
	return &Searcher{eval: eval}
}

// searchContext carries the per-search counters.
type searchContext struct {
	eval   Evaluator
	nodes  uint64
	qnodes uint64
}

// BestMove searches every legal root move to the given depth and returns the
// one with the highest score. The move is board.NoMove when the side to move
// has no legal moves or only the two kings are left. Other drawn material
// still yields a legal move, scored 0 inside the tree.
func (s *Searcher) BestMove(pos board.Position, depth int) Result {
	if depth < 0 {
		depth = 0
	}
	if depth > MaxPly-1 {
		depth = MaxPly - 1
	}

	ctx := &searchContext{eval: s.eval}
	res := Result{Move: board.NoMove, Score: -Infinity}

	if pos.Occupied().PopCount() == 2 {
		res.Score = 0
		return res
	}

	pos = pos.Generate(board.GenPseudoLegal)
	for i := 0; i < pos.MoveCount(); i++ {
		m := pos.MoveAt(i)
		child := pos.ApplyMove(m)
		if child.LeftKingInCheck() {
			continue
		}

		before := ctx.nodes + ctx.qnodes
		score := -ctx.negamax(child, depth, 1, -Infinity, Infinity)

		if s.OnRootMove != nil {
			s.OnRootMove(RootInfo{Move: m, Score: score, Nodes: ctx.nodes + ctx.qnodes - before})
		}
		if res.Move == board.NoMove || score > res.Score {
			res.Move = m
			res.Score = score
		}
	}

	if res.Move == board.NoMove {
		res.Score = 0
		if pos.InCheck() {
			res.Score = -MateScore
		}
	}
	res.Nodes = ctx.nodes
	res.QNodes = ctx.qnodes
	return res
}

// negamax returns the fail-hard score of pos from the side to move's view,
// bounded to [alpha, beta].
func (c *searchContext) negamax(pos board.Position, depth, ply, alpha, beta int) int {
	if depth <= 0 || ply >= MaxPly {
		return c.quiesce(pos, alpha, beta)
	}
	c.nodes++

	if pos.IsInsufficientMaterial() {
		return clamp(0, alpha, beta)
	}

	pos = pos.Generate(board.GenPseudoLegal)
	legal := 0
	for i := 0; i < pos.MoveCount(); i++ {
		child := pos.ApplyMove(pos.MoveAt(i))
		if child.LeftKingInCheck() {
			continue
		}
		legal++

		score := -c.negamax(child, depth-1, ply+1, -beta, -alpha)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	if legal == 0 {
		if pos.InCheck() {
			return clamp(-MateScore+ply, alpha, beta)
		}
		return clamp(0, alpha, beta)
	}
	return alpha
}

// quiesce searches captures, en passant and promotions until the position
// is quiet, using the static evaluation as a lower bound.
func (c *searchContext) quiesce(pos board.Position, alpha, beta int) int {
	c.qnodes++

	standPat := c.eval.Evaluate(pos)
	if standPat >= beta {
		return beta
	}
	if standPat+deltaMargin < alpha {
		return alpha
	}
	if standPat > alpha {
		alpha = standPat
	}

	for _, m := range pos.TacticalMoves() {
		child := pos.ApplyMove(m)
		if child.LeftKingInCheck() {
			continue
		}

		score := -c.quiesce(child, -beta, -alpha)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func clamp(score, alpha, beta int) int {
	if score <= alpha {
		return alpha
	}
	if score >= beta {
		return beta
	}
	return score
}
