package engine

import (
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/hailam/negachess/internal/board"
)

// SearchInfo reports one searched root move.
type SearchInfo struct {
	Depth int
	Move  board.Move
	Score int
	Nodes uint64
	Time  time.Duration
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy   Difficulty = iota // 1 ply plus quiescence
	Medium                   // 2 ply
	Hard                     // 3 ply
)

// DifficultyDepth maps difficulty to a fixed search depth.
var DifficultyDepth = map[Difficulty]int{
	Easy:   1,
	Medium: 2,
	Hard:   3,
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	}
	return "difficulty(" + strconv.Itoa(int(d)) + ")"
}

// ParseDifficulty parses "easy", "medium" or "hard", case-insensitively.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	}
	return Medium, errors.Errorf("unknown difficulty %q", s)
}

// Engine is the chess AI engine.
type Engine struct {
	searcher   *Searcher
	eval       Evaluator
	difficulty Difficulty
	depth      int

	// Callbacks
	OnInfo func(SearchInfo)
}

// NewEngine creates an engine scoring positions with eval, or with the
// classical evaluator when eval is nil.
func NewEngine(eval Evaluator) *Engine {
	if eval == nil {
		eval = Classical{}
	}
	return &Engine{
		searcher:   NewSearcher(eval),
		eval:       eval,
		difficulty: Medium,
	}
}

// SetDifficulty sets the engine difficulty.
func (e *Engine) SetDifficulty(d Difficulty) {
	e.difficulty = d
}

// Difficulty returns the current difficulty.
func (e *Engine) Difficulty() Difficulty {
	return e.difficulty
}

// SetDepth overrides the difficulty depth. Zero restores the difficulty
// preset.
func (e *Engine) SetDepth(depth int) {
	if depth < 0 {
		depth = 0
	}
	e.depth = depth
}

// Depth returns the depth the next Search will use.
func (e *Engine) Depth() int {
	if e.depth > 0 {
		return e.depth
	}
	if d, ok := DifficultyDepth[e.difficulty]; ok {
		return d
	}
	return DifficultyDepth[Medium]
}

// Search finds the best move for the given position.
func (e *Engine) Search(pos board.Position) board.Move {
	return e.SearchDepth(pos, e.Depth()).Move
}

// SearchDepth runs a fixed-depth search, calling OnInfo after every root move.
func (e *Engine) SearchDepth(pos board.Position, depth int) Result {
	start := time.Now()
	var nodes uint64

	e.searcher.OnRootMove = nil
	if e.OnInfo != nil {
		e.searcher.OnRootMove = func(ri RootInfo) {
			nodes += ri.Nodes
			e.OnInfo(SearchInfo{
				Depth: depth,
				Move:  ri.Move,
				Score: ri.Score,
				Nodes: nodes,
				Time:  time.Since(start),
			})
		}
	}
	return e.searcher.BestMove(pos, depth)
}

// Perft counts leaf nodes (for debugging move generation).
func (e *Engine) Perft(pos board.Position, depth int) uint64 {
	return board.Perft(pos, depth)
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos board.Position) int {
	return e.eval.Evaluate(pos)
}

// ScoreToString converts a score to a human-readable string.
func ScoreToString(score int) string {
	if score > MateScore-MaxPly {
		return "Mate in " + strconv.Itoa((MateScore-score+1)/2)
	}
	if score < -MateScore+MaxPly {
		return "Mated in " + strconv.Itoa((MateScore+score+1)/2)
	}

	sign := ""
	if score < 0 {
		sign = "-"
		score = -score
	}
	return sign + strconv.Itoa(score/100) + "." + strconv.Itoa(score%100/10) + strconv.Itoa(score%10)
}
