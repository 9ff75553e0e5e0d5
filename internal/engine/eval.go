// Package engine implements a fixed-depth negamax search with a
// quiescence extension over board positions.
package engine

import (
	"github.com/hailam/negachess/internal/board"
)

// Evaluator scores a position from the side to move's point of view.
// Positive values favor the side to move.
type Evaluator interface {
	Evaluate(pos board.Position) int
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(pos board.Position) int

// Evaluate calls f(pos).
func (f EvaluatorFunc) Evaluate(pos board.Position) int {
	return f(pos)
}

// Evaluation constants
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 20000
)

// Piece values array for quick lookup
var pieceValues = [7]int{PawnValue, KnightValue, BishopValue, RookValue, QueenValue, KingValue, 0}

// Bishop pair bonus (having two bishops)
const (
	bishopPairMgBonus = 25
	bishopPairEgBonus = 50
)

// Rook on open/semi-open file bonuses
const (
	rookOpenFileMg     = 20
	rookOpenFileEg     = 25
	rookSemiOpenFileMg = 10
	rookSemiOpenFileEg = 15
)

// Tempo bonus - small advantage for having the move
const tempoBonus = 10

// Game phase weights; a full set of minor and major pieces sums to maxPhase.
var phaseWeight = [7]int{0, 1, 1, 2, 4, 0, 0}

const maxPhase = 24

// Piece-square tables, written as seen from White with rank 8 on the first
// row. White looks up sq.Mirror(), Black looks up sq directly.

// Pawn PST - encourages central control and advancement
var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

// Knight PST - encourages central positioning
var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

// Bishop PST - encourages central diagonals
var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

// Rook PST - encourages 7th rank and open files
var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

// Queen PST - slight central preference
var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

// King PST (middlegame) - encourages castling
var kingMidgamePST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

// King PST (endgame) - king should be active
var kingEndgamePST = [64]int{
	-50, -40, -30, -20, -20, -30, -40, -50,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-50, -30, -30, -30, -30, -30, -30, -50,
}


// Classical is the default evaluator: material, piece-square tables with a
// tapered king table, bishop pair and rooks on open files.
type Classical struct{}

// Evaluate returns the static evaluation from the side to move's perspective.
func (Classical) Evaluate(pos board.Position) int {
	var mgScore, egScore int
	var phase int

	for _, c := range [2]board.Color{board.White, board.Black} {
		sign := 1
		if c == board.Black {
			sign = -1
		}

		for _, pt := range board.PieceTypes {
			for bb := pos.Pieces(c, pt); bb != 0; {
				sq := bb.PopLSB()
				pstSq := sq
				if c == board.White {
					pstSq = sq.Mirror()
				}

				mg, eg := pieceScore(pt, pstSq)
				mgScore += sign * mg
				egScore += sign * eg
				phase += phaseWeight[pt]
			}
		}
	}

	bpMg, bpEg := evaluateBishopPair(pos)
	mgScore += bpMg
	egScore += bpEg

	rfMg, rfEg := evaluateRooksOnFiles(pos)
	mgScore += rfMg
	egScore += rfEg

	if phase > maxPhase {
		phase = maxPhase
	}
	score := (mgScore*phase + egScore*(maxPhase-phase)) / maxPhase

	if pos.SideToMove() == board.Black {
		score = -score
	}
	return score + tempoBonus
}

// pieceScore returns the middlegame and endgame value of one piece. Each
// piece type is scored by exactly one branch.
func pieceScore(pt board.PieceType, pstSq board.Square) (mg, eg int) {
	v := pieceValues[pt]
	switch pt {
	case board.Pawn:
		return v + pawnPST[pstSq], v + pawnPST[pstSq]
	case board.Knight:
		return v + knightPST[pstSq], v + knightPST[pstSq]
	case board.Bishop:
		return v + bishopPST[pstSq], v + bishopPST[pstSq]
	case board.Rook:
		return v + rookPST[pstSq], v + rookPST[pstSq]
	case board.Queen:
		return v + queenPST[pstSq], v + queenPST[pstSq]
	case board.King:
		return kingMidgamePST[pstSq], kingEndgamePST[pstSq]
	}
	return 0, 0
}

// Material returns the material balance from White's perspective, kings
// excluded.
func Material(pos board.Position) int {
	score := 0
	for _, pt := range [5]board.PieceType{board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen} {
		score += pos.Pieces(board.White, pt).PopCount() * pieceValues[pt]
		score -= pos.Pieces(board.Black, pt).PopCount() * pieceValues[pt]
	}
	return score
}

// evaluateBishopPair returns bonus for having the bishop pair.
func evaluateBishopPair(pos board.Position) (mgBonus, egBonus int) {
	for _, color := range [2]board.Color{board.White, board.Black} {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		if pos.Pieces(color, board.Bishop).PopCount() >= 2 {
			mgBonus += sign * bishopPairMgBonus
			egBonus += sign * bishopPairEgBonus
		}
	}
	return mgBonus, egBonus
}

// evaluateRooksOnFiles returns bonus for rooks on open/semi-open files.
func evaluateRooksOnFiles(pos board.Position) (mgBonus, egBonus int) {
	for _, color := range [2]board.Color{board.White, board.Black} {
		sign := 1
		if color == board.Black {
			sign = -1
		}

		ownPawns := pos.Pieces(color, board.Pawn)
		enemyPawns := pos.Pieces(color.Other(), board.Pawn)

		for rooks := pos.Pieces(color, board.Rook); rooks != 0; {
			fileMask := board.FileMask[rooks.PopLSB().File()]
			if ownPawns&fileMask != 0 {
				continue
			}
			if enemyPawns&fileMask == 0 {
				mgBonus += sign * rookOpenFileMg
				egBonus += sign * rookOpenFileEg
			} else {
				mgBonus += sign * rookSemiOpenFileMg
				egBonus += sign * rookSemiOpenFileEg
			}
		}
	}
	return mgBonus, egBonus
}
