package bot

import (
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

const (
	MINIMAX_DEPTH = 6
	MINIMAX_WIN   = 100000000
	MINIMAX_LOSS  = -100000000
	MINIMAX_DRAW  = 0

	alphaFloor = math.MinInt32 + 1
	betaCeil   = math.MaxInt32 - 1
)

func (e *Engine) calculateHardMove(board *domain.Board, self, opponent domain.PlayerID) Decision {
	if d, ok := immediateMove(board, self, opponent); ok {
		return d
	}

	var col, score int
	if e.workers > 1 {
		col, score = e.searchParallel(*board, self, opponent)
	} else {
		score, col = minimax(*board, e.depth, alphaFloor, betaCeil, true, self, opponent)
	}

	if !board.IsValidMove(col) {
		d := e.fallbackMove(board)
		d.Score = score
		return d
	}
	return Decision{Column: col, Reason: ReasonSearch, Score: score}
}

// isTerminal reports whether either side has a line or the board is full.
func isTerminal(board *domain.Board, self, opponent domain.PlayerID) bool {
	return board.HasLine(self) || board.HasLine(opponent) || board.IsFull()
}

// minimax returns the score of board and the column that reaches it. The column
// is -1 for terminal and leaf nodes. Each branch gets its own copy of the board.
func minimax(board domain.Board, depth, alpha, beta int, maximizing bool, self, opponent domain.PlayerID) (int, int) {
	if isTerminal(&board, self, opponent) {
		switch {
		case board.HasLine(self):
			return MINIMAX_WIN, -1
		case board.HasLine(opponent):
			return MINIMAX_LOSS, -1
		default:
			return MINIMAX_DRAW, -1
		}
	}
	if depth == 0 {
		return ScorePosition(&board, self, opponent), -1
	}

	validColumns := board.ValidMoves()
	column := validColumns[0]

	if maximizing {
		value := math.MinInt32
		for _, col := range validColumns {
			child := board
			if _, err := child.Drop(col, self); err != nil {
				continue
			}
			score, _ := minimax(child, depth-1, alpha, beta, false, self, opponent)
			if score > value {
				value = score
				column = col
			}
			alpha = max(alpha, value)
			if alpha >= beta {
				break // beta cutoff
			}
		}
		return value, column
	}

	value := math.MaxInt32
	for _, col := range validColumns {
		child := board
		if _, err := child.Drop(col, opponent); err != nil {
			continue
		}
		score, _ := minimax(child, depth-1, alpha, beta, true, self, opponent)
		if score < value {
			value = score
			column = col
		}
		beta = min(beta, value)
		if alpha >= beta {
			break // alpha cutoff
		}
	}
	return value, column
}

// searchParallel scores every root move with a full window on its own worker
// and keeps the leftmost best column, matching the sequential result.
func (e *Engine) searchParallel(board domain.Board, self, opponent domain.PlayerID) (int, int) {
	if isTerminal(&board, self, opponent) {
		return -1, 0
	}

	validColumns := board.ValidMoves()
	scores := make([]int, len(validColumns))

	var g errgroup.Group
	g.SetLimit(e.workers)
	for i, col := range validColumns {
		g.Go(func() error {
			child := board
			if _, err := child.Drop(col, self); err != nil {
				scores[i] = math.MinInt32
				return nil
			}
			scores[i], _ = minimax(child, e.depth-1, alphaFloor, betaCeil, false, self, opponent)
			return nil
		})
	}
	_ = g.Wait()

	bestCol, bestScore := validColumns[0], math.MinInt32
	for i, col := range validColumns {
		if scores[i] > bestScore {
			bestScore = scores[i]
			bestCol = col
		}
	}
	return bestCol, bestScore
}
