package bot

import (
	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

const (
	// Center control bias per own disk in the middle column
	CENTER_WEIGHT = 6

	// Window scores. Blocking an opponent three is weighted well above
	// building our own three so the search prefers defence.
	WINDOW_FOUR           = 10000
	WINDOW_THREE          = 100
	WINDOW_TWO            = 10
	WINDOW_OPPONENT_THREE = -900
	WINDOW_OPPONENT_TWO   = -20
)

// ScorePosition evaluates a non-terminal board from self's point of view.
func ScorePosition(board *domain.Board, self, opponent domain.PlayerID) int {
	score := 0

	centerCount := 0
	for row := 0; row < domain.Rows; row++ {
		if board[row][domain.Center] == self {
			centerCount++
		}
	}
	score += centerCount * CENTER_WEIGHT

	board.ForEachWindow(func(w domain.Window) bool {
		score += evaluateWindow(w, self, opponent)
		return true
	})

	return score
}

// evaluateWindow scores one 4-cell run. Mixed windows score nothing.
func evaluateWindow(w domain.Window, self, opponent domain.PlayerID) int {
	selfCount, oppCount, emptyCount := 0, 0, 0
	for _, cell := range w {
		switch cell {
		case self:
			selfCount++
		case opponent:
			oppCount++
		default:
			emptyCount++
		}
	}

	score := 0
	switch {
	case selfCount == 4:
		// unreachable under the search contract since wins are terminal nodes
		score += WINDOW_FOUR
	case selfCount == 3 && emptyCount == 1:
		score += WINDOW_THREE
	case selfCount == 2 && emptyCount == 2:
		score += WINDOW_TWO
	}

	switch {
	case oppCount == 3 && emptyCount == 1:
		score += WINDOW_OPPONENT_THREE
	case oppCount == 2 && emptyCount == 2:
		score += WINDOW_OPPONENT_TWO
	}

	return score
}
