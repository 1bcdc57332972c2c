package bot

import (
	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

// Search order around the center column.
var centerOffsets = [...]int{0, 1, -1, 2, -2, 3, -3}

// immediateMove takes a winning column for self, or else blocks a column
// where the opponent would win if it were their turn.
func immediateMove(board *domain.Board, self, opponent domain.PlayerID) (Decision, bool) {
	if col := findWinningMove(board, self); col >= 0 {
		return Decision{Column: col, Reason: ReasonWin}, true
	}
	if col := findWinningMove(board, opponent); col >= 0 {
		return Decision{Column: col, Reason: ReasonBlock}, true
	}
	return Decision{}, false
}

func findWinningMove(board *domain.Board, player domain.PlayerID) int {
	for _, col := range board.ValidMoves() {
		testBoard, err := board.SimulateMove(col, player)
		if err != nil {
			continue
		}
		if testBoard.HasLine(player) {
			return col
		}
	}
	return -1
}

// centerPreference returns the open column nearest to the center.
func centerPreference(board *domain.Board) (Decision, bool) {
	if board.IsValidMove(domain.Center) {
		return Decision{Column: domain.Center, Reason: ReasonCenter}, true
	}
	for _, off := range centerOffsets {
		col := domain.Center + off
		if board.IsValidMove(col) {
			return Decision{Column: col, Reason: ReasonStrategic}, true
		}
	}
	return Decision{}, false
}

// fallbackMove is the degraded-mode policy: center chain, then random.
func (e *Engine) fallbackMove(board *domain.Board) Decision {
	if d, ok := centerPreference(board); ok {
		return d
	}
	return Decision{Column: e.randomMove(board), Reason: ReasonRandomFallback}
}

func (e *Engine) calculateMediumMove(board *domain.Board, self, opponent domain.PlayerID) Decision {
	if d, ok := immediateMove(board, self, opponent); ok {
		return d
	}
	return e.fallbackMove(board)
}
