package bot

import (
	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

// randomMove picks uniformly among the open columns, -1 on a full board.
func (e *Engine) randomMove(board *domain.Board) int {
	validColumns := board.ValidMoves()
	if len(validColumns) == 0 {
		return -1
	}
	return validColumns[e.intn(len(validColumns))]
}
