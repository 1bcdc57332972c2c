// Package domaintest holds board fixtures shared by tests of several packages.
package domaintest

import (
	"testing"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

// drawColumns lists the moves of a full game that ends without a line,
// alternating Player1 and Player2 starting with Player1.
var drawColumns = []int{
	0, 1, 0, 1, 0, 1,
	2, 3, 2, 3, 2, 3,
	1, 0, 1, 0, 1, 0,
	3, 2, 3, 2, 3, 2,
	4, 5, 4, 5, 4, 5,
	6, 4, 5, 4, 5, 4,
	5, 6, 6, 6, 6, 6,
}

// DrawSequence returns a legal column order that fills the board without a winner.
func DrawSequence() []int {
	out := make([]int, len(drawColumns))
	copy(out, drawColumns)
	return out
}

// DrawBoard is the position reached after DrawSequence.
func DrawBoard(tb testing.TB) domain.Board {
	tb.Helper()
	b := domain.NewBoard()
	p := domain.Player1
	for i, c := range drawColumns {
		if _, err := b.Drop(c, p); err != nil {
			tb.Fatalf("draw fixture move %d (column %d): %v", i, c, err)
		}
		p = p.Opponent()
	}
	return b
}
