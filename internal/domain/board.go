package domain

// Board is the 6x7 grid. Row 0 is the top row and row 5 the bottom.
// It is a value type: assigning a Board copies every cell.
type Board [Rows][Columns]PlayerID

func NewBoard() Board {
	return Board{}
}

func (b *Board) IsValidMove(column int) bool {
	if column < 0 || column >= Columns {
		return false
	}
	return b[0][column] == Empty
}

// Drop fills the lowest empty cell of column with player and returns its row.
// The board is untouched when an error is returned.
func (b *Board) Drop(column int, player PlayerID) (int, error) {
	if column < 0 || column >= Columns {
		return -1, ErrInvalidMove
	}
	// shifting the disk from the bottom up till it finds a free cell
	for row := Rows - 1; row >= 0; row-- {
		if b[row][column] == Empty {
			b[row][column] = player
			return row, nil
		}
	}
	return -1, ErrColumnFull
}

// IsFull only looks at the top row, which is enough because of gravity.
func (b *Board) IsFull() bool {
	for c := 0; c < Columns; c++ {
		if b[0][c] == Empty {
			return false
		}
	}
	return true
}

// ValidMoves lists open columns in ascending order.
func (b *Board) ValidMoves() []int {
	moves := make([]int, 0, Columns)
	for c := 0; c < Columns; c++ {
		if b[0][c] == Empty {
			moves = append(moves, c)
		}
	}
	return moves
}

// SimulateMove returns a copy of the board with the move applied.
func (b Board) SimulateMove(column int, player PlayerID) (Board, error) {
	if _, err := b.Drop(column, player); err != nil {
		return b, err
	}
	return b, nil
}

// Settled reports whether every piece rests on the bottom or on another piece.
func (b *Board) Settled() bool {
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows-1; r++ {
			if b[r][c] != Empty && b[r+1][c] == Empty {
				return false
			}
		}
	}
	return true
}

// Count returns the number of cells held by player.
func (b *Board) Count(player PlayerID) int {
	n := 0
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			if b[r][c] == player {
				n++
			}
		}
	}
	return n
}

// Key renders the board as 42 marker bytes, row by row from the top.
func (b *Board) Key(m Markers) string {
	buf := make([]byte, 0, Rows*Columns)
	for r := 0; r < Rows; r++ {
		for c := 0; c < Columns; c++ {
			buf = append(buf, m.For(b[r][c]))
		}
	}
	return string(buf)
}
