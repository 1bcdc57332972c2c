package domain

// Line directions as (deltaRow, deltaCol).
var Directions = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{-1, 1}, // diagonal /
	{1, 1},  // diagonal \
}

// Window is a run of ToWin cells.
type Window [ToWin]PlayerID

// ForEachWindow calls fn for every 4-cell run in every direction that fits on the board.
// Scanning stops as soon as fn returns false.
func (b *Board) ForEachWindow(fn func(w Window) bool) {
	for _, d := range Directions {
		dRow, dCol := d[0], d[1]
		for r := 0; r < Rows; r++ {
			for c := 0; c < Columns; c++ {
				endRow := r + dRow*(ToWin-1)
				endCol := c + dCol*(ToWin-1)
				if endRow < 0 || endRow >= Rows || endCol < 0 || endCol >= Columns {
					continue
				}
				var w Window
				for k := 0; k < ToWin; k++ {
					w[k] = b[r+dRow*k][c+dCol*k]
				}
				if !fn(w) {
					return
				}
			}
		}
	}
}

// HasLine reports whether player owns four contiguous cells anywhere on the board.
func (b *Board) HasLine(player PlayerID) bool {
	found := false
	b.ForEachWindow(func(w Window) bool {
		for _, cell := range w {
			if cell != player {
				return true
			}
		}
		found = true
		return false
	})
	return found
}

// Status derives the game status from the board. It is never stored.
func (b *Board) Status() GameStatus {
	if b.HasLine(Player1) {
		return StatusWinA
	}
	if b.HasLine(Player2) {
		return StatusWinB
	}
	if b.IsFull() {
		return StatusDraw
	}
	return StatusOngoing
}
