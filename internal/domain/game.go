package domain

// Game is the authoritative state of one match: the board, whose turn it is,
// and the derived status after every accepted move.
type Game struct {
	Board         Board
	CurrentPlayer PlayerID
	Status        GameStatus
	MoveCount     int
}

func NewGame() *Game {
	return &Game{
		Board:         NewBoard(),
		CurrentPlayer: Player1,
		Status:        StatusOngoing,
	}
}

// MakeMove drops a disk for player and recomputes the status. The turn only
// passes to the other side when the game is still ongoing.
func (g *Game) MakeMove(player PlayerID, column int) (int, error) {
	if g.Status != StatusOngoing {
		return -1, ErrInvalidMove
	}
	if player != g.CurrentPlayer {
		return -1, ErrInvalidMove
	}

	row, err := g.Board.Drop(column, player)
	if err != nil {
		return -1, err
	}
	g.MoveCount++

	g.Status = g.Board.Status()
	if g.Status == StatusOngoing {
		g.CurrentPlayer = player.Opponent()
	}
	return row, nil
}

func (g *Game) IsFinished() bool {
	return g.Status != StatusOngoing
}

// Abort marks the game as ended without a result.
func (g *Game) Abort() {
	g.Status = StatusAborted
}
