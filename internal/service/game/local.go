package game

import (
	"context"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

// LocalMatch plays both sides on one machine, A first. Illegal columns from
// either mover are rejected and asked again.
type LocalMatch struct {
	A, B Mover
	opts Options
}

func NewLocalMatch(a, b Mover, opts Options) *LocalMatch {
	return &LocalMatch{A: a, B: b, opts: opts.withDefaults()}
}

func (m *LocalMatch) Run(ctx context.Context) (Result, error) {
	res := newResult()
	log := m.opts.Logger.With("session", res.SessionID, "role", "local")
	g := domain.NewGame()

	for !g.IsFinished() {
		side := g.CurrentPlayer
		mover := m.A
		if side == domain.Player2 {
			mover = m.B
		}

		m.opts.Observer.BoardChanged(g.Board)
		column, err := mover.NextMove(ctx, g.Board, side)
		if err != nil {
			g.Abort()
			res.Status, res.Board, res.Moves = g.Status, g.Board, g.MoveCount
			log.Errorf("[SESSION] Aborted: %v", err)
			m.opts.Observer.GameOver(res.Status, err)
			return res, err
		}
		if _, err := g.MakeMove(side, column); err != nil {
			m.opts.Observer.MoveRejected(side, column, err)
			continue
		}
		if side == domain.Player1 {
			res.Rounds++
		}
		m.opts.Observer.MovePlayed(side, column)
	}

	res.Status, res.Board, res.Moves = g.Status, g.Board, g.MoveCount
	log.Infof("[SESSION] Finished with status %v after %d moves", res.Status, res.Moves)
	m.opts.Observer.BoardChanged(g.Board)
	m.opts.Observer.GameOver(res.Status, nil)
	return res, nil
}
