package game

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
	"github.com/iamasit07/4-in-a-row/duel/internal/transport/wire"
)

// Authority is the accepting peer. It owns the canonical game, always plays
// PlayerA and transmits a snapshot after every accepted move.
type Authority struct {
	conn  io.ReadWriteCloser
	codec *wire.Codec
	mode  domain.Mode
	mover Mover
	game  *domain.Game
	opts  Options
	log   *zap.SugaredLogger
}

func NewAuthority(conn io.ReadWriteCloser, mode domain.Mode, mover Mover, opts Options) *Authority {
	opts = opts.withDefaults()
	if !mode.Valid() {
		mode = domain.ModeHumanVsHuman
	}
	return &Authority{
		conn:  conn,
		codec: wire.NewCodec(conn, wire.Markers),
		mode:  mode,
		mover: mover,
		game:  domain.NewGame(),
		opts:  opts,
		log:   opts.Logger,
	}
}

// Run plays the session to its end and always releases the connection.
// A non-nil error means the session was aborted.
func (a *Authority) Run(ctx context.Context) (Result, error) {
	res := newResult()
	a.log = a.log.With("session", res.SessionID, "role", "authority")
	defer a.conn.Close()

	stop := context.AfterFunc(ctx, func() { a.conn.Close() })
	defer stop()

	a.log.Infof("[SESSION] Started in mode %d", a.mode)
	if err := a.codec.SendMode(a.mode); err != nil {
		return a.abort(ctx, &res, err)
	}

	for {
		// AwaitingMove(A)
		res.Rounds++
		a.opts.Observer.BoardChanged(a.game.Board)
		column, err := a.localMove(ctx)
		if err != nil {
			return a.abort(ctx, &res, err)
		}
		a.opts.Observer.MovePlayed(domain.Player1, column)

		if err := a.broadcast(&res); err != nil {
			return a.abort(ctx, &res, err)
		}
		if a.game.IsFinished() {
			return a.finish(&res), nil
		}

		// AwaitingMove(B)
		a.opts.Observer.BoardChanged(a.game.Board)
		a.opts.Observer.Waiting(domain.Player2)
		column, err = a.codec.RecvMove()
		if err != nil {
			return a.abort(ctx, &res, err)
		}
		if _, err := a.game.MakeMove(domain.Player2, column); err != nil {
			return a.abort(ctx, &res, fmt.Errorf("%w: remote played column %d: %w", domain.ErrProtocolViolation, column, err))
		}
		a.log.Debugf("[SESSION] Remote played column %d", column)
		a.opts.Observer.MovePlayed(domain.Player2, column)

		if err := a.broadcast(&res); err != nil {
			return a.abort(ctx, &res, err)
		}
		if a.game.IsFinished() {
			return a.finish(&res), nil
		}
	}
}

// localMove asks the local mover until it produces a legal column.
func (a *Authority) localMove(ctx context.Context) (int, error) {
	for {
		column, err := a.mover.NextMove(ctx, a.game.Board, domain.Player1)
		if err != nil {
			return -1, err
		}
		if _, err := a.game.MakeMove(domain.Player1, column); err != nil {
			a.log.Debugf("[SESSION] Rejected local column %d: %v", column, err)
			a.opts.Observer.MoveRejected(domain.Player1, column, err)
			continue
		}
		return column, nil
	}
}

// broadcast sends {board, status, yourTurn} to the remote.
func (a *Authority) broadcast(res *Result) error {
	snap := wire.Snapshot{
		Board:    a.game.Board,
		Status:   a.game.Status,
		YourTurn: !a.game.IsFinished() && a.game.CurrentPlayer == domain.Player2,
	}
	if err := a.codec.SendSnapshot(snap); err != nil {
		return err
	}
	res.Snapshots++
	return nil
}

func (a *Authority) finish(res *Result) Result {
	res.Status = a.game.Status
	res.Board = a.game.Board
	res.Moves = a.game.MoveCount
	a.log.Infof("[SESSION] Finished with status %v after %d moves", res.Status, res.Moves)
	a.opts.Observer.BoardChanged(a.game.Board)
	a.opts.Observer.GameOver(res.Status, nil)
	return *res
}

func (a *Authority) abort(ctx context.Context, res *Result, err error) (Result, error) {
	err = abortError(ctx, err)
	a.game.Abort()
	res.Status = domain.StatusAborted
	res.Board = a.game.Board
	res.Moves = a.game.MoveCount
	a.log.Errorf("[SESSION] Aborted after %d moves: %v", res.Moves, err)
	a.opts.Observer.GameOver(domain.StatusAborted, err)
	return *res, err
}
