package game

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
	"github.com/iamasit07/4-in-a-row/duel/internal/transport/wire"
)

// MoverSelector picks the remote's mover once the authority has announced the mode.
type MoverSelector func(mode domain.Mode) (Mover, error)

// Remote is the connecting peer. It plays PlayerB, keeps its own copy of the
// board rebuilt from every snapshot and sends one legal column per turn.
type Remote struct {
	conn   io.ReadWriteCloser
	codec  *wire.Codec
	choose MoverSelector
	opts   Options
	log    *zap.SugaredLogger
}

func NewRemote(conn io.ReadWriteCloser, choose MoverSelector, opts Options) *Remote {
	opts = opts.withDefaults()
	return &Remote{
		conn:   conn,
		codec:  wire.NewCodec(conn, wire.Markers),
		choose: choose,
		opts:   opts,
		log:    opts.Logger,
	}
}

func (r *Remote) Run(ctx context.Context) (Result, error) {
	res := newResult()
	r.log = r.log.With("session", res.SessionID, "role", "remote")
	defer r.conn.Close()

	stop := context.AfterFunc(ctx, func() { r.conn.Close() })
	defer stop()

	mode, err := r.codec.RecvMode()
	if err != nil {
		return r.abort(ctx, &res, err)
	}
	if !mode.Valid() {
		return r.abort(ctx, &res, fmt.Errorf("%w: mode %d", domain.ErrProtocolViolation, mode))
	}
	mover, err := r.choose(mode)
	if err != nil {
		return r.abort(ctx, &res, err)
	}
	r.log.Infof("[SESSION] Joined in mode %d", mode)

	for {
		snap, err := r.codec.RecvSnapshot()
		if err != nil {
			return r.abort(ctx, &res, err)
		}
		res.Snapshots++
		res.Board = snap.Board

		if derived := snap.Board.Status(); derived != snap.Status {
			return r.abort(ctx, &res, fmt.Errorf("%w: status %v does not match board (%v)", domain.ErrProtocolViolation, snap.Status, derived))
		}
		r.opts.Observer.BoardChanged(snap.Board)

		if snap.Status.IsTerminal() {
			res.Status = snap.Status
			res.Moves = countMoves(&snap.Board)
			r.log.Infof("[SESSION] Finished with status %v after %d moves", res.Status, res.Moves)
			r.opts.Observer.GameOver(res.Status, nil)
			return res, nil
		}
		if !snap.YourTurn {
			r.opts.Observer.Waiting(domain.Player1)
			continue
		}

		column, err := r.localMove(ctx, mover, snap.Board)
		if err != nil {
			return r.abort(ctx, &res, err)
		}
		if err := r.codec.SendMove(column); err != nil {
			return r.abort(ctx, &res, err)
		}
		r.opts.Observer.MovePlayed(domain.Player2, column)
		r.opts.Observer.Waiting(domain.Player1)
	}
}

// localMove only lets a legal column leave this peer.
func (r *Remote) localMove(ctx context.Context, mover Mover, board domain.Board) (int, error) {
	for {
		column, err := mover.NextMove(ctx, board, domain.Player2)
		if err != nil {
			return -1, err
		}
		if _, err := board.SimulateMove(column, domain.Player2); err != nil {
			r.opts.Observer.MoveRejected(domain.Player2, column, err)
			continue
		}
		return column, nil
	}
}

func (r *Remote) abort(ctx context.Context, res *Result, err error) (Result, error) {
	err = abortError(ctx, err)
	res.Status = domain.StatusAborted
	res.Moves = countMoves(&res.Board)
	r.log.Errorf("[SESSION] Aborted: %v", err)
	r.opts.Observer.GameOver(domain.StatusAborted, err)
	return *res, err
}

func countMoves(b *domain.Board) int {
	return b.Count(domain.Player1) + b.Count(domain.Player2)
}
