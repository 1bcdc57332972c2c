package game

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
	"github.com/iamasit07/4-in-a-row/duel/pkg/uid"
)

// Mover supplies the column a side wants to play. Human movers may return
// illegal columns; the caller decides whether that is retried or fatal.
type Mover interface {
	NextMove(ctx context.Context, board domain.Board, self domain.PlayerID) (int, error)
}

type MoverFunc func(ctx context.Context, board domain.Board, self domain.PlayerID) (int, error)

func (f MoverFunc) NextMove(ctx context.Context, board domain.Board, self domain.PlayerID) (int, error) {
	return f(ctx, board, self)
}

// Observer is told about everything the local player should see.
type Observer interface {
	BoardChanged(board domain.Board)
	MoveRejected(side domain.PlayerID, column int, err error)
	MovePlayed(side domain.PlayerID, column int)
	Waiting(side domain.PlayerID)
	GameOver(status domain.GameStatus, err error)
}

type nopObserver struct{}

func (nopObserver) BoardChanged(domain.Board)                {}
func (nopObserver) MoveRejected(domain.PlayerID, int, error) {}
func (nopObserver) MovePlayed(domain.PlayerID, int)          {}
func (nopObserver) Waiting(domain.PlayerID)                  {}
func (nopObserver) GameOver(domain.GameStatus, error)        {}

// Options are shared by every driver.
type Options struct {
	Observer Observer
	Logger   *zap.SugaredLogger
}

func (o Options) withDefaults() Options {
	if o.Observer == nil {
		o.Observer = nopObserver{}
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop().Sugar()
	}
	return o
}

// Result describes how a session ended.
type Result struct {
	SessionID string
	Status    domain.GameStatus
	Board     domain.Board
	// Moves counts accepted moves of both sides.
	Moves int
	// Rounds counts turns started by PlayerA.
	Rounds int
	// Snapshots counts board snapshots sent (authority) or received (remote).
	Snapshots int
}

func newResult() Result {
	return Result{SessionID: uid.GenerateSessionID(), Status: domain.StatusOngoing}
}

// abortError classifies why a session was aborted for logging.
func abortError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		return fmt.Errorf("%w: %w", ctxErr, err)
	}
	return err
}
