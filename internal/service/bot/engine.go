package bot

import (
	"math/rand"
	"sync"
	"time"

	"github.com/iamasit07/4-in-a-row/duel/internal/domain"
)

type Reason string

const (
	ReasonRandom         Reason = "random"
	ReasonWin            Reason = "winning move"
	ReasonBlock          Reason = "blocking move"
	ReasonCenter         Reason = "center preference"
	ReasonStrategic      Reason = "strategic fallback"
	ReasonRandomFallback Reason = "random fallback"
	ReasonSearch         Reason = "search"
	ReasonNoMoves        Reason = "no moves"
)

// Decision is a chosen column and why it was chosen. Score is only set by the search.
type Decision struct {
	Column int
	Reason Reason
	Score  int
}

// Engine selects moves for the three bot tiers. It holds no game state;
// the only mutable part is the random source, which is locked.
type Engine struct {
	depth   int
	workers int

	mu  sync.Mutex
	rng *rand.Rand
}

type Option func(*Engine)

// WithDepth sets the hard tier search depth in plies.
func WithDepth(depth int) Option {
	return func(e *Engine) {
		if depth > 0 {
			e.depth = depth
		}
	}
}

// WithWorkers splits the hard tier root moves across n workers.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		depth:   MINIMAX_DEPTH,
		workers: 1,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Depth() int { return e.depth }

func (e *Engine) intn(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.Intn(n)
}

// ChooseMove returns the column self should play, or -1 when the board is full.
func (e *Engine) ChooseMove(board domain.Board, self, opponent domain.PlayerID, difficulty domain.Difficulty) int {
	return e.Explain(board, self, opponent, difficulty).Column
}

// Explain is ChooseMove with the reason behind the choice.
func (e *Engine) Explain(board domain.Board, self, opponent domain.PlayerID, difficulty domain.Difficulty) Decision {
	if board.IsFull() {
		return Decision{Column: -1, Reason: ReasonNoMoves}
	}

	switch difficulty {
	case domain.Easy:
		return Decision{Column: e.randomMove(&board), Reason: ReasonRandom}
	case domain.Hard:
		return e.calculateHardMove(&board, self, opponent)
	default:
		return e.calculateMediumMove(&board, self, opponent)
	}
}
