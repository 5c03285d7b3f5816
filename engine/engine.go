package engine

import (
	"context"
	"errors"

	"cardsim/experiments/metrics"
)

// MaxMoves bounds the moves of one game, whatever the turn limit.
const MaxMoves = 10000

var ErrEmptyMove = errors.New("agent returned an empty move")

type Engine interface {
	// Run plays a game until it is decided or a limit is reached.
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
