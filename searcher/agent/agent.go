package agent

import (
	"context"

	"cardsim/board"
	"cardsim/experiments/metrics"
)

type Agent interface {
	// FindMove returns one move for the player to act: the index of a main
	// action enumerated on b, then the sub-choices it asks for. Trailing
	// sub-choices may be omitted. Metrics are zero unless collected.
	FindMove(ctx context.Context, b *board.Board) ([]int, metrics.SearchMetric, error)
}
