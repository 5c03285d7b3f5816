package agent

import (
	"context"

	"cardsim/board"
	"cardsim/experiments/metrics"
	"cardsim/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(ctx context.Context, b *board.Board) ([]int, metrics.SearchMetric, error) {
	result, err := a.mcts.Search(ctx, b)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	return result.Best, result.Metric, nil
}
