package agent

import (
	"context"
	"math"

	"cardsim/board"
	"cardsim/experiments/metrics"
	"cardsim/game"
	"cardsim/searcher"
	"cardsim/utils"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	random      *game.Random
}

// NewTrainingAgent returns a new agent for self-play during training. Main
// actions are sampled from the visit shares sharpened by temperature.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &trainingAgent{mcts: mcts, temperature: temperature, random: game.NewRandom(seed)}
}

func (a *trainingAgent) FindMove(ctx context.Context, b *board.Board) ([]int, metrics.SearchMetric, error) {
	result, err := a.mcts.Search(ctx, b)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	if len(result.Policy) == 0 {
		return result.Best, result.Metric, nil
	}
	policy := adjustTemperature(result.Policy, a.temperature)
	choice := sample(policy, a.random.Float64())
	if len(result.Best) > 0 && choice == result.Best[0] {
		return result.Best, result.Metric, nil
	}
	return []int{choice}, result.Metric, nil
}

func adjustTemperature(policy map[int]float64, temperature float64) map[int]float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(map[int]float64, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// sample walks the moves in index order so a fixed draw picks a fixed move.
func sample(policy map[int]float64, sampled float64) int {
	moves := utils.SortedKeys(policy)
	cumulative := 0.0
	for _, move := range moves {
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return moves[len(moves)-1] // Fallback in case of rounding errors
}
