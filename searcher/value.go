package searcher

import (
	"fmt"

	"cardsim/board"
	"cardsim/game"
)

// ValueFunc scores an undecided board in [-1, 1] for the board's side.
type ValueFunc func(b *board.Board) float64

// WeakHeuristic only measures the damage done to the opponent hero.
func WeakHeuristic(b *board.Board) float64 {
	return game.EvaluateWeak(b.State(), b.Side())
}

// BoardHeuristic compares both sides' heroes and minions.
func BoardHeuristic(b *board.Board) float64 {
	return game.EvaluateBoard(b.State(), b.Side())
}

// Predictor is a learned state-value backend. Predict scores the features
// for the first player in [-1, 1].
type Predictor interface {
	Predict(f *Features) float64
}

// NetworkValue adapts a Predictor to a ValueFunc. Features are always
// extracted with the first player as self, so the score is negated for the
// second player.
func NetworkValue(p Predictor) ValueFunc {
	return func(b *board.Board) float64 {
		f := ExtractFeatures(b.State(), game.FirstPlayer)
		score := p.Predict(f)
		if !b.Side().IsFirst() {
			score = -score
		}
		return clamp(score)
	}
}

// LookupValueFunc resolves a value function by its configuration name.
func LookupValueFunc(name string, predictor Predictor) (ValueFunc, error) {
	switch name {
	case "weak", "":
		return WeakHeuristic, nil
	case "board":
		return BoardHeuristic, nil
	case "network":
		if predictor == nil {
			return nil, fmt.Errorf("value function %q needs a predictor", name)
		}
		return NetworkValue(predictor), nil
	default:
		return nil, fmt.Errorf("unknown value function %q", name)
	}
}

func clamp(v float64) float64 {
	return max(-1, min(1, v))
}
