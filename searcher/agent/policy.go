package agent

import (
	"context"

	"cardsim/board"
	"cardsim/experiments/metrics"
	"cardsim/game"
	"cardsim/searcher"
)

// policyAgent plays a rollout policy directly, without tree search. The
// move is taken on a copy of the board and its choices recorded.
type policyAgent struct {
	policy searcher.Policy
	random *game.Random
}

func NewPolicyAgent(policy searcher.Policy, seed uint64) Agent {
	return &policyAgent{policy: policy, random: game.NewRandom(seed)}
}

func (a *policyAgent) FindMove(ctx context.Context, b *board.Board) ([]int, metrics.SearchMetric, error) {
	if err := ctx.Err(); err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	scratch := b.Copy()
	r := &recorder{policy: a.policy, board: scratch}
	main := r.GetChoice(game.ChoiceMainAction, scratch.Enumerate())
	scratch.ApplyAction(main, a.random, r)
	return r.choices, metrics.SearchMetric{}, nil
}

type recorder struct {
	policy  searcher.Policy
	board   *board.Board
	choices []int
}

func (r *recorder) GetChoice(kind game.ChoiceType, count int) int {
	choice := r.policy.GetChoice(searcher.ChoiceRequest{Board: r.board, Kind: kind, Count: count})
	r.choices = append(r.choices, choice)
	return choice
}
