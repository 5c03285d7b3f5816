package searcher

import (
	"fmt"

	"cardsim/board"
	"cardsim/game"
)

// Outcome is how a playout ended.
type Outcome struct {
	Value  float64     // in [-1, 1] for the board's side
	Result game.Result // ResultNotDetermined when cut off
	Cut    bool
	Steps  int
}

// Playout runs the driver loop: cutoff check, enumerate, main choice, apply,
// until the game is decided or the policy cuts it off.
type Playout struct {
	policy Policy
	random game.RandomGenerator
}

func NewPlayout(policy Policy, random game.RandomGenerator) *Playout {
	return &Playout{policy: policy, random: random}
}

// Run plays b forward in place.
func (p *Playout) Run(b *board.Board) Outcome {
	if r := b.Result(); r.IsTerminal() {
		return Outcome{Value: b.Score(r), Result: r}
	}
	choices := policyChoices{policy: p.policy, board: b}
	for steps := 0; ; steps++ {
		if value, cut := p.policy.CutoffResult(b); cut {
			return Outcome{Value: value, Result: game.ResultNotDetermined, Cut: true, Steps: steps}
		}
		count := b.Enumerate()
		choice := choices.GetChoice(game.ChoiceMainAction, count)
		result := b.ApplyAction(choice, p.random, choices)
		switch result {
		case game.ResultNotDetermined:
		case game.ResultInvalid:
			op := b.Analyzer().MainOpType(choice)
			panic(fmt.Sprintf("enumerated action %s was rejected on turn %d", op, b.State().Turn()))
		default:
			return Outcome{Value: b.Score(result), Result: result, Steps: steps + 1}
		}
	}
}
