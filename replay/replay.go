// Package replay applies a list of externally supplied choices to a game,
// such as the clicks of a human player, and reports which decision the game
// would ask for next.
package replay

import (
	"fmt"

	"cardsim/board"
	"cardsim/game"
)

// Pending describes the first choice point reached after the supplied
// choices ran out. Kind is only meaningful when Reached is set.
type Pending struct {
	Reached bool
	Kind    game.ChoiceType
	Count   int
}

func (p Pending) String() string {
	if !p.Reached {
		return "none"
	}
	return fmt.Sprintf("%s of %d", p.Kind, p.Count)
}

// Helper holds choices in the order a playout would ask for them: a main
// action index, then the sub-choices of that action, then the next main
// action.
type Helper struct {
	choices []int
}

func (h *Helper) AppendChoice(choice int) {
	h.choices = append(h.choices, choice)
}

func (h *Helper) ClearChoices() {
	h.choices = h.choices[:0]
}

func (h *Helper) Choices() []int {
	return h.choices
}

// Apply plays every supplied main action on s. Sub-choices past the end of
// the list default to the first option, and the first such choice point is
// returned as pending. Randomness comes from random, or always the first
// outcome when random is nil. Out of range choices panic.
func (h *Helper) Apply(s *game.State, random game.RandomGenerator) (Pending, game.Result) {
	if random == nil {
		random = firstOutcome{}
	}
	cb := &callback{choices: h.choices}
	analyzer := board.NewActionAnalyzer()
	result := s.Result()
	for cb.pos < len(cb.choices) && !result.IsTerminal() {
		main := cb.choices[cb.pos]
		cb.pos++
		count := analyzer.Enumerate(s)
		if main < 0 || main >= count {
			panic(fmt.Sprintf("main action %d out of range [0, %d)", main, count))
		}
		result = analyzer.ApplyAction(s, main, random, cb)
		if result == game.ResultInvalid {
			panic(fmt.Sprintf("main action %d was rejected", main))
		}
	}
	return cb.pending, result
}

type callback struct {
	choices []int
	pos     int
	pending Pending
}

func (c *callback) GetChoice(kind game.ChoiceType, count int) int {
	if c.pos >= len(c.choices) {
		if !c.pending.Reached {
			c.pending = Pending{Reached: true, Kind: kind, Count: count}
		}
		return 0
	}
	choice := c.choices[c.pos]
	c.pos++
	if choice < 0 || choice >= count {
		panic(fmt.Sprintf("%s choice %d out of range [0, %d)", kind, choice, count))
	}
	return choice
}

type firstOutcome struct{}

func (firstOutcome) Get(int) int { return 0 }
