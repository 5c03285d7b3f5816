package board

import (
	"fmt"
	"sync"

	"cardsim/game"
)

// OpType is a top-level action kind.
type OpType int8

const (
	OpPlayCard OpType = iota
	OpAttack
	OpHeroPower
	OpEndTurn
)

func (o OpType) String() string {
	switch o {
	case OpPlayCard:
		return "play-card"
	case OpAttack:
		return "attack"
	case OpHeroPower:
		return "hero-power"
	case OpEndTurn:
		return "end-turn"
	default:
		return "unknown"
	}
}

// ActionAnalyzer caches the legal top-level actions of one state. Readers
// share the cache; Enumerate and Reset take the exclusive lock.
type ActionAnalyzer struct {
	lock      sync.RWMutex
	ops       []OpType
	playable  []int
	attackers []game.CardRef
	valid     bool
}

func NewActionAnalyzer() *ActionAnalyzer {
	return &ActionAnalyzer{}
}

// Reset invalidates the cache.
func (a *ActionAnalyzer) Reset() {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.ops = a.ops[:0]
	a.playable = a.playable[:0]
	a.attackers = a.attackers[:0]
	a.valid = false
}

// Enumerate lists the legal top-level actions of s and returns their count.
// Play card is offered only when a hand card is playable, attack only when a
// character can attack, hero power only when it is usable. End turn is always
// offered, last.
func (a *ActionAnalyzer) Enumerate(s *game.State) int {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.ops = a.ops[:0]
	a.playable = append(a.playable[:0], game.PlayableCards(s)...)
	a.attackers = append(a.attackers[:0], game.Attackers(s)...)

	if len(a.playable) > 0 {
		a.ops = append(a.ops, OpPlayCard)
	}
	if len(a.attackers) > 0 {
		a.ops = append(a.ops, OpAttack)
	}
	if game.CanUseHeroPower(s) {
		a.ops = append(a.ops, OpHeroPower)
	}
	a.ops = append(a.ops, OpEndTurn)
	a.valid = true
	return len(a.ops)
}

// Count returns the number of enumerated actions.
func (a *ActionAnalyzer) Count() int {
	a.lock.RLock()
	defer a.lock.RUnlock()

	a.mustBeValid()
	return len(a.ops)
}

// ForEachMainOp visits the enumerated actions until fn returns false.
func (a *ActionAnalyzer) ForEachMainOp(fn func(i int, op OpType) bool) {
	a.lock.RLock()
	defer a.lock.RUnlock()

	a.mustBeValid()
	for i, op := range a.ops {
		if !fn(i, op) {
			return
		}
	}
}

func (a *ActionAnalyzer) MainOpType(i int) OpType {
	a.lock.RLock()
	defer a.lock.RUnlock()

	a.mustBeValid()
	if i < 0 || i >= len(a.ops) {
		panic(fmt.Sprintf("main op %d out of range [0, %d)", i, len(a.ops)))
	}
	return a.ops[i]
}

// ForEachPlayableCard visits the hand indices of playable cards.
func (a *ActionAnalyzer) ForEachPlayableCard(fn func(handIdx int) bool) {
	a.lock.RLock()
	defer a.lock.RUnlock()

	a.mustBeValid()
	for _, idx := range a.playable {
		if !fn(idx) {
			return
		}
	}
}

// PlayableCard maps the i-th playable card to its hand index.
func (a *ActionAnalyzer) PlayableCard(i int) int {
	a.lock.RLock()
	defer a.lock.RUnlock()

	a.mustBeValid()
	return a.playable[i]
}

func (a *ActionAnalyzer) PlayableCount() int {
	a.lock.RLock()
	defer a.lock.RUnlock()

	a.mustBeValid()
	return len(a.playable)
}

// Attackers returns a copy of the characters able to attack.
func (a *ActionAnalyzer) Attackers() []game.CardRef {
	a.lock.RLock()
	defer a.lock.RUnlock()

	a.mustBeValid()
	return append([]game.CardRef(nil), a.attackers...)
}

// ApplyAction runs the i-th enumerated action on s, which must be the
// enumerated state or an identical copy. Sub-choices are resolved through
// choices, in the order hand card, put location, target for play card and
// attacker, defender for attack.
func (a *ActionAnalyzer) ApplyAction(s *game.State, i int, random game.RandomGenerator, choices game.ChoiceGetter) game.Result {
	fc := game.NewFlowContext(random, choices)
	flow := game.NewFlowController(s, fc)

	a.lock.RLock()
	a.mustBeValid()
	if i < 0 || i >= len(a.ops) {
		a.lock.RUnlock()
		panic(fmt.Sprintf("main op %d out of range [0, %d)", i, len(a.ops)))
	}
	op := a.ops[i]
	var candidates []int
	var attackers []game.CardRef
	switch op {
	case OpPlayCard:
		candidates = append(candidates, a.playable...)
	case OpAttack:
		attackers = append(attackers, a.attackers...)
	}
	a.lock.RUnlock()

	switch op {
	case OpPlayCard:
		return flow.PlayCard(candidates[fc.Choose(game.ChoiceHandCard, len(candidates))])
	case OpAttack:
		attacker := attackers[fc.Choose(game.ChoiceAttacker, len(attackers))]
		defenders := game.Defenders(s)
		if len(defenders) == 0 {
			return game.ResultInvalid
		}
		defender := defenders[fc.Choose(game.ChoiceDefender, len(defenders))]
		return flow.Attack(attacker, defender)
	case OpHeroPower:
		return flow.HeroPower()
	case OpEndTurn:
		return flow.EndTurn()
	default:
		panic(fmt.Sprintf("unknown main op %s", op))
	}
}

func (a *ActionAnalyzer) mustBeValid() {
	if !a.valid {
		panic("action analyzer used before Enumerate")
	}
}
