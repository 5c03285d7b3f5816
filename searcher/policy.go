package searcher

import (
	"cardsim/board"
	"cardsim/game"
)

// ChoiceRequest is one decision asked of a policy during a playout. For the
// main action the board's analyzer holds the enumerated actions; for
// sub-choices the board is in the middle of applying an action.
type ChoiceRequest struct {
	Board *board.Board
	Kind  game.ChoiceType
	Count int
}

// Policy drives a playout. GetChoice returns an index in [0, Count).
// CutoffResult is asked before every main action; a cut playout ends with
// the returned value, in [-1, 1] for the board's side.
type Policy interface {
	GetChoice(req ChoiceRequest) int
	CutoffResult(b *board.Board) (value float64, cut bool)
}

// PolicyFactory builds a policy owning a generator seeded with seed.
type PolicyFactory func(seed uint64) Policy

// episodeResetter is implemented by policies that carry decisions from one
// choice to the next.
type episodeResetter interface {
	resetEpisode()
}

func resetEpisode(p Policy) {
	if r, ok := p.(episodeResetter); ok {
		r.resetEpisode()
	}
}

// policyChoices routes the sub-choices of an action to a policy.
type policyChoices struct {
	policy Policy
	board  *board.Board
}

func (c policyChoices) GetChoice(kind game.ChoiceType, count int) int {
	choice := c.policy.GetChoice(ChoiceRequest{Board: c.board, Kind: kind, Count: count})
	if choice < 0 || choice >= count {
		panic("policy returned a choice out of range")
	}
	return choice
}

// RandomPolicy draws every choice uniformly and never cuts off.
type RandomPolicy struct {
	random *game.Random
}

func NewRandomPolicy(seed uint64) *RandomPolicy {
	return &RandomPolicy{random: game.NewRandom(seed)}
}

func (p *RandomPolicy) GetChoice(req ChoiceRequest) int {
	return p.random.Get(req.Count)
}

func (p *RandomPolicy) CutoffResult(*board.Board) (float64, bool) {
	return 0, false
}

// HardCodedPolicy never ends the turn while anything else is possible. End
// turn is always enumerated last.
type HardCodedPolicy struct {
	random *game.Random
}

func NewHardCodedPolicy(seed uint64) *HardCodedPolicy {
	return &HardCodedPolicy{random: game.NewRandom(seed)}
}

func (p *HardCodedPolicy) GetChoice(req ChoiceRequest) int {
	if req.Kind == game.ChoiceMainAction && req.Count > 1 {
		return p.random.Get(req.Count - 1)
	}
	return p.random.Get(req.Count)
}

func (p *HardCodedPolicy) CutoffResult(*board.Board) (float64, bool) {
	return 0, false
}

// CutoffPolicy wraps another policy and ends the playout at every main
// action with probability 1/expected, scoring the board with a value
// function instead.
type CutoffPolicy struct {
	inner       Policy
	value       ValueFunc
	random      *game.Random
	probability float64
}

func NewCutoffPolicy(inner Policy, value ValueFunc, expected float64, seed uint64) *CutoffPolicy {
	if expected < 1 {
		panic("expected playout length must be at least 1")
	}
	if value == nil {
		panic("cutoff policy needs a value function")
	}
	return &CutoffPolicy{
		inner:       inner,
		value:       value,
		random:      game.NewRandom(seed),
		probability: 1 / expected,
	}
}

func (p *CutoffPolicy) GetChoice(req ChoiceRequest) int {
	return p.inner.GetChoice(req)
}

func (p *CutoffPolicy) resetEpisode() {
	resetEpisode(p.inner)
}

func (p *CutoffPolicy) CutoffResult(b *board.Board) (float64, bool) {
	if p.random.Float64() >= p.probability {
		return p.inner.CutoffResult(b)
	}
	return clamp(p.value(b)), true
}
