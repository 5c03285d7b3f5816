package searcher

import (
	"fmt"
	"math"

	"cardsim/board"
	"cardsim/game"
)

// DFSPolicy exhaustively tries every combination of main action and
// sub-choices at the current decision point, replaying each from a scratch
// copy with the same seed, and commits to the best one. Choices after the
// committed sequence fall back to uniform random until the next main action.
type DFSPolicy struct {
	value     ValueFunc
	random    *game.Random
	randomPut bool
	scratch   *board.CopiedBoard
	committed []int
}

type DFSOption func(p *DFSPolicy)

// WithRandomPutLocation makes minion placement random instead of searched.
func WithRandomPutLocation() DFSOption {
	return func(p *DFSPolicy) {
		p.randomPut = true
	}
}

func NewDFSPolicy(value ValueFunc, seed uint64, options ...DFSOption) *DFSPolicy {
	if value == nil {
		panic("dfs policy needs a value function")
	}
	p := &DFSPolicy{
		value:   value,
		random:  game.NewRandom(seed),
		scratch: board.NewCopiedBoard(),
	}
	for _, option := range options {
		option(p)
	}
	return p
}

func (p *DFSPolicy) GetChoice(req ChoiceRequest) int {
	if req.Kind == game.ChoiceMainAction {
		p.committed = p.search(req.Board)
	}
	if req.Kind == game.ChoiceMinionPutLocation && p.randomPut {
		return p.random.Get(req.Count)
	}
	if len(p.committed) == 0 {
		return p.random.Get(req.Count)
	}
	choice := p.committed[0]
	p.committed = p.committed[1:]
	if choice >= req.Count {
		// The real randomness took another branch than the pinned seed.
		p.committed = nil
		return p.random.Get(req.Count)
	}
	return choice
}

func (p *DFSPolicy) resetEpisode() {
	p.committed = nil
}

func (p *DFSPolicy) CutoffResult(*board.Board) (float64, bool) {
	return 0, false
}

// search scores every combination from b, seen from the player to act.
func (p *DFSPolicy) search(b *board.Board) []int {
	player := b.State().Current()
	seed := p.random.Uint64()
	return dfsSearch(func(choices game.ChoiceGetter) float64 {
		p.scratch.FillWithBase(b)
		p.scratch.SetSide(player)
		random := game.NewRandom(seed)
		if p.randomPut {
			choices = randomPut{ChoiceGetter: choices, random: random}
		}
		count := p.scratch.Enumerate()
		main := choices.GetChoice(game.ChoiceMainAction, count)
		result := p.scratch.ApplyAction(main, random, choices)
		switch result {
		case game.ResultNotDetermined:
			return p.value(&p.scratch.Board)
		case game.ResultInvalid:
			panic("enumerated action was rejected during dfs")
		case game.ResultDraw:
			return 0
		case game.WinFor(player):
			return math.Inf(1)
		default:
			return math.Inf(-1)
		}
	})
}

type randomPut struct {
	game.ChoiceGetter
	random game.RandomGenerator
}

func (r randomPut) GetChoice(kind game.ChoiceType, count int) int {
	if kind == game.ChoiceMinionPutLocation {
		return r.random.Get(count)
	}
	return r.ChoiceGetter.GetChoice(kind, count)
}

type dfsEntry struct {
	choice int
	count  int
}

// dfsReplay answers the choices of one combination. Entries before pos were
// fixed by earlier combinations; choice points past the stack start at 0.
type dfsReplay struct {
	stack []dfsEntry
	pos   int
}

func (r *dfsReplay) GetChoice(kind game.ChoiceType, count int) int {
	if r.pos < len(r.stack) {
		entry := r.stack[r.pos]
		if entry.count != count {
			panic(fmt.Sprintf("dfs replay diverged at %s: %d options, expected %d", kind, count, entry.count))
		}
		r.pos++
		return entry.choice
	}
	r.stack = append(r.stack, dfsEntry{choice: 0, count: count})
	r.pos++
	return 0
}

// dfsSearch enumerates choice combinations depth first. replay runs one
// combination, asking every decision through the getter, and scores it. The
// first best-scoring combination wins ties.
func dfsSearch(replay func(choices game.ChoiceGetter) float64) []int {
	r := &dfsReplay{}
	var best []int
	bestValue := math.Inf(-1)
	for {
		r.pos = 0
		value := replay(r)
		if r.pos != len(r.stack) {
			panic(fmt.Sprintf("dfs replay asked %d choices, expected %d", r.pos, len(r.stack)))
		}
		if best == nil || value > bestValue {
			bestValue = value
			best = best[:0]
			for _, e := range r.stack {
				best = append(best, e.choice)
			}
			if best == nil {
				best = []int{}
			}
		}

		for len(r.stack) > 0 && r.stack[len(r.stack)-1].choice+1 >= r.stack[len(r.stack)-1].count {
			r.stack = r.stack[:len(r.stack)-1]
		}
		if len(r.stack) == 0 {
			return best
		}
		r.stack[len(r.stack)-1].choice++
	}
}
