package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cardsim/board"
	"cardsim/game"
)

func TestRandomPolicy(t *testing.T) {
	t.Run("choices stay in range", func(t *testing.T) {
		p := NewRandomPolicy(3)
		for i := 0; i < 200; i++ {
			got := p.GetChoice(ChoiceRequest{Kind: game.ChoiceTarget, Count: 4})
			require.GreaterOrEqual(t, got, 0)
			require.Less(t, got, 4)
		}
	})

	t.Run("same seed gives the same choices", func(t *testing.T) {
		a, b := NewRandomPolicy(11), NewRandomPolicy(11)
		for i := 0; i < 50; i++ {
			req := ChoiceRequest{Kind: game.ChoiceMainAction, Count: 5}
			require.Equal(t, a.GetChoice(req), b.GetChoice(req))
		}
	})

	t.Run("never cuts off", func(t *testing.T) {
		_, cut := NewRandomPolicy(1).CutoffResult(nil)
		require.False(t, cut)
	})
}

func TestHardCodedPolicy(t *testing.T) {
	t.Run("end turn is avoided while other actions exist", func(t *testing.T) {
		p := NewHardCodedPolicy(5)
		for i := 0; i < 200; i++ {
			got := p.GetChoice(ChoiceRequest{Kind: game.ChoiceMainAction, Count: 3})
			require.Less(t, got, 2, "End turn is always the last main action")
		}
	})

	t.Run("end turn is taken when it is the only action", func(t *testing.T) {
		p := NewHardCodedPolicy(5)
		require.Equal(t, 0, p.GetChoice(ChoiceRequest{Kind: game.ChoiceMainAction, Count: 1}))
	})

	t.Run("sub-choices use every option", func(t *testing.T) {
		p := NewHardCodedPolicy(5)
		seen := map[int]bool{}
		for i := 0; i < 200; i++ {
			seen[p.GetChoice(ChoiceRequest{Kind: game.ChoiceDefender, Count: 3})] = true
		}
		require.Len(t, seen, 3)
	})
}

func TestCutoffPolicy(t *testing.T) {
	value := func(b *board.Board) float64 { return 0.25 }

	t.Run("expected length of one always cuts", func(t *testing.T) {
		p := NewCutoffPolicy(NewRandomPolicy(1), value, 1, 2)
		for i := 0; i < 20; i++ {
			got, cut := p.CutoffResult(nil)
			require.True(t, cut)
			require.Equal(t, 0.25, got)
		}
	})

	t.Run("cuts with probability one over the expected length", func(t *testing.T) {
		p := NewCutoffPolicy(NewRandomPolicy(1), value, 10, 2)
		cuts := 0
		const trials = 20000
		for i := 0; i < trials; i++ {
			if _, cut := p.CutoffResult(nil); cut {
				cuts++
			}
		}
		require.InDelta(t, 0.1, float64(cuts)/trials, 0.01)
	})

	t.Run("values are clamped", func(t *testing.T) {
		p := NewCutoffPolicy(NewRandomPolicy(1), func(*board.Board) float64 { return 3 }, 1, 2)
		got, _ := p.CutoffResult(nil)
		require.Equal(t, 1.0, got)
	})

	t.Run("choices come from the inner policy", func(t *testing.T) {
		inner := &constantPolicy{choice: 2}
		p := NewCutoffPolicy(inner, value, 4, 2)
		require.Equal(t, 2, p.GetChoice(ChoiceRequest{Kind: game.ChoiceTarget, Count: 3}))
		require.Equal(t, []game.ChoiceType{game.ChoiceTarget}, inner.asked)
	})

	t.Run("invalid arguments panic", func(t *testing.T) {
		require.Panics(t, func() { NewCutoffPolicy(NewRandomPolicy(1), value, 0.5, 2) })
		require.Panics(t, func() { NewCutoffPolicy(NewRandomPolicy(1), nil, 4, 2) })
	})
}

func TestPolicyChoices(t *testing.T) {
	t.Run("out of range choices panic", func(t *testing.T) {
		c := policyChoices{policy: &constantPolicy{choice: 3}}
		require.Panics(t, func() { c.GetChoice(game.ChoiceTarget, 3) })
	})

	t.Run("requests carry the board", func(t *testing.T) {
		b := newBoard(t, 0)
		var got *board.Board
		p := &recordingPolicy{fn: func(req ChoiceRequest) { got = req.Board }}
		c := policyChoices{policy: p, board: b}
		c.GetChoice(game.ChoiceHandCard, 2)
		require.Same(t, b, got)
	})
}

type recordingPolicy struct {
	fn func(req ChoiceRequest)
}

func (p *recordingPolicy) GetChoice(req ChoiceRequest) int {
	p.fn(req)
	return 0
}

func (p *recordingPolicy) CutoffResult(*board.Board) (float64, bool) {
	return 0, false
}
