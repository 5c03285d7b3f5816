package searcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"cardsim/board"
	"cardsim/experiments/metrics"
	"cardsim/game"
	"cardsim/game/cards"
)

func TestNewMCTS(t *testing.T) {
	t.Run("panics without a budget", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(4) })
		require.Panics(t, func() { NewMCTS(4, WithEpisodes(-1), WithDuration(0)) })
	})

	t.Run("panics without goroutines", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(0, WithEpisodes(10)) })
	})
}

func TestMCTSSearch(t *testing.T) {
	t.Run("returns a legal action and its statistics", func(t *testing.T) {
		b := newBoard(t, 4)
		b.State().AddToHand(game.FirstPlayer, cards.RiverCrocolisk)
		b.State().AddMinion(game.FirstPlayer, cards.Wisp)
		b.State().AddMinion(game.SecondPlayer, cards.IronfurGrizzly)
		m := NewMCTS(4, WithEpisodes(300), WithSeed(9), WithMetrics(nil))

		got, err := m.Search(context.Background(), b)
		require.NoError(t, err)

		count := b.Analyzer().Count()
		require.Equal(t, 4, count)
		require.NotEmpty(t, got.Best)
		require.Less(t, got.Best[0], count)
		total := 0.0
		for choice, share := range got.Policy {
			require.Less(t, choice, count)
			total += share
		}
		require.InDelta(t, 1.0, total, 1e-9)
		require.Len(t, got.Policy, count, "Every root action should be tried")

		require.Equal(t, 300, got.Metric.Episodes)
		require.Equal(t, 300, got.Metric.FullPlayouts+got.Metric.Cutoffs)
		require.Equal(t, 4, got.Metric.Goroutines)
		require.Equal(t, 30, b.State().Card(b.State().Player(game.SecondPlayer).Hero()).HP(), "The root board should not be played")

		rest := sequence(got.Best[1:])
		result := b.ApplyAction(got.Best[0], game.NewRandom(1), &rest)
		require.NotEqual(t, game.ResultInvalid, result)
	})

	t.Run("finds lethal", func(t *testing.T) {
		// Any other line hands the warlock's ogre a lethal swing.
		b := newBoard(t, 2)
		setHeroHP(b, game.SecondPlayer, 1)
		setHeroHP(b, game.FirstPlayer, 3)
		b.State().AddMinion(game.SecondPlayer, cards.BoulderfistOgre)
		for i := 0; i < 5; i++ {
			b.State().AddToDeck(game.SecondPlayer, cards.Wisp)
		}
		m := NewMCTS(1, WithEpisodes(200), WithSeed(3))

		got, err := m.Search(context.Background(), b)
		require.NoError(t, err)

		require.Equal(t, []int{0, 1}, got.Best, "Fireblast the enemy hero")
		require.Greater(t, got.Policy[0], got.Policy[1])
	})

	t.Run("cutoff rollouts are counted", func(t *testing.T) {
		b := newBoard(t, 2)
		collector := metrics.NewCollector()
		factory := func(seed uint64) Policy {
			return NewCutoffPolicy(NewHardCodedPolicy(seed), WeakHeuristic, 1, seed)
		}
		m := NewMCTS(2, WithEpisodes(50), WithSeed(1), WithPolicy("cutoff", factory), WithValueName("weak"), WithMetrics(collector))

		got, err := m.Search(context.Background(), b)
		require.NoError(t, err)
		require.Equal(t, 50, got.Metric.Cutoffs)
		require.Equal(t, "cutoff", got.Metric.Policy)
		require.Equal(t, "weak", got.Metric.Value)
	})

	t.Run("dfs rollouts with a network value", func(t *testing.T) {
		b := newBoard(t, 3)
		b.State().AddToHand(game.FirstPlayer, cards.Frostbolt)
		value := NetworkValue(fixedPredictor(0.1))
		factory := func(seed uint64) Policy {
			return NewCutoffPolicy(NewDFSPolicy(value, seed), value, 3, seed)
		}
		m := NewMCTS(2, WithEpisodes(40), WithSeed(5), WithPolicy("dfs", factory))

		got, err := m.Search(context.Background(), b)
		require.NoError(t, err)
		require.NotEmpty(t, got.Best)
	})

	t.Run("duration budget", func(t *testing.T) {
		b := newBoard(t, 2)
		m := NewMCTS(2, WithDuration(20*time.Millisecond), WithMetrics(nil))

		got, err := m.Search(context.Background(), b)
		require.NoError(t, err)
		require.Positive(t, got.Metric.Episodes)
		require.NotEmpty(t, got.Best)
	})

	t.Run("decided root", func(t *testing.T) {
		b := newBoard(t, 2)
		setHeroHP(b, game.FirstPlayer, 0)
		m := NewMCTS(2, WithEpisodes(10))

		_, err := m.Search(context.Background(), b)
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		m := NewMCTS(2, WithEpisodes(10))

		_, err := m.Search(ctx, newBoard(t, 2))
		require.ErrorIs(t, err, context.Canceled)

		m = NewMCTS(2, WithDuration(time.Second))
		_, err = m.Search(ctx, newBoard(t, 2))
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("shared root analyzer across copies", func(t *testing.T) {
		root := newBoard(t, 4)
		root.State().AddToHand(game.FirstPlayer, cards.Wisp)
		root.State().AddToHand(game.FirstPlayer, cards.RiverCrocolisk)
		m := NewMCTS(8, WithEpisodes(400), WithSeed(2))

		_, err := m.Search(context.Background(), root)
		require.NoError(t, err)
		require.Equal(t, 3, root.Analyzer().Count(), "Workers only read the root analyzer")
		require.Equal(t, board.OpPlayCard, root.Analyzer().MainOpType(0))
		require.Len(t, root.State().Player(game.FirstPlayer).Hand(), 2)
	})
}
