package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"cardsim/game"
	"cardsim/game/cards"
)

func TestParseFeatureKey(t *testing.T) {
	t.Run("scalar and indexed keys", func(t *testing.T) {
		got, err := ParseFeatureKey("self.hero_hp")
		require.NoError(t, err)
		require.Equal(t, FeatureKey{Side: SelfSide, Field: FieldHeroHP}, got)
		require.Equal(t, "self.hero_hp", got.String())

		got, err = ParseFeatureKey("opponent.minion_attack.6")
		require.NoError(t, err)
		require.Equal(t, FeatureKey{Side: OpponentSide, Field: FieldMinionAttack, Index: 6}, got)
		require.Equal(t, "opponent.minion_attack.6", got.String())
	})

	for _, key := range []string{
		"hero_hp",
		"enemy.hero_hp",
		"self.mana",
		"self.hero_hp.0",
		"self.minion_attack",
		"self.minion_attack.7",
		"self.hand_cost.x",
		"self.hand_cost.1.2",
	} {
		t.Run("rejecting "+key, func(t *testing.T) {
			_, err := ParseFeatureKey(key)
			require.Error(t, err)
		})
	}
}

func TestFeatures(t *testing.T) {
	t.Run("keys outside the schema panic", func(t *testing.T) {
		f := NewFeatures()
		require.Panics(t, func() { f.Get(FeatureKey{Side: SelfSide, Field: FieldHeroHP, Index: 1}) })
		require.Panics(t, func() { f.Set(FeatureKey{Side: OpponentSide, Field: fieldCount}, 1) })
		require.Panics(t, func() { f.Get(FeatureKey{Side: featureSideCount}) })
	})

	t.Run("entries do not overlap", func(t *testing.T) {
		f := NewFeatures()
		f.Set(FeatureKey{Side: SelfSide, Field: FieldHandCost, Index: 9}, 1)
		f.Set(FeatureKey{Side: OpponentSide, Field: FieldResourceCurrent}, 2)

		sum := 0.0
		for _, v := range f.Values() {
			sum += v
		}
		require.Equal(t, 3.0, sum)
		require.Len(t, f.Values(), 2*sideWidth)
	})
}

func TestExtractFeatures(t *testing.T) {
	b := newBoard(t, 3)
	s := b.State()
	setHeroHP(b, game.SecondPlayer, 12)
	s.AddToHand(game.FirstPlayer, cards.RiverCrocolisk)
	s.AddToHand(game.FirstPlayer, cards.BoulderfistOgre)
	s.AddMinion(game.SecondPlayer, cards.IronfurGrizzly)

	get := func(f *Features, side FeatureSide, field Field, index int) float64 {
		return f.Get(FeatureKey{Side: side, Field: field, Index: index})
	}

	t.Run("seen from the player to act", func(t *testing.T) {
		f := ExtractFeatures(s, game.FirstPlayer)

		require.Equal(t, 3.0, get(f, SelfSide, FieldResourceCurrent, 0))
		require.Equal(t, 30.0, get(f, SelfSide, FieldHeroHP, 0))
		require.Equal(t, 12.0, get(f, OpponentSide, FieldHeroHP, 0))
		require.Equal(t, 1.0, get(f, SelfSide, FieldHeroPowerPlayable, 0))
		require.Equal(t, 2.0, get(f, SelfSide, FieldHandCost, 0))
		require.Equal(t, 1.0, get(f, SelfSide, FieldHandPlayable, 0))
		require.Equal(t, 6.0, get(f, SelfSide, FieldHandCost, 1))
		require.Equal(t, 0.0, get(f, SelfSide, FieldHandPlayable, 1), "The ogre is not affordable")
		require.Equal(t, 3.0, get(f, OpponentSide, FieldMinionAttack, 0))
		require.Equal(t, 1.0, get(f, OpponentSide, FieldMinionTaunt, 0))
		require.Equal(t, 0.0, get(f, OpponentSide, FieldMinionAttackable, 0), "Only the player to act can attack")
	})

	t.Run("seen from the waiting player", func(t *testing.T) {
		f := ExtractFeatures(s, game.SecondPlayer)

		require.Equal(t, 12.0, get(f, SelfSide, FieldHeroHP, 0))
		require.Equal(t, 3.0, get(f, SelfSide, FieldMinionAttack, 0))
		require.Equal(t, 0.0, get(f, SelfSide, FieldHeroPowerPlayable, 0))
		require.Equal(t, 0.0, get(f, OpponentSide, FieldHandPlayable, 0), "Playability is only known for self")
		require.Equal(t, 1.0, get(f, OpponentSide, FieldHeroPowerPlayable, 0))
	})
}
