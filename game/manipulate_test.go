package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDamage(t *testing.T) {
	t.Run("shield absorbs the first hit", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		ref, _ := s.AddMinion(SecondPlayer, "shield")
		m.Damage(NoCard, ref, 3)
		c := s.Card(ref)
		require.Equal(t, 1, c.HP())
		require.False(t, c.HasShield())

		m.Damage(NoCard, ref, 1)
		require.Equal(t, ResultNotDetermined, m.Checkpoint())
		require.Equal(t, ZoneGraveyard, s.Card(ref).Zone())
	})

	t.Run("armor is spent before health", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		hero := s.Player(FirstPlayer).Hero()
		m.GainArmor(FirstPlayer, 2)
		m.Damage(NoCard, hero, 5)
		require.Equal(t, 0, s.Card(hero).Armor())
		require.Equal(t, 27, s.Card(hero).HP())
	})

	t.Run("spell damage boosts spells only", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		s.AddMinion(FirstPlayer, "geomancer")
		spell := m.Create("bolt", FirstPlayer)
		minion, _ := s.AddMinion(FirstPlayer, "m11")
		enemy := s.Player(SecondPlayer).Hero()

		m.Damage(spell, enemy, 3)
		require.Equal(t, 26, s.Card(enemy).HP())
		m.Damage(minion, enemy, 3)
		require.Equal(t, 23, s.Card(enemy).HP())
	})

	t.Run("cards outside play are not damaged", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		ref, _ := s.AddToHand(FirstPlayer, "m23")
		m.Damage(NoCard, ref, 2)
		require.Equal(t, 3, s.Card(ref).HP())
	})

	t.Run("damaging a spell panics", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		ref, _ := s.AddToHand(FirstPlayer, "bolt")
		require.Panics(t, func() { m.Damage(NoCard, ref, 1) })
	})
}

func TestDrawCard(t *testing.T) {
	t.Run("fatigue grows with every empty draw", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		hero := s.Player(FirstPlayer).Hero()
		for _, want := range []int{29, 27, 24} {
			require.Equal(t, NoCard, m.DrawCard(FirstPlayer))
			require.Equal(t, want, s.Card(hero).HP())
		}
		require.Equal(t, 3, s.Player(FirstPlayer).Fatigue())
	})

	t.Run("a full hand burns the drawn card", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		for i := 0; i < MaxHandCards; i++ {
			_, err := s.AddToHand(FirstPlayer, "m11")
			require.NoError(t, err)
		}
		_, err := s.AddToHand(FirstPlayer, "m11")
		require.ErrorIs(t, err, ErrHandFull)

		burnt := s.AddToDeck(FirstPlayer, "m55")
		require.Equal(t, NoCard, m.DrawCard(FirstPlayer))
		require.Equal(t, ZoneGraveyard, s.Card(burnt).Zone())
		require.Len(t, s.Player(FirstPlayer).Hand(), MaxHandCards)
		requireZonesConsistent(t, s)
	})

	t.Run("drawing picks a random deck card", func(t *testing.T) {
		s := newTestState(t, 0)
		m := NewManipulator(s, NewFlowContext(fixedRandom(2), FirstChoice{}))
		var deck []CardRef
		for _, id := range []CardID{"m11", "m23", "m55"} {
			deck = append(deck, s.AddToDeck(FirstPlayer, id))
		}
		require.Equal(t, deck[2], m.DrawCard(FirstPlayer))
		require.Equal(t, 1, s.Player(FirstPlayer).CardsDrawnThisTurn())
		requireZonesConsistent(t, s)
	})
}

func TestSummon(t *testing.T) {
	t.Run("summoning onto a full board fails cleanly", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		for i := 0; i < MaxMinions; i++ {
			_, err := m.Summon("m11", FirstPlayer, -1)
			require.NoError(t, err)
		}
		cards := s.CardCount()

		ref, err := m.Summon("m11", FirstPlayer, -1)
		require.ErrorIs(t, err, ErrBoardFull)
		require.Equal(t, NoCard, ref)
		require.Len(t, s.Player(FirstPlayer).Minions(), MaxMinions)
		require.Equal(t, cards, s.CardCount(), "no card should be created")
	})

	t.Run("summon inserts at the requested slot", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		left, _ := m.Summon("m11", FirstPlayer, -1)
		right, _ := m.Summon("m23", FirstPlayer, -1)
		middle, _ := m.Summon("m55", FirstPlayer, 1)
		require.Equal(t, []CardRef{left, middle, right}, s.Player(FirstPlayer).Minions())
		require.True(t, s.Card(middle).JustPlayed())
		requireZonesConsistent(t, s)
	})

	t.Run("summoning a spell panics", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		require.Panics(t, func() { m.Summon("bolt", FirstPlayer, -1) })
	})
}

func TestCheckpoint(t *testing.T) {
	t.Run("deathrattles cascade until the board is stable", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		first, _ := s.AddMinion(FirstPlayer, "rattle")
		second, _ := s.AddMinion(SecondPlayer, "rattle")
		survivor, _ := s.AddMinion(SecondPlayer, "m23")

		m.Destroy(first)
		require.Equal(t, ResultNotDetermined, m.Checkpoint())
		require.Equal(t, ZoneGraveyard, s.Card(first).Zone())
		require.Equal(t, ZoneGraveyard, s.Card(second).Zone())
		require.Equal(t, 1, s.Card(survivor).HP())
		require.Equal(t, 1, s.Player(FirstPlayer).MinionsDied())
		require.Equal(t, 1, s.Player(SecondPlayer).MinionsDied())
		requireZonesConsistent(t, s)
	})

	t.Run("silenced minions lose their deathrattle", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		rattle, _ := s.AddMinion(FirstPlayer, "rattle")
		victim, _ := s.AddMinion(SecondPlayer, "m23")

		m.Silence(rattle)
		m.Destroy(rattle)
		require.Equal(t, ResultNotDetermined, m.Checkpoint())
		require.Equal(t, ZoneGraveyard, s.Card(rattle).Zone())
		require.Equal(t, 3, s.Card(victim).HP())
	})

	t.Run("dead minions come back fresh", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		ref, _ := s.AddMinion(FirstPlayer, "m23")
		m.Enchant(ref, Enchantment{Name: "might", Modifiers: []Modifier{AddAttack(3)}})
		m.Damage(NoCard, ref, 5)
		m.Checkpoint()

		c := s.Card(ref)
		require.Equal(t, ZoneGraveyard, c.Zone())
		require.Equal(t, 2, c.Attack())
		require.Equal(t, 3, c.HP())
		require.Empty(t, c.Enchantments())
	})

	t.Run("both heroes dying is a draw", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		m.Damage(NoCard, s.Player(FirstPlayer).Hero(), 30)
		m.Damage(NoCard, s.Player(SecondPlayer).Hero(), 30)
		require.Equal(t, ResultDraw, m.Checkpoint())
	})

	t.Run("a broken weapon is destroyed", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		axe := m.Create("axe", FirstPlayer)
		m.EquipWeapon(axe)
		require.Equal(t, axe, s.Player(FirstPlayer).Weapon())

		s.Card(axe).damage = 2
		m.Checkpoint()
		require.Equal(t, NoCard, s.Player(FirstPlayer).Weapon())
		require.Equal(t, ZoneGraveyard, s.Card(axe).Zone())
	})

	t.Run("equipping replaces the old weapon", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		old := m.Create("axe", FirstPlayer)
		m.EquipWeapon(old)
		replacement := m.Create("axe", FirstPlayer)
		m.EquipWeapon(replacement)
		require.Equal(t, replacement, s.Player(FirstPlayer).Weapon())
		require.Equal(t, ZoneGraveyard, s.Card(old).Zone())
		requireZonesConsistent(t, s)
	})
}

func TestCopy(t *testing.T) {
	t.Run("copies are independent", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		ref, _ := s.AddMinion(FirstPlayer, "m23")
		m.Enchant(ref, Enchantment{Name: "might", Modifiers: []Modifier{AddAttack(3)}})
		hash := s.Hash()

		c := s.Copy()
		require.Equal(t, hash, c.Hash())
		cm := newTestManipulator(c)
		cm.Damage(NoCard, ref, 1)
		cm.Enchant(ref, Enchantment{Name: "more", Modifiers: []Modifier{AddAttack(1)}})
		cm.Summon("m11", FirstPlayer, -1)
		cm.Subscribe(EventTurnEnd, NoCard, true, func(m *Manipulator, self CardRef, ev *Event) bool { return true })

		require.Equal(t, hash, s.Hash(), "the original must not change")
		require.Equal(t, 5, s.Card(ref).Attack())
		require.Equal(t, 3, s.Card(ref).HP())
		require.Len(t, s.Player(FirstPlayer).Minions(), 1)
		require.Zero(t, s.Bus().Count(EventTurnEnd))
		require.NotEqual(t, hash, c.Hash())
	})

	t.Run("copy to reuses a scratch state", func(t *testing.T) {
		s := newTestState(t, 0)
		s.AddMinion(FirstPlayer, "m23")
		s.AddToDeck(SecondPlayer, "m55")

		scratch := New(s.Database())
		s.CopyTo(scratch)
		require.Equal(t, s.Hash(), scratch.Hash())
		newTestManipulator(scratch).Summon("m11", SecondPlayer, -1)

		s.CopyTo(scratch)
		require.Equal(t, s.Hash(), scratch.Hash())
		requireZonesConsistent(t, scratch)
	})
}

func TestZones(t *testing.T) {
	t.Run("every move keeps single zone membership", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		ref := s.AddToDeck(FirstPlayer, "m23")
		for _, zone := range []Zone{ZoneHand, ZonePlay, ZoneGraveyard, ZoneDeck, ZoneHand, ZoneRemoved} {
			m.ZoneChange(ref, zone, -1)
			require.Equal(t, zone, s.Card(ref).Zone())
			requireZonesConsistent(t, s)
		}
	})

	t.Run("illegal zones panic", func(t *testing.T) {
		s := newTestState(t, 0)
		m := newTestManipulator(s)
		spell, _ := s.AddToHand(FirstPlayer, "bolt")
		require.Panics(t, func() { m.ZoneChange(spell, ZonePlay, -1) })
		require.Panics(t, func() { m.ZoneChange(s.Player(FirstPlayer).Hero(), ZoneHand, -1) })
		require.Panics(t, func() { s.Card(NoCard) })
	})

	t.Run("a second hero panics", func(t *testing.T) {
		s := newTestState(t, 0)
		require.Panics(t, func() { s.SetHero(FirstPlayer, "hero", "") })
	})
}
