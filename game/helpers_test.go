package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testDatabase() *Database {
	minion := func(id CardID, cost, attack, hp int) CardData {
		return CardData{ID: id, Name: string(id), Type: TypeMinion, Stats: Stats{Cost: cost, Attack: attack, MaxHP: hp}}
	}
	taunt := minion("taunt", 2, 1, 4)
	taunt.Stats.Taunt = true
	shield := minion("shield", 1, 1, 1)
	shield.Stats.Shield = true
	charger := minion("charger", 1, 1, 1)
	charger.Stats.Charge = true
	rattle := minion("rattle", 1, 1, 1)
	rattle.Deathrattle = func(m *Manipulator, ctx PlayContext) {
		for _, player := range []PlayerID{FirstPlayer, SecondPlayer} {
			for _, ref := range append([]CardRef(nil), m.State().Player(player).Minions()...) {
				m.Damage(ctx.Card, ref, 1)
			}
		}
	}
	aura := minion("aura", 2, 1, 1)
	aura.Aura = &Aura{
		Enchantment: Enchantment{Name: "aura-buff", Modifiers: []Modifier{AddAttack(1), AddMaxHP(1)}},
		Filter: func(s *State, source, target CardRef) bool {
			return source != target && s.Card(source).Player() == s.Card(target).Player()
		},
	}
	geomancer := minion("geomancer", 2, 2, 2)
	geomancer.Stats.SpellDamage = 1

	return NewDatabase(
		CardData{ID: "hero", Name: "hero", Type: TypeHero, Stats: Stats{MaxHP: 30}},
		CardData{
			ID:    "power",
			Name:  "power",
			Type:  TypeHeroPower,
			Stats: Stats{Cost: 2},
			OnPlay: func(m *Manipulator, ctx PlayContext) {
				m.GainArmor(ctx.Player, 2)
			},
		},
		minion("m11", 1, 1, 1),
		minion("m23", 2, 2, 3),
		minion("m55", 5, 5, 5),
		taunt,
		shield,
		charger,
		rattle,
		aura,
		geomancer,
		CardData{
			ID:     "bolt",
			Name:   "bolt",
			Type:   TypeSpell,
			Stats:  Stats{Cost: 1},
			Target: TargetAnyCharacter,
			OnPlay: func(m *Manipulator, ctx PlayContext) {
				m.Damage(ctx.Card, ctx.Target, 3)
			},
		},
		CardData{
			ID:       "zap",
			Name:     "zap",
			Type:     TypeSpell,
			Stats:    Stats{Cost: 1},
			Overload: 1,
			Target:   TargetEnemyCharacter,
			OnPlay: func(m *Manipulator, ctx PlayContext) {
				m.Damage(ctx.Card, ctx.Target, 2)
			},
		},
		CardData{ID: "axe", Name: "axe", Type: TypeWeapon, Stats: Stats{Cost: 2, Attack: 3, MaxHP: 2}},
	)
}

// fixedRandom always answers the same index, clamped to the bound.
type fixedRandom int

func (r fixedRandom) Get(exclusiveMax int) int {
	return min(int(r), exclusiveMax-1)
}

// scriptedChoices replays a list of choices, then picks the first option.
type scriptedChoices struct {
	choices []int
	asked   []ChoiceType
}

func (c *scriptedChoices) GetChoice(kind ChoiceType, count int) int {
	c.asked = append(c.asked, kind)
	if len(c.choices) == 0 {
		return 0
	}
	choice := c.choices[0]
	c.choices = c.choices[1:]
	return choice
}

// newTestState returns a started-looking state: heroes in play, first player
// to act on turn 1 with the given resource.
func newTestState(t *testing.T, resource int) *State {
	t.Helper()
	s := New(testDatabase())
	s.SetHero(FirstPlayer, "hero", "power")
	s.SetHero(SecondPlayer, "hero", "power")
	s.SetCurrent(FirstPlayer, 1)
	s.Player(FirstPlayer).SetResource(Resource{Current: resource, Total: resource})
	s.Player(SecondPlayer).SetResource(Resource{Current: resource, Total: resource})
	return s
}

func newTestManipulator(s *State) *Manipulator {
	return NewManipulator(s, NewFlowContext(fixedRandom(0), FirstChoice{}))
}

// requireZonesConsistent checks every card sits in exactly one zone and the
// zone lists agree with the cards' own bookkeeping.
func requireZonesConsistent(t *testing.T, s *State) {
	t.Helper()
	seen := make(map[CardRef]int)
	for _, player := range []PlayerID{FirstPlayer, SecondPlayer} {
		p := s.Player(player)
		lists := map[Zone][]CardRef{
			ZoneDeck:      p.Deck(),
			ZoneHand:      p.Hand(),
			ZoneGraveyard: p.Graveyard(),
		}
		for zone, refs := range lists {
			for i, ref := range refs {
				c := s.Card(ref)
				require.Equal(t, zone, c.Zone(), "card %s should be in zone %s", c, zone)
				require.Equal(t, i, c.ZonePosition(), "card %s should know its position", c)
				require.Equal(t, player, c.Player(), "card %s should belong to its zone owner", c)
				seen[ref]++
			}
		}
		for i, ref := range p.Minions() {
			c := s.Card(ref)
			require.Equal(t, ZonePlay, c.Zone(), "minion %s should be in play", c)
			require.Equal(t, i, c.ZonePosition(), "minion %s should know its slot", c)
			seen[ref]++
		}
		for _, ref := range []CardRef{p.Hero(), p.HeroPower(), p.Weapon()} {
			if ref.IsValid() {
				require.Equal(t, ZonePlay, s.Card(ref).Zone())
				seen[ref]++
			}
		}
	}
	s.ForEachCard(func(c *Card) bool {
		switch c.Zone() {
		case ZoneTransit, ZoneRemoved:
			require.Zero(t, seen[c.Ref()], "card %s outside the board should not be listed", c)
		default:
			require.Equal(t, 1, seen[c.Ref()], "card %s should be listed exactly once", c)
		}
		return true
	})
}
