package cards

import "cardsim/game"

const (
	BlessingOfMight    game.CardID = "CS2_087"
	HandOfProtection   game.CardID = "EX1_371"
	Humility           game.CardID = "EX1_360"
	HolyLight          game.CardID = "CS2_089"
	TruesilverChampion game.CardID = "CS2_097"
	BlessingOfKings    game.CardID = "CS2_092"
	Consecration       game.CardID = "CS2_093"
	HammerOfWrath      game.CardID = "CS2_094"
	GuardianOfKings    game.CardID = "CS2_088"
)

func spell(id game.CardID, name string, cost int, target game.TargetKind, onPlay func(m *game.Manipulator, ctx game.PlayContext)) game.CardData {
	return game.CardData{
		ID:     id,
		Name:   name,
		Type:   game.TypeSpell,
		Stats:  game.Stats{Cost: cost},
		Target: target,
		OnPlay: onPlay,
	}
}

func paladin() []game.CardData {
	guardian := minion(GuardianOfKings, "Guardian of Kings", 7, 5, 6)
	guardian.OnPlay = func(m *game.Manipulator, ctx game.PlayContext) {
		m.Heal(ctx.Card, m.State().Player(ctx.Player).Hero(), 6)
	}

	return []game.CardData{
		spell(BlessingOfMight, "Blessing of Might", 1, game.TargetAnyMinion, func(m *game.Manipulator, ctx game.PlayContext) {
			m.Enchant(ctx.Target, enchant("CS2_087e", game.AddAttack(3)))
		}),
		spell(HandOfProtection, "Hand of Protection", 1, game.TargetAnyMinion, func(m *game.Manipulator, ctx game.PlayContext) {
			m.Enchant(ctx.Target, enchant("EX1_371e", game.Grant(game.AttrShield, true)))
		}),
		spell(Humility, "Humility", 1, game.TargetAnyMinion, func(m *game.Manipulator, ctx game.PlayContext) {
			m.Enchant(ctx.Target, enchant("EX1_360e", game.SetAttack(1)))
		}),
		spell(HolyLight, "Holy Light", 2, game.TargetAnyCharacter, func(m *game.Manipulator, ctx game.PlayContext) {
			m.Heal(ctx.Card, ctx.Target, 6)
		}),
		{
			ID:    TruesilverChampion,
			Name:  "Truesilver Champion",
			Type:  game.TypeWeapon,
			Stats: game.Stats{Cost: 4, Attack: 4, MaxHP: 2},
			Triggers: []game.Trigger{{
				Event: game.EventBeforeAttack,
				Handler: func(m *game.Manipulator, self game.CardRef, ev *game.Event) bool {
					hero := m.State().Player(owner(m, self)).Hero()
					if ev.Source == hero {
						m.Heal(self, hero, 2)
					}
					return true
				},
			}},
		},
		spell(BlessingOfKings, "Blessing of Kings", 4, game.TargetAnyMinion, func(m *game.Manipulator, ctx game.PlayContext) {
			m.Enchant(ctx.Target, enchant("CS2_092e", game.AddAttack(4), game.AddMaxHP(4)))
		}),
		spell(Consecration, "Consecration", 4, game.TargetNone, func(m *game.Manipulator, ctx game.PlayContext) {
			enemies := m.State().Player(ctx.Player.Opposite())
			for _, ref := range append([]game.CardRef{enemies.Hero()}, enemies.Minions()...) {
				m.Damage(ctx.Card, ref, 2)
			}
		}),
		spell(HammerOfWrath, "Hammer of Wrath", 4, game.TargetAnyCharacter, func(m *game.Manipulator, ctx game.PlayContext) {
			m.Damage(ctx.Card, ctx.Target, 3)
			m.DrawCard(ctx.Player)
		}),
		guardian,
	}
}
