package cards

import "cardsim/game"

const (
	Frostbolt     game.CardID = "CS2_024"
	LightningBolt game.CardID = "EX1_238"
	ArcaneMissile game.CardID = "EX1_277"
)

func mage() []game.CardData {
	bolt := spell(LightningBolt, "Lightning Bolt", 1, game.TargetAnyCharacter, func(m *game.Manipulator, ctx game.PlayContext) {
		m.Damage(ctx.Card, ctx.Target, 3)
	})
	bolt.Overload = 1

	return []game.CardData{
		spell(Frostbolt, "Frostbolt", 2, game.TargetAnyCharacter, func(m *game.Manipulator, ctx game.PlayContext) {
			m.Damage(ctx.Card, ctx.Target, 3)
			m.Freeze(ctx.Target)
		}),
		bolt,
		// Three missiles, each at a random enemy character.
		spell(ArcaneMissile, "Arcane Missiles", 1, game.TargetNone, func(m *game.Manipulator, ctx game.PlayContext) {
			s := m.State()
			missiles := 3 + s.SpellDamage(ctx.Player)
			for i := 0; i < missiles; i++ {
				targets := game.Targets(s, game.TargetEnemyCharacter, ctx.Player)
				alive := targets[:0]
				for _, ref := range targets {
					if s.Card(ref).HP() > 0 {
						alive = append(alive, ref)
					}
				}
				if len(alive) == 0 {
					return
				}
				m.Damage(game.NoCard, alive[m.Random().Get(len(alive))], 1)
			}
		}),
	}
}
