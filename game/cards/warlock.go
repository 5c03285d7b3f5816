package cards

import "cardsim/game"

const (
	Chogall    game.CardID = "OG_121"
	Hellfire   game.CardID = "CS2_062"
	ShadowBolt game.CardID = "CS2_057"
)

func warlock() []game.CardData {
	chogall := minion(Chogall, "Cho'gall", 7, 7, 7)
	// The next spell played this turn costs health instead of mana.
	chogall.OnPlay = func(m *game.Manipulator, ctx game.PlayContext) {
		turn, player := m.State().Turn(), ctx.Player
		m.Subscribe(game.EventGetPlayCardCost, game.NoCard, true, func(m *game.Manipulator, _ game.CardRef, ev *game.Event) bool {
			if m.State().Turn() > turn {
				return false
			}
			if ev.Player != player || m.Card(ev.Source).Type() != game.TypeSpell {
				return true
			}
			ev.HealthCost = true
			return false
		})
	}

	return []game.CardData{
		chogall,
		spell(Hellfire, "Hellfire", 4, game.TargetNone, func(m *game.Manipulator, ctx game.PlayContext) {
			s := m.State()
			targets := []game.CardRef{s.Player(game.FirstPlayer).Hero(), s.Player(game.SecondPlayer).Hero()}
			for _, ref := range append(targets, minions(s)...) {
				m.Damage(ctx.Card, ref, 3)
			}
		}),
		spell(ShadowBolt, "Shadow Bolt", 3, game.TargetAnyMinion, func(m *game.Manipulator, ctx game.PlayContext) {
			m.Damage(ctx.Card, ctx.Target, 4)
		}),
	}
}
