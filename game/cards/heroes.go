package cards

import "cardsim/game"

const (
	Uther   game.CardID = "HERO_04"
	Guldan  game.CardID = "HERO_07"
	Jaina   game.CardID = "HERO_08"
	Recruit game.CardID = "CS2_101t"

	Reinforce game.CardID = "CS2_101"
	LifeTap   game.CardID = "CS2_056"
	Fireblast game.CardID = "CS2_034"
)

func heroes() []game.CardData {
	hero := func(id game.CardID, name string) game.CardData {
		return game.CardData{ID: id, Name: name, Type: game.TypeHero, Stats: game.Stats{MaxHP: 30}}
	}
	return []game.CardData{
		hero(Uther, "Uther Lightbringer"),
		hero(Guldan, "Gul'dan"),
		hero(Jaina, "Jaina Proudmoore"),
		{
			ID:    Reinforce,
			Name:  "Reinforce",
			Type:  game.TypeHeroPower,
			Stats: game.Stats{Cost: 2},
			Playable: func(s *game.State, player game.PlayerID) bool {
				return !s.Player(player).MinionsFull()
			},
			OnPlay: func(m *game.Manipulator, ctx game.PlayContext) {
				m.Summon(Recruit, ctx.Player, -1)
			},
		},
		{
			ID:    LifeTap,
			Name:  "Life Tap",
			Type:  game.TypeHeroPower,
			Stats: game.Stats{Cost: 2},
			OnPlay: func(m *game.Manipulator, ctx game.PlayContext) {
				m.DrawCard(ctx.Player)
				m.Damage(ctx.Card, m.State().Player(ctx.Player).Hero(), 2)
			},
		},
		{
			ID:     Fireblast,
			Name:   "Fireblast",
			Type:   game.TypeHeroPower,
			Stats:  game.Stats{Cost: 2},
			Target: game.TargetAnyCharacter,
			OnPlay: func(m *game.Manipulator, ctx game.PlayContext) {
				m.Damage(ctx.Card, ctx.Target, 1)
			},
		},
		{ID: Recruit, Name: "Silver Hand Recruit", Type: game.TypeMinion, Stats: game.Stats{Cost: 1, Attack: 1, MaxHP: 1}},
	}
}
