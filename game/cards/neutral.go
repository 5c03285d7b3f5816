package cards

import "cardsim/game"

const (
	Wisp             game.CardID = "CS2_231"
	StonetuskBoar    game.CardID = "CS2_171"
	ArgentSquire     game.CardID = "EX1_008"
	RiverCrocolisk   game.CardID = "CS2_120"
	KoboldGeomancer  game.CardID = "CS2_142"
	VoodooDoctor     game.CardID = "EX1_011"
	AbusiveSergeant  game.CardID = "CS2_188"
	IronfurGrizzly   game.CardID = "CS2_125"
	RaidLeader       game.CardID = "CS2_122"
	IronbeakOwl      game.CardID = "CS2_203"
	WildPyromancer   game.CardID = "NEW1_020"
	GadgetzanAuction game.CardID = "EX1_095"
	LootHoarder      game.CardID = "EX1_096"
	BoulderfistOgre  game.CardID = "CS2_200"
	DeathsBite       game.CardID = "FP1_021"
)

func minion(id game.CardID, name string, cost, attack, hp int) game.CardData {
	return game.CardData{
		ID:    id,
		Name:  name,
		Type:  game.TypeMinion,
		Stats: game.Stats{Cost: cost, Attack: attack, MaxHP: hp},
	}
}

func neutral() []game.CardData {
	boar := minion(StonetuskBoar, "Stonetusk Boar", 1, 1, 1)
	boar.Stats.Charge = true

	squire := minion(ArgentSquire, "Argent Squire", 1, 1, 1)
	squire.Stats.Shield = true

	geomancer := minion(KoboldGeomancer, "Kobold Geomancer", 2, 2, 2)
	geomancer.Stats.SpellDamage = 1

	doctor := minion(VoodooDoctor, "Voodoo Doctor", 1, 2, 1)
	doctor.Target = game.TargetAnyCharacter
	doctor.TargetOptional = true
	doctor.OnPlay = func(m *game.Manipulator, ctx game.PlayContext) {
		if ctx.Target.IsValid() {
			m.Heal(ctx.Card, ctx.Target, 2)
		}
	}

	sergeant := minion(AbusiveSergeant, "Abusive Sergeant", 1, 1, 1)
	sergeant.Target = game.TargetAnyMinion
	sergeant.TargetOptional = true
	sergeant.OnPlay = func(m *game.Manipulator, ctx game.PlayContext) {
		if !ctx.Target.IsValid() {
			return
		}
		e := enchant("CS2_188o", game.AddAttack(2))
		e.Source = ctx.Card
		e.Lifetime = game.ThisTurn
		m.Enchant(ctx.Target, e)
	}

	grizzly := minion(IronfurGrizzly, "Ironfur Grizzly", 3, 3, 3)
	grizzly.Stats.Taunt = true

	leader := minion(RaidLeader, "Raid Leader", 3, 2, 2)
	leader.Aura = &game.Aura{
		Enchantment: enchant("CS2_122e", game.AddAttack(1)),
		Filter: func(s *game.State, source, target game.CardRef) bool {
			return source != target && s.Card(source).Player() == s.Card(target).Player()
		},
	}

	owl := minion(IronbeakOwl, "Ironbeak Owl", 3, 2, 1)
	owl.Target = game.TargetAnyMinion
	owl.TargetOptional = true
	owl.OnPlay = func(m *game.Manipulator, ctx game.PlayContext) {
		if ctx.Target.IsValid() {
			m.Silence(ctx.Target)
		}
	}

	pyromancer := minion(WildPyromancer, "Wild Pyromancer", 2, 3, 2)
	pyromancer.Triggers = []game.Trigger{{
		Event: game.EventSpellPlayed,
		Handler: func(m *game.Manipulator, self game.CardRef, ev *game.Event) bool {
			if ev.Player != owner(m, self) {
				return true
			}
			for _, ref := range minions(m.State()) {
				m.Damage(self, ref, 1)
			}
			return true
		},
	}}

	auctioneer := minion(GadgetzanAuction, "Gadgetzan Auctioneer", 6, 4, 4)
	auctioneer.Triggers = []game.Trigger{{
		Event: game.EventSpellPlayed,
		Handler: func(m *game.Manipulator, self game.CardRef, ev *game.Event) bool {
			if ev.Player == owner(m, self) {
				m.DrawCard(ev.Player)
			}
			return true
		},
	}}

	hoarder := minion(LootHoarder, "Loot Hoarder", 2, 2, 1)
	hoarder.Deathrattle = func(m *game.Manipulator, ctx game.PlayContext) {
		m.DrawCard(ctx.Player)
	}

	bite := game.CardData{
		ID:    DeathsBite,
		Name:  "Death's Bite",
		Type:  game.TypeWeapon,
		Stats: game.Stats{Cost: 4, Attack: 4, MaxHP: 2},
		Deathrattle: func(m *game.Manipulator, ctx game.PlayContext) {
			for _, ref := range minions(m.State()) {
				m.Damage(ctx.Card, ref, 1)
			}
		},
	}

	return []game.CardData{
		minion(Wisp, "Wisp", 0, 1, 1),
		boar,
		squire,
		minion(RiverCrocolisk, "River Crocolisk", 2, 2, 3),
		geomancer,
		doctor,
		sergeant,
		grizzly,
		leader,
		owl,
		pyromancer,
		auctioneer,
		hoarder,
		minion(BoulderfistOgre, "Boulderfist Ogre", 6, 6, 7),
		bite,
	}
}
