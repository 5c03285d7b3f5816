package cards

import (
	"fmt"

	"cardsim/game"
)

// Class is a hero with its hero power and a sample deck.
type Class struct {
	Name      string
	Hero      game.CardID
	HeroPower game.CardID
	Deck      []game.CardID
}

func repeat(ids ...game.CardID) []game.CardID {
	out := make([]game.CardID, 0, 2*len(ids))
	for _, id := range ids {
		out = append(out, id, id)
	}
	return out
}

var classes = map[string]Class{
	"paladin": {
		Name:      "paladin",
		Hero:      Uther,
		HeroPower: Reinforce,
		Deck: repeat(
			ArgentSquire, BlessingOfMight, HandOfProtection, Humility, VoodooDoctor,
			AbusiveSergeant, HolyLight, RiverCrocolisk, KoboldGeomancer, RaidLeader,
			IronfurGrizzly, TruesilverChampion, BlessingOfKings, Consecration, GuardianOfKings,
		),
	},
	"warlock": {
		Name:      "warlock",
		Hero:      Guldan,
		HeroPower: LifeTap,
		Deck: repeat(
			Wisp, StonetuskBoar, ArgentSquire, VoodooDoctor, LootHoarder,
			RiverCrocolisk, WildPyromancer, ShadowBolt, IronbeakOwl, IronfurGrizzly,
			Hellfire, DeathsBite, GadgetzanAuction, BoulderfistOgre, Chogall,
		),
	},
	"mage": {
		Name:      "mage",
		Hero:      Jaina,
		HeroPower: Fireblast,
		Deck: repeat(
			Wisp, ArcaneMissile, LightningBolt, StonetuskBoar, ArgentSquire,
			Frostbolt, KoboldGeomancer, LootHoarder, RiverCrocolisk, WildPyromancer,
			IronbeakOwl, RaidLeader, IronfurGrizzly, GadgetzanAuction, BoulderfistOgre,
		),
	},
}

// LookupClass returns a class by name.
func LookupClass(name string) (Class, error) {
	c, ok := classes[name]
	if !ok {
		return Class{}, fmt.Errorf("unknown class %q", name)
	}
	return c, nil
}

// NewGame builds a state with both heroes in play and full decks. The game
// has not started yet; see game.FlowController.StartGame.
func NewGame(first, second Class) *game.State {
	s := game.New(Database())
	for player, class := range [2]Class{first, second} {
		player := game.PlayerID(player)
		s.SetHero(player, class.Hero, class.HeroPower)
		for _, id := range class.Deck {
			s.AddToDeck(player, id)
		}
	}
	return s
}
