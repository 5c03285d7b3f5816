// Package cards is a small sample catalogue. Each card is a stat table plus
// the closures that give it behavior.
package cards

import (
	"slices"
	"sync"

	"cardsim/game"
)

var (
	once sync.Once
	db   *game.Database
)

// Database returns the shared catalogue of every card in this package.
func Database() *game.Database {
	once.Do(func() {
		db = game.NewDatabase()
		for _, group := range [][]game.CardData{heroes(), neutral(), paladin(), warlock(), mage()} {
			for _, card := range group {
				db.Register(card)
			}
		}
	})
	return db
}

// minions returns every minion in play, current player first.
func minions(s *game.State) []game.CardRef {
	out := slices.Clone(s.CurrentPlayer().Minions())
	return append(out, s.OppositePlayer().Minions()...)
}

func owner(m *game.Manipulator, ref game.CardRef) game.PlayerID {
	return m.Card(ref).Player()
}

func enchant(name string, modifiers ...game.Modifier) game.Enchantment {
	return game.Enchantment{Name: name, Modifiers: modifiers}
}
