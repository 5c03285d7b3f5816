package game

import "fmt"

// Scenario setup helpers. They place cards directly, without paying costs or
// raising play events, but keep zone invariants and register triggers.

// SetHero puts hero and its hero power into play for player.
func (s *State) SetHero(player PlayerID, hero, heroPower CardID) CardRef {
	m := probeManipulator(s)
	ref := s.create(hero, player)
	if s.Card(ref).Type() != TypeHero {
		panic(fmt.Sprintf("%s is not a hero", hero))
	}
	m.ZoneChange(ref, ZonePlay, 0)
	if heroPower != "" {
		power := s.create(heroPower, player)
		if s.Card(power).Type() != TypeHeroPower {
			panic(fmt.Sprintf("%s is not a hero power", heroPower))
		}
		m.ZoneChange(power, ZonePlay, 0)
	}
	return ref
}

func (s *State) AddToDeck(player PlayerID, id CardID) CardRef {
	ref := s.create(id, player)
	probeManipulator(s).ZoneChange(ref, ZoneDeck, -1)
	return ref
}

// AddToHand places a card in player's hand. A full hand is an error.
func (s *State) AddToHand(player PlayerID, id CardID) (CardRef, error) {
	if s.players[player].HandFull() {
		return NoCard, ErrHandFull
	}
	ref := s.create(id, player)
	probeManipulator(s).ZoneChange(ref, ZoneHand, -1)
	return ref, nil
}

// AddMinion puts a ready minion onto player's board without summoning
// sickness.
func (s *State) AddMinion(player PlayerID, id CardID) (CardRef, error) {
	if s.players[player].MinionsFull() {
		return NoCard, ErrBoardFull
	}
	ref := s.create(id, player)
	probeManipulator(s).ZoneChange(ref, ZonePlay, -1)
	s.Card(ref).justPlayed = false
	return ref, nil
}

// SetCurrent hands the turn to player, for mid-game scenarios.
func (s *State) SetCurrent(player PlayerID, turn int) {
	s.current = player
	s.turn = turn
}
