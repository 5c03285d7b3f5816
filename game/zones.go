package game

import (
	"errors"
	"fmt"
	"slices"
)

type Zone int8

const (
	ZoneInvalid Zone = iota
	ZoneTransit
	ZoneDeck
	ZoneHand
	ZonePlay
	ZoneGraveyard
	ZoneRemoved
)

func (z Zone) String() string {
	switch z {
	case ZoneTransit:
		return "transit"
	case ZoneDeck:
		return "deck"
	case ZoneHand:
		return "hand"
	case ZonePlay:
		return "play"
	case ZoneGraveyard:
		return "graveyard"
	case ZoneRemoved:
		return "removed"
	default:
		return "invalid"
	}
}

const (
	MaxMinions   = 7
	MaxHandCards = 10
)

var (
	ErrBoardFull = errors.New("board is full")
	ErrHandFull  = errors.New("hand is full")
)

// Card returns the entity behind ref. The pointer is only valid until the
// next card is created in this state.
func (s *State) Card(ref CardRef) *Card {
	if !ref.IsValid() || ref.index() >= len(s.cards) {
		panic(fmt.Sprintf("invalid card reference %d", ref))
	}
	return &s.cards[ref.index()]
}

// CardCount is the number of entities ever created in this state.
func (s *State) CardCount() int {
	return len(s.cards)
}

// create allocates a new entity in the transit zone.
func (s *State) create(id CardID, player PlayerID) CardRef {
	data := s.db.Get(id)
	ref := CardRef(len(s.cards) + 1)
	s.cards = append(s.cards, newCard(ref, data, player))
	return ref
}

// moveTo relocates ref to zone. Position is only meaningful for ordered
// zones; a negative or oversized position appends. Capacity overflows and
// illegal type/zone combinations are programming errors.
func (s *State) moveTo(ref CardRef, zone Zone, pos int) {
	c := s.Card(ref)
	checkZone(c, zone)
	p := &s.players[c.player]

	switch zone {
	case ZoneHand:
		if len(p.hand) >= MaxHandCards && c.zone != ZoneHand {
			panic(fmt.Sprintf("moving %s into a full hand", c))
		}
	case ZonePlay:
		switch c.Type() {
		case TypeMinion:
			if len(p.minions) >= MaxMinions && c.zone != ZonePlay {
				panic(fmt.Sprintf("moving %s onto a full board", c))
			}
		case TypeHero:
			if p.hero.IsValid() && p.hero != ref {
				panic(fmt.Sprintf("player %s already has a hero", c.player))
			}
		case TypeHeroPower:
			if p.heroPower.IsValid() && p.heroPower != ref {
				panic(fmt.Sprintf("player %s already has a hero power", c.player))
			}
		case TypeWeapon:
			if p.weapon.IsValid() && p.weapon != ref {
				panic(fmt.Sprintf("player %s already has a weapon", c.player))
			}
		}
	}

	s.detach(c)
	c.zone = zone
	c.pos = -1
	switch zone {
	case ZoneDeck:
		p.deck = s.insert(p.deck, ref, pos)
	case ZoneHand:
		p.hand = s.insert(p.hand, ref, pos)
	case ZoneGraveyard:
		p.graveyard = s.insert(p.graveyard, ref, pos)
	case ZonePlay:
		switch c.Type() {
		case TypeMinion:
			p.minions = s.insert(p.minions, ref, pos)
		case TypeHero:
			p.hero, c.pos = ref, 0
		case TypeHeroPower:
			p.heroPower, c.pos = ref, 0
		case TypeWeapon:
			p.weapon, c.pos = ref, 0
		}
	}
}

// detach removes c from whatever ordered zone or player slot holds it.
func (s *State) detach(c *Card) {
	p := &s.players[c.player]
	switch c.zone {
	case ZoneDeck:
		p.deck = s.remove(p.deck, c.pos)
	case ZoneHand:
		p.hand = s.remove(p.hand, c.pos)
	case ZoneGraveyard:
		p.graveyard = s.remove(p.graveyard, c.pos)
	case ZonePlay:
		switch c.Type() {
		case TypeMinion:
			p.minions = s.remove(p.minions, c.pos)
		case TypeHero:
			p.hero = NoCard
		case TypeHeroPower:
			p.heroPower = NoCard
		case TypeWeapon:
			p.weapon = NoCard
		}
	}
}

func (s *State) insert(zone []CardRef, ref CardRef, pos int) []CardRef {
	if pos < 0 || pos > len(zone) {
		pos = len(zone)
	}
	zone = slices.Insert(zone, pos, ref)
	s.reindex(zone, pos)
	return zone
}

func (s *State) remove(zone []CardRef, pos int) []CardRef {
	if pos < 0 || pos >= len(zone) {
		panic(fmt.Sprintf("zone position %d out of range [0, %d)", pos, len(zone)))
	}
	zone = slices.Delete(zone, pos, pos+1)
	s.reindex(zone, pos)
	return zone
}

func (s *State) reindex(zone []CardRef, from int) {
	for i := from; i < len(zone); i++ {
		s.cards[zone[i].index()].pos = i
	}
}

func checkZone(c *Card, zone Zone) {
	ok := false
	switch zone {
	case ZoneTransit, ZoneRemoved:
		ok = c.Type() != TypeHero && c.Type() != TypeHeroPower
	case ZoneDeck, ZoneHand:
		ok = c.Type() == TypeMinion || c.Type() == TypeSpell || c.Type() == TypeWeapon
	case ZonePlay:
		ok = c.Type() != TypeSpell
	case ZoneGraveyard:
		ok = c.Type() == TypeMinion || c.Type() == TypeSpell || c.Type() == TypeWeapon
	}
	if !ok {
		panic(fmt.Sprintf("card %s of type %s cannot enter zone %s", c.data.ID, c.Type(), zone))
	}
}
