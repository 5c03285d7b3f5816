package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
)

type StateHash uint64

// State is the complete game: the card arena, both players and the event
// subscriptions. It is not safe for concurrent use; searchers work on copies.
type State struct {
	db      *Database
	cards   []Card
	players [2]Player
	bus     Bus
	current PlayerID
	turn    int
}

func New(db *Database) *State {
	if db == nil {
		panic("nil card database")
	}
	s := &State{db: db}
	s.players[FirstPlayer].id = FirstPlayer
	s.players[SecondPlayer].id = SecondPlayer
	return s
}

func (s *State) Database() *Database    { return s.db }
func (s *State) Current() PlayerID      { return s.current }
func (s *State) Turn() int              { return s.turn }
func (s *State) Bus() *Bus              { return &s.bus }
func (s *State) CurrentPlayer() *Player { return &s.players[s.current] }
func (s *State) OppositePlayer() *Player {
	return &s.players[s.current.Opposite()]
}

func (s *State) Player(id PlayerID) *Player {
	if id != FirstPlayer && id != SecondPlayer {
		panic(fmt.Sprintf("invalid player %d", id))
	}
	return &s.players[id]
}

// ForEachCard visits the arena in creation order until fn returns false.
func (s *State) ForEachCard(fn func(c *Card) bool) {
	for i := range s.cards {
		if !fn(&s.cards[i]) {
			return
		}
	}
}

// Copy returns an independent deep copy. Card definitions and handler
// closures are shared; they are immutable.
func (s *State) Copy() *State {
	out := &State{
		db:      s.db,
		cards:   make([]Card, len(s.cards), cap(s.cards)),
		bus:     s.bus.clone(),
		current: s.current,
		turn:    s.turn,
	}
	copy(out.cards, s.cards)
	for i := range out.cards {
		out.cards[i].enchants = s.cards[i].enchants.clone()
	}
	for i := range s.players {
		out.players[i] = s.players[i].clone()
	}
	return out
}

// CopyTo overwrites dst with s, reusing dst's buffers.
func (s *State) CopyTo(dst *State) {
	if dst == s {
		return
	}
	dst.db = s.db
	dst.cards = append(dst.cards[:0], s.cards...)
	for i := range dst.cards {
		dst.cards[i].enchants = s.cards[i].enchants.clone()
	}
	for i := range s.players {
		s.players[i].cloneInto(&dst.players[i])
	}
	s.bus.cloneInto(&dst.bus)
	dst.current = s.current
	dst.turn = s.turn
}

// Hash fingerprints the public part of the state.
func (s *State) Hash() StateHash {
	hasher := fnv.New64a()
	write := func(v int) {
		binary.Write(hasher, binary.LittleEndian, int64(v))
	}

	write(int(s.current))
	write(s.turn)
	for i := range s.players {
		p := &s.players[i]
		write(p.resource.Current)
		write(p.resource.Total)
		write(p.resource.Overloaded)
		write(p.resource.OverloadNext)
		write(p.fatigue)
		write(len(p.deck))
		if p.hero.IsValid() {
			hero := s.Card(p.hero)
			write(hero.HP())
			write(hero.Armor())
		}
		for _, ref := range p.hand {
			hasher.Write([]byte(s.Card(ref).ID()))
		}
		for _, ref := range p.minions {
			c := s.Card(ref)
			hasher.Write([]byte(c.ID()))
			write(c.Attack())
			write(c.HP())
			write(c.MaxHP())
		}
		if p.weapon.IsValid() {
			w := s.Card(p.weapon)
			hasher.Write([]byte(w.ID()))
			write(w.HP())
		}
	}
	return StateHash(hasher.Sum64())
}

// HeroAttack is the attack a hero swings with, including its weapon.
func (s *State) HeroAttack(player PlayerID) int {
	p := &s.players[player]
	attack := s.Card(p.hero).Attack()
	if p.weapon.IsValid() {
		attack += s.Card(p.weapon).Attack()
	}
	return attack
}

// SpellDamage sums the spell damage bonus of a player's minions in play.
func (s *State) SpellDamage(player PlayerID) int {
	total := 0
	for _, ref := range s.players[player].minions {
		total += s.Card(ref).SpellDamage()
	}
	return total
}

// Result reports the game outcome from the heroes' health.
func (s *State) Result() Result {
	first := s.heroDead(FirstPlayer)
	second := s.heroDead(SecondPlayer)
	switch {
	case first && second:
		return ResultDraw
	case first:
		return ResultSecondPlayerWin
	case second:
		return ResultFirstPlayerWin
	default:
		return ResultNotDetermined
	}
}

func (s *State) heroDead(player PlayerID) bool {
	hero := s.players[player].hero
	return hero.IsValid() && s.Card(hero).HP() <= 0
}
