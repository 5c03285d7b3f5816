package game

import (
	"fmt"
	"sort"
)

// TargetKind describes which characters a card may target when played.
type TargetKind int8

const (
	TargetNone TargetKind = iota
	TargetAnyCharacter
	TargetAnyMinion
	TargetFriendlyMinion
	TargetEnemyMinion
	TargetEnemyCharacter
)

// PlayContext is handed to a card's play callbacks.
type PlayContext struct {
	Card   CardRef
	Player PlayerID
	Target CardRef
}

// Trigger is an event handler that is registered while its card is in play.
type Trigger struct {
	Event   EventType
	Handler Handler
}

// Aura applies an enchantment to every minion in play matching Filter for as
// long as the source stays in play.
type Aura struct {
	Enchantment Enchantment
	Filter      func(s *State, source, target CardRef) bool
}

// CardData is the immutable definition of a card. Behavior is attached as
// closures keyed by the definition; the stat table lives in Stats.
type CardData struct {
	ID       CardID
	Name     string
	Type     CardType
	Stats    Stats
	Overload int
	Target   TargetKind
	// TargetOptional allows the card to be played when no target exists.
	TargetOptional bool

	// Playable is an extra legality check beyond cost, board space and targets.
	Playable    func(s *State, player PlayerID) bool
	OnPlay      func(m *Manipulator, ctx PlayContext)
	Deathrattle func(m *Manipulator, ctx PlayContext)
	Triggers    []Trigger
	Aura        *Aura
}

// Database is the card catalogue a state is created from. It is read-only once
// built and may be shared between states and goroutines.
type Database struct {
	cards map[CardID]*CardData
}

func NewDatabase(cards ...CardData) *Database {
	db := &Database{cards: make(map[CardID]*CardData, len(cards))}
	for _, card := range cards {
		db.Register(card)
	}
	return db
}

// Register adds a card definition. Duplicate ids are rejected.
func (db *Database) Register(card CardData) {
	if card.ID == "" {
		panic("card definition without id")
	}
	if card.Type == TypeInvalid {
		panic(fmt.Sprintf("card %s has no type", card.ID))
	}
	if _, ok := db.cards[card.ID]; ok {
		panic(fmt.Sprintf("card %s registered twice", card.ID))
	}
	c := card
	db.cards[card.ID] = &c
}

func (db *Database) Get(id CardID) *CardData {
	data, ok := db.cards[id]
	if !ok {
		panic(fmt.Sprintf("unknown card id %q", id))
	}
	return data
}

func (db *Database) Lookup(id CardID) (*CardData, bool) {
	data, ok := db.cards[id]
	return data, ok
}

// IDs returns every registered id in sorted order.
func (db *Database) IDs() []CardID {
	ids := make([]CardID, 0, len(db.cards))
	for id := range db.cards {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
