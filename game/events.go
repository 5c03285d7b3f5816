package game

type EventType int8

const (
	EventTurnStart EventType = iota
	EventTurnEnd
	EventGetPlayCardCost
	EventCalculateDamage
	EventAfterDamage
	EventAfterHeal
	EventBeforeAttack
	EventAfterAttack
	EventCardDrawn
	EventMinionSummoned
	EventMinionDied
	EventZoneChanged
	EventSpellPlayed

	eventTypeCount
)

func (e EventType) String() string {
	switch e {
	case EventTurnStart:
		return "turn-start"
	case EventTurnEnd:
		return "turn-end"
	case EventGetPlayCardCost:
		return "get-play-card-cost"
	case EventCalculateDamage:
		return "calculate-damage"
	case EventAfterDamage:
		return "after-damage"
	case EventAfterHeal:
		return "after-heal"
	case EventBeforeAttack:
		return "before-attack"
	case EventAfterAttack:
		return "after-attack"
	case EventCardDrawn:
		return "card-drawn"
	case EventMinionSummoned:
		return "minion-summoned"
	case EventMinionDied:
		return "minion-died"
	case EventZoneChanged:
		return "zone-changed"
	case EventSpellPlayed:
		return "spell-played"
	default:
		return "unknown"
	}
}

// Event is the mutable context passed to handlers. Handlers may change Amount
// and HealthCost on events that compute a value.
type Event struct {
	Type   EventType
	Player PlayerID
	Source CardRef
	Target CardRef
	Amount int
	From   Zone
	To     Zone

	// HealthCost makes a play card cost paid from the hero's health.
	HealthCost bool

	stopped bool
	probe   bool
}

// Stop prevents the remaining handlers from seeing this event.
func (e *Event) Stop() {
	e.stopped = true
}

// IsProbe reports whether the event is part of a legality check. State must
// not be changed while probing.
func (e *Event) IsProbe() bool {
	return e.probe
}

// Handler reacts to an event. Returning false removes the subscription.
type Handler func(m *Manipulator, self CardRef, ev *Event) bool

type SubscriptionID int32

type subscription struct {
	id         SubscriptionID
	owner      CardRef
	persistent bool
	handler    Handler
	dead       bool
}

// Bus holds the subscriptions of one state, in subscription order per event
// type. Removal during a dispatch only marks the entry; entries are compacted
// once the outermost dispatch returns.
type Bus struct {
	subs   [eventTypeCount][]subscription
	nextID SubscriptionID
	depth  int
	dirty  bool
}

func (b *Bus) subscribe(typ EventType, owner CardRef, persistent bool, handler Handler) SubscriptionID {
	if handler == nil {
		panic("nil event handler")
	}
	b.nextID++
	b.subs[typ] = append(b.subs[typ], subscription{
		id:         b.nextID,
		owner:      owner,
		persistent: persistent,
		handler:    handler,
	})
	return b.nextID
}

func (b *Bus) unsubscribe(id SubscriptionID) bool {
	for typ := range b.subs {
		for i := range b.subs[typ] {
			s := &b.subs[typ][i]
			if s.id == id && !s.dead {
				b.kill(s)
				return true
			}
		}
	}
	return false
}

// removeOwned drops subscriptions owned by ref. Persistent ones survive
// unless all is set.
func (b *Bus) removeOwned(ref CardRef, all bool) {
	// Compact once after the scan so the loop never sees a shrinking slice.
	b.depth++
	defer func() {
		b.depth--
		if b.depth == 0 && b.dirty {
			b.compact()
		}
	}()
	for typ := range b.subs {
		for i := range b.subs[typ] {
			s := &b.subs[typ][i]
			if s.owner == ref && !s.dead && (all || !s.persistent) {
				b.kill(s)
			}
		}
	}
}

func (b *Bus) kill(s *subscription) {
	s.dead = true
	s.handler = nil
	b.dirty = true
	if b.depth == 0 {
		b.compact()
	}
}

// Count returns the live subscriptions for typ.
func (b *Bus) Count(typ EventType) int {
	n := 0
	for _, s := range b.subs[typ] {
		if !s.dead {
			n++
		}
	}
	return n
}

func (b *Bus) dispatch(m *Manipulator, ev *Event) {
	b.depth++
	// Subscriptions added by handlers land after n and are not delivered.
	n := len(b.subs[ev.Type])
	for i := 0; i < n; i++ {
		s := b.subs[ev.Type][i]
		if s.dead {
			continue
		}
		keep := s.handler(m, s.owner, ev)
		if !keep && !ev.probe {
			if live := &b.subs[ev.Type][i]; !live.dead {
				b.kill(live)
			}
		}
		if ev.stopped {
			break
		}
	}
	b.depth--
	if b.depth == 0 && b.dirty {
		b.compact()
	}
}

func (b *Bus) compact() {
	for typ := range b.subs {
		kept := b.subs[typ][:0]
		for _, s := range b.subs[typ] {
			if !s.dead {
				kept = append(kept, s)
			}
		}
		clear(b.subs[typ][len(kept):])
		b.subs[typ] = kept
	}
	b.dirty = false
}

func (b *Bus) clone() Bus {
	if b.depth > 0 {
		panic("copying a state while an event is being dispatched")
	}
	out := Bus{nextID: b.nextID}
	for typ := range b.subs {
		if len(b.subs[typ]) > 0 {
			out.subs[typ] = append([]subscription(nil), b.subs[typ]...)
		}
	}
	return out
}

func (b *Bus) cloneInto(dst *Bus) {
	if b.depth > 0 {
		panic("copying a state while an event is being dispatched")
	}
	for typ := range b.subs {
		dst.subs[typ] = append(dst.subs[typ][:0], b.subs[typ]...)
	}
	dst.nextID = b.nextID
	dst.depth = 0
	dst.dirty = false
}
