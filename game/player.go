package game

const MaxResource = 10

// Resource is the per-turn mana pool of a player.
type Resource struct {
	Current      int
	Total        int
	Overloaded   int // locked this turn
	OverloadNext int // locked at the start of the next turn
}

// BeginTurn grows the pool by one crystal and applies pending overload.
func (r *Resource) BeginTurn() {
	if r.Total < MaxResource {
		r.Total++
	}
	r.Overloaded = r.OverloadNext
	r.OverloadNext = 0
	r.Current = max(r.Total-r.Overloaded, 0)
}

func (r *Resource) Spend(amount int) {
	if amount > r.Current {
		panic("spending more resource than available")
	}
	r.Current -= amount
}

// Player holds one side of the board. Zone slices are owned by the State and
// must not be modified by callers.
type Player struct {
	id       PlayerID
	resource Resource

	hero      CardRef
	heroPower CardRef
	weapon    CardRef

	deck      []CardRef
	hand      []CardRef
	minions   []CardRef
	graveyard []CardRef

	fatigue        int
	heroPowerUsed  bool
	cardsPlayed    int
	minionsDied    int
	cardsDrawnTurn int
}

func (p *Player) ID() PlayerID            { return p.id }
func (p *Player) Resource() Resource      { return p.resource }
func (p *Player) Hero() CardRef           { return p.hero }
func (p *Player) HeroPower() CardRef      { return p.heroPower }
func (p *Player) Weapon() CardRef         { return p.weapon }
func (p *Player) Deck() []CardRef         { return p.deck }
func (p *Player) Hand() []CardRef         { return p.hand }
func (p *Player) Minions() []CardRef      { return p.minions }
func (p *Player) Graveyard() []CardRef    { return p.graveyard }
func (p *Player) Fatigue() int            { return p.fatigue }
func (p *Player) HeroPowerUsed() bool     { return p.heroPowerUsed }
func (p *Player) CardsPlayed() int        { return p.cardsPlayed }
func (p *Player) CardsDrawnThisTurn() int { return p.cardsDrawnTurn }
func (p *Player) MinionsDied() int        { return p.minionsDied }
func (p *Player) MinionsFull() bool       { return len(p.minions) >= MaxMinions }
func (p *Player) HandFull() bool          { return len(p.hand) >= MaxHandCards }

// SetResource overrides the pool, for scenario setup.
func (p *Player) SetResource(r Resource) {
	p.resource = r
}

func (p *Player) clone() Player {
	out := *p
	out.deck = slicesClone(p.deck)
	out.hand = slicesClone(p.hand)
	out.minions = slicesClone(p.minions)
	out.graveyard = slicesClone(p.graveyard)
	return out
}

func (p *Player) cloneInto(dst *Player) {
	deck, hand, minions, graveyard := dst.deck, dst.hand, dst.minions, dst.graveyard
	*dst = *p
	dst.deck = append(deck[:0], p.deck...)
	dst.hand = append(hand[:0], p.hand...)
	dst.minions = append(minions[:0], p.minions...)
	dst.graveyard = append(graveyard[:0], p.graveyard...)
}

func (p *Player) resetTurnCounters() {
	p.heroPowerUsed = false
	p.cardsPlayed = 0
	p.cardsDrawnTurn = 0
}

func slicesClone(in []CardRef) []CardRef {
	if in == nil {
		return nil
	}
	return append(make([]CardRef, 0, cap(in)), in...)
}
