package game

import "fmt"

var (
	breakShield  = []Modifier{Grant(AttrShield, false)}
	breakStealth = []Modifier{Grant(AttrStealth, false)}
)

// Manipulator is the only way effects change a state. Every operation keeps
// the zone and stat invariants and dispatches the matching events.
type Manipulator struct {
	s  *State
	fc *FlowContext
}

func NewManipulator(s *State, fc *FlowContext) *Manipulator {
	return &Manipulator{s: s, fc: fc}
}

// probeManipulator backs legality checks. It has no flow context, so any
// handler reaching for randomness or choices while probing fails loudly.
func probeManipulator(s *State) *Manipulator {
	return &Manipulator{s: s}
}

func (m *Manipulator) State() *State {
	return m.s
}

func (m *Manipulator) Card(ref CardRef) *Card {
	return m.s.Card(ref)
}

func (m *Manipulator) Random() RandomGenerator {
	if m.fc == nil {
		panic("randomness requested outside of an action")
	}
	return m.fc.Random
}

func (m *Manipulator) Choices() ChoiceGetter {
	if m.fc == nil {
		panic("choice requested outside of an action")
	}
	return m.fc.Choices
}

func (m *Manipulator) dispatch(ev *Event) {
	m.s.bus.dispatch(m, ev)
}

// Dispatch raises ev to the subscribers of its type.
func (m *Manipulator) Dispatch(ev *Event) {
	m.dispatch(ev)
}

func (m *Manipulator) Subscribe(typ EventType, owner CardRef, persistent bool, handler Handler) SubscriptionID {
	return m.s.bus.subscribe(typ, owner, persistent, handler)
}

func (m *Manipulator) Unsubscribe(id SubscriptionID) bool {
	return m.s.bus.unsubscribe(id)
}

// Create allocates a card in the transit zone.
func (m *Manipulator) Create(id CardID, player PlayerID) CardRef {
	return m.s.create(id, player)
}

// PlayCardCost computes what playing ref costs right now. A probe leaves
// one-shot cost handlers in place.
func (m *Manipulator) PlayCardCost(ref CardRef, probe bool) (cost int, healthCost bool) {
	c := m.s.Card(ref)
	ev := Event{
		Type:   EventGetPlayCardCost,
		Player: c.player,
		Source: ref,
		Amount: c.Cost(),
		probe:  probe,
	}
	m.dispatch(&ev)
	return max(ev.Amount, 0), ev.HealthCost
}

// Damage deals amount from source to target. Negative amounts heal. Deaths
// are not resolved here; they wait for the next checkpoint.
func (m *Manipulator) Damage(source, target CardRef, amount int) {
	if !m.s.Card(target).Type().IsCharacter() {
		panic(fmt.Sprintf("damaging non-character %s", m.s.Card(target)))
	}
	if m.s.Card(target).zone != ZonePlay {
		return
	}
	if amount > 0 && source.IsValid() && m.s.Card(source).Type() == TypeSpell {
		amount += m.s.SpellDamage(m.s.Card(source).player)
	}
	ev := Event{
		Type:   EventCalculateDamage,
		Player: m.s.Card(target).player,
		Source: source,
		Target: target,
		Amount: amount,
	}
	m.dispatch(&ev)
	m.conductDamage(source, target, ev.Amount)
}

// Heal restores up to amount health, never above max HP.
func (m *Manipulator) Heal(source, target CardRef, amount int) {
	m.Damage(source, target, -amount)
}

func (m *Manipulator) conductDamage(source, target CardRef, amount int) {
	c := m.s.Card(target)
	switch {
	case amount > 0:
		if c.HasShield() {
			m.Enchant(target, Enchantment{Name: "shield-broken", Modifiers: breakShield, Source: source})
			return
		}
		if c.Type() == TypeHero && c.armor > 0 {
			absorbed := min(c.armor, amount)
			c.armor -= absorbed
			amount -= absorbed
		}
		if amount == 0 {
			return
		}
		c.damage += amount
		m.dispatch(&Event{Type: EventAfterDamage, Player: c.player, Source: source, Target: target, Amount: amount})
	case amount < 0:
		healed := min(-amount, c.damage)
		if healed == 0 {
			return
		}
		c.damage -= healed
		m.dispatch(&Event{Type: EventAfterHeal, Player: c.player, Source: source, Target: target, Amount: healed})
	}
}

// Summon creates card id and puts it onto player's battlefield at pos.
// A full board is reported as ErrBoardFull and nothing is created.
func (m *Manipulator) Summon(id CardID, player PlayerID, pos int) (CardRef, error) {
	if m.s.players[player].MinionsFull() {
		return NoCard, ErrBoardFull
	}
	ref := m.s.create(id, player)
	if t := m.s.Card(ref).Type(); t != TypeMinion {
		panic(fmt.Sprintf("summoning %s of type %s", id, t))
	}
	m.ZoneChange(ref, ZonePlay, pos)
	m.dispatch(&Event{Type: EventMinionSummoned, Player: player, Target: ref})
	return ref, nil
}

// GiveCard creates card id directly in player's hand.
func (m *Manipulator) GiveCard(id CardID, player PlayerID) (CardRef, error) {
	if m.s.players[player].HandFull() {
		return NoCard, ErrHandFull
	}
	ref := m.s.create(id, player)
	m.ZoneChange(ref, ZoneHand, -1)
	return ref, nil
}

// DrawCard reveals a random card of player's deck. An empty deck deals
// escalating fatigue damage instead; a full hand burns the drawn card.
func (m *Manipulator) DrawCard(player PlayerID) CardRef {
	p := &m.s.players[player]
	if len(p.deck) == 0 {
		p.fatigue++
		m.Damage(NoCard, p.hero, p.fatigue)
		return NoCard
	}
	ref := p.deck[m.fc.random(len(p.deck))]
	if p.HandFull() {
		m.ZoneChange(ref, ZoneGraveyard, -1)
		return NoCard
	}
	m.ZoneChange(ref, ZoneHand, -1)
	p.cardsDrawnTurn++
	m.dispatch(&Event{Type: EventCardDrawn, Player: player, Target: ref})
	return ref
}

// ZoneChange moves ref between zones. Leaving play drops the card's auras,
// its non-persistent triggers and every modification; entering play
// registers its triggers.
func (m *Manipulator) ZoneChange(ref CardRef, zone Zone, pos int) {
	c := m.s.Card(ref)
	from := c.zone
	player := c.player
	if from == ZonePlay && zone != ZonePlay {
		m.leavePlay(ref)
	}
	m.s.moveTo(ref, zone, pos)
	c = m.s.Card(ref)
	if from == ZonePlay && (zone == ZoneHand || zone == ZoneDeck || zone == ZoneGraveyard) {
		c.reset()
	}
	if zone == ZonePlay && from != ZonePlay {
		m.enterPlay(ref)
	}
	m.dispatch(&Event{Type: EventZoneChanged, Player: player, Target: ref, From: from, To: zone})
}

func (m *Manipulator) enterPlay(ref CardRef) {
	c := m.s.Card(ref)
	c.attacked = 0
	if c.Type() == TypeMinion {
		c.justPlayed = true
	}
	for _, t := range c.data.Triggers {
		m.s.bus.subscribe(t.Event, ref, false, t.Handler)
	}
}

func (m *Manipulator) leavePlay(ref CardRef) {
	m.s.bus.removeOwned(ref, false)
	m.dropAuras(ref)
}

// dropAuras removes the enchantments ref grants while in play.
func (m *Manipulator) dropAuras(ref CardRef) {
	for i := range m.s.cards {
		target := &m.s.cards[i]
		removed := target.enchants.removeIf(func(item appliedEnchantment) bool {
			return item.enchantment.Source == ref && item.enchantment.Lifetime == WhileSourceInPlay
		})
		if removed {
			target.recompute()
		}
	}
}

func (m *Manipulator) Enchant(target CardRef, e Enchantment) EnchantmentID {
	c := m.s.Card(target)
	id := c.enchants.add(e)
	c.recompute()
	return id
}

func (m *Manipulator) RemoveEnchantment(target CardRef, id EnchantmentID) bool {
	c := m.s.Card(target)
	removed := c.enchants.removeIf(func(item appliedEnchantment) bool { return item.id == id })
	if removed {
		c.recompute()
	}
	return removed
}

// Silence strips abilities and triggers. Stat modifiers stay.
func (m *Manipulator) Silence(target CardRef) {
	c := m.s.Card(target)
	c.silenced = true
	c.frozen = false
	c.enchants.removeIf(func(item appliedEnchantment) bool {
		return item.enchantment.GrantsAbility()
	})
	c.recompute()
	m.s.bus.removeOwned(target, true)
	m.dropAuras(target)
}

// Destroy marks target for removal at the next checkpoint.
func (m *Manipulator) Destroy(target CardRef) {
	c := m.s.Card(target)
	if c.zone != ZonePlay {
		return
	}
	c.destroyed = true
}

func (m *Manipulator) Freeze(target CardRef) {
	c := m.s.Card(target)
	if !c.Type().IsCharacter() {
		panic(fmt.Sprintf("freezing non-character %s", c))
	}
	c.frozen = true
}

// EquipWeapon replaces the owner's weapon with ref.
func (m *Manipulator) EquipWeapon(ref CardRef) {
	c := m.s.Card(ref)
	if c.Type() != TypeWeapon {
		panic(fmt.Sprintf("equipping non-weapon %s", c))
	}
	player := c.player
	if old := m.s.players[player].weapon; old.IsValid() {
		m.kill(old)
	}
	m.ZoneChange(ref, ZonePlay, 0)
}

func (m *Manipulator) GainArmor(player PlayerID, amount int) {
	if amount < 0 {
		panic("negative armor")
	}
	m.s.Card(m.s.players[player].hero).armor += amount
}

// SetHP sets current health, raising max HP when needed.
func (m *Manipulator) SetHP(target CardRef, hp int) {
	c := m.s.Card(target)
	if hp > c.MaxHP() {
		m.Enchant(target, Enchantment{Name: "set-health", Modifiers: []Modifier{SetMaxHP(hp)}})
		c = m.s.Card(target)
	}
	c.damage = c.MaxHP() - hp
}

// Checkpoint settles auras and deaths until the board is stable and reports
// the game result.
func (m *Manipulator) Checkpoint() Result {
	for {
		m.updateAuras()
		dead := m.collectDead()
		if len(dead) == 0 {
			break
		}
		for _, ref := range dead {
			m.kill(ref)
		}
	}
	return m.s.Result()
}

// collectDead lists dead minions and broken weapons, current player first.
func (m *Manipulator) collectDead() []CardRef {
	var dead []CardRef
	for _, player := range [2]PlayerID{m.s.current, m.s.current.Opposite()} {
		p := &m.s.players[player]
		for _, ref := range p.minions {
			if c := m.s.Card(ref); c.HP() <= 0 || c.destroyed {
				dead = append(dead, ref)
			}
		}
		if p.weapon.IsValid() {
			if c := m.s.Card(p.weapon); c.HP() <= 0 || c.destroyed {
				dead = append(dead, p.weapon)
			}
		}
	}
	return dead
}

func (m *Manipulator) kill(ref CardRef) {
	c := m.s.Card(ref)
	if c.zone != ZonePlay {
		return
	}
	// ZoneChange resets the card, so read silence first.
	data, player, typ, silenced := c.data, c.player, c.Type(), c.silenced
	m.ZoneChange(ref, ZoneGraveyard, -1)
	if typ == TypeMinion {
		m.s.players[player].minionsDied++
		m.dispatch(&Event{Type: EventMinionDied, Player: player, Target: ref})
	}
	if data.Deathrattle != nil && !silenced {
		data.Deathrattle(m, PlayContext{Card: ref, Player: player})
	}
}

func (m *Manipulator) updateAuras() {
	for _, player := range [2]PlayerID{FirstPlayer, SecondPlayer} {
		for _, source := range m.s.players[player].minions {
			if aura := m.s.Card(source).data.Aura; aura != nil && !m.s.Card(source).silenced {
				m.refreshAura(source, aura)
			}
		}
	}
}

func (m *Manipulator) refreshAura(source CardRef, aura *Aura) {
	for _, player := range [2]PlayerID{FirstPlayer, SecondPlayer} {
		for _, target := range m.s.players[player].minions {
			c := m.s.Card(target)
			has := false
			for _, item := range c.enchants.items {
				if item.enchantment.Source == source && item.enchantment.Name == aura.Enchantment.Name {
					has = true
					break
				}
			}
			want := aura.Filter(m.s, source, target)
			switch {
			case want && !has:
				e := aura.Enchantment
				e.Source = source
				e.Lifetime = WhileSourceInPlay
				m.Enchant(target, e)
			case !want && has:
				c.enchants.removeIf(func(item appliedEnchantment) bool {
					return item.enchantment.Source == source && item.enchantment.Name == aura.Enchantment.Name
				})
				c.recompute()
			}
		}
	}
}

// expireTurnEnchantments drops every this-turn enchantment.
func (m *Manipulator) expireTurnEnchantments() {
	for i := range m.s.cards {
		c := &m.s.cards[i]
		if c.enchants.removeIf(func(item appliedEnchantment) bool {
			return item.enchantment.Lifetime == ThisTurn
		}) {
			c.recompute()
		}
	}
}
