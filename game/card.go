package game

import "fmt"

type CardType int8

const (
	TypeInvalid CardType = iota
	TypeHero
	TypeMinion
	TypeSpell
	TypeWeapon
	TypeHeroPower
)

func (t CardType) String() string {
	switch t {
	case TypeHero:
		return "hero"
	case TypeMinion:
		return "minion"
	case TypeSpell:
		return "spell"
	case TypeWeapon:
		return "weapon"
	case TypeHeroPower:
		return "hero-power"
	default:
		return "invalid"
	}
}

// IsCharacter reports whether cards of this type can attack and be attacked.
func (t CardType) IsCharacter() bool {
	return t == TypeHero || t == TypeMinion
}

// CardID identifies a card definition in a Database.
type CardID string

// Stats are the enchantable attributes of a card. For weapons MaxHP holds
// the durability.
type Stats struct {
	Cost        int
	Attack      int
	MaxHP       int
	SpellDamage int
	Taunt       bool
	Shield      bool
	Stealth     bool
	Charge      bool
	Windfury    bool
}

// Card is one entity of the arena. Fields are only mutated through the
// Manipulator; everything else reads it through the accessors.
type Card struct {
	ref    CardRef
	data   *CardData
	player PlayerID
	zone   Zone
	pos    int

	base     Stats // snapshot taken at creation, used for resets
	stats    Stats
	enchants enchantmentStack

	damage   int
	armor    int
	frozen   bool
	silenced bool

	attacked   int
	justPlayed bool
	destroyed  bool
}

func newCard(ref CardRef, data *CardData, player PlayerID) Card {
	return Card{
		ref:    ref,
		data:   data,
		player: player,
		zone:   ZoneTransit,
		pos:    -1,
		base:   data.Stats,
		stats:  data.Stats,
	}
}

func (c *Card) Ref() CardRef       { return c.ref }
func (c *Card) ID() CardID         { return c.data.ID }
func (c *Card) Name() string       { return c.data.Name }
func (c *Card) Type() CardType     { return c.data.Type }
func (c *Card) Data() *CardData    { return c.data }
func (c *Card) Player() PlayerID   { return c.player }
func (c *Card) Zone() Zone         { return c.zone }
func (c *Card) ZonePosition() int  { return c.pos }
func (c *Card) Stats() Stats       { return c.stats }
func (c *Card) BaseStats() Stats   { return c.base }
func (c *Card) Cost() int          { return c.stats.Cost }
func (c *Card) Attack() int        { return c.stats.Attack }
func (c *Card) MaxHP() int         { return c.stats.MaxHP }
func (c *Card) HP() int            { return c.stats.MaxHP - c.damage }
func (c *Card) Damage() int        { return c.damage }
func (c *Card) Armor() int         { return c.armor }
func (c *Card) SpellDamage() int   { return c.stats.SpellDamage }
func (c *Card) HasTaunt() bool     { return c.stats.Taunt }
func (c *Card) HasShield() bool    { return c.stats.Shield }
func (c *Card) HasStealth() bool   { return c.stats.Stealth }
func (c *Card) HasCharge() bool    { return c.stats.Charge }
func (c *Card) HasWindfury() bool  { return c.stats.Windfury }
func (c *Card) IsFrozen() bool     { return c.frozen }
func (c *Card) IsSilenced() bool   { return c.silenced }
func (c *Card) AttackedTimes() int { return c.attacked }
func (c *Card) JustPlayed() bool   { return c.justPlayed }

// Enchantments returns the active enchantments in stack order.
func (c *Card) Enchantments() []Enchantment {
	out := make([]Enchantment, 0, len(c.enchants.items))
	for _, item := range c.enchants.items {
		out = append(out, item.enchantment)
	}
	return out
}

// MaxAttacks is the number of attacks allowed per turn.
func (c *Card) MaxAttacks() int {
	if c.stats.Windfury {
		return 2
	}
	return 1
}

func (c *Card) String() string {
	return fmt.Sprintf("%s#%d(%s %d/%d)", c.data.ID, c.ref, c.zone, c.stats.Attack, c.HP())
}

// recompute folds the enchantment stack over the base snapshot. Damage is
// kept when max HP grows; when it shrinks current HP is clamped to the new
// maximum instead of losing the difference.
func (c *Card) recompute() {
	hp, maxHP := c.HP(), c.stats.MaxHP
	base := c.base
	if c.silenced {
		base.Taunt, base.Shield, base.Stealth, base.Charge, base.Windfury = false, false, false, false, false
		base.SpellDamage = 0
	}
	c.stats = c.enchants.apply(base)
	if c.stats.MaxHP < 0 {
		c.stats.MaxHP = 0
	}
	if c.stats.Cost < 0 {
		c.stats.Cost = 0
	}
	if c.stats.Attack < 0 {
		c.stats.Attack = 0
	}
	if c.stats.MaxHP < maxHP {
		c.damage = max(c.stats.MaxHP-hp, 0)
	}
}

// reset restores the original snapshot, dropping every modification.
func (c *Card) reset() {
	c.enchants = enchantmentStack{}
	c.silenced = false
	c.damage = 0
	c.frozen = false
	c.attacked = 0
	c.justPlayed = false
	c.destroyed = false
	c.stats = c.base
}
