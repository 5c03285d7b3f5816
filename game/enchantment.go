package game

import "fmt"

// Attribute is an enchantable card attribute.
type Attribute int8

const (
	AttrAttack Attribute = iota
	AttrMaxHP
	AttrCost
	AttrSpellDamage
	AttrTaunt
	AttrShield
	AttrStealth
	AttrCharge
	AttrWindfury
)

// IsAbility reports whether the attribute is a keyword granted or removed
// rather than a number.
func (a Attribute) IsAbility() bool {
	return a >= AttrTaunt
}

// Op is the composition operator of a modifier.
type Op int8

const (
	OpAdd Op = iota
	OpSet
	OpMultiply
)

// Modifier changes one attribute. Ability attributes treat a non-zero value
// as "has the ability".
type Modifier struct {
	Attr  Attribute
	Op    Op
	Value int
}

func AddAttack(v int) Modifier      { return Modifier{Attr: AttrAttack, Op: OpAdd, Value: v} }
func SetAttack(v int) Modifier      { return Modifier{Attr: AttrAttack, Op: OpSet, Value: v} }
func AddMaxHP(v int) Modifier       { return Modifier{Attr: AttrMaxHP, Op: OpAdd, Value: v} }
func SetMaxHP(v int) Modifier       { return Modifier{Attr: AttrMaxHP, Op: OpSet, Value: v} }
func AddCost(v int) Modifier        { return Modifier{Attr: AttrCost, Op: OpAdd, Value: v} }
func SetCost(v int) Modifier        { return Modifier{Attr: AttrCost, Op: OpSet, Value: v} }
func AddSpellDamage(v int) Modifier { return Modifier{Attr: AttrSpellDamage, Op: OpAdd, Value: v} }

// Grant gives (on=true) or removes an ability.
func Grant(attr Attribute, on bool) Modifier {
	if !attr.IsAbility() {
		panic(fmt.Sprintf("attribute %d is not an ability", attr))
	}
	v := 0
	if on {
		v = 1
	}
	return Modifier{Attr: attr, Op: OpSet, Value: v}
}

// Lifetime controls when an enchantment is removed on its own.
type Lifetime int8

const (
	Permanent Lifetime = iota
	WhileSourceInPlay
	ThisTurn
)

// Enchantment is an ordered set of modifiers applied to one card.
type Enchantment struct {
	Name      string
	Modifiers []Modifier
	Source    CardRef
	Lifetime  Lifetime
}

// GrantsAbility reports whether any modifier touches an ability. These are
// the enchantments dropped by silence.
func (e Enchantment) GrantsAbility() bool {
	for _, m := range e.Modifiers {
		if m.Attr.IsAbility() {
			return true
		}
	}
	return false
}

type EnchantmentID int32

type appliedEnchantment struct {
	id          EnchantmentID
	enchantment Enchantment
}

// enchantmentStack is owned by exactly one card. Modifier slices are shared
// between copies of a state and must not be mutated after Add.
type enchantmentStack struct {
	items  []appliedEnchantment
	nextID EnchantmentID
}

func (st *enchantmentStack) add(e Enchantment) EnchantmentID {
	st.nextID++
	st.items = append(st.items, appliedEnchantment{id: st.nextID, enchantment: e})
	return st.nextID
}

func (st *enchantmentStack) removeIf(pred func(appliedEnchantment) bool) bool {
	kept := st.items[:0]
	removed := false
	for _, item := range st.items {
		if pred(item) {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	clear(st.items[len(kept):])
	st.items = kept
	return removed
}

func (st *enchantmentStack) clone() enchantmentStack {
	if len(st.items) == 0 {
		return enchantmentStack{nextID: st.nextID}
	}
	items := make([]appliedEnchantment, len(st.items))
	copy(items, st.items)
	return enchantmentStack{items: items, nextID: st.nextID}
}

// apply folds the stack over base in insertion order. A set modifier
// overrides everything below it in the stack, so the result depends on order.
func (st *enchantmentStack) apply(base Stats) Stats {
	out := base
	for _, item := range st.items {
		for _, m := range item.enchantment.Modifiers {
			applyModifier(&out, m)
		}
	}
	return out
}

func applyModifier(s *Stats, m Modifier) {
	switch m.Attr {
	case AttrAttack:
		s.Attack = compose(s.Attack, m)
	case AttrMaxHP:
		s.MaxHP = compose(s.MaxHP, m)
	case AttrCost:
		s.Cost = compose(s.Cost, m)
	case AttrSpellDamage:
		s.SpellDamage = compose(s.SpellDamage, m)
	case AttrTaunt:
		s.Taunt = composeFlag(s.Taunt, m)
	case AttrShield:
		s.Shield = composeFlag(s.Shield, m)
	case AttrStealth:
		s.Stealth = composeFlag(s.Stealth, m)
	case AttrCharge:
		s.Charge = composeFlag(s.Charge, m)
	case AttrWindfury:
		s.Windfury = composeFlag(s.Windfury, m)
	default:
		panic(fmt.Sprintf("unknown attribute %d", m.Attr))
	}
}

func compose(v int, m Modifier) int {
	switch m.Op {
	case OpAdd:
		return v + m.Value
	case OpSet:
		return m.Value
	case OpMultiply:
		return v * m.Value
	default:
		panic(fmt.Sprintf("unknown modifier op %d", m.Op))
	}
}

func composeFlag(v bool, m Modifier) bool {
	switch m.Op {
	case OpSet:
		return m.Value != 0
	case OpAdd:
		return v || m.Value > 0
	default:
		panic(fmt.Sprintf("modifier op %d is not valid for abilities", m.Op))
	}
}
