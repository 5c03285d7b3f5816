package searcher

import (
	"fmt"
	"strconv"
	"strings"

	"cardsim/game"
)

type FeatureSide int8

const (
	SelfSide FeatureSide = iota
	OpponentSide
	featureSideCount
)

func (s FeatureSide) String() string {
	switch s {
	case SelfSide:
		return "self"
	case OpponentSide:
		return "opponent"
	default:
		return "unknown"
	}
}

type Field int8

const (
	FieldResourceCurrent Field = iota
	FieldResourceTotal
	FieldResourceOverloaded
	FieldResourceOverloadNext
	FieldHeroHP
	FieldHeroArmor
	FieldHeroPowerPlayable
	FieldMinionHP
	FieldMinionMaxHP
	FieldMinionAttack
	FieldMinionAttackable
	FieldMinionTaunt
	FieldMinionShield
	FieldMinionStealth
	FieldHandPlayable
	FieldHandCost

	fieldCount
)

var fieldNames = [fieldCount]string{
	"resource_current",
	"resource_total",
	"resource_overloaded",
	"resource_overload_next",
	"hero_hp",
	"hero_armor",
	"hero_power_playable",
	"minion_hp",
	"minion_max_hp",
	"minion_attack",
	"minion_attackable",
	"minion_taunt",
	"minion_shield",
	"minion_stealth",
	"hand_playable",
	"hand_cost",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

// slots is how many indexed entries a field has: one for scalars, a slot per
// minion or hand card otherwise.
func (f Field) slots() int {
	switch {
	case f >= FieldMinionHP && f <= FieldMinionStealth:
		return game.MaxMinions
	case f == FieldHandPlayable || f == FieldHandCost:
		return game.MaxHandCards
	default:
		return 1
	}
}

// FeatureKey names one entry of the feature schema.
type FeatureKey struct {
	Side  FeatureSide
	Field Field
	Index int
}

func (k FeatureKey) String() string {
	if k.Field.slots() == 1 {
		return fmt.Sprintf("%s.%s", k.Side, k.Field)
	}
	return fmt.Sprintf("%s.%s.%d", k.Side, k.Field, k.Index)
}

// ParseFeatureKey reads keys of the form side.field or side.field.index.
func ParseFeatureKey(s string) (FeatureKey, error) {
	parts := strings.Split(s, ".")
	if len(parts) < 2 || len(parts) > 3 {
		return FeatureKey{}, fmt.Errorf("malformed feature key %q", s)
	}
	var key FeatureKey
	switch parts[0] {
	case "self":
		key.Side = SelfSide
	case "opponent":
		key.Side = OpponentSide
	default:
		return FeatureKey{}, fmt.Errorf("unknown side in feature key %q", s)
	}
	key.Field = -1
	for f, name := range fieldNames {
		if name == parts[1] {
			key.Field = Field(f)
		}
	}
	if key.Field < 0 {
		return FeatureKey{}, fmt.Errorf("unknown field in feature key %q", s)
	}
	if len(parts) == 3 {
		idx, err := strconv.Atoi(parts[2])
		if err != nil {
			return FeatureKey{}, fmt.Errorf("bad index in feature key %q: %w", s, err)
		}
		key.Index = idx
	}
	if !key.valid() || (len(parts) == 2) != (key.Field.slots() == 1) {
		return FeatureKey{}, fmt.Errorf("feature key %q is not in the schema", s)
	}
	return key, nil
}

func (k FeatureKey) valid() bool {
	return k.Side >= 0 && k.Side < featureSideCount &&
		k.Field >= 0 && k.Field < fieldCount &&
		k.Index >= 0 && k.Index < k.Field.slots()
}

var (
	fieldOffsets [fieldCount]int
	sideWidth    int
)

func init() {
	for f := Field(0); f < fieldCount; f++ {
		fieldOffsets[f] = sideWidth
		sideWidth += f.slots()
	}
}

// Features is a fixed-schema feature vector. Keys outside the schema panic.
type Features struct {
	values []float64
}

func NewFeatures() *Features {
	return &Features{values: make([]float64, int(featureSideCount)*sideWidth)}
}

func (f *Features) offset(k FeatureKey) int {
	if !k.valid() {
		panic(fmt.Sprintf("feature key %+v is not in the schema", k))
	}
	return int(k.Side)*sideWidth + fieldOffsets[k.Field] + k.Index
}

func (f *Features) Get(k FeatureKey) float64 {
	return f.values[f.offset(k)]
}

func (f *Features) Set(k FeatureKey, v float64) {
	f.values[f.offset(k)] = v
}

// Values exposes the flat vector in schema order.
func (f *Features) Values() []float64 {
	return f.values
}

// ExtractFeatures fills the schema from s with self as the self side.
func ExtractFeatures(s *game.State, self game.PlayerID) *Features {
	f := NewFeatures()
	playable := make(map[int]bool)
	if s.Current() == self {
		for _, idx := range game.PlayableCards(s) {
			playable[idx] = true
		}
	}

	for side, player := range [featureSideCount]game.PlayerID{self, self.Opposite()} {
		side := FeatureSide(side)
		set := func(field Field, index int, v float64) {
			f.Set(FeatureKey{Side: side, Field: field, Index: index}, v)
		}
		p := s.Player(player)
		r := p.Resource()
		set(FieldResourceCurrent, 0, float64(r.Current))
		set(FieldResourceTotal, 0, float64(r.Total))
		set(FieldResourceOverloaded, 0, float64(r.Overloaded))
		set(FieldResourceOverloadNext, 0, float64(r.OverloadNext))
		hero := s.Card(p.Hero())
		set(FieldHeroHP, 0, float64(hero.HP()))
		set(FieldHeroArmor, 0, float64(hero.Armor()))
		if s.Current() == player && game.CanUseHeroPower(s) {
			set(FieldHeroPowerPlayable, 0, 1)
		}

		for i, ref := range p.Minions() {
			c := s.Card(ref)
			set(FieldMinionHP, i, float64(c.HP()))
			set(FieldMinionMaxHP, i, float64(c.MaxHP()))
			set(FieldMinionAttack, i, float64(c.Attack()))
			set(FieldMinionAttackable, i, boolFeature(s.Current() == player && game.CanAttack(s, ref)))
			set(FieldMinionTaunt, i, boolFeature(c.HasTaunt()))
			set(FieldMinionShield, i, boolFeature(c.HasShield()))
			set(FieldMinionStealth, i, boolFeature(c.HasStealth()))
		}
		for i, ref := range p.Hand() {
			set(FieldHandCost, i, float64(s.Card(ref).Cost()))
			if player == self && playable[i] {
				set(FieldHandPlayable, i, 1)
			}
		}
	}
	return f
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
