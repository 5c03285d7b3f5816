package game

// Evaluate scores a state from side's perspective in [-1, 1].
type Evaluate func(s *State, side PlayerID) float64

const maxHeroValue = 30.0

// EvaluateWeak only looks at how far the opponent hero has been pushed down:
// 0 for an untouched hero, 1 for one with no health and armor left.
func EvaluateWeak(s *State, side PlayerID) float64 {
	hero := s.Card(s.players[side.Opposite()].hero)
	return (maxHeroValue - heroValue(hero)) / maxHeroValue
}

func heroValue(hero *Card) float64 {
	v := float64(hero.HP() + hero.Armor())
	if v >= maxHeroValue {
		v = maxHeroValue
	}
	if v < 0 {
		v = 0
	}
	return v
}

// EvaluateBoard extends the weak heuristic with a normalized comparison of
// both sides' minions and heroes.
func EvaluateBoard(s *State, side PlayerID) float64 {
	self := sideValue(s, side)
	opponent := sideValue(s, side.Opposite())
	return normalize(self, opponent)
}

func sideValue(s *State, side PlayerID) float64 {
	p := &s.players[side]
	v := heroValue(s.Card(p.hero))
	for _, ref := range p.minions {
		c := s.Card(ref)
		v += 1.0*float64(c.Attack()) + 1.5*float64(c.HP())
	}
	return v
}

// normalize maps a pair of non-negative values to [-1, 1].
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
