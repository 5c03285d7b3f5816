package game

// PlayableCards lists the hand indices the current player can play now.
func PlayableCards(s *State) []int {
	m := probeManipulator(s)
	var out []int
	for i, ref := range s.players[s.current].hand {
		if isPlayable(m, ref) {
			out = append(out, i)
		}
	}
	return out
}

func isPlayable(m *Manipulator, ref CardRef) bool {
	s := m.s
	c := s.Card(ref)
	p := &s.players[c.player]
	cost, healthCost := m.PlayCardCost(ref, true)
	if !healthCost && cost > p.resource.Current {
		return false
	}
	data := c.data
	if data.Type == TypeMinion && p.MinionsFull() {
		return false
	}
	if data.Target != TargetNone && !data.TargetOptional && len(Targets(s, data.Target, c.player)) == 0 {
		return false
	}
	if data.Playable != nil && !data.Playable(s, c.player) {
		return false
	}
	return true
}

// CanUseHeroPower reports whether the current player may use the hero power.
func CanUseHeroPower(s *State) bool {
	p := &s.players[s.current]
	if !p.heroPower.IsValid() || p.heroPowerUsed {
		return false
	}
	return isPlayable(probeManipulator(s), p.heroPower)
}

// CanAttack reports whether ref may attack this turn.
func CanAttack(s *State, ref CardRef) bool {
	c := s.Card(ref)
	if c.zone != ZonePlay || !c.Type().IsCharacter() || c.frozen {
		return false
	}
	if c.attacked >= c.MaxAttacks() {
		return false
	}
	if c.Type() == TypeMinion && c.justPlayed && !c.HasCharge() {
		return false
	}
	return attackValue(s, ref, true) > 0
}

// Attackers lists the current player's characters able to attack: hero
// first, then minions from left to right.
func Attackers(s *State) []CardRef {
	p := &s.players[s.current]
	var out []CardRef
	if p.hero.IsValid() && CanAttack(s, p.hero) {
		out = append(out, p.hero)
	}
	for _, ref := range p.minions {
		if CanAttack(s, ref) {
			out = append(out, ref)
		}
	}
	return out
}

// Defenders lists what the current player may attack. Visible taunt minions
// shield everything else.
func Defenders(s *State) []CardRef {
	p := &s.players[s.current.Opposite()]
	var taunts, all []CardRef
	if p.hero.IsValid() {
		all = append(all, p.hero)
	}
	for _, ref := range p.minions {
		c := s.Card(ref)
		if c.HasStealth() {
			continue
		}
		all = append(all, ref)
		if c.HasTaunt() {
			taunts = append(taunts, ref)
		}
	}
	if len(taunts) > 0 {
		return taunts
	}
	return all
}

// Targets lists the characters player may target with kind. Enemy stealth
// minions are never targetable.
func Targets(s *State, kind TargetKind, player PlayerID) []CardRef {
	var out []CardRef
	add := func(owner PlayerID, heroes, minions bool) {
		p := &s.players[owner]
		if heroes && p.hero.IsValid() {
			out = append(out, p.hero)
		}
		if !minions {
			return
		}
		for _, ref := range p.minions {
			if owner != player && s.Card(ref).HasStealth() {
				continue
			}
			out = append(out, ref)
		}
	}
	switch kind {
	case TargetNone:
	case TargetAnyCharacter:
		add(player, true, true)
		add(player.Opposite(), true, true)
	case TargetAnyMinion:
		add(player, false, true)
		add(player.Opposite(), false, true)
	case TargetFriendlyMinion:
		add(player, false, true)
	case TargetEnemyMinion:
		add(player.Opposite(), false, true)
	case TargetEnemyCharacter:
		add(player.Opposite(), true, true)
	}
	return out
}
