package game

import (
	"fmt"
	"slices"
)

// FlowController runs the top-level actions of the current player. Each
// action ends with a checkpoint and reports the game result.
type FlowController struct {
	m *Manipulator
}

func NewFlowController(s *State, fc *FlowContext) *FlowController {
	if fc == nil || fc.Random == nil || fc.Choices == nil {
		panic("flow controller needs randomness and a choice source")
	}
	return &FlowController{m: NewManipulator(s, fc)}
}

func (f *FlowController) Manipulator() *Manipulator {
	return f.m
}

// StartGame deals the opening hands, one extra card to the second player,
// and begins the first turn of the first player.
func (f *FlowController) StartGame(openingHand int) Result {
	s := f.m.s
	if s.turn != 0 {
		panic("game already started")
	}
	for i := 0; i < openingHand; i++ {
		f.m.DrawCard(FirstPlayer)
	}
	for i := 0; i <= openingHand; i++ {
		f.m.DrawCard(SecondPlayer)
	}
	s.current = FirstPlayer
	s.turn = 1
	return f.startTurn()
}

// PlayCard plays the hand card at handIdx for the current player.
func (f *FlowController) PlayCard(handIdx int) Result {
	s := f.m.s
	player := s.current
	p := &s.players[player]
	if handIdx < 0 || handIdx >= len(p.hand) {
		return ResultInvalid
	}
	ref := p.hand[handIdx]
	if !isPlayable(probeManipulator(s), ref) {
		return ResultInvalid
	}

	cost, healthCost := f.m.PlayCardCost(ref, false)
	data := s.Card(ref).data

	pos := -1
	if data.Type == TypeMinion {
		pos = f.m.fc.Choose(ChoiceMinionPutLocation, len(p.minions)+1)
	}
	target := f.chooseTarget(data, player)

	if healthCost {
		f.m.conductDamage(ref, p.hero, cost)
	} else {
		if cost > p.resource.Current {
			return ResultInvalid
		}
		p.resource.Spend(cost)
	}
	p.resource.OverloadNext += data.Overload
	p.cardsPlayed++

	ctx := PlayContext{Card: ref, Player: player, Target: target}
	switch data.Type {
	case TypeMinion:
		f.m.ZoneChange(ref, ZonePlay, pos)
		if data.OnPlay != nil {
			data.OnPlay(f.m, ctx)
		}
		f.m.dispatch(&Event{Type: EventMinionSummoned, Player: player, Target: ref})
	case TypeSpell:
		f.m.ZoneChange(ref, ZoneTransit, -1)
		if data.OnPlay != nil {
			data.OnPlay(f.m, ctx)
		}
		f.m.dispatch(&Event{Type: EventSpellPlayed, Player: player, Source: ref, Target: target})
		f.m.ZoneChange(ref, ZoneGraveyard, -1)
	case TypeWeapon:
		f.m.ZoneChange(ref, ZoneTransit, -1)
		if data.OnPlay != nil {
			data.OnPlay(f.m, ctx)
		}
		f.m.EquipWeapon(ref)
	default:
		panic(fmt.Sprintf("playing card %s of type %s", data.ID, data.Type))
	}
	return f.m.Checkpoint()
}

func (f *FlowController) chooseTarget(data *CardData, player PlayerID) CardRef {
	if data.Target == TargetNone {
		return NoCard
	}
	targets := Targets(f.m.s, data.Target, player)
	if len(targets) == 0 {
		return NoCard
	}
	return targets[f.m.fc.Choose(ChoiceTarget, len(targets))]
}

// Attack resolves a fight between attacker and defender.
func (f *FlowController) Attack(attacker, defender CardRef) Result {
	s := f.m.s
	if !slices.Contains(Attackers(s), attacker) || !slices.Contains(Defenders(s), defender) {
		return ResultInvalid
	}
	player := s.current

	f.m.dispatch(&Event{Type: EventBeforeAttack, Player: player, Source: attacker, Target: defender})

	a, d := s.Card(attacker), s.Card(defender)
	if a.zone == ZonePlay && d.zone == ZonePlay && a.HP() > 0 {
		attack := attackValue(s, attacker, true)
		counter := attackValue(s, defender, false)
		f.m.Damage(attacker, defender, attack)
		f.m.Damage(defender, attacker, counter)
	}

	a = s.Card(attacker)
	a.attacked++
	if a.HasStealth() {
		f.m.Enchant(attacker, Enchantment{Name: "stealth-broken", Modifiers: breakStealth, Source: attacker})
	}
	if a.Type() == TypeHero {
		if weapon := s.players[player].weapon; weapon.IsValid() {
			s.Card(weapon).damage++
		}
	}

	f.m.dispatch(&Event{Type: EventAfterAttack, Player: player, Source: attacker, Target: defender})
	return f.m.Checkpoint()
}

// HeroPower uses the current player's hero power.
func (f *FlowController) HeroPower() Result {
	s := f.m.s
	if !CanUseHeroPower(s) {
		return ResultInvalid
	}
	player := s.current
	p := &s.players[player]
	ref := p.heroPower
	cost, _ := f.m.PlayCardCost(ref, false)
	data := s.Card(ref).data
	target := f.chooseTarget(data, player)

	p.resource.Spend(cost)
	p.heroPowerUsed = true
	if data.OnPlay != nil {
		data.OnPlay(f.m, PlayContext{Card: ref, Player: player, Target: target})
	}
	return f.m.Checkpoint()
}

// EndTurn finishes the current turn and starts the opponent's.
func (f *FlowController) EndTurn() Result {
	s := f.m.s
	player := s.current
	f.m.dispatch(&Event{Type: EventTurnEnd, Player: player})
	f.m.expireTurnEnchantments()

	// Characters frozen before or during their own turn thaw at its end.
	p := &s.players[player]
	s.Card(p.hero).frozen = false
	for _, ref := range p.minions {
		s.Card(ref).frozen = false
	}
	if r := f.m.Checkpoint(); r != ResultNotDetermined {
		return r
	}

	s.current = player.Opposite()
	s.turn++
	return f.startTurn()
}

func (f *FlowController) startTurn() Result {
	s := f.m.s
	player := s.current
	p := &s.players[player]
	p.resource.BeginTurn()
	p.resetTurnCounters()
	s.Card(p.hero).attacked = 0
	for _, ref := range p.minions {
		c := s.Card(ref)
		c.attacked = 0
		c.justPlayed = false
	}

	f.m.dispatch(&Event{Type: EventTurnStart, Player: player})
	f.m.DrawCard(player)
	return f.m.Checkpoint()
}

// attackValue is the damage a character deals in combat. Weapons only swing
// for the attacking hero.
func attackValue(s *State, ref CardRef, attacking bool) int {
	c := s.Card(ref)
	if c.Type() == TypeHero && attacking {
		return s.HeroAttack(c.player)
	}
	return c.Attack()
}
