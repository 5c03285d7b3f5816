package game

import "fmt"

// CardRef is an opaque handle into the card arena of a State. The zero value
// refers to no card.
type CardRef int32

const NoCard CardRef = 0

func (r CardRef) IsValid() bool {
	return r > 0
}

func (r CardRef) index() int {
	return int(r) - 1
}

// PlayerID identifies one of the two sides of a game.
type PlayerID int8

const (
	FirstPlayer PlayerID = iota
	SecondPlayer
)

func (p PlayerID) Opposite() PlayerID {
	return 1 - p
}

func (p PlayerID) IsFirst() bool {
	return p == FirstPlayer
}

func (p PlayerID) String() string {
	switch p {
	case FirstPlayer:
		return "first"
	case SecondPlayer:
		return "second"
	default:
		return fmt.Sprintf("player(%d)", int(p))
	}
}

// Result is the outcome of a top-level action.
type Result int8

const (
	ResultNotDetermined Result = iota
	ResultFirstPlayerWin
	ResultSecondPlayerWin
	ResultDraw
	ResultInvalid
)

func (r Result) String() string {
	switch r {
	case ResultNotDetermined:
		return "not-determined"
	case ResultFirstPlayerWin:
		return "first-player-win"
	case ResultSecondPlayerWin:
		return "second-player-win"
	case ResultDraw:
		return "draw"
	case ResultInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the game is over.
func (r Result) IsTerminal() bool {
	return r == ResultFirstPlayerWin || r == ResultSecondPlayerWin || r == ResultDraw
}

// WinFor returns the winning result for player.
func WinFor(player PlayerID) Result {
	if player.IsFirst() {
		return ResultFirstPlayerWin
	}
	return ResultSecondPlayerWin
}

// RandomGenerator is the only source of game-affecting randomness.
// Get returns a number in [0, exclusiveMax).
type RandomGenerator interface {
	Get(exclusiveMax int) int
}

// RandomBetween returns a number in [min, max] drawn from r.
func RandomBetween(r RandomGenerator, min, max int) int {
	if max < min {
		panic(fmt.Sprintf("invalid random range [%d, %d]", min, max))
	}
	return min + r.Get(max-min+1)
}

// ChoiceType tells a choice getter which kind of decision is being asked for.
type ChoiceType int8

const (
	ChoiceMainAction ChoiceType = iota
	ChoiceHandCard
	ChoiceAttacker
	ChoiceDefender
	ChoiceTarget
	ChoiceMinionPutLocation
)

func (c ChoiceType) String() string {
	switch c {
	case ChoiceMainAction:
		return "main-action"
	case ChoiceHandCard:
		return "hand-card"
	case ChoiceAttacker:
		return "attacker"
	case ChoiceDefender:
		return "defender"
	case ChoiceTarget:
		return "target"
	case ChoiceMinionPutLocation:
		return "minion-put-location"
	default:
		return "unknown"
	}
}

// ChoiceGetter resolves every non-random decision taken while an action
// is applied. It must return an index in [0, count).
type ChoiceGetter interface {
	GetChoice(kind ChoiceType, count int) int
}

// FirstChoice always picks the first option.
type FirstChoice struct{}

func (FirstChoice) GetChoice(kind ChoiceType, count int) int {
	return 0
}

// FlowContext carries the injected randomness and choice sources for the
// duration of one action.
type FlowContext struct {
	Random  RandomGenerator
	Choices ChoiceGetter
}

func NewFlowContext(random RandomGenerator, choices ChoiceGetter) *FlowContext {
	return &FlowContext{Random: random, Choices: choices}
}

// Choose asks the choice source for an index in [0, count). Sub-choices with
// a single option are taken without asking.
func (fc *FlowContext) Choose(kind ChoiceType, count int) int {
	if count <= 0 {
		panic(fmt.Sprintf("choice %s requested with %d options", kind, count))
	}
	if count == 1 && kind != ChoiceMainAction {
		return 0
	}
	choice := fc.Choices.GetChoice(kind, count)
	if choice < 0 || choice >= count {
		panic(fmt.Sprintf("choice %s out of range: %d not in [0, %d)", kind, choice, count))
	}
	return choice
}

func (fc *FlowContext) random(exclusiveMax int) int {
	if exclusiveMax <= 0 {
		panic(fmt.Sprintf("random requested with bound %d", exclusiveMax))
	}
	if exclusiveMax == 1 {
		return 0
	}
	return fc.Random.Get(exclusiveMax)
}
