package searcher

import (
	"testing"

	"cardsim/board"
	"cardsim/game"
	"cardsim/game/cards"
)

// newBoard returns a mage to act against a warlock, both with empty decks,
// searched for the first player.
func newBoard(t *testing.T, resource int) *board.Board {
	t.Helper()
	s := game.New(cards.Database())
	s.SetHero(game.FirstPlayer, cards.Jaina, cards.Fireblast)
	s.SetHero(game.SecondPlayer, cards.Guldan, cards.LifeTap)
	s.SetCurrent(game.FirstPlayer, 3)
	s.Player(game.FirstPlayer).SetResource(game.Resource{Current: resource, Total: resource})
	return board.New(s, game.FirstPlayer)
}

func setHeroHP(b *board.Board, player game.PlayerID, hp int) {
	s := b.State()
	m := game.NewFlowController(s, game.NewFlowContext(game.NewRandom(1), game.FirstChoice{})).Manipulator()
	m.SetHP(s.Player(player).Hero(), hp)
}

// sequence answers sub-choices from a fixed list, then the first option.
type sequence []int

func (c *sequence) GetChoice(kind game.ChoiceType, count int) int {
	if len(*c) == 0 {
		return 0
	}
	choice := (*c)[0]
	*c = (*c)[1:]
	return choice
}

// constantPolicy always answers choice and never cuts off.
type constantPolicy struct {
	choice int
	asked  []game.ChoiceType
}

func (p *constantPolicy) GetChoice(req ChoiceRequest) int {
	p.asked = append(p.asked, req.Kind)
	return p.choice
}

func (p *constantPolicy) CutoffResult(*board.Board) (float64, bool) {
	return 0, false
}
