// Package board pairs a game state with the side a search is run for, and
// caches the legal actions of that state.
package board

import "cardsim/game"

// Board is a state seen from the searching side.
type Board struct {
	state    *game.State
	side     game.PlayerID
	analyzer *ActionAnalyzer
}

func New(state *game.State, side game.PlayerID) *Board {
	return &Board{state: state, side: side, analyzer: NewActionAnalyzer()}
}

func (b *Board) State() *game.State           { return b.state }
func (b *Board) Side() game.PlayerID          { return b.side }
func (b *Board) Analyzer() *ActionAnalyzer    { return b.analyzer }
func (b *Board) Result() game.Result          { return b.state.Result() }
func (b *Board) CurrentPlayer() game.PlayerID { return b.state.Current() }

// Enumerate refreshes the cached actions for the current state.
func (b *Board) Enumerate() int {
	return b.analyzer.Enumerate(b.state)
}

func (b *Board) ApplyAction(i int, random game.RandomGenerator, choices game.ChoiceGetter) game.Result {
	return b.analyzer.ApplyAction(b.state, i, random, choices)
}

// Copy returns a board over a deep copy of the state with a fresh analyzer.
func (b *Board) Copy() *Board {
	return New(b.state.Copy(), b.side)
}

// Score maps a decided result to a reward for the searching side: 1 for a
// win, -1 for a loss, 0 for a draw or an undecided game.
func (b *Board) Score(result game.Result) float64 {
	switch result {
	case game.WinFor(b.side):
		return 1
	case game.WinFor(b.side.Opposite()):
		return -1
	default:
		return 0
	}
}

// CopiedBoard is a reusable scratch board. FillWithBase overwrites it with
// another board's state without reallocating.
type CopiedBoard struct {
	Board
}

func NewCopiedBoard() *CopiedBoard {
	return &CopiedBoard{Board: Board{analyzer: NewActionAnalyzer()}}
}

func (c *CopiedBoard) FillWithBase(base *Board) {
	if c.state == nil {
		c.state = base.state.Copy()
	} else {
		base.state.CopyTo(c.state)
	}
	c.side = base.side
	c.analyzer.Reset()
}

// SetSide changes the side the scratch board is scored for.
func (c *CopiedBoard) SetSide(side game.PlayerID) {
	c.side = side
}
