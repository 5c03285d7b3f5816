package searcher

import (
	"math"
	"sync"

	"cardsim/game"
)

// edge identifies a child by the choice point it answers. The option count
// is part of the key: randomness that changes the options at a choice point
// opens a separate group of children.
type edge struct {
	kind   game.ChoiceType
	count  int
	choice int
}

type node struct {
	sync.RWMutex
	parent   *node
	edge     edge
	player   game.PlayerID // Player who made the choice leading here
	children map[edge]*node
	rewards  float64
	visits   float64
}

func newNode(parent *node, e edge, player game.PlayerID) *node {
	return &node{
		parent:   parent,
		edge:     e,
		player:   player,
		children: make(map[edge]*node),
	}
}

// selectOrExpand answers a choice point of count options asked of player.
// The first option without a child is expanded; once all are expanded the
// child with the highest UCT value is selected. Either way the child takes a
// virtual loss until backup.
func (n *node) selectOrExpand(kind game.ChoiceType, count int, player game.PlayerID) (*node, int, bool) {
	n.Lock()
	defer n.Unlock()

	for choice := 0; choice < count; choice++ {
		e := edge{kind: kind, count: count, choice: choice}
		if _, ok := n.children[e]; !ok {
			child := newNode(n, e, player)
			n.children[e] = child
			child.applyLoss()
			return child, choice, true
		}
	}

	group := make([]*node, count)
	total := 0.0
	for choice := range group {
		child := n.children[edge{kind: kind, count: count, choice: choice}]
		group[choice] = child
		total += child.Visits()
	}
	policy := newUCT(CSquared, max(total, 1))

	best := -1
	bestScore := math.Inf(-1)
	for choice, child := range group {
		child.RLock()
		score := policy.evaluate(child.rewards, max(child.visits, 1))
		child.RUnlock()
		if score > bestScore {
			bestScore = score
			best = choice
		}
	}
	group[best].applyLoss()
	return group[best], best, false
}

func (n *node) applyLoss() {
	n.Lock()
	defer n.Unlock()

	n.rewards += LOSS
	n.visits++
}

// backup reverses the virtual loss and adds the reward, where value is the
// playout result for side. Returns the parent.
func (n *node) backup(side game.PlayerID, value float64) *node {
	n.Lock()
	defer n.Unlock()

	if n.parent != nil { // Non-root node
		n.rewards -= LOSS
		n.visits--
	}

	if n.player == side {
		n.rewards += value
	} else {
		n.rewards -= value
	}
	n.visits++

	return n.parent
}

func (n *node) Visits() float64 {
	n.RLock()
	defer n.RUnlock()

	return n.visits
}

// mostVisited returns the most visited child whose edge passes keep, the
// lowest choice first on ties.
func (n *node) mostVisited(keep func(e edge) bool) (*node, bool) {
	n.RLock()
	defer n.RUnlock()

	var best *node
	for e, child := range n.children {
		if !keep(e) {
			continue
		}
		if best == nil || child.Visits() > best.Visits() ||
			(child.Visits() == best.Visits() && lessEdge(e, best.edge)) {
			best = child
		}
	}
	return best, best != nil
}

func lessEdge(a, b edge) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	if a.count != b.count {
		return a.count < b.count
	}
	return a.choice < b.choice
}

func backup(leaf *node, side game.PlayerID, value float64) {
	n := leaf
	for n != nil {
		n = n.backup(side, value)
	}
}
