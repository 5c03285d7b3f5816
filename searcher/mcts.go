package searcher

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cardsim/board"
	"cardsim/experiments/metrics"
	"cardsim/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrGameOver = errors.New("game is already decided")

type Option func(mcts *MCTS)

// MCTS searches a tree of choice points: main actions and the sub-choices
// they ask for. Parallel workers share the tree and the root analyzer, each
// playing episodes on a private copy of the root board.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	factory    PolicyFactory
	policyName string
	valueName  string
	seeds      *seeder
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

// WithPolicy sets the rollout policy every worker builds for itself.
func WithPolicy(name string, factory PolicyFactory) Option {
	return func(m *MCTS) {
		if factory != nil {
			m.policyName = name
			m.factory = factory
		}
	}
}

// WithValueName labels the value function in search metrics.
func WithValueName(name string) Option {
	return func(m *MCTS) {
		m.valueName = name
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seeds = newSeeder(seed)
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(m *MCTS) {
		if collector == nil {
			collector = metrics.NewCollector()
		}
		m.metrics = collector
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: goroutines,
		policyName: "random",
		factory: func(seed uint64) Policy {
			return NewRandomPolicy(seed)
		},
		seeds:   newSeeder(uint64(time.Now().UnixNano())),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines <= 0 {
		panic("Must use at least one goroutine")
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// SearchResult holds the root statistics of one search.
type SearchResult struct {
	Policy map[int]float64 // Visit share of every enumerated main action
	Best   []int           // Most visited main action, then its most visited sub-choices
	Metric metrics.SearchMetric
}

// Search runs the configured budget from root and returns its statistics.
// The returned error is ErrGameOver for a decided root, or the context's
// error if ctx ended first.
func (m *MCTS) Search(ctx context.Context, root *board.Board) (SearchResult, error) {
	if root.Result().IsTerminal() {
		return SearchResult{}, ErrGameOver
	}
	s := &search{
		root:    root,
		count:   root.Enumerate(),
		tree:    newNode(nil, edge{}, root.Side()),
		factory: m.factory,
		seeds:   m.seeds,
		metrics: m.metrics,
	}

	m.metrics.Start(m.goroutines, m.policyName, m.valueName)
	var err error
	if m.episodes > 0 {
		err = m.iterate(ctx, s)
	} else {
		err = m.countdown(ctx, s)
	}
	metric := m.metrics.Complete()
	if err != nil {
		return SearchResult{}, err
	}

	result := SearchResult{
		Policy: s.tree.policy(s.count),
		Best:   s.tree.bestSequence(),
		Metric: metric,
	}
	log.Debug().
		Str("side", root.Side().String()).
		Int("turn", root.State().Turn()).
		Int("actions", s.count).
		Ints("best", result.Best).
		Float64("visits", s.tree.Visits()).
		Msg("search complete")
	return result, nil
}

func (m *MCTS) iterate(ctx context.Context, s *search) error {
	task := make(chan uint64, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- s.seeds.next()
	}
	close(task)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < m.goroutines; i++ {
		w := s.newWorker()
		g.Go(func() error {
			for seed := range task {
				if err := ctx.Err(); err != nil {
					return err
				}
				w.episode(seed)
				m.metrics.AddEpisode()
			}
			return nil
		})
	}
	return g.Wait()
}

func (m *MCTS) countdown(ctx context.Context, s *search) error {
	budget, cancel := context.WithTimeout(ctx, m.duration)
	defer cancel()

	g, budget := errgroup.WithContext(budget)
	for i := 0; i < m.goroutines; i++ {
		w := s.newWorker()
		g.Go(func() error {
			for budget.Err() == nil {
				w.episode(s.seeds.next())
				m.metrics.AddEpisode()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

type search struct {
	root    *board.Board
	count   int // Main actions enumerated at the root
	tree    *node
	factory PolicyFactory
	seeds   *seeder
	metrics metrics.Collector
}

type worker struct {
	s       *search
	scratch *board.CopiedBoard
	policy  Policy
}

func (s *search) newWorker() *worker {
	return &worker{
		s:       s,
		scratch: board.NewCopiedBoard(),
		policy:  s.factory(s.seeds.next()),
	}
}

// episode walks the tree from the root, hands over to the rollout policy at
// the first expanded node and backs the playout value up the walked path.
func (w *worker) episode(seed uint64) {
	s := w.s
	w.scratch.FillWithBase(s.root)
	resetEpisode(w.policy)
	random := game.NewRandom(seed)
	tree := &treePolicy{inner: w.policy, current: s.tree, inTree: true}
	choices := policyChoices{policy: tree, board: &w.scratch.Board}

	main := choices.GetChoice(game.ChoiceMainAction, s.count)
	result := s.root.Analyzer().ApplyAction(w.scratch.State(), main, random, choices)
	var outcome Outcome
	switch result {
	case game.ResultNotDetermined:
		outcome = NewPlayout(tree, random).Run(&w.scratch.Board)
	case game.ResultInvalid:
		op := s.root.Analyzer().MainOpType(main)
		panic(fmt.Sprintf("enumerated root action %s was rejected", op))
	default:
		outcome = Outcome{Value: w.scratch.Score(result), Result: result, Steps: 1}
	}

	if outcome.Cut {
		s.metrics.AddCutoff()
	} else {
		s.metrics.AddFullPlayout()
	}
	backup(tree.current, s.root.Side(), outcome.Value)
}

// treePolicy answers choices from the tree until it expands a node, then
// defers to the rollout policy. Cutoff is suppressed inside the tree.
type treePolicy struct {
	inner   Policy
	current *node
	inTree  bool
}

func (p *treePolicy) GetChoice(req ChoiceRequest) int {
	if !p.inTree {
		return p.inner.GetChoice(req)
	}
	child, choice, expanded := p.current.selectOrExpand(req.Kind, req.Count, req.Board.CurrentPlayer())
	p.current = child
	if expanded {
		p.inTree = false
	}
	return choice
}

func (p *treePolicy) CutoffResult(b *board.Board) (float64, bool) {
	if p.inTree {
		return 0, false
	}
	return p.inner.CutoffResult(b)
}

// policy returns the visit share of each root main action.
func (n *node) policy(count int) map[int]float64 {
	visits := make(map[int]float64, count)
	total := 0.0
	for choice := 0; choice < count; choice++ {
		n.RLock()
		child, ok := n.children[edge{kind: game.ChoiceMainAction, count: count, choice: choice}]
		n.RUnlock()
		if ok {
			visits[choice] = child.Visits()
			total += visits[choice]
		}
	}
	if total == 0 {
		return visits
	}
	for choice := range visits {
		visits[choice] /= total
	}
	return visits
}

// bestSequence follows the most visited main action and then its most
// visited sub-choices until the next main action.
func (n *node) bestSequence() []int {
	var sequence []int
	child, ok := n.mostVisited(func(e edge) bool {
		return e.kind == game.ChoiceMainAction
	})
	for ok {
		sequence = append(sequence, child.edge.choice)
		child, ok = child.mostVisited(func(e edge) bool {
			return e.kind != game.ChoiceMainAction
		})
	}
	return sequence
}

type seeder struct {
	sync.Mutex
	random *game.Random
}

func newSeeder(seed uint64) *seeder {
	return &seeder{random: game.NewRandom(seed)}
}

func (s *seeder) next() uint64 {
	s.Lock()
	defer s.Unlock()

	return s.random.Uint64()
}
