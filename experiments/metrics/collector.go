package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines   int
	Duration     time.Duration
	Episodes     int
	FullPlayouts int // Playouts that reached a decided game
	Cutoffs      int // Playouts ended by the value function
	Policy       string
	Value        string
}

type MoveMetric struct {
	Turn   int
	Player int // game.PlayerID
	SearchMetric
}

type GameMetric struct {
	StartingPlayer int    // game.PlayerID
	Result         string // game.Result
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
	Turns          int
}

type Collector interface {
	Start(goroutines int, policy, value string)
	AddFullPlayout()
	AddCutoff()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines   int
	policy       string
	value        string
	startTime    time.Time
	episodes     atomic.Int32
	fullPlayouts atomic.Int32
	cutoffs      atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int, policy, value string) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.policy = policy
	m.value = value
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.cutoffs.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddCutoff() {
	m.cutoffs.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:   m.goroutines,
		Duration:     time.Since(m.startTime),
		Episodes:     int(m.episodes.Load()),
		FullPlayouts: int(m.fullPlayouts.Load()),
		Cutoffs:      int(m.cutoffs.Load()),
		Policy:       m.policy,
		Value:        m.value,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int, policy, value string) {}
func (m *dummyCollector) AddFullPlayout()                           {}
func (m *dummyCollector) AddCutoff()                                {}
func (m *dummyCollector) AddEpisode()                               {}
func (m *dummyCollector) Complete() SearchMetric                    { return SearchMetric{} }
