package experiments

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"cardsim/board"
	"cardsim/config"
	"cardsim/experiments/metrics"
	"cardsim/game"
	"cardsim/game/cards"
)

// Throughput is the search rate of one goroutine count.
type Throughput struct {
	Goroutines int
	Metric     metrics.SearchMetric
}

func (t Throughput) EpisodesPerSecond() float64 {
	if t.Metric.Duration <= 0 {
		return 0
	}
	return float64(t.Metric.Episodes) / t.Metric.Duration.Seconds()
}

// RunThroughput searches the opening position of a mirror game of a's class
// once per goroutine count, each for a's duration.
func RunThroughput(ctx context.Context, a config.AgentConfig, goroutines []int, seed uint64) ([]Throughput, error) {
	if a.Duration <= 0 {
		return nil, fmt.Errorf("agent %q: throughput needs a duration budget", a.Name)
	}
	class, err := cards.LookupClass(a.Class)
	if err != nil {
		return nil, err
	}
	factory, err := policyFactory(a)
	if err != nil {
		return nil, err
	}

	s := cards.NewGame(class, class)
	game.NewFlowController(s, game.NewFlowContext(game.NewRandom(seed), game.FirstChoice{})).StartGame(config.DefaultOpeningHand)

	log.Info().Msg("starting throughput experiment...")
	results := make([]Throughput, 0, len(goroutines))
	for _, n := range goroutines {
		perRun := a
		perRun.Goroutines = n
		perRun.Episodes = 0
		mcts := createMCTS(perRun, factory, metrics.NewCollector(), seed)

		root := board.New(s.Copy(), s.Current())
		result, err := mcts.Search(ctx, root)
		if err != nil {
			return nil, err
		}
		t := Throughput{Goroutines: n, Metric: result.Metric}
		results = append(results, t)
		log.Info().
			Int("goroutines", n).
			Int("episodes", t.Metric.Episodes).
			Float64("episodes_per_second", t.EpisodesPerSecond()).
			Dur("duration", t.Metric.Duration).
			Msg("throughput measured")
	}
	log.Info().Msg("completed throughput experiment")
	return results, nil
}
