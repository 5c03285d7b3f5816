// Package experiments plays the matchups of a configuration and stores the
// game and move records as CSV files.
package experiments

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"cardsim/config"
	"cardsim/engine"
	"cardsim/experiments/metrics"
	"cardsim/game"
	"cardsim/game/cards"
)

type Option func(r *Runner)

// WithMeterProvider sets the provider used by the otel metrics kind. The
// global provider is used otherwise.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(r *Runner) {
		if mp != nil {
			r.meterProvider = mp
		}
	}
}

type Runner struct {
	cfg           *config.Config
	meterProvider metric.MeterProvider
}

func NewRunner(cfg *config.Config, options ...Option) *Runner {
	r := &Runner{cfg: cfg, meterProvider: otel.GetMeterProvider()}
	for _, option := range options {
		option(r)
	}
	return r
}

// Report summarizes a finished experiment.
type Report struct {
	Dir   string // Directory holding the CSV files
	Run   uuid.UUID
	Games []metrics.GameRecord
	Moves []metrics.MoveRecord
	Wins  map[string]int // By agent name
}

// Run plays every matchup of the configuration and writes the records. It
// stops at the first failing game.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	exp := r.cfg.Experiment
	builders := make(map[string]*agentBuilder, len(r.cfg.Agents))
	configs := make([]metrics.AgentConfig, 0, len(r.cfg.Agents))
	for i, a := range r.cfg.Agents {
		b, err := newAgentBuilder(i+1, a, r.newCollector)
		if err != nil {
			return nil, err
		}
		builders[a.Name] = b
		configs = append(configs, b.record())
	}

	writer, err := metrics.NewWriter(r.cfg.OutputDir, exp.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return nil, err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored agent configs")

	report := &Report{Dir: writer.Dir(), Run: writer.Run(), Wins: make(map[string]int)}
	seeds := game.NewRandom(r.cfg.Seed)
	log.Info().Msgf("starting %s experiment...", exp.Name)

	for mi, matchup := range exp.Matchups {
		log.Info().Msgf("starting matchup %d of %d between %s and %s...", mi+1, len(exp.Matchups), matchup.First, matchup.Second)

		games := make([]matchGame, exp.Games)
		for i := range games {
			first, second := builders[matchup.First], builders[matchup.Second]
			if exp.Alternate && i%2 == 1 {
				first, second = second, first
			}
			games[i] = matchGame{id: uuid.New(), seed: seeds.Uint64(), first: first, second: second}
		}

		var lock sync.Mutex
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(exp.Parallel)
		for i := range games {
			i := i
			mg := games[i]
			g.Go(func() error {
				gameMetric, moves, err := r.play(gctx, mg)
				if err != nil {
					return fmt.Errorf("matchup %d game %d: %w", mi+1, i+1, err)
				}

				lock.Lock()
				defer lock.Unlock()
				report.add(mg, gameMetric, moves)
				log.Info().Msgf("completed matchup %d of %d game %d with result: %s", mi+1, len(exp.Matchups), i+1, gameMetric.Result)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		log.Info().Msgf("completed matchup %d of %d", mi+1, len(exp.Matchups))
	}
	log.Info().Msgf("completed %s experiment", exp.Name)

	if err := writer.WriteGameRecords(report.Games); err != nil {
		return nil, err
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteMoveRecords(report.Moves); err != nil {
		return nil, err
	}
	log.Info().Msg("stored move records")
	return report, nil
}

type matchGame struct {
	id            uuid.UUID
	seed          uint64
	first, second *agentBuilder
}

func (r *Runner) play(ctx context.Context, mg matchGame) (metrics.GameMetric, []metrics.MoveMetric, error) {
	first, err := r.seat(mg.first, mg.seed)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	second, err := r.seat(mg.second, mg.seed+1)
	if err != nil {
		return metrics.GameMetric{}, nil, err
	}
	exp := r.cfg.Experiment
	var e engine.Engine = engine.NewLocalEngine(first, second, mg.seed, exp.OpeningHand, exp.MaxTurns)
	return e.Run(ctx)
}

func (r *Runner) seat(b *agentBuilder, seed uint64) (engine.Seat, error) {
	class, err := cards.LookupClass(b.config.Class)
	if err != nil {
		return engine.Seat{}, err
	}
	a, err := b.build(seed)
	if err != nil {
		return engine.Seat{}, err
	}
	return engine.Seat{Agent: a, Class: class}, nil
}

func (r *Runner) newCollector() (metrics.Collector, error) {
	switch r.cfg.Metrics {
	case config.MetricsNone:
		return metrics.NewDummyCollector(), nil
	case config.MetricsOTel:
		return metrics.NewOTelCollector(r.meterProvider)
	default:
		return metrics.NewCollector(), nil
	}
}

func (rep *Report) add(mg matchGame, gameMetric metrics.GameMetric, moves []metrics.MoveMetric) {
	rep.Games = append(rep.Games, metrics.GameRecord{
		ID:         mg.id,
		Agent1:     mg.first.id,
		Agent2:     mg.second.id,
		GameMetric: gameMetric,
	})
	for _, mm := range moves {
		rep.Moves = append(rep.Moves, metrics.MoveRecord{Game: mg.id, MoveMetric: mm})
	}
	switch gameMetric.Result {
	case game.ResultFirstPlayerWin.String():
		rep.Wins[mg.first.config.Name]++
	case game.ResultSecondPlayerWin.String():
		rep.Wins[mg.second.config.Name]++
	}
}
