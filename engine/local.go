package engine

import (
	"context"
	"fmt"
	"time"

	"cardsim/board"
	"cardsim/experiments/metrics"
	"cardsim/game"
	"cardsim/game/cards"
	"cardsim/replay"
	"cardsim/searcher/agent"

	"github.com/rs/zerolog/log"
)

// Seat is one side of a local game.
type Seat struct {
	Agent agent.Agent
	Class cards.Class
}

// LocalEngine runs both agents in process. The first seat starts the game.
type LocalEngine struct {
	seats       [2]Seat
	seed        uint64
	openingHand int
	maxTurns    int
}

func NewLocalEngine(first, second Seat, seed uint64, openingHand, maxTurns int) *LocalEngine {
	if first.Agent == nil || second.Agent == nil {
		panic("both seats need an agent")
	}
	if maxTurns <= 0 {
		panic("max turns must be positive")
	}
	return &LocalEngine{
		seats:       [2]Seat{first, second},
		seed:        seed,
		openingHand: openingHand,
		maxTurns:    maxTurns,
	}
}

// Run deals a new game and asks the agent of the current player for moves
// until the game is decided, the turn limit passes or MaxMoves is reached.
// Each move is applied to the game with the engine's own randomness, so
// agents only ever see copies of the state.
func (e *LocalEngine) Run(ctx context.Context) (metrics.GameMetric, []metrics.MoveMetric, error) {
	start := time.Now()
	random := game.NewRandom(e.seed)
	s := cards.NewGame(e.seats[0].Class, e.seats[1].Class)
	flow := game.NewFlowController(s, game.NewFlowContext(random, game.FirstChoice{}))
	result := flow.StartGame(e.openingHand)

	log.Info().
		Str("first", e.seats[0].Class.Name).
		Str("second", e.seats[1].Class.Name).
		Uint64("seed", e.seed).
		Msg("game started")

	var moves []metrics.MoveMetric
	var helper replay.Helper
	for !result.IsTerminal() && s.Turn() <= e.maxTurns && len(moves) < MaxMoves {
		player := s.Current()
		b := board.New(s.Copy(), player)
		choices, metric, err := e.seats[player].Agent.FindMove(ctx, b)
		if err != nil {
			return metrics.GameMetric{}, nil, fmt.Errorf("%s player failed to move on turn %d: %w", player, s.Turn(), err)
		}
		if len(choices) == 0 {
			return metrics.GameMetric{}, nil, fmt.Errorf("%s player on turn %d: %w", player, s.Turn(), ErrEmptyMove)
		}
		moves = append(moves, metrics.MoveMetric{
			Turn:         s.Turn(),
			Player:       int(player),
			SearchMetric: metric,
		})

		helper.ClearChoices()
		for _, choice := range choices {
			helper.AppendChoice(choice)
		}
		var pending replay.Pending
		pending, result = helper.Apply(s, random)
		if pending.Reached {
			log.Debug().Stringer("pending", pending).Ints("choices", choices).Msg("move completed with defaults")
		}
	}

	if !result.IsTerminal() {
		log.Warn().Int("turn", s.Turn()).Int("moves", len(moves)).Msg("game stopped before a result")
	}
	end := time.Now()
	gameMetric := metrics.GameMetric{
		StartingPlayer: int(game.FirstPlayer),
		Result:         result.String(),
		StartTime:      start,
		EndTime:        end,
		Duration:       end.Sub(start),
		TotalMoves:     len(moves),
		Turns:          min(s.Turn(), e.maxTurns),
	}
	log.Info().
		Str("result", gameMetric.Result).
		Int("turns", gameMetric.Turns).
		Int("moves", gameMetric.TotalMoves).
		Dur("duration", gameMetric.Duration).
		Msg("game finished")
	return gameMetric, moves, nil
}
