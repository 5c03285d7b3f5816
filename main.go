package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cardsim/config"
	"cardsim/experiments"
)

func main() {
	path := flag.String("config", "configs/parallelization.yaml", "Experiment config file")
	throughput := flag.String("throughput", "", "Comma separated goroutine counts; measures search throughput of the first agent instead of playing")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg, err := config.Load(*path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *throughput != "" {
		counts, err := parseCounts(*throughput)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid goroutine counts")
		}
		if len(cfg.Agents) == 0 {
			log.Fatal().Msg("config has no agents")
		}
		if _, err := experiments.RunThroughput(ctx, cfg.Agents[0], counts, cfg.Seed); err != nil {
			log.Fatal().Err(err).Msg("throughput experiment failed")
		}
		return
	}

	report, err := experiments.NewRunner(cfg).Run(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
	for name, wins := range report.Wins {
		log.Info().Str("agent", name).Int("wins", wins).Msg("result")
	}
	log.Info().Str("dir", report.Dir).Str("run", report.Run.String()).Msg("records stored")
}

func parseCounts(s string) ([]int, error) {
	var counts []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("goroutine count %d must be positive", n)
		}
		counts = append(counts, n)
	}
	return counts, nil
}
