package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const validConfig = `
seed: 7
experiment:
  name: smoke
  matchups:
    - {first: a, second: b}
agents:
  - name: a
    class: mage
  - name: b
    class: warlock
    kind: policy
    policy: {name: dfs, expected_length: 4, random_put_location: true}
    value: {name: board}
`

func TestLoadFromReader(t *testing.T) {
	t.Run("defaults are filled in", func(t *testing.T) {
		cfg, err := LoadFromReader(strings.NewReader(validConfig))
		require.NoError(t, err)

		require.Equal(t, "info", cfg.LogLevel)
		require.Equal(t, uint64(7), cfg.Seed)
		require.Equal(t, DefaultOutputDir, cfg.OutputDir)
		require.Equal(t, MetricsAtomic, cfg.Metrics)
		require.Equal(t, DefaultGames, cfg.Experiment.Games)
		require.Equal(t, DefaultOpeningHand, cfg.Experiment.OpeningHand)
		require.Equal(t, DefaultMaxTurns, cfg.Experiment.MaxTurns)
		require.Equal(t, DefaultParallel, cfg.Experiment.Parallel)

		a := cfg.Agents[0]
		require.Equal(t, AgentMCTS, a.Kind)
		require.Equal(t, DefaultGoroutines, a.Goroutines)
		require.Equal(t, DefaultEpisodes, a.Episodes)
		require.Equal(t, 1.0, a.Temperature)
		require.Equal(t, "random", a.Policy.Name)
		require.Equal(t, "weak", a.Value.Name)
		require.Equal(t, "random", a.PolicyLabel())

		b := cfg.Agents[1]
		require.Equal(t, AgentPolicy, b.Kind)
		require.True(t, b.Policy.RandomPutLocation)
		require.Equal(t, "cutoff+dfs", b.PolicyLabel())
	})

	t.Run("durations are parsed and replace the default episodes", func(t *testing.T) {
		cfg, err := LoadFromReader(strings.NewReader(validConfig + `
  - name: c
    class: paladin
    duration: 25ms
`))
		require.NoError(t, err)
		require.Equal(t, 25*time.Millisecond, cfg.Agents[2].Duration)
		require.Zero(t, cfg.Agents[2].Episodes)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		_, err := LoadFromReader(strings.NewReader(validConfig + "cutoff: 100\n"))
		require.Error(t, err)
	})

	t.Run("every validation failure is reported", func(t *testing.T) {
		_, err := LoadFromReader(strings.NewReader(`
log_level: loud
metrics: prometheus
experiment:
  name: broken
  matchups:
    - {first: a, second: ghost}
agents:
  - name: a
    class: druid
    kind: genius
    policy: {name: greedy, expected_length: 0.5}
    value: {name: network}
  - name: a
    class: mage
    goroutines: -2
`))
		require.Error(t, err)
		for _, want := range []string{
			"log_level",
			"metrics",
			`unknown agent "ghost"`,
			"agents[0].class",
			"agents[0].kind",
			"agents[0].policy.name",
			"agents[0].policy.expected_length",
			"agents[0].value.weights",
			`agents[1].name "a" is duplicated`,
			"agents[1].goroutines",
		} {
			require.Contains(t, err.Error(), want)
		}
	})

	t.Run("a name and a matchup are required", func(t *testing.T) {
		_, err := LoadFromReader(strings.NewReader("agents: []\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "experiment.name")
		require.Contains(t, err.Error(), "experiment.matchups")
	})
}

func TestLoad(t *testing.T) {
	t.Run("loading the shipped config", func(t *testing.T) {
		cfg, err := Load(filepath.Join("..", "configs", "parallelization.yaml"))
		require.NoError(t, err)
		require.Equal(t, "parallelization", cfg.Experiment.Name)
		require.Len(t, cfg.Agents, 3)
		require.Equal(t, 10*time.Millisecond, cfg.Agents[0].Duration)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})
}
