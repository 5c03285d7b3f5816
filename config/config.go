// Package config provides the YAML schema and loader for experiment runs.
package config

import "time"

// Defaults for fields left out of a config file.
const (
	DefaultGoroutines  = 8
	DefaultEpisodes    = 150
	DefaultMaxTurns    = 300
	DefaultOpeningHand = 3
	DefaultGames       = 10
	DefaultParallel    = 1
	DefaultOutputDir   = "experiments/results"
)

type MetricsKind string

const (
	MetricsNone   MetricsKind = "none"
	MetricsAtomic MetricsKind = "atomic"
	MetricsOTel   MetricsKind = "otel"
)

func (k MetricsKind) IsValid() bool {
	switch k {
	case MetricsNone, MetricsAtomic, MetricsOTel:
		return true
	}
	return false
}

// AgentKind selects how an agent picks its moves.
type AgentKind string

const (
	// AgentMCTS plays the most visited move of a tree search.
	AgentMCTS AgentKind = "mcts"

	// AgentTraining samples moves from the tree search visit shares.
	AgentTraining AgentKind = "training"

	// AgentPolicy plays its rollout policy directly.
	AgentPolicy AgentKind = "policy"
)

func (k AgentKind) IsValid() bool {
	switch k {
	case AgentMCTS, AgentTraining, AgentPolicy:
		return true
	}
	return false
}

// Config is the root configuration structure.
type Config struct {
	LogLevel   string        `yaml:"log_level"`
	Seed       uint64        `yaml:"seed"`
	OutputDir  string        `yaml:"output_dir"`
	Metrics    MetricsKind   `yaml:"metrics"`
	Experiment Experiment    `yaml:"experiment"`
	Agents     []AgentConfig `yaml:"agents"`
}

type Experiment struct {
	Name        string    `yaml:"name"`
	Games       int       `yaml:"games"` // Per matchup
	OpeningHand int       `yaml:"opening_hand"`
	MaxTurns    int       `yaml:"max_turns"`
	Alternate   bool      `yaml:"alternate"` // Swap the starting agent every game
	Parallel    int       `yaml:"parallel"`  // Games of a matchup played at once
	Matchups    []Matchup `yaml:"matchups"`
}

// Matchup pairs two agents by name; First starts unless alternating.
type Matchup struct {
	First  string `yaml:"first"`
	Second string `yaml:"second"`
}

type AgentConfig struct {
	Name        string        `yaml:"name"`
	Class       string        `yaml:"class"`
	Kind        AgentKind     `yaml:"kind"`
	Goroutines  int           `yaml:"goroutines"`
	Episodes    int           `yaml:"episodes"`
	Duration    time.Duration `yaml:"duration"`
	Temperature float64       `yaml:"temperature"`
	Policy      PolicyConfig  `yaml:"policy"`
	Value       ValueConfig   `yaml:"value"`
}

type PolicyConfig struct {
	Name string `yaml:"name"` // random, hardcoded or dfs

	// ExpectedLength wraps the policy in a cutoff policy ending a playout
	// with probability 1/ExpectedLength per main action. Zero disables it.
	ExpectedLength    float64 `yaml:"expected_length"`
	RandomPutLocation bool    `yaml:"random_put_location"`
}

type ValueConfig struct {
	Name    string `yaml:"name"`    // weak, board or network
	Weights string `yaml:"weights"` // Linear predictor weights for network
}

// PolicyLabel names the rollout policy in search metrics.
func (a AgentConfig) PolicyLabel() string {
	if a.Policy.ExpectedLength > 0 {
		return "cutoff+" + a.Policy.Name
	}
	return a.Policy.Name
}
