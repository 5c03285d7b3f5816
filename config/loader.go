package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"cardsim/game/cards"
	"cardsim/utils"
)

var (
	validPolicies = []string{"random", "hardcoded", "dfs"}
	validValues   = []string{"weak", "board", "network"}
)

// Load reads the YAML configuration file at path and returns a validated
// Config with defaults filled in.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, applies defaults and
// validates the result.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	ApplyDefaults(cfg)
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyDefaults fills every unset field that has a default.
func ApplyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = zerolog.LevelInfoValue
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if cfg.Metrics == "" {
		cfg.Metrics = MetricsAtomic
	}
	if cfg.Experiment.Games == 0 {
		cfg.Experiment.Games = DefaultGames
	}
	if cfg.Experiment.OpeningHand == 0 {
		cfg.Experiment.OpeningHand = DefaultOpeningHand
	}
	if cfg.Experiment.MaxTurns == 0 {
		cfg.Experiment.MaxTurns = DefaultMaxTurns
	}
	if cfg.Experiment.Parallel == 0 {
		cfg.Experiment.Parallel = DefaultParallel
	}
	for i := range cfg.Agents {
		a := &cfg.Agents[i]
		if a.Kind == "" {
			a.Kind = AgentMCTS
		}
		if a.Goroutines == 0 {
			a.Goroutines = DefaultGoroutines
		}
		if a.Episodes == 0 && a.Duration == 0 {
			a.Episodes = DefaultEpisodes
		}
		if a.Temperature == 0 {
			a.Temperature = 1
		}
		if a.Policy.Name == "" {
			a.Policy.Name = "random"
		}
		if a.Value.Name == "" {
			a.Value.Name = "weak"
		}
	}
}

// Validate checks that cfg contains a coherent set of values. It returns a
// joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level %q is invalid: %w", cfg.LogLevel, err))
	}
	if !cfg.Metrics.IsValid() {
		errs = append(errs, fmt.Errorf("metrics %q is invalid; valid values: none, atomic, otel", cfg.Metrics))
	}

	// Experiment
	if cfg.Experiment.Name == "" {
		errs = append(errs, errors.New("experiment.name is required"))
	}
	if cfg.Experiment.Games < 0 {
		errs = append(errs, fmt.Errorf("experiment.games must be positive, got %d", cfg.Experiment.Games))
	}
	if cfg.Experiment.OpeningHand < 0 {
		errs = append(errs, fmt.Errorf("experiment.opening_hand must be positive, got %d", cfg.Experiment.OpeningHand))
	}
	if cfg.Experiment.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("experiment.max_turns must be positive, got %d", cfg.Experiment.MaxTurns))
	}
	if cfg.Experiment.Parallel < 0 {
		errs = append(errs, fmt.Errorf("experiment.parallel must be positive, got %d", cfg.Experiment.Parallel))
	}
	if len(cfg.Experiment.Matchups) == 0 {
		errs = append(errs, errors.New("experiment.matchups must list at least one matchup"))
	}

	// Agents
	names := make(map[string]bool, len(cfg.Agents))
	for i, a := range cfg.Agents {
		prefix := fmt.Sprintf("agents[%d]", i)
		if a.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if names[a.Name] {
			errs = append(errs, fmt.Errorf("%s.name %q is duplicated", prefix, a.Name))
		}
		names[a.Name] = true
		errs = append(errs, validateAgent(prefix, a)...)
	}

	for i, m := range cfg.Experiment.Matchups {
		for _, name := range []string{m.First, m.Second} {
			if !names[name] {
				errs = append(errs, fmt.Errorf("experiment.matchups[%d] refers to unknown agent %q", i, name))
			}
		}
	}

	return errors.Join(errs...)
}

func validateAgent(prefix string, a AgentConfig) []error {
	var errs []error
	if _, err := cards.LookupClass(a.Class); err != nil {
		errs = append(errs, fmt.Errorf("%s.class: %w", prefix, err))
	}
	if !a.Kind.IsValid() {
		errs = append(errs, fmt.Errorf("%s.kind %q is invalid; valid values: mcts, training, policy", prefix, a.Kind))
	}
	if a.Kind != AgentPolicy {
		if a.Goroutines <= 0 {
			errs = append(errs, fmt.Errorf("%s.goroutines must be positive, got %d", prefix, a.Goroutines))
		}
		if a.Episodes < 0 || a.Duration < 0 {
			errs = append(errs, fmt.Errorf("%s: episodes and duration cannot be negative", prefix))
		}
		if a.Episodes > 0 && a.Duration > 0 {
			log.Warn().Str("agent", a.Name).Msg("both episodes and duration are set; episodes take precedence")
		}
	}
	if a.Temperature < 0 {
		errs = append(errs, fmt.Errorf("%s.temperature must be positive, got %g", prefix, a.Temperature))
	}
	if !utils.Contains(validPolicies, a.Policy.Name) {
		errs = append(errs, fmt.Errorf("%s.policy.name %q is invalid; valid values: %v", prefix, a.Policy.Name, validPolicies))
	}
	if a.Policy.ExpectedLength != 0 && a.Policy.ExpectedLength < 1 {
		errs = append(errs, fmt.Errorf("%s.policy.expected_length must be at least 1, got %g", prefix, a.Policy.ExpectedLength))
	}
	if !utils.Contains(validValues, a.Value.Name) {
		errs = append(errs, fmt.Errorf("%s.value.name %q is invalid; valid values: %v", prefix, a.Value.Name, validValues))
	}
	if a.Value.Name == "network" && a.Value.Weights == "" {
		errs = append(errs, fmt.Errorf("%s.value.weights is required for the network value", prefix))
	}
	return errs
}
