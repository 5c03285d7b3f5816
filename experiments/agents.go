package experiments

import (
	"fmt"

	"cardsim/config"
	"cardsim/experiments/metrics"
	"cardsim/searcher"
	"cardsim/searcher/agent"
)

// agentBuilder creates fresh agents for one configuration. Every game gets
// its own agents so that concurrent games never share a collector.
type agentBuilder struct {
	id        int
	config    config.AgentConfig
	factory   searcher.PolicyFactory
	collector func() (metrics.Collector, error)
}

func newAgentBuilder(id int, a config.AgentConfig, collector func() (metrics.Collector, error)) (*agentBuilder, error) {
	factory, err := policyFactory(a)
	if err != nil {
		return nil, fmt.Errorf("agent %q: %w", a.Name, err)
	}
	return &agentBuilder{id: id, config: a, factory: factory, collector: collector}, nil
}

func (b *agentBuilder) build(seed uint64) (agent.Agent, error) {
	if b.config.Kind == config.AgentPolicy {
		return agent.NewPolicyAgent(b.factory(seed), seed), nil
	}

	collector, err := b.collector()
	if err != nil {
		return nil, fmt.Errorf("agent %q: %w", b.config.Name, err)
	}
	mcts := createMCTS(b.config, b.factory, collector, seed)
	if b.config.Kind == config.AgentTraining {
		return agent.NewTrainingAgent(mcts, b.config.Temperature, seed), nil
	}
	return agent.NewEvaluationAgent(mcts), nil
}

func (b *agentBuilder) record() metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:         b.id,
		Class:      b.config.Class,
		Goroutines: b.config.Goroutines,
		Duration:   b.config.Duration,
		Episodes:   b.config.Episodes,
		Policy:     b.config.PolicyLabel(),
		Value:      b.config.Value.Name,
	}
}

func createMCTS(a config.AgentConfig, factory searcher.PolicyFactory, collector metrics.Collector, seed uint64) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithPolicy(a.PolicyLabel(), factory),
		searcher.WithValueName(a.Value.Name),
		searcher.WithSeed(seed),
		searcher.WithMetrics(collector),
	}

	if a.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(a.Episodes))
	}
	if a.Duration > 0 {
		options = append(options, searcher.WithDuration(a.Duration))
	}
	return searcher.NewMCTS(a.Goroutines, options...)
}

// policyFactory resolves the rollout policy and value function of a.
func policyFactory(a config.AgentConfig) (searcher.PolicyFactory, error) {
	var predictor searcher.Predictor
	if a.Value.Name == "network" {
		p, err := searcher.LoadLinearPredictor(a.Value.Weights)
		if err != nil {
			return nil, err
		}
		predictor = p
	}
	value, err := searcher.LookupValueFunc(a.Value.Name, predictor)
	if err != nil {
		return nil, err
	}

	var build func(seed uint64) searcher.Policy
	switch a.Policy.Name {
	case "random":
		build = func(seed uint64) searcher.Policy { return searcher.NewRandomPolicy(seed) }
	case "hardcoded":
		build = func(seed uint64) searcher.Policy { return searcher.NewHardCodedPolicy(seed) }
	case "dfs":
		var options []searcher.DFSOption
		if a.Policy.RandomPutLocation {
			options = append(options, searcher.WithRandomPutLocation())
		}
		build = func(seed uint64) searcher.Policy { return searcher.NewDFSPolicy(value, seed, options...) }
	default:
		return nil, fmt.Errorf("unknown policy %q", a.Policy.Name)
	}

	if a.Policy.ExpectedLength == 0 {
		return build, nil
	}
	return func(seed uint64) searcher.Policy {
		return searcher.NewCutoffPolicy(build(seed), value, a.Policy.ExpectedLength, seed^cutoffSalt)
	}, nil
}

// cutoffSalt separates the cutoff draws from the inner policy's.
const cutoffSalt = 0x9e3779b97f4a7c15
