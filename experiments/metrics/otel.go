package metrics

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "cardsim/searcher"

var searchBuckets = []float64{
	0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 10,
}

// otelCollector keeps the atomic counts for the per-move record and mirrors
// every event to OpenTelemetry instruments tagged with the policy and value
// function names.
type otelCollector struct {
	collector
	attrs        metric.MeasurementOption
	episodes     metric.Int64Counter
	fullPlayouts metric.Int64Counter
	cutoffs      metric.Int64Counter
	searches     metric.Float64Histogram
}

// NewOTelCollector creates a collector recording through mp. Returns an
// error if any instrument creation fails.
func NewOTelCollector(mp metric.MeterProvider) (Collector, error) {
	m := mp.Meter(meterName)
	var err error
	c := &otelCollector{attrs: metric.WithAttributes()}

	if c.episodes, err = m.Int64Counter("cardsim.search.episodes",
		metric.WithDescription("Search episodes run."),
	); err != nil {
		return nil, err
	}
	if c.fullPlayouts, err = m.Int64Counter("cardsim.search.full_playouts",
		metric.WithDescription("Playouts that reached a decided game."),
	); err != nil {
		return nil, err
	}
	if c.cutoffs, err = m.Int64Counter("cardsim.search.cutoffs",
		metric.WithDescription("Playouts scored by the value function."),
	); err != nil {
		return nil, err
	}
	if c.searches, err = m.Float64Histogram("cardsim.search.duration",
		metric.WithDescription("Wall time of one move search."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(searchBuckets...),
	); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *otelCollector) Start(goroutines int, policy, value string) {
	c.collector.Start(goroutines, policy, value)
	c.attrs = metric.WithAttributes(
		attribute.String("policy", policy),
		attribute.String("value", value),
	)
}

func (c *otelCollector) AddFullPlayout() {
	c.collector.AddFullPlayout()
	c.fullPlayouts.Add(context.Background(), 1, c.attrs)
}

func (c *otelCollector) AddCutoff() {
	c.collector.AddCutoff()
	c.cutoffs.Add(context.Background(), 1, c.attrs)
}

func (c *otelCollector) AddEpisode() {
	c.collector.AddEpisode()
	c.episodes.Add(context.Background(), 1, c.attrs)
}

func (c *otelCollector) Complete() SearchMetric {
	m := c.collector.Complete()
	c.searches.Record(context.Background(), m.Duration.Seconds(), c.attrs)
	return m
}
