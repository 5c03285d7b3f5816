package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestOTelCollector(t *testing.T) (Collector, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	c, err := NewOTelCollector(mp)
	require.NoError(t, err)
	return c, reader
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m
			}
		}
	}
	t.Fatalf("metric %s not recorded", name)
	return metricdata.Metrics{}
}

func TestOTelCollector(t *testing.T) {
	t.Run("mirrors counts to instruments", func(t *testing.T) {
		c, reader := newTestOTelCollector(t)
		c.Start(2, "cutoff", "weak")
		c.AddEpisode()
		c.AddEpisode()
		c.AddEpisode()
		c.AddFullPlayout()
		c.AddCutoff()
		c.AddCutoff()
		got := c.Complete()

		require.Equal(t, 3, got.Episodes, "Atomic counts should still be reported")

		episodes := findMetric(t, reader, "cardsim.search.episodes")
		sum, ok := episodes.Data.(metricdata.Sum[int64])
		require.True(t, ok)
		require.Len(t, sum.DataPoints, 1)
		require.Equal(t, int64(3), sum.DataPoints[0].Value)
		policy, ok := sum.DataPoints[0].Attributes.Value(attribute.Key("policy"))
		require.True(t, ok)
		require.Equal(t, "cutoff", policy.AsString())

		cutoffs := findMetric(t, reader, "cardsim.search.cutoffs")
		require.Equal(t, int64(2), cutoffs.Data.(metricdata.Sum[int64]).DataPoints[0].Value)
	})

	t.Run("records one search duration per completion", func(t *testing.T) {
		c, reader := newTestOTelCollector(t)
		c.Start(1, "random", "weak")
		c.Complete()
		c.Start(1, "random", "weak")
		c.Complete()

		searches := findMetric(t, reader, "cardsim.search.duration")
		hist, ok := searches.Data.(metricdata.Histogram[float64])
		require.True(t, ok)
		require.Len(t, hist.DataPoints, 1)
		require.Equal(t, uint64(2), hist.DataPoints[0].Count)
	})
}
