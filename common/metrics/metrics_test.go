package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestNoopByDefault(t *testing.T) {
	m := defaultNoopMetrics()
	require.Nil(t, m.GetOrCreateHandler())
	m.GetOrCreateCountVecMeter("x", nil).AddWithLabel(1, nil)
	m.GetOrCreateGaugeMeter("y").Set(3)
}

func TestPromMetrics(t *testing.T) {
	InitializePrometheusMetrics()
	require.NotNil(t, HTTPHandler())

	txs := LazyLoadCounterVec("test_txs_total", []string{"method"})
	txs().AddWithLabel(2, map[string]string{"method": "Deposit"})
	CounterVec("test_txs_total", []string{"method"}).AddWithLabel(1, map[string]string{"method": "Deposit"})
	LazyLoadGauge("test_height")().Set(12)
	LazyLoadHistogramVec("test_latency", []string{"method"}, BucketTxMillis)().
		ObserveWithLabels(3, map[string]string{"method": "Work"})

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	found := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				found[mf.GetName()] = m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				found[mf.GetName()] = m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				found[mf.GetName()] = float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	require.Equal(t, float64(3), found["yieldvault_test_txs_total"])
	require.Equal(t, float64(12), found["yieldvault_test_height"])
	require.Equal(t, float64(1), found["yieldvault_test_latency"])
}
