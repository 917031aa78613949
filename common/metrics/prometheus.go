package metrics

import (
	"net/http"
	"sync"

	"github.com/meverselabs/yieldvault/common/rlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "yieldvault"

// InitializePrometheusMetrics switches the provider to prometheus, once
func InitializePrometheusMetrics() {
	if _, ok := metrics.(*prometheusMetrics); !ok {
		metrics = &prometheusMetrics{}
	}
}

type prometheusMetrics struct {
	counterVecs   sync.Map
	gauges        sync.Map
	histogramVecs sync.Map
}

func register(c prometheus.Collector, name string) {
	if err := prometheus.Register(c); err != nil {
		l := rlog.GetForComponent("metrics")
		l.Warn().Err(err).Str("name", name).Msg("unable to register metric")
	}
}

func (o *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	if v, ok := o.counterVecs.Load(name); ok {
		return v.(CountVecMeter)
	}
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, labels)
	register(vec, name)
	meter, _ := o.counterVecs.LoadOrStore(name, &promCountVecMeter{counter: vec})
	return meter.(CountVecMeter)
}

func (o *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	if v, ok := o.gauges.Load(name); ok {
		return v.(GaugeMeter)
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
	register(g, name)
	meter, _ := o.gauges.LoadOrStore(name, &promGaugeMeter{gauge: g})
	return meter.(GaugeMeter)
}

func (o *prometheusMetrics) GetOrCreateHistogramVecMeter(name string, labels []string, buckets []int64) HistogramVecMeter {
	if v, ok := o.histogramVecs.Load(name); ok {
		return v.(HistogramVecMeter)
	}
	floatBuckets := make([]float64, 0, len(buckets))
	for _, bucket := range buckets {
		floatBuckets = append(floatBuckets, float64(bucket))
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      name,
		Buckets:   floatBuckets,
	}, labels)
	register(vec, name)
	meter, _ := o.histogramVecs.LoadOrStore(name, &promHistogramVecMeter{histogram: vec})
	return meter.(HistogramVecMeter)
}

func (o *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.Handler()
}

type promCountVecMeter struct {
	counter *prometheus.CounterVec
}

func (c *promCountVecMeter) AddWithLabel(i int64, labels map[string]string) {
	c.counter.With(labels).Add(float64(i))
}

type promGaugeMeter struct {
	gauge prometheus.Gauge
}

func (c *promGaugeMeter) Add(i int64) {
	c.gauge.Add(float64(i))
}

func (c *promGaugeMeter) Set(i int64) {
	c.gauge.Set(float64(i))
}

type promHistogramVecMeter struct {
	histogram *prometheus.HistogramVec
}

func (c *promHistogramVecMeter) ObserveWithLabels(i int64, labels map[string]string) {
	c.histogram.With(labels).Observe(float64(i))
}
