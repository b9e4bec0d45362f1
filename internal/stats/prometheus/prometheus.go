// Package prometheus provides a Prometheus-based stats collector.
package prometheus

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/forgeyard/savekit/internal/stats"
)

// Collector implements stats.Collector using Prometheus metrics.
// Metrics are created lazily on first use and registered with the configured
// registerer.
type Collector struct {
	registry prometheus.Registerer

	mu         sync.Mutex
	counters   map[string]prometheus.Counter
	gauges     map[string]prometheus.Gauge
	histograms map[string]prometheus.Histogram
}

// Compile-time check that Collector implements stats.Collector.
var _ stats.Collector = (*Collector)(nil)

// New creates a new Prometheus collector.
// If registry is nil, prometheus.DefaultRegisterer is used.
func New(registry prometheus.Registerer) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	return &Collector{
		registry:   registry,
		counters:   make(map[string]prometheus.Counter),
		gauges:     make(map[string]prometheus.Gauge),
		histograms: make(map[string]prometheus.Histogram),
	}
}

// IncCounter increments a counter metric.
func (c *Collector) IncCounter(name string, delta int64) {
	c.counter(name).Add(float64(delta))
}

// SetGauge sets a gauge metric.
func (c *Collector) SetGauge(name string, value int64) {
	c.gauge(name).Set(float64(value))
}

// ObserveHistogram records a value in a histogram.
func (c *Collector) ObserveHistogram(name string, value float64) {
	c.histogram(name).Observe(value)
}

func (c *Collector) counter(name string) prometheus.Counter {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.counters[name]; ok {
		return m
	}
	m := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: name})
	if existing, ok := register(c.registry, m); ok {
		if e, ok := existing.(prometheus.Counter); ok {
			m = e
		}
	}
	c.counters[name] = m
	return m
}

func (c *Collector) gauge(name string) prometheus.Gauge {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.gauges[name]; ok {
		return m
	}
	m := prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: name})
	if existing, ok := register(c.registry, m); ok {
		if e, ok := existing.(prometheus.Gauge); ok {
			m = e
		}
	}
	c.gauges[name] = m
	return m
}

func (c *Collector) histogram(name string) prometheus.Histogram {
	c.mu.Lock()
	defer c.mu.Unlock()

	if m, ok := c.histograms[name]; ok {
		return m
	}
	m := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    name,
		Buckets: prometheus.DefBuckets,
	})
	if existing, ok := register(c.registry, m); ok {
		if e, ok := existing.(prometheus.Histogram); ok {
			m = e
		}
	}
	c.histograms[name] = m
	return m
}

// register registers m and, if a collector with the same descriptor already
// exists, returns it so the caller can reuse it.
func register(r prometheus.Registerer, m prometheus.Collector) (prometheus.Collector, bool) {
	err := r.Register(m)
	if err == nil {
		return nil, false
	}
	if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
		return are.ExistingCollector, true
	}
	// Registration failed for another reason; the metric still works, it is
	// just not exported.
	return nil, false
}
