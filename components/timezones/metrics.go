package timezones

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "tzcatalog"

// Metrics exports catalog build statistics. It implements Observer.
type Metrics struct {
	builds   prometheus.Counter
	skipped  prometheus.Counter
	entries  prometheus.Gauge
	duration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		builds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "builds_total",
			Help:      "Number of catalog builds.",
		}),
		skipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "skipped_zones_total",
			Help:      "Number of reference identifiers left out of a build.",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "entries",
			Help:      "Number of entries in the most recent catalog.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "build_duration_seconds",
			Help:      "Time spent building a catalog.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 10),
		}),
	}

	if reg == nil {
		return m, nil
	}
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("timezones: register metrics: %w", err)
		}
	}
	return m, nil
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.builds, m.skipped, m.entries, m.duration}
}

// CatalogBuilt records one build.
func (m *Metrics) CatalogBuilt(report Report, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.builds.Inc()
	m.skipped.Add(float64(len(report.Skipped)))
	m.entries.Set(float64(len(report.Catalog)))
	m.duration.Observe(elapsed.Seconds())
}

// Observers fans a build out to several observers, skipping nil ones.
func Observers(observers ...Observer) Observer {
	return ObserverFunc(func(report Report, elapsed time.Duration) {
		for _, o := range observers {
			if o == nil {
				continue
			}
			o.CatalogBuilt(report, elapsed)
		}
	})
}
