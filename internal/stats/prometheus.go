// Package stats implements the tools StatsClient interface on top of a
// Prometheus registry. Metrics must be declared up front; recording a metric
// that was never declared, or with the wrong number of labels, is a no-op.
package stats

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twitsprout/tools"
)

// Metric names used across the service.
const (
	CacheLookups          = "catalog_cache_lookups_total"
	SourceRefreshes       = "catalog_source_refreshes_total"
	Invalidations         = "catalog_invalidations_total"
	CatalogAlbums         = "catalog_albums"
	HTTPRequestDuration   = "http_request_duration_seconds"
	PostgresQueryDuration = "postgres_query_duration_seconds"
)

// Kind is the Prometheus metric type of a Metric.
type Kind int

const (
	Counter Kind = iota
	Gauge
	Histogram
)

// Metric declares a metric and the names of its labels. Label values are
// passed positionally when recording.
type Metric struct {
	Name   string
	Help   string
	Kind   Kind
	Labels []string
}

// DefaultMetrics are the metrics recorded by the catalog service.
var DefaultMetrics = []Metric{
	{Name: CacheLookups, Help: "Catalog cache lookups by cache and outcome.", Kind: Counter, Labels: []string{"cache", "outcome"}},
	{Name: SourceRefreshes, Help: "Catalog source queries by outcome.", Kind: Counter, Labels: []string{"outcome"}},
	{Name: Invalidations, Help: "Catalog cache invalidations by trigger.", Kind: Counter, Labels: []string{"trigger"}},
	{Name: CatalogAlbums, Help: "Published albums in the last catalog snapshot.", Kind: Gauge},
	{Name: HTTPRequestDuration, Help: "HTTP request duration in seconds.", Kind: Histogram, Labels: []string{"code", "route"}},
	{Name: PostgresQueryDuration, Help: "PostgreSQL operation duration in seconds.", Kind: Histogram, Labels: []string{"label", "outcome"}},
}

var _ tools.StatsClient = (*Prometheus)(nil)

// Prometheus records metrics into its own registry.
type Prometheus struct {
	registry   *prometheus.Registry
	counters   map[string]*prometheus.CounterVec
	gauges     map[string]*prometheus.GaugeVec
	histograms map[string]*prometheus.HistogramVec
}

// New registers the provided metrics under namespace.
func New(namespace string, metrics ...Metric) (*Prometheus, error) {
	p := &Prometheus{
		registry:   prometheus.NewRegistry(),
		counters:   make(map[string]*prometheus.CounterVec),
		gauges:     make(map[string]*prometheus.GaugeVec),
		histograms: make(map[string]*prometheus.HistogramVec),
	}

	for _, m := range metrics {
		var c prometheus.Collector
		switch m.Kind {
		case Counter:
			cv := prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: namespace,
				Name:      m.Name,
				Help:      m.Help,
			}, m.Labels)
			p.counters[m.Name] = cv
			c = cv
		case Gauge:
			gv := prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      m.Name,
				Help:      m.Help,
			}, m.Labels)
			p.gauges[m.Name] = gv
			c = gv
		case Histogram:
			hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      m.Name,
				Help:      m.Help,
				Buckets:   prometheus.DefBuckets,
			}, m.Labels)
			p.histograms[m.Name] = hv
			c = hv
		default:
			return nil, errors.Errorf("unknown kind %d for metric %q", m.Kind, m.Name)
		}
		if err := p.registry.Register(c); err != nil {
			return nil, errors.Wrapf(err, "register metric %q", m.Name)
		}
	}
	return p, nil
}

// Count increments the counter 'name' by incBy.
func (p *Prometheus) Count(name string, incBy float64, labels []string) {
	cv, ok := p.counters[name]
	if !ok {
		return
	}
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return
	}
	c.Add(incBy)
}

// Gauge sets the gauge 'name' to value.
func (p *Prometheus) Gauge(name string, value float64, labels []string) {
	gv, ok := p.gauges[name]
	if !ok {
		return
	}
	g, err := gv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return
	}
	g.Set(value)
}

// Histogram observes value in the histogram 'name'.
func (p *Prometheus) Histogram(name string, value float64, labels []string) {
	hv, ok := p.histograms[name]
	if !ok {
		return
	}
	h, err := hv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return
	}
	h.Observe(value)
}

// Handler returns the Prometheus scrape handler for the registry.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
