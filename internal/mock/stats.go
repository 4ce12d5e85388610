package mock

import (
	"net/http"

	"github.com/twitsprout/tools"
)

var _ tools.StatsClient = (*StatsClient)(nil)

// StatsClient implements the tools StatsClient interface for mocking purposes.
type StatsClient struct {
	CountFn     func(string, float64, []string)
	GaugeFn     func(string, float64, []string)
	HistogramFn func(string, float64, []string)
	HandlerFn   func() http.Handler
}

// Count calls the StatsClient's CountFn.
func (sc *StatsClient) Count(name string, incBy float64, labels []string) {
	sc.CountFn(name, incBy, labels)
}

// Gauge calls the StatsClient's GaugeFn.
func (sc *StatsClient) Gauge(name string, value float64, labels []string) {
	sc.GaugeFn(name, value, labels)
}

// Histogram calls the StatsClient's HistogramFn.
func (sc *StatsClient) Histogram(name string, value float64, labels []string) {
	sc.HistogramFn(name, value, labels)
}

// Handler calls the StatsClient's HandlerFn.
func (sc *StatsClient) Handler() http.Handler {
	return sc.HandlerFn()
}

// NopStatsClient implements the StatsClient interface where all functions
// are no-ops.
var NopStatsClient = &StatsClient{
	CountFn:     func(string, float64, []string) {},
	GaugeFn:     func(string, float64, []string) {},
	HistogramFn: func(string, float64, []string) {},
	HandlerFn:   func() http.Handler { return http.NotFoundHandler() },
}
