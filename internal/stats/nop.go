package stats

import (
	"net/http"

	"github.com/twitsprout/tools"
)

var _ tools.StatsClient = Nop{}

// Nop discards all metrics.
type Nop struct{}

func (Nop) Count(string, float64, []string)     {}
func (Nop) Gauge(string, float64, []string)     {}
func (Nop) Histogram(string, float64, []string) {}
func (Nop) Handler() http.Handler               { return http.NotFoundHandler() }
