// SPDX-License-Identifier: MIT

package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the session collectors.
type Metrics struct {
	searches      *prometheus.CounterVec
	steps         *prometheus.CounterVec
	duration      prometheus.Histogram
	pathLength    prometheus.Histogram
	commandErrors *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		searches: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridpath_searches_total",
			Help: "Finished searches by outcome",
		}, []string{"outcome"}),
		steps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridpath_search_steps_total",
			Help: "Engine steps by signal",
		}, []string{"signal"}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_search_duration_seconds",
			Help:    "Wall time from BeginSearch to a terminal state",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10), // 0.1ms to ~26s
		}),
		pathLength: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "gridpath_path_length",
			Help:    "Moves in each path found",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100, 200, 500},
		}),
		commandErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "gridpath_command_errors_total",
			Help: "Rejected commands by kind",
		}, []string{"command"}),
	}
}
