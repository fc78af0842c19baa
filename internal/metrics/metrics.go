// Package metrics provides Prometheus instrumentation for matching runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes used as the "outcome" label of MatchRunsTotal.
const (
	OutcomeSuccess         = "success"
	OutcomeEmpty           = "empty"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeConfiguration   = "configuration"
	OutcomeConflict        = "conflict"
	OutcomeError           = "error"
)

var (
	// MatchRunsTotal counts matching runs by outcome.
	MatchRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vacancy_match_runs_total",
		Help: "Total number of matching runs",
	}, []string{"outcome"})

	// EligibleCandidates records how many profiles passed the eligibility filter per run.
	EligibleCandidates = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vacancy_match_eligible_candidates",
		Help:    "Eligible candidate profiles per matching run",
		Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500, 1000},
	})

	// MatchesCreatedTotal counts persisted match records.
	MatchesCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vacancy_matches_created_total",
		Help: "Total number of match records created",
	})

	// MatchRunDuration records matching run latency in seconds.
	MatchRunDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vacancy_match_run_duration_seconds",
		Help:    "Matching run latency in seconds",
		Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	})

	// EventsFailedTotal counts matches-created events that could not be published.
	EventsFailedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vacancy_match_events_failed_total",
		Help: "Total number of matches-created events that failed to publish",
	})
)

func init() {
	prometheus.MustRegister(
		MatchRunsTotal,
		EligibleCandidates,
		MatchesCreatedTotal,
		MatchRunDuration,
		EventsFailedTotal,
	)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
