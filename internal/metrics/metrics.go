package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbconsultor_queries_total",
			Help: "Total number of consultations by backend and outcome.",
		},
		[]string{"backend", "outcome"},
	)
	stageDurationMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dbconsultor_stage_duration_ms",
			Help:    "Duration of each consultation stage in milliseconds.",
			Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000},
		},
		[]string{"stage"},
	)
	llmRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dbconsultor_llm_requests_total",
			Help: "Total number of model requests by provider, purpose and status.",
		},
		[]string{"provider", "purpose", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		queriesTotal,
		stageDurationMs,
		llmRequestsTotal,
	)
}

func ObserveQuery(backend, outcome string) {
	queriesTotal.WithLabelValues(backend, outcome).Inc()
}

func ObserveStage(stage string, elapsed time.Duration) {
	stageDurationMs.WithLabelValues(stage).Observe(float64(elapsed.Milliseconds()))
}

func ObserveLLMRequest(provider, purpose string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	llmRequestsTotal.WithLabelValues(provider, purpose, status).Inc()
}
