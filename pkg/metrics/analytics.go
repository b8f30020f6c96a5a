package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analyticsRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skillforge",
		Subsystem: "analytics",
		Name:      "runs_total",
		Help:      "Total number of analytics computations broken down by operation and result.",
	}, []string{"operation", "result"})

	analyticsLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "skillforge",
		Subsystem: "analytics",
		Name:      "latency_seconds",
		Help:      "Latency distribution for analytics computations.",
		Buckets: []float64{
			0.001, 0.002, 0.005,
			0.01, 0.02, 0.05, 0.1,
			0.2, 0.5, 1, 2,
		},
	}, []string{"operation", "result"})

	riskCaseUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "skillforge",
		Subsystem: "riskcases",
		Name:      "upserts_total",
		Help:      "Risk case upserts broken down by outcome (created vs refreshed).",
	}, []string{"outcome"})

	scenariosGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "skillforge",
		Subsystem: "scenarios",
		Name:      "generated_total",
		Help:      "Move scenarios generated from team gap analysis.",
	})
)

// RecordRun observes a finished analytics computation.
func RecordRun(operation string, err error, latency time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	labels := prometheus.Labels{"operation": operation, "result": result}
	analyticsRuns.With(labels).Inc()
	analyticsLatency.With(labels).Observe(latency.Seconds())
}

func RecordRiskCaseUpsert(created bool) {
	outcome := "refreshed"
	if created {
		outcome = "created"
	}
	riskCaseUpserts.WithLabelValues(outcome).Inc()
}

func RecordScenarioGenerated() {
	scenariosGenerated.Inc()
}
