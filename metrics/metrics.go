package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventara_http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "inventara_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// LoanTransitions counts lifecycle moves of loan requests, e.g. pending -> approved.
	LoanTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventara_loan_transitions_total",
			Help: "Loan request status transitions",
		},
		[]string{"from", "to"},
	)

	ReconcileRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventara_reconcile_runs_total",
			Help: "Reconciliation job runs by result",
		},
		[]string{"result"},
	)

	ReconcileAffected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventara_reconcile_affected_total",
			Help: "Loan requests touched by the reconciliation job, by step",
		},
		[]string{"step"},
	)

	PushSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventara_push_sent_total",
			Help: "Push notifications handed to the sender, by category and result",
		},
		[]string{"category", "result"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "inventara_circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)
)
