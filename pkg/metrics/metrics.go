package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "feedbackform"

var (
	TokenRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refresh_total",
		Help:      "OAuth2 token refreshes by result",
	}, []string{"result"})

	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_gate_total",
		Help:      "Auth gate decisions on protected pages",
	}, []string{"result"})

	TicketSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_submissions_total",
		Help:      "Ticket submissions by backend and result",
	}, []string{"backend", "result"})

	TicketSubmissionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "ticket_submission_duration_seconds",
		Help:      "Time spent creating a ticket including uploads",
		Buckets:   prometheus.DefBuckets,
	}, []string{"backend"})

	ValidationFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_validation_failures_total",
		Help:      "Submitted forms rejected by validation",
	})
)

const (
	ResultSuccess  = "success"
	ResultFailure  = "failure"
	ResultRedirect = "redirect"
)
