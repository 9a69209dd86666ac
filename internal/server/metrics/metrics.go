// Package metrics exposes the server's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SignInAttempts counts credential checks by outcome:
	// success, failure, throttled, store_error.
	SignInAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "signin_attempts_total",
		Help:      "Sign-in attempts by outcome.",
	}, []string{"outcome"})

	// GateDecisions counts per-request gate verdicts by action (allow, redirect).
	GateDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "gate_decisions_total",
		Help:      "Gate decisions by action.",
	}, []string{"action"})
)
