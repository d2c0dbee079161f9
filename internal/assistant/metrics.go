package assistant

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindChat   = "chat"
	kindOutfit = "outfit"

	sourceModel    = "model"
	sourceFallback = "fallback"
)

var (
	repliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_replies_total",
			Help: "Total number of assistant replies by kind and source",
		},
		[]string{"kind", "source"},
	)

	breakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "assistant_circuit_breaker_state",
			Help: "State of the model circuit breaker (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	breakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_circuit_breaker_requests_total",
			Help: "Total number of model requests through the circuit breaker by result",
		},
		[]string{"name", "result"},
	)
)
