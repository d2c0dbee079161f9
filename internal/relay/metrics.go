package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultProduced = "produced"
	resultFailed   = "failed"
)

var relayedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "outbox_relayed_messages_total",
		Help: "Outbox messages handed to the broker by topic and result",
	},
	[]string{"topic", "result"},
)
