package config

import "time"

// Relay configures the outbox relay that forwards committed domain events
// (product.*, order.*) to Kafka.
type Relay struct {
	BatchSize uint32        `env:"RELAY_BATCH_SIZE" envDefault:"100"`
	Interval  time.Duration `env:"RELAY_INTERVAL" envDefault:"1s"`

	// MetricsPort serves /metrics and /healthz for the standalone relay.
	MetricsPort uint32 `env:"RELAY_METRICS_PORT" envDefault:"9101"`
}
