package config

import "time"

type Kafka struct {
	Addresses []string `env:"KAFKA_ADDRESSES,required" envSeparator:","`
	Group     string   `env:"KAFKA_GROUP" envDefault:"storefront"`
	ClientID  string   `env:"KAFKA_CLIENT_ID" envDefault:"storefront"`

	// ProduceTimeout bounds a single relayed record, including retries.
	ProduceTimeout time.Duration `env:"KAFKA_PRODUCE_TIMEOUT" envDefault:"10s"`
}
