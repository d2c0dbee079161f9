package config

import "time"

type Redis struct {
	Addr     string        `env:"REDIS_ADDR,required"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	Prefix   string        `env:"REDIS_PREFIX" envDefault:"storefront:"`
	TTL      time.Duration `env:"REDIS_TTL" envDefault:"5m"`
}
