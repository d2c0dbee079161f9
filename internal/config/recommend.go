package config

type Recommend struct {
	DefaultLimit int `env:"RECOMMEND_DEFAULT_LIMIT" envDefault:"4"`
	HybridLimit  int `env:"RECOMMEND_HYBRID_LIMIT" envDefault:"8"`
	MaxLimit     int `env:"RECOMMEND_MAX_LIMIT" envDefault:"50"`
}
