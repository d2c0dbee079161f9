package config

import "time"

type HTTP struct {
	Port    uint32 `env:"HTTP_PORT" envDefault:"8000"`
	Swagger bool   `env:"HTTP_SWAGGER" envDefault:"true"`

	CORSAllowedOrigins []string `env:"HTTP_CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	// ChatRateLimit caps AI-backed requests per client IP within ChatRateWindow.
	ChatRateLimit  int           `env:"HTTP_CHAT_RATE_LIMIT" envDefault:"20"`
	ChatRateWindow time.Duration `env:"HTTP_CHAT_RATE_WINDOW" envDefault:"1m"`
}
