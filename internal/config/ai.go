package config

import "time"

// AI configures the language model backing the chat assistant. An empty
// APIKey disables the model and every assistant call uses canned replies.
type AI struct {
	APIKey  string        `env:"OPENAI_API_KEY"`
	Model   string        `env:"OPENAI_MODEL" envDefault:"gpt-4o"`
	BaseURL string        `env:"OPENAI_BASE_URL"`
	Timeout time.Duration `env:"OPENAI_TIMEOUT" envDefault:"15s"`
}

// Enabled reports whether a model backend is configured.
func (c AI) Enabled() bool {
	return c.APIKey != ""
}
