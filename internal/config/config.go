package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
)

const (
	ProviderCerebras = "cerebras"
	ProviderGemini   = "gemini"
)

type Config struct {
	// Server
	Port     string `env:"PORT" envDefault:"3000"`
	Env      string `env:"ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Completion provider
	Provider        string        `env:"LLM_PROVIDER" envDefault:"cerebras"`
	CerebrasAPIKey  string        `env:"CEREBRAS_API_KEY"`
	CerebrasBaseURL string        `env:"CEREBRAS_BASE_URL"`
	GeminiAPIKey    string        `env:"GEMINI_API_KEY"`
	Model           string        `env:"LLM_MODEL"`
	ProviderTimeout time.Duration `env:"LLM_TIMEOUT" envDefault:"60s"`
	ModelMaxTokens  int           `env:"MODEL_MAX_TOKENS" envDefault:"4096"`

	// HTTP
	CORSOrigin          string `env:"CORS_ORIGIN" envDefault:"*"`
	ChatRateLimitPerMin int    `env:"CHAT_RATE_LIMIT_PER_MINUTE" envDefault:"30"`
	ChatRateLimitBurst  int    `env:"CHAT_RATE_LIMIT_BURST" envDefault:"10"`

	// Database (optional)
	DatabaseURL   string `env:"DATABASE_URL"`
	MigrationsDir string `env:"MIGRATIONS_DIR" envDefault:"migrations"`

	// Redis (optional)
	RedisURL string `env:"REDIS_URL"`

	// Exchange log workers
	ExchangeWorkers   int `env:"EXCHANGE_WORKERS" envDefault:"2"`
	ExchangeQueueSize int `env:"EXCHANGE_QUEUE_SIZE" envDefault:"256"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return parse(env.Options{})
}

func parse(opts env.Options) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Model == "" {
		cfg.Model = defaultModel(cfg.Provider)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected provider has a credential and that
// numeric settings are usable.
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderCerebras:
		if c.CerebrasAPIKey == "" {
			return errors.New("required environment variable CEREBRAS_API_KEY is not set")
		}
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return errors.New("required environment variable GEMINI_API_KEY is not set")
		}
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.Provider)
	}

	if c.ChatRateLimitPerMin <= 0 || c.ChatRateLimitBurst <= 0 {
		return errors.New("chat rate limit and burst must be positive")
	}
	if c.ExchangeWorkers <= 0 || c.ExchangeQueueSize <= 0 {
		return errors.New("exchange workers and queue size must be positive")
	}
	return nil
}

// APIKey returns the credential of the selected provider.
func (c *Config) APIKey() string {
	if c.Provider == ProviderGemini {
		return c.GeminiAPIKey
	}
	return c.CerebrasAPIKey
}

func defaultModel(provider string) string {
	if provider == ProviderGemini {
		return "gemini-2.0-flash"
	}
	return "llama3.1-8b"
}
