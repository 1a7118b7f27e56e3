package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseEnv(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func TestParse_Defaults(t *testing.T) {
	cfg, err := parseEnv(map[string]string{"CEREBRAS_API_KEY": "csk-test"})
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ProviderCerebras, cfg.Provider)
	assert.Equal(t, "llama3.1-8b", cfg.Model)
	assert.Empty(t, cfg.CerebrasBaseURL)
	assert.Equal(t, 60*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, 4096, cfg.ModelMaxTokens)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "csk-test", cfg.APIKey())
}

func TestParse_GeminiProvider(t *testing.T) {
	cfg, err := parseEnv(map[string]string{
		"LLM_PROVIDER":   " Gemini ",
		"GEMINI_API_KEY": "g-key",
		"PORT":           "8081",
	})
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, "g-key", cfg.APIKey())
	assert.Equal(t, "8081", cfg.Port)
}

func TestParse_ExplicitModelWins(t *testing.T) {
	cfg, err := parseEnv(map[string]string{
		"CEREBRAS_API_KEY": "csk-test",
		"LLM_MODEL":        "llama-3.3-70b",
	})
	require.NoError(t, err)
	assert.Equal(t, "llama-3.3-70b", cfg.Model)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"missing cerebras key", map[string]string{}},
		{"missing gemini key", map[string]string{"LLM_PROVIDER": "gemini", "CEREBRAS_API_KEY": "x"}},
		{"unknown provider", map[string]string{"LLM_PROVIDER": "mystery", "CEREBRAS_API_KEY": "x"}},
		{"non-numeric rate limit", map[string]string{"CEREBRAS_API_KEY": "x", "CHAT_RATE_LIMIT_PER_MINUTE": "abc"}},
		{"zero burst", map[string]string{"CEREBRAS_API_KEY": "x", "CHAT_RATE_LIMIT_BURST": "0"}},
		{"bad timeout", map[string]string{"CEREBRAS_API_KEY": "x", "LLM_TIMEOUT": "soon"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseEnv(tc.vars)
			assert.Error(t, err)
		})
	}
}
