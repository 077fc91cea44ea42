package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := DefaultConfig()
	cfg.Telegram.BotToken = "123456789:ABCdefGHIjklMNOpqrsTUVwxyz"
	cfg.Telegram.OwnerID = 111
	cfg.Telegram.AdminID = 222
	cfg.OpenAI.APIKey = "sk-test"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1500, cfg.RateLimit.MinIntervalMs)
	assert.Equal(t, 30, cfg.Sessions.MaxIdleDays)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Console)
}

func TestValidate_Valid(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_MissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing bot token", func(c *Config) { c.Telegram.BotToken = "" }},
		{"missing owner", func(c *Config) { c.Telegram.OwnerID = 0 }},
		{"missing admin", func(c *Config) { c.Telegram.AdminID = 0 }},
		{"missing openai key", func(c *Config) { c.OpenAI.APIKey = "" }},
		{"negative interval", func(c *Config) { c.RateLimit.MinIntervalMs = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateDocument(t *testing.T) {
	valid := []byte(`{
		"telegram": {"bot_token": "123:abc", "owner_id": 1, "admin_id": 2},
		"openai": {"api_key": "sk-x"},
		"rate_limit": {"min_interval_ms": 2000}
	}`)
	require.NoError(t, ValidateDocument(valid))
}

func TestValidateDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"wrong type", `{"telegram": {"owner_id": "not a number"}}`},
		{"unknown field", `{"unknown_top_level": true}`},
		{"bad log level", `{"logging": {"level": "verbose"}}`},
		{"negative interval", `{"rate_limit": {"min_interval_ms": -5}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateDocument([]byte(tt.doc)))
		})
	}
}
