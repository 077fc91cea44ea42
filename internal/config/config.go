package config

import (
	"encoding/json"
	"fmt"
)

// Config represents the main beseda configuration
type Config struct {
	// Telegram
	Telegram TelegramConfig `json:"telegram" mapstructure:"telegram"`

	// Providers
	OpenAI    ProviderConfig `json:"openai" mapstructure:"openai"`
	Anthropic ProviderConfig `json:"anthropic" mapstructure:"anthropic"`

	// Rate limiting
	RateLimit RateLimitConfig `json:"rate_limit" mapstructure:"rate_limit"`

	// Sessions
	Sessions SessionsConfig `json:"sessions" mapstructure:"sessions"`

	// Logging
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`

	// Data directory
	DataDir string `json:"data_dir" mapstructure:"data_dir"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken string `json:"bot_token" mapstructure:"bot_token"`
	OwnerID  int64  `json:"owner_id" mapstructure:"owner_id"`
	AdminID  int64  `json:"admin_id" mapstructure:"admin_id"`
}

// ProviderConfig holds credentials for one inference provider
type ProviderConfig struct {
	APIKey string `json:"api_key" mapstructure:"api_key"`
}

// RateLimitConfig holds per-user throttling settings
type RateLimitConfig struct {
	MinIntervalMs int `json:"min_interval_ms" mapstructure:"min_interval_ms"`
}

// SessionsConfig holds session storage settings
type SessionsConfig struct {
	DatabaseFile string `json:"database_file" mapstructure:"database_file"`
	MaxIdleDays  int    `json:"max_idle_days" mapstructure:"max_idle_days"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level   string `json:"level" mapstructure:"level"`
	File    string `json:"file" mapstructure:"file"`
	Console bool   `json:"console" mapstructure:"console"`
	Pretty  bool   `json:"pretty" mapstructure:"pretty"`
}

// DefaultConfig returns a config with default values
func DefaultConfig() *Config {
	return &Config{
		RateLimit: RateLimitConfig{
			MinIntervalMs: 1500,
		},
		Sessions: SessionsConfig{
			MaxIdleDays: 30,
		},
		Logging: LoggingConfig{
			Level:   "info",
			Console: true,
			Pretty:  true,
		},
	}
}

// String returns a JSON representation of the config
func (c *Config) String() string {
	data, _ := json.MarshalIndent(c, "", "  ")
	return string(data)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required")
	}
	if c.Telegram.OwnerID == 0 {
		return fmt.Errorf("telegram owner_id is required")
	}
	if c.Telegram.AdminID == 0 {
		return fmt.Errorf("telegram admin_id is required")
	}
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai api_key is required")
	}
	if c.RateLimit.MinIntervalMs < 0 {
		return fmt.Errorf("rate_limit min_interval_ms cannot be negative")
	}
	if c.Sessions.MaxIdleDays < 0 {
		return fmt.Errorf("sessions max_idle_days cannot be negative")
	}
	return nil
}
