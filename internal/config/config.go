package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	OpenAI  OpenAIConfig
	Logging LoggingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string
	Environment     string
	ShutdownTimeout time.Duration
}

// OpenAIConfig holds OpenAI API configuration
type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	ChatModel   string
	VisionModel string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Format string // json or console
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Read from environment variables
	v.AutomaticEnv()

	// Bind specific environment variables
	bindEnvVars(v)

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.shutdowntimeout", 30*time.Second)

	// OpenAI defaults
	v.SetDefault("openai.chatmodel", "gpt-3.5-turbo")
	v.SetDefault("openai.visionmodel", "gpt-4o-mini")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// bindEnvVars binds environment variables to config keys
func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.environment", "ENV", "ENVIRONMENT")

	// OpenAI
	v.BindEnv("openai.apikey", "OPENAI_API_KEY")
	v.BindEnv("openai.baseurl", "OPENAI_BASE_URL")
	v.BindEnv("openai.chatmodel", "OPENAI_CHAT_MODEL")
	v.BindEnv("openai.visionmodel", "OPENAI_VISION_MODEL")

	// Logging
	v.BindEnv("logging.level", "LOG_LEVEL")
	v.BindEnv("logging.format", "LOG_FORMAT")
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("openai.apikey is required")
	}

	if c.OpenAI.ChatModel == "" {
		return fmt.Errorf("openai.chatmodel is required")
	}

	if c.OpenAI.VisionModel == "" {
		return fmt.Errorf("openai.visionmodel is required")
	}

	return nil
}
