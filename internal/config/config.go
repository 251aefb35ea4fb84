package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config aggregates every service setting.
type Config struct {
	Server   ServerConfig
	AI       AIConfig
	Auth     AuthConfig
	Database DatabaseConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	auth, err := loadAuthConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		AI:       ai,
		Auth:     auth,
		Database: loadDatabaseConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// AIConfig describes the remote inference endpoint.
type AIConfig struct {
	Token       string
	ModelURL    string
	MaxTokens   int
	Temperature float64
	Timeout     int
}

const defaultModelURL = "https://api-inference.huggingface.co/models/meta-llama/Llama-3.1-8B-Instruct"

// Enabled reports whether an API token was provided. Without one the gateway
// still runs, but every call falls back to the canned replies.
func (c AIConfig) Enabled() bool {
	return c.Token != ""
}

func loadAIConfig() (AIConfig, error) {
	maxTokens := 150
	if override, err := parseOptionalIntEnv("LLM_MAX_TOKENS"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		maxTokens = *override
	}

	temperature := 0.7
	if override, err := parseOptionalFloatEnv("LLM_TEMPERATURE"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		temperature = *override
	}

	timeout := 30
	if override, err := parseOptionalIntEnv("LLM_TIMEOUT"); err != nil {
		return AIConfig{}, err
	} else if override != nil {
		timeout = *override
	}

	return AIConfig{
		Token:       strings.TrimSpace(os.Getenv("HUGGINGFACE_TOKEN")),
		ModelURL:    getEnvOrDefault("LLM_MODEL_URL", defaultModelURL),
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Timeout:     timeout,
	}, nil
}

// AuthConfig describes JWT issuance.
type AuthConfig struct {
	JWTSecret       string
	AccessTTLHours  int
	RefreshTTLHours int
}

func loadAuthConfig() (AuthConfig, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("JWT_SECRET is required")
	}

	access := 1
	if override, err := parseOptionalIntEnv("JWT_ACCESS_TTL_HOURS"); err != nil {
		return AuthConfig{}, err
	} else if override != nil && *override > 0 {
		access = *override
	}

	refresh := 168
	if override, err := parseOptionalIntEnv("JWT_REFRESH_TTL_HOURS"); err != nil {
		return AuthConfig{}, err
	} else if override != nil && *override > 0 {
		refresh = *override
	}

	return AuthConfig{
		JWTSecret:       secret,
		AccessTTLHours:  access,
		RefreshTTLHours: refresh,
	}, nil
}

// DatabaseConfig describes the accounts store.
type DatabaseConfig struct {
	Driver string
	DSN    string
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Driver: getEnvOrDefault("DB_DRIVER", "sqlite"),
		DSN:    getEnvOrDefault("DB_DSN", "manasmitra.db"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloatEnv(key string) (*float64, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
