// Package config loads application configuration from the environment
// with an optional YAML overlay file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `yaml:"serverAddress"`
	Environment   string `yaml:"environment"`
	EnableCORS    bool   `yaml:"enableCORS"`

	// Logging
	LogLevel string `yaml:"logLevel"`

	// Graph storage
	StoreBackend string `yaml:"storeBackend"` // memory | dynamodb | redis
	GraphKey     string `yaml:"graphKey"`

	// AWS configuration (dynamodb backend)
	AWSRegion     string `yaml:"awsRegion"`
	DynamoDBTable string `yaml:"dynamoDBTable"`

	// Redis configuration (redis backend)
	RedisAddr string `yaml:"redisAddr"`

	// Clustering oracle
	OracleProvider  string        `yaml:"oracleProvider"` // anthropic | openai
	AnthropicAPIKey string        `yaml:"-"`
	AnthropicModel  string        `yaml:"anthropicModel"`
	OpenAIAPIKey    string        `yaml:"-"`
	OpenAIModel     string        `yaml:"openaiModel"`
	OracleTimeout   time.Duration `yaml:"oracleTimeout"`

	// Paper search enrichment
	PaperLimit    int           `yaml:"paperLimit"`
	SearchTimeout time.Duration `yaml:"searchTimeout"`

	// Watch client
	PollInterval  time.Duration `yaml:"pollInterval"`
	ServerBaseURL string        `yaml:"serverBaseURL"`
}

// LoadConfig loads configuration from environment variables, applying
// an optional YAML file named by CONFIG_FILE first. Environment
// variables win over the file.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress:  ":8080",
		Environment:    "development",
		EnableCORS:     true,
		LogLevel:       "info",
		StoreBackend:   "memory",
		GraphKey:       "default",
		AWSRegion:      "us-west-2",
		DynamoDBTable:  "topicmap",
		RedisAddr:      "localhost:6379",
		OracleProvider: "anthropic",
		OracleTimeout:  60 * time.Second,
		PaperLimit:     5,
		SearchTimeout:  10 * time.Second,
		PollInterval:   30 * time.Second,
		ServerBaseURL:  "http://localhost:8080",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is an alias for LoadConfig.
func Load() (*Config, error) {
	return LoadConfig()
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.ServerAddress = getEnv("SERVER_ADDRESS", c.ServerAddress)
	c.Environment = getEnv("ENVIRONMENT", c.Environment)
	c.EnableCORS = getEnvBool("ENABLE_CORS", c.EnableCORS)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)

	c.StoreBackend = getEnv("STORE_BACKEND", c.StoreBackend)
	c.GraphKey = getEnv("GRAPH_KEY", c.GraphKey)
	c.AWSRegion = getEnv("AWS_REGION", c.AWSRegion)
	c.DynamoDBTable = getEnv("TABLE_NAME", c.DynamoDBTable)
	c.RedisAddr = getEnv("REDIS_ADDR", c.RedisAddr)

	c.OracleProvider = getEnv("ORACLE_PROVIDER", c.OracleProvider)
	c.AnthropicAPIKey = getEnv("ANTHROPIC_API_KEY", c.AnthropicAPIKey)
	c.AnthropicModel = getEnv("ANTHROPIC_MODEL", c.AnthropicModel)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIModel = getEnv("OPENAI_MODEL", c.OpenAIModel)
	c.OracleTimeout = getEnvDuration("ORACLE_TIMEOUT", c.OracleTimeout)

	c.PaperLimit = getEnvInt("PAPER_LIMIT", c.PaperLimit)
	c.SearchTimeout = getEnvDuration("SEARCH_TIMEOUT", c.SearchTimeout)

	c.PollInterval = getEnvDuration("POLL_INTERVAL", c.PollInterval)
	c.ServerBaseURL = getEnv("SERVER_BASE_URL", c.ServerBaseURL)
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case "memory", "dynamodb", "redis":
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.OracleProvider {
	case "anthropic", "openai":
	default:
		return fmt.Errorf("unknown ORACLE_PROVIDER %q", c.OracleProvider)
	}
	if c.StoreBackend == "dynamodb" && c.DynamoDBTable == "" {
		return fmt.Errorf("TABLE_NAME is required for the dynamodb backend")
	}
	if c.IsProduction() {
		if c.OracleProvider == "anthropic" && c.AnthropicAPIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required in production")
		}
		if c.OracleProvider == "openai" && c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required in production")
		}
	}
	if c.PaperLimit <= 0 {
		return fmt.Errorf("PAPER_LIMIT must be positive")
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

// getEnvDuration gets a duration environment variable with a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
