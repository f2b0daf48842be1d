package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"themis/pkg/errors"
)

type Config struct {
	App           AppConfig
	Server        ServerConfig
	Redis         RedisConfig
	AI            AIConfig
	Assistant     AssistantConfig
	ErrorTracking ErrorTrackingConfig
}

type AppConfig struct {
	Name     string `envconfig:"APP_NAME" default:"themis"`
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Version  string `envconfig:"APP_VERSION" default:"dev"`
}

type ServerConfig struct {
	Port            int           `envconfig:"HTTP_PORT" default:"8080"`
	ShutdownTimeout time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"15s"`
	MaxUploadBytes  int64         `envconfig:"HTTP_MAX_UPLOAD_BYTES" default:"10485760"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" required:"true"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type AIConfig struct {
	OpenAIKey     string        `envconfig:"OPENAI_API_KEY" required:"true"`
	Model         string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	Timeout       time.Duration `envconfig:"OPENAI_TIMEOUT" default:"60s"`
	RequestsPerMin float64      `envconfig:"OPENAI_REQUESTS_PER_MINUTE" default:"500"`
	Burst         int           `envconfig:"OPENAI_BURST" default:"20"`
}

// AssistantConfig controls cache lifetimes and prompt truncation limits.
// Truncation limits match what the completion service can usefully consume
// for each flow, not the model's hard context window.
type AssistantConfig struct {
	SessionTTL       time.Duration `envconfig:"ASSISTANT_SESSION_TTL" default:"24h"`
	DocumentTTL      time.Duration `envconfig:"ASSISTANT_DOCUMENT_TTL" default:"24h"`
	DraftTTL         time.Duration `envconfig:"ASSISTANT_DRAFT_TTL" default:"1h"`
	ClassifyMaxChars int           `envconfig:"ASSISTANT_CLASSIFY_MAX_CHARS" default:"3000"`
	SummaryMaxChars  int           `envconfig:"ASSISTANT_SUMMARY_MAX_CHARS" default:"4000"`
	ChatMaxChars     int           `envconfig:"ASSISTANT_CHAT_MAX_CHARS" default:"3000"`
	DraftMaxChars    int           `envconfig:"ASSISTANT_DRAFT_MAX_CHARS" default:"1500"`
}

type ErrorTrackingConfig struct {
	Enabled     bool   `envconfig:"ERROR_TRACKING_ENABLED" default:"true"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"SENTRY_ENVIRONMENT" default:"production"`
}

// Load reads configuration from environment variables
// It first tries to load .env file (useful for local development)
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if not exists)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to process env config")
	}

	return &cfg, nil
}
