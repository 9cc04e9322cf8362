package functions

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	EmotionEndpoint string        `env:"EMOTION_ENDPOINT" default:"https://sn-watson-emotion.labs.skills.network/v1/watson.runtime.nlp.v1/NlpService/EmotionPredict"`
	EmotionModelID  string        `env:"EMOTION_MODEL_ID" default:"emotion_aggregated-workflow_lang_en_stock"`
	EmotionTimeout  time.Duration `env:"EMOTION_TIMEOUT" default:"15s"`
	DSN             string        `env:"DSN"`
	ServiceName     string        `env:"SERVICE_NAME" default:"local"`
	LogLevel        string        `env:"LOG_LEVEL" default:"info"`
	ProjectID       string        `env:"GOOGLE_CLOUD_PROJECT"`
	AppName         string        `env:"NAME" default:"emotion-detector-function"`
	LocalOnly       bool          `env:"LOCAL_ONLY" default:"false"`
}

// loadDotEnv loads .env when present. This is for local development.
func loadDotEnv() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			slog.Warn("Failed to load .env",
				slog.Group("config", "error", err),
			)
		}
	}
}

func LoadConfig() (*Config, error) {
	loadDotEnv()

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.EmotionEndpoint)
	if err != nil {
		return fmt.Errorf("EMOTION_ENDPOINT is invalid: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("EMOTION_ENDPOINT must be an absolute http(s) URL, got %q", cfg.EmotionEndpoint)
	}
	if cfg.EmotionTimeout <= 0 {
		return errors.New("EMOTION_TIMEOUT must be positive")
	}
	return nil
}
