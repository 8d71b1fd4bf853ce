package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultPredictionAPIURL = "http://localhost:8000/"
	DefaultServerAddr       = ":8080"
	DefaultGinMode          = "debug"
	DefaultTimeout          = 30 * time.Second
)

// Config holds everything the service reads from the environment.
type Config struct {
	// PredictionAPIURL is the base URL of the prediction service. It always ends in "/".
	PredictionAPIURL string
	ServerAddr       string
	GinMode          string
	AllowedOrigins   []string
	// Timeout bounds a single upstream call. Zero disables it.
	Timeout time.Duration
}

// Load reads the .env file (if one exists) and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		// Plain environment variables are enough, the file is optional
		log.Printf("⚠️  No .env file loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (*Config, error) {
	cfg := &Config{
		PredictionAPIURL: firstNonEmpty(os.Getenv("PREDICTION_API_URL"), os.Getenv("NEXT_PUBLIC_API_URL"), DefaultPredictionAPIURL),
		ServerAddr:       firstNonEmpty(os.Getenv("SERVER_ADDR"), DefaultServerAddr),
		GinMode:          firstNonEmpty(os.Getenv("GIN_MODE"), DefaultGinMode),
		AllowedOrigins:   splitList(firstNonEmpty(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		Timeout:          DefaultTimeout,
	}

	if raw := os.Getenv("PREDICTION_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PREDICTION_TIMEOUT %q: %w", raw, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("invalid PREDICTION_TIMEOUT %q: must not be negative", raw)
		}
		cfg.Timeout = d
	}

	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	for _, o := range cfg.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return nil, fmt.Errorf("invalid CORS origin %q: must be * or start with http:// or https://", o)
		}
	}

	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		return nil, fmt.Errorf("invalid GIN_MODE %q: want debug, release or test", cfg.GinMode)
	}

	base, err := NormalizeBaseURL(cfg.PredictionAPIURL)
	if err != nil {
		return nil, err
	}
	cfg.PredictionAPIURL = base

	return cfg, nil
}

// NormalizeBaseURL checks the scheme and makes sure the URL ends in a slash,
// so route names can be appended directly ("{base}predict").
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "", fmt.Errorf("prediction API URL %q must start with http:// or https://", raw)
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw, nil
}

// AllowsAllOrigins reports whether CORS should be wide open.
func (c *Config) AllowsAllOrigins() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
