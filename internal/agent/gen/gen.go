// Package gen wraps the external text-generation service with bounded
// retry and backoff on transient overload.
package gen

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUpstreamUnavailable is returned once the retry budget for
	// transient overload errors is exhausted.
	ErrUpstreamUnavailable = errors.New("generation service unavailable")

	// ErrEmptyResponse is returned when the upstream replies without a
	// usable text completion.
	ErrEmptyResponse = errors.New("no completion in generation response")
)

// Completer produces a single text completion for a prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds generation client settings. Retry count, backoff bounds,
// and per-attempt timeout are injected rather than hard-coded.
type Config struct {
	APIKey      string        `yaml:"api_key" json:"api_key" env:"GEMINI_API_KEY"`
	BaseURL     string        `yaml:"base_url" json:"base_url"`
	Model       string        `yaml:"model" json:"model"`
	MaxAttempts int           `yaml:"max_attempts" json:"max_attempts"`
	BaseDelay   time.Duration `yaml:"base_delay" json:"base_delay"`
	MaxDelay    time.Duration `yaml:"max_delay" json:"max_delay"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout"`
	Temperature float64       `yaml:"temperature" json:"temperature"`
	MaxTokens   int           `yaml:"max_tokens" json:"max_tokens"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BaseURL:     "https://generativelanguage.googleapis.com/v1beta",
		Model:       "gemini-2.0-flash-exp",
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
		Timeout:     25 * time.Second,
		Temperature: 0.7,
		MaxTokens:   2048,
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = def.MaxAttempts
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = def.BaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = def.MaxDelay
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = def.MaxTokens
	}
}

// NewClient creates a Gemini-backed completer wrapped with retry logic.
func NewClient(cfg Config) (Completer, error) {
	cfg.applyDefaults()
	inner, err := newGeminiClient(cfg)
	if err != nil {
		return nil, err
	}
	return wrapWithRetry(inner, cfg), nil
}
