// Package config provides configuration loading and validation for the service.
package config

import (
	"fmt"
	"os"
)

// Config holds the process configuration read from the environment.
// Every field here is required; missing values fail startup rather than
// surfacing later as a mid-request error.
type Config struct {
	DatabaseURL         string // PostgreSQL connection URL
	GeminiAPIKey        string // API key for the generation engine
	StripeSecretKey     string // Stripe API secret key
	StripeWebhookSecret string // Shared secret for webhook signature verification
}

// Load reads the service configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required but not set")
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required but not set")
	}
	if c.StripeSecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required but not set")
	}
	if c.StripeWebhookSecret == "" {
		return fmt.Errorf("STRIPE_WEBHOOK_SECRET is required but not set")
	}
	return nil
}
