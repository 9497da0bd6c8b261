package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config aggregates all application configuration
type Config struct {
	OpenAI  OpenAIConfig  `yaml:"openai"`
	Amadeus AmadeusConfig `yaml:"amadeus"`
	Pricing PricingConfig `yaml:"pricing"`
	Log     LogConfig     `yaml:"log"`
}

type OpenAIConfig struct {
	APIKey string `yaml:"api_key" env:"OPENAI_API_KEY"`
	Model  string `yaml:"model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
}

type AmadeusConfig struct {
	APIKey     string `yaml:"api_key" env:"AMADEUS_API_KEY"`
	APISecret  string `yaml:"api_secret" env:"AMADEUS_API_SECRET"`
	Production bool   `yaml:"production" env:"AMADEUS_PRODUCTION" env-default:"false"`
	TimeoutSec int    `yaml:"timeout_sec" env:"AMADEUS_TIMEOUT_SEC" env-default:"30"`
	MaxResults int    `yaml:"max_results" env:"AMADEUS_MAX_RESULTS" env-default:"10"`
}

// PricingConfig controls how the ticket price breakdown is computed.
// When ConvertCurrency is set, prices are shown in DisplayCurrency; a
// conversion failure falls back to the offer's own currency.
type PricingConfig struct {
	DisplayCurrency string  `yaml:"display_currency" env:"DISPLAY_CURRENCY" env-default:"INR"`
	ConvertCurrency bool    `yaml:"convert_currency" env:"CONVERT_CURRENCY" env-default:"false"`
	GSTRate         float64 `yaml:"gst_rate" env:"GST_RATE" env-default:"18.0"`
	RateAPIBaseURL  string  `yaml:"rate_api_base_url" env:"EXCHANGE_RATE_API_URL" env-default:"https://open.er-api.com/v6/latest"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from config.yaml and environment variables.
// Priority: Env Vars > Config File > Defaults
func Load() (*Config, error) {
	var cfg Config

	// Read config.yaml if present, then override with envs. A missing
	// file is fine; envs and defaults carry the rest.
	err := cleanenv.ReadConfig("config.yaml", &cfg)
	if err != nil {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read env config: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the credentials needed to run the pipeline are set
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY must be set")
	}
	if c.Amadeus.APIKey == "" || c.Amadeus.APISecret == "" {
		return fmt.Errorf("AMADEUS_API_KEY and AMADEUS_API_SECRET must be set")
	}
	return nil
}
