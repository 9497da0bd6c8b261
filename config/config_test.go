package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		// Save original env vars
		origOpenAIKey := os.Getenv("OPENAI_API_KEY")
		origModel := os.Getenv("OPENAI_MODEL")
		origGST := os.Getenv("GST_RATE")

		// Clear env vars for this test
		os.Unsetenv("OPENAI_API_KEY")
		os.Unsetenv("OPENAI_MODEL")
		os.Unsetenv("GST_RATE")

		defer func() {
			// Restore original env vars
			if origOpenAIKey != "" {
				os.Setenv("OPENAI_API_KEY", origOpenAIKey)
			}
			if origModel != "" {
				os.Setenv("OPENAI_MODEL", origModel)
			}
			if origGST != "" {
				os.Setenv("GST_RATE", origGST)
			}
		}()

		cfg, err := Load()
		assert.NoError(t, err)
		assert.NotNil(t, cfg)

		// Test default values
		assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
		assert.Equal(t, 30, cfg.Amadeus.TimeoutSec)
		assert.Equal(t, 10, cfg.Amadeus.MaxResults)
		assert.Equal(t, "INR", cfg.Pricing.DisplayCurrency)
		assert.Equal(t, 18.0, cfg.Pricing.GSTRate)
		assert.False(t, cfg.Pricing.ConvertCurrency)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("EnvironmentVariables", func(t *testing.T) {
		origModel := os.Getenv("OPENAI_MODEL")
		origGST := os.Getenv("GST_RATE")

		os.Setenv("OPENAI_MODEL", "gpt-4o")
		os.Setenv("GST_RATE", "12.0")

		defer func() {
			if origModel != "" {
				os.Setenv("OPENAI_MODEL", origModel)
			} else {
				os.Unsetenv("OPENAI_MODEL")
			}
			if origGST != "" {
				os.Setenv("GST_RATE", origGST)
			} else {
				os.Unsetenv("GST_RATE")
			}
		}()

		cfg, err := Load()
		assert.NoError(t, err)
		assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
		assert.Equal(t, 12.0, cfg.Pricing.GSTRate)
	})
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.OpenAI.APIKey = "sk-test"
	assert.Error(t, cfg.Validate())

	cfg.Amadeus.APIKey = "id"
	cfg.Amadeus.APISecret = "secret"
	assert.NoError(t, cfg.Validate())
}
