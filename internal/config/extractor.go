package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvExtractorBaseURL     = "INTAKE_EXTRACTOR_BASE_URL"
	EnvExtractorAPIKey      = "INTAKE_EXTRACTOR_API_KEY"
	EnvExtractorModel       = "INTAKE_EXTRACTOR_MODEL"
	EnvExtractorTemperature = "INTAKE_EXTRACTOR_TEMPERATURE"
	EnvExtractorTimeout     = "INTAKE_EXTRACTOR_TIMEOUT"
	EnvExtractorRateLimit   = "INTAKE_EXTRACTOR_RATE_LIMIT"
)

// ExtractorConfig holds the language-model endpoint parameters used by the
// structured extractor and the ticket classifier.
type ExtractorConfig struct {
	BaseURL     string  `toml:"base_url"`
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float64 `toml:"temperature"`
	Timeout     string  `toml:"timeout"`
	// RateLimit caps model requests per minute across all workers.
	RateLimit int `toml:"rate_limit"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ExtractorConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ExtractorConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ExtractorConfig) Merge(overlay *ExtractorConfig) {
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Temperature != 0 {
		c.Temperature = overlay.Temperature
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
	if overlay.RateLimit != 0 {
		c.RateLimit = overlay.RateLimit
	}
}

func (c *ExtractorConfig) loadDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.openai.com/v1"
	}
	if c.Model == "" {
		c.Model = "gpt-4.1"
	}
	if c.Temperature == 0 {
		c.Temperature = 0.1
	}
	if c.Timeout == "" {
		c.Timeout = "2m"
	}
	if c.RateLimit == 0 {
		c.RateLimit = 60
	}
}

func (c *ExtractorConfig) loadEnv() {
	if v := os.Getenv(EnvExtractorBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvExtractorAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvExtractorModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvExtractorTemperature); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			c.Temperature = t
		}
	}
	if v := os.Getenv(EnvExtractorTimeout); v != "" {
		c.Timeout = v
	}
	if v := os.Getenv(EnvExtractorRateLimit); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RateLimit = n
		}
	}
}

func (c *ExtractorConfig) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required")
	}
	if c.Model == "" {
		return fmt.Errorf("model required")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("invalid temperature: %v", c.Temperature)
	}
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	if c.RateLimit < 1 {
		return fmt.Errorf("invalid rate_limit: %d", c.RateLimit)
	}
	return nil
}
